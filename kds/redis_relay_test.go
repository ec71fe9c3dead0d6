package kds

import (
	"context"
	"testing"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWireRestoresServiceMode(t *testing.T) {
	msg := StatusChangedEvent(models.Order{ID: 7, ServiceMode: models.ServiceDelivery, Status: models.OrderCompleted})

	payload := []byte(`{"id":"x","event":"order-status-changed","data":{"orderId":7},"emitted_at":"2026-01-01T00:00:00Z","service_mode":"delivery"}`)
	decoded, err := decodeWire(payload)
	require.NoError(t, err)
	assert.Equal(t, msg.Event, decoded.Event)
	assert.Equal(t, models.ServiceDelivery, decoded.ServiceMode)
	assert.False(t, RelevantTo(models.RoleWaiter, decoded))
}

func TestRedisRelayFallsBackToLocalHub(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	hub := NewHub(4)
	session := hub.Register(models.RoleManager, false)

	relay := NewRedisRelay(client, "test:events", hub, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.publishLoop(ctx)

	relay.Publish(SummaryEvent(TypeNewOrder))

	select {
	case data := <-session.Send():
		assert.Contains(t, string(data), EventSummaryUpdate)
	case <-time.After(3 * time.Second):
		t.Fatal("relay did not fall back to local delivery")
	}
}

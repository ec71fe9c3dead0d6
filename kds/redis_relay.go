package kds

import (
	"context"
	"encoding/json"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/redis/go-redis/v9"
)

const relayPublishTimeout = 2 * time.Second

// wireMessage carries the fields the JSON envelope hides so the receiving
// instance can still apply role filters.
type wireMessage struct {
	Message
	Mode string `json:"service_mode,omitempty"`
}

// RedisRelay shares one broadcast topic between several instances. Every
// instance publishes to the Redis channel and delivers what it receives to
// its own Hub. When Redis is unreachable messages go straight to the local Hub.
type RedisRelay struct {
	client  redis.UniversalClient
	channel string
	local   *Hub
	queue   chan Message
}

func NewRedisRelay(client redis.UniversalClient, channel string, local *Hub, queueSize int) *RedisRelay {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &RedisRelay{
		client:  client,
		channel: channel,
		local:   local,
		queue:   make(chan Message, queueSize),
	}
}

// Publish hands msg to the background publisher. A full queue falls back to local delivery.
func (r *RedisRelay) Publish(msg Message) {
	select {
	case r.queue <- msg:
	default:
		utils.ErrorLogger.WithField("event", msg.Event).Warn("Relay queue full, delivering locally")
		r.local.Publish(msg)
	}
}

// Run publishes queued messages and relays subscribed ones until ctx ends.
func (r *RedisRelay) Run(ctx context.Context) {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	go r.publishLoop(ctx)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			msg, err := decodeWire([]byte(m.Payload))
			if err != nil {
				utils.ErrorLogger.WithError(err).Warn("Dropping malformed relay message")
				continue
			}
			r.local.Publish(msg)
		}
	}
}

func (r *RedisRelay) publishLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-r.queue:
			r.forward(ctx, msg)
		}
	}
}

func (r *RedisRelay) forward(ctx context.Context, msg Message) {
	payload, err := json.Marshal(wireMessage{Message: msg, Mode: string(msg.ServiceMode)})
	if err != nil {
		utils.ErrorLogger.WithError(err).WithField("event", msg.Event).Warn("Error marshaling relay message")
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, relayPublishTimeout)
	defer cancel()
	if err := r.client.Publish(pubCtx, r.channel, payload).Err(); err != nil {
		utils.ErrorLogger.WithError(err).WithField("event", msg.Event).Warn("Redis publish failed, delivering locally")
		r.local.Publish(msg)
	}
}

func decodeWire(payload []byte) (Message, error) {
	var w wireMessage
	if err := json.Unmarshal(payload, &w); err != nil {
		return Message{}, err
	}
	msg := w.Message
	msg.ServiceMode = models.ServiceMode(w.Mode)
	return msg, nil
}

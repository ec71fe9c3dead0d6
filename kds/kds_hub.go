package kds

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Message is the envelope every dashboard receives.
type Message struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Data      any       `json:"data"`
	EmittedAt time.Time `json:"emitted_at"`

	// ServiceMode lets role filters skip order events for other flows. It is not sent.
	ServiceMode models.ServiceMode `json:"-"`
}

func newMessage(event string, mode models.ServiceMode, data any) Message {
	return Message{
		ID:          uuid.NewString(),
		Event:       event,
		Data:        data,
		EmittedAt:   time.Now().UTC(),
		ServiceMode: mode,
	}
}

// Publisher is implemented by the local Hub, the Redis relay and test recorders.
// Publish must not block the caller.
type Publisher interface {
	Publish(msg Message)
}

// Client is one connected dashboard session.
type Client struct {
	ID     string
	Role   models.Role
	Scoped bool
	send   chan []byte
}

// Send exposes the session's outbound queue.
func (c *Client) Send() <-chan []byte {
	return c.send
}

// Hub fans messages out to every connected session on this instance.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	bufferSize int
	dropped    atomic.Uint64
}

func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		bufferSize: bufferSize,
	}
}

// Register adds a session. A scoped session only receives events relevant to its role.
func (h *Hub) Register(role models.Role, scoped bool) *Client {
	c := &Client{
		ID:     uuid.NewString(),
		Role:   role,
		Scoped: scoped,
		send:   make(chan []byte, h.bufferSize),
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	utils.InfoLogger.WithFields(logrus.Fields{
		"session": c.ID,
		"role":    role,
		"scoped":  scoped,
		"clients": total,
	}).Info("Dashboard connected")
	return c
}

// Unregister removes a session and closes its queue. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	utils.InfoLogger.WithFields(logrus.Fields{
		"session": c.ID,
		"clients": total,
	}).Info("Dashboard disconnected")
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped reports how many per-session deliveries were skipped because a queue was full.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Publish queues msg for every interested session without waiting on any of them.
func (h *Hub) Publish(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).WithField("event", msg.Event).Warn("Error marshaling broadcast message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.Scoped && !RelevantTo(c.Role, msg) {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.dropped.Add(1)
			utils.ErrorLogger.WithFields(logrus.Fields{
				"session": c.ID,
				"event":   msg.Event,
			}).Warn("Dashboard queue full, dropping event")
		}
	}
}

// Close disconnects every session.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// ServeConn pumps messages to conn until either side goes away. Clients send
// nothing of meaning; reads only keep the pong deadline fresh.
func (h *Hub) ServeConn(conn *websocket.Conn, role models.Role, scoped bool) {
	client := h.Register(role, scoped)
	done := make(chan struct{})

	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	writePump(conn, client, done)
	h.Unregister(client)
	conn.Close()
}

func writePump(conn *websocket.Conn, client *Client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				utils.ErrorLogger.WithError(err).WithField("session", client.ID).Warn("Error sending message to dashboard")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

package ws

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/shotclock/backend/internal/arcade"
	"github.com/shotclock/backend/internal/metrics"
)

// Role is what a socket connects as.
type Role string

const (
	// RoleSensor clients push body frames and sensor status.
	RoleSensor Role = "sensor"
	// RoleRender clients receive draw lists and session events.
	RoleRender Role = "render"
)

// Client represents a connected WebSocket client
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	id    string
	role  Role
	codec Codec
	send  chan []byte
}

// Hub maintains the set of active clients and fans host results out to
// renderers.
type Hub struct {
	host *arcade.Host
	rec  *metrics.Recorder

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	seq  atomic.Uint64
	done chan struct{}
}

// NewHub creates a new Hub
func NewHub(host *arcade.Host, rec *metrics.Recorder) *Hub {
	return &Hub{
		host:       host,
		rec:        rec,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run services registrations and forwards every evaluated frame to renderers
// until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	results, cancel := h.host.Subscribe(8)
	defer cancel()
	defer close(h.done)

	log.Println("[WS] hub started")
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Println("[WS] hub stopping")
			return

		case client := <-h.register:
			h.add(client)

		case client := <-h.unregister:
			h.remove(client)

		case res, ok := <-results:
			if !ok {
				return
			}
			h.Broadcast(MsgDraw, res)
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.rec.RecordSocketClients(string(c.role), 1)
	log.Printf("[WS] %s connected (codec=%s)", c.id, c.codec)

	if c.role == RoleRender {
		c.sendMessage(MsgHello, h.host.View())
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)

	h.rec.RecordSocketClients(string(c.role), -1)
	log.Printf("[WS] %s disconnected", c.id)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		h.rec.RecordSocketClients(string(c.role), -1)
	}
}

// enqueue hands c to Run. It fails once the hub has stopped.
func (h *Hub) enqueue(ch chan *Client, c *Client) bool {
	select {
	case ch <- c:
		return true
	case <-h.done:
		return false
	}
}

// Broadcast sends a message to every renderer, encoding it once per codec.
// Renderers with a full buffer miss the message.
func (h *Hub) Broadcast(t string, payload any) {
	encoded := make(map[Codec][]byte, 2)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.role != RoleRender {
			continue
		}
		data, ok := encoded[c.codec]
		if !ok {
			var err error
			data, err = c.codec.Encode(t, payload)
			if err != nil {
				log.Printf("[WS] failed to encode %s for %s: %v", t, c.codec, err)
				continue
			}
			encoded[c.codec] = data
		}
		select {
		case c.send <- data:
		default:
			log.Printf("[WS] send buffer full for %s, dropping %s", c.id, t)
		}
	}
}

// Count returns the number of connected clients with role.
func (h *Hub) Count(role Role) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for c := range h.clients {
		if c.role == role {
			n++
		}
	}
	return n
}

package ws

import (
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shotclock/backend/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 20
)

// StatusPayload is sent by a sensor bridge when availability changes.
type StatusPayload struct {
	Available bool `json:"available"`
}

// StatusUpdate is sent to renderers after a status change.
type StatusUpdate struct {
	Status string `json:"status"`
}

// ErrorPayload reports a rejected message to its sender.
type ErrorPayload struct {
	Message string `json:"message"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(c.codec.messageType(), message); err != nil {
				log.Printf("[WS] write error for %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for %s: %v", c.id, err)
				return
			}
		}
	}
}

// readPump reads messages until the connection fails, then unregisters.
func (c *Client) readPump() {
	defer func() {
		c.hub.enqueue(c.hub.unregister, c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] unexpected close for %s: %v", c.id, err)
			}
			return
		}
		if c.role != RoleSensor {
			continue
		}

		msg, err := codecFor(messageType).Decode(data)
		if err != nil {
			c.sendError(err.Error())
			continue
		}
		c.handleMessage(msg)
	}
}

// handleMessage processes a message from a sensor bridge.
func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case MsgFrame:
		var f game.Frame
		if err := msg.Decode(&f); err != nil {
			c.sendError(fmt.Sprintf("invalid frame: %v", err))
			return
		}
		if err := c.hub.host.Submit(&f); err != nil {
			c.sendError(err.Error())
		}

	case MsgStatus:
		var st StatusPayload
		if err := msg.Decode(&st); err != nil {
			c.sendError(fmt.Sprintf("invalid status: %v", err))
			return
		}
		status := c.hub.host.SetSensorAvailable(st.Available)
		c.hub.Broadcast(MsgStatus, StatusUpdate{Status: status})

	default:
		c.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (c *Client) sendMessage(t string, payload any) {
	data, err := c.codec.Encode(t, payload)
	if err != nil {
		log.Printf("[WS] failed to encode %s for %s: %v", t, c.id, err)
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] send buffer full for %s, dropping %s", c.id, t)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.sendMessage(MsgError, ErrorPayload{Message: message})
}

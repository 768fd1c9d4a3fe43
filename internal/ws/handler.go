package ws

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Origins are checked by middleware.WebSocketCORSCheck before the upgrade.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeSensor upgrades a sensor bridge connection. Frames it sends are
// handed to the session host.
func (h *Hub) ServeSensor() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.serve(c, RoleSensor)
	}
}

// ServeRender upgrades a renderer connection. ?codec=msgpack selects binary
// frames.
func (h *Hub) ServeRender() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.serve(c, RoleRender)
	}
}

func (h *Hub) serve(c *gin.Context, role Role) {
	codec, err := ParseCodec(c.Query("codec"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		id:    fmt.Sprintf("%s-%d", role, h.seq.Add(1)),
		role:  role,
		codec: codec,
		send:  make(chan []byte, 256),
	}

	if !h.enqueue(h.register, client) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"hostpulse/internal/models"
	"hostpulse/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamController upgrades clients onto the snapshot broadcast.
type StreamController struct {
	hub  *services.StreamHub
	auth *services.AuthService
}

// NewStreamController builds a controller for the given hub. auth may be
// nil, in which case the stream is open.
func NewStreamController(hub *services.StreamHub, auth *services.AuthService) *StreamController {
	return &StreamController{hub: hub, auth: auth}
}

// HandleWebSocket upgrades the connection and subscribes it to snapshots.
// In protected mode the token travels as a query parameter because
// browser websocket clients cannot set headers.
func (sc *StreamController) HandleWebSocket(c *gin.Context) {
	if sc.auth != nil {
		token := c.Query("token")
		if token == "" {
			respondError(c, http.StatusUnauthorized, "missing token")
			return
		}
		if _, err := sc.auth.ValidateToken(token); err != nil {
			respondError(c, http.StatusUnauthorized, "invalid token")
			return
		}
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[STREAM] upgrade error: %v", err)
		return
	}

	client := &services.StreamClient{
		ID:   fmt.Sprintf("%s-%d", c.ClientIP(), time.Now().UnixNano()),
		Conn: ws,
		Send: make(chan *models.Snapshot, 8),
		Done: make(chan struct{}),
	}
	sc.hub.Register(client)

	go sc.readPump(client)
	go sc.writePump(client)
}

// readPump drains the client until it disconnects. Inbound frames carry
// no meaning on this stream.
func (sc *StreamController) readPump(client *services.StreamClient) {
	defer func() {
		sc.hub.Unregister(client.ID)
		close(client.Done)
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[STREAM] read error: %v", err)
			}
			return
		}
	}
}

// writePump pushes snapshots to the client until the hub closes the
// channel or the client goes away.
func (sc *StreamController) writePump(client *services.StreamClient) {
	defer client.Conn.Close()

	for {
		select {
		case snap, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteJSON(snap); err != nil {
				return
			}
		case <-client.Done:
			return
		}
	}
}

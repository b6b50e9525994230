package services

import (
	"context"
	"log"
	"sync"
	"time"

	"hostpulse/internal/models"

	"github.com/gorilla/websocket"
)

// StreamClient is one connected websocket subscriber.
type StreamClient struct {
	ID   string
	Conn *websocket.Conn
	Send chan *models.Snapshot
	Done chan struct{}
}

// StreamHub broadcasts metric snapshots to websocket subscribers on a
// fixed interval. All client state is owned by the hub's event loop; a
// slow client misses a tick instead of blocking the broadcast.
type StreamHub struct {
	metrics  *MetricsService
	interval time.Duration

	mu         sync.RWMutex
	clients    map[string]*StreamClient
	register   chan *StreamClient
	unregister chan string
	done       chan struct{}
	once       sync.Once
}

// NewStreamHub builds a hub collecting through the given aggregator.
// A zero interval defaults to 2 seconds.
func NewStreamHub(metrics *MetricsService, interval time.Duration) *StreamHub {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &StreamHub{
		metrics:    metrics,
		interval:   interval,
		clients:    make(map[string]*StreamClient),
		register:   make(chan *StreamClient),
		unregister: make(chan string),
		done:       make(chan struct{}),
	}
}

// Start launches the hub's event loop.
func (h *StreamHub) Start() {
	go h.run()
}

// Stop ends the event loop and disconnects every client.
func (h *StreamHub) Stop() {
	h.once.Do(func() { close(h.done) })
}

// Register adds a subscriber to the hub.
func (h *StreamHub) Register(client *StreamClient) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a subscriber from the hub.
func (h *StreamHub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.done:
	}
}

func (h *StreamHub) run() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[STREAM] client connected: %s (total: %d)", client.ID, total)

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, exists := h.clients[clientID]; exists {
				delete(h.clients, clientID)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[STREAM] client disconnected: %s (total: %d)", clientID, total)

		case <-ticker.C:
			h.mu.RLock()
			idle := len(h.clients) == 0
			h.mu.RUnlock()
			if idle {
				continue
			}

			snap := h.metrics.CollectAll(context.Background())

			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- snap:
				default:
					// Send buffer full; this client skips the tick.
				}
			}
			h.mu.RUnlock()
		}
	}
}

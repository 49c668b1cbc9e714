package httpserver

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Ajayyy18/livekit-voice-agent/internal/agent"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Allow any origin for dashboard use; restrict in production
		return true
	},
}

// Hub fans agent events out to connected WebSocket clients. Publish never
// blocks the frame path; events to slow clients are dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	send chan agent.Event
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Publish delivers an event to every connected client without blocking.
func (h *Hub) Publish(ev agent.Event) {
	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// handle upgrades the request and streams events as JSON until the client
// disconnects.
func (h *Hub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	c := &client{send: make(chan agent.Event, 64)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	// inbound messages are discarded; the reader only detects disconnect
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev := <-c.send:
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}

package devserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/arthur-debert/packwise/pkg/logging"
	"github.com/gorilla/websocket"
)

const (
	reloadMessage = "reload"
	writeWait     = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// Hub tracks connected reload clients
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLogger("devserver")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug().Err(err).Msg("Reload client upgrade failed")
		return
	}

	h.add(conn)
	logger.Debug().Str("remote", r.RemoteAddr).Msg("Reload client connected")

	defer func() {
		h.remove(conn)
		logger.Debug().Str("remote", r.RemoteAddr).Msg("Reload client disconnected")
	}()

	// Clients never send anything; reading detects disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends a reload message to every client and returns how many
// received it. Clients that cannot be written to are dropped.
func (h *Hub) Broadcast() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reloadMessage)); err != nil {
			delete(h.clients, conn)
			_ = conn.Close()
			continue
		}
		sent++
	}
	return sent
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// RealtimeHub pushes fresh day summaries to connected dashboard sockets
// so the budget display updates the moment a meal is committed. Single
// user, so there is one flat client set.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *RealtimeHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// BroadcastSummary sends the summary to every connected client. Write
// errors are left to the read loop, which unregisters the connection.
func (h *RealtimeHub) BroadcastSummary(summary *DaySummary) {
	msg, _ := json.Marshal(map[string]any{
		"kind":    "summary.updated",
		"summary": summary,
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		_ = conn.WriteMessage(websocket.TextMessage, msg)
	}
}

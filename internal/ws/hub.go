package ws

import (
	"log"
	"sync"
	"time"

	"mediavault/dam_backend/internal/model"

	"github.com/gorilla/websocket"
	"go.uber.org/atomic"
)

const writeWait = 10 * time.Second

const (
	EventTypeVersionProposed = "version_proposed"
	EventTypeVersionApproved = "version_approved"
	EventTypeVersionRejected = "version_rejected"
)

type Event struct {
	Type      string    `json:"type"`
	AssetID   uint      `json:"asset_id"`
	VersionID uint      `json:"version_id"`
	Version   uint      `json:"version"`
	Status    string    `json:"status"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReviewHub fans review workflow events out to connected admin clients.
type ReviewHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool

	eventsSent atomic.Int64
}

type HubStats struct {
	Clients    int   `json:"clients"`
	EventsSent int64 `json:"events_sent"`
}

func NewReviewHub() *ReviewHub {
	return &ReviewHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// Register adds a connection and drains incoming frames until the peer
// disconnects. Clients only listen on this feed.
func (h *ReviewHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *ReviewHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// broadcast holds the write lock for the whole fan-out: gorilla
// connections do not support concurrent writers.
func (h *ReviewHub) broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("failed to write review event: %v", err)
			continue
		}
		h.eventsSent.Inc()
	}
}

func (h *ReviewHub) Stats() HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return HubStats{
		Clients:    len(h.clients),
		EventsSent: h.eventsSent.Load(),
	}
}

func (h *ReviewHub) VersionProposed(v *model.AssetVersion) {
	h.broadcast(Event{
		Type:      EventTypeVersionProposed,
		AssetID:   v.AssetID,
		VersionID: v.ID,
		Version:   v.Version,
		Status:    string(v.Status),
		Timestamp: time.Now(),
	})
}

func (h *ReviewHub) VersionDecided(v *model.AssetVersion) {
	eventType := EventTypeVersionApproved
	if v.Status == model.VersionRejected {
		eventType = EventTypeVersionRejected
	}
	h.broadcast(Event{
		Type:      eventType,
		AssetID:   v.AssetID,
		VersionID: v.ID,
		Version:   v.Version,
		Status:    string(v.Status),
		Comment:   v.ReviewComment,
		Timestamp: time.Now(),
	})
}

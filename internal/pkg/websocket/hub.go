// Package websocket pushes live session events to connected staff and instructors.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	MessageAttendanceUpdated = "attendance.updated"
	MessageSessionUpdated    = "session.updated"
)

// Message is the JSON frame every watcher of a session receives
type Message struct {
	Type      string      `json:"type"`
	SessionID int64       `json:"sessionId"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans session events out to the watchers of that session. Membership
// changes and broadcasts are serialised through Run.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int64]map[*watcher]struct{}

	broadcast  chan *Message
	register   chan *watcher
	unregister chan *watcher
	stopped    chan struct{}

	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		sessions:   make(map[int64]map[*watcher]struct{}),
		broadcast:  make(chan *Message, 64),
		register:   make(chan *watcher),
		unregister: make(chan *watcher),
		stopped:    make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is cancelled, then disconnects everyone
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, watchers := range h.sessions {
				for w := range watchers {
					h.dropLocked(w)
				}
			}
			h.mu.Unlock()
			return
		case w := <-h.register:
			h.mu.Lock()
			if h.sessions[w.sessionID] == nil {
				h.sessions[w.sessionID] = make(map[*watcher]struct{})
			}
			h.sessions[w.sessionID][w] = struct{}{}
			h.mu.Unlock()
			w.logger.Debug().Msg("Live feed watcher joined")
		case w := <-h.unregister:
			h.mu.Lock()
			h.dropLocked(w)
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

// Once Run has returned, join closes the watcher and leave does nothing
func (h *Hub) join(w *watcher) {
	select {
	case h.register <- w:
	case <-h.stopped:
		close(w.send)
	}
}

func (h *Hub) leave(w *watcher) {
	select {
	case h.unregister <- w:
	case <-h.stopped:
	}
}

func (h *Hub) dropLocked(w *watcher) {
	watchers := h.sessions[w.sessionID]
	if _, ok := watchers[w]; !ok {
		return
	}
	delete(watchers, w)
	close(w.send)
	if len(watchers) == 0 {
		delete(h.sessions, w.sessionID)
	}
	w.logger.Debug().Msg("Live feed watcher left")
}

// fanOut drops watchers that cannot keep up instead of blocking the hub
func (h *Hub) fanOut(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Int64("sessionID", msg.SessionID).Str("type", msg.Type).Msg("Failed to encode live feed message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for w := range h.sessions[msg.SessionID] {
		select {
		case w.send <- data:
		default:
			w.logger.Warn().Msg("Live feed watcher too slow, disconnecting")
			h.dropLocked(w)
		}
	}
}

// BroadcastToSession queues an event for everyone watching sessionID.
// It never blocks; a full queue drops the event.
func (h *Hub) BroadcastToSession(sessionID int64, messageType string, payload interface{}) {
	msg := &Message{
		Type:      messageType,
		SessionID: sessionID,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn().Int64("sessionID", sessionID).Str("type", messageType).Msg("Live feed queue full, dropping message")
	}
}

// WatcherCount is the number of open connections for a session
func (h *Hub) WatcherCount(sessionID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// watchers only send control frames
	maxMessageSize = 512
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the live feed is token-authenticated, origin is not a trust signal
	CheckOrigin: func(*http.Request) bool { return true },
}

// watcher is one open live-feed connection for a single session
type watcher struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	userID    int64
	sessionID int64
	logger    zerolog.Logger
}

func newWatcher(hub *Hub, conn *websocket.Conn, sessionID, userID int64, logger zerolog.Logger) *watcher {
	return &watcher{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		userID:    userID,
		sessionID: sessionID,
		logger:    logger.With().Int64("sessionID", sessionID).Int64("userID", userID).Logger(),
	}
}

// listen drains inbound frames so pongs are processed, and leaves the hub
// when the peer goes away.
func (w *watcher) listen() {
	defer func() {
		w.hub.leave(w)
		_ = w.conn.Close()
	}()

	w.conn.SetReadLimit(maxMessageSize)
	_ = w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		return w.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				w.logger.Warn().Err(err).Msg("Live feed closed unexpectedly")
			}
			return
		}
	}
}

// deliver writes each queued event as its own text frame and keeps the
// connection alive with pings.
func (w *watcher) deliver() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = w.conn.Close()
	}()

	for {
		select {
		case msg, open := <-w.send:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !open {
				_ = w.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := w.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				w.logger.Debug().Err(err).Msg("Live feed write failed")
				return
			}
		case <-ticker.C:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

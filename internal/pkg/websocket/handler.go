package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler upgrades authorised requests into live feed watchers
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// ServeSession upgrades the connection and subscribes it to sessionID.
// Callers must have authorised userID for the session already.
func (h *Handler) ServeSession(c *gin.Context, sessionID, userID int64) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.Warn().Err(err).Int64("sessionID", sessionID).Int64("userID", userID).Msg("Live feed upgrade failed")
		return
	}

	w := newWatcher(h.hub, conn, sessionID, userID, h.logger)
	h.hub.join(w)

	go w.deliver()
	go w.listen()

	w.logger.Info().Str("remoteAddr", conn.RemoteAddr().String()).Msg("Live feed connected")
}

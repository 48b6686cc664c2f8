package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToSessionWatchers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)
	handler := NewHandler(hub, zerolog.Nop())

	r := gin.New()
	r.GET("/sessions/:id/live", func(c *gin.Context) {
		id := int64(101)
		if c.Param("id") != "101" {
			id = 202
		}
		handler.ServeSession(c, id, 9)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	watcher, _, err := websocket.DefaultDialer.Dial(wsURL+"/sessions/101/live", nil)
	require.NoError(t, err)
	defer watcher.Close()
	other, _, err := websocket.DefaultDialer.Dial(wsURL+"/sessions/202/live", nil)
	require.NoError(t, err)
	defer other.Close()

	require.Eventually(t, func() bool { return hub.WatcherCount(101) == 1 && hub.WatcherCount(202) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToSession(101, MessageAttendanceUpdated, map[string]string{"status": "PRESENT"})

	require.NoError(t, watcher.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := watcher.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MessageAttendanceUpdated, msg.Type)
	assert.Equal(t, int64(101), msg.SessionID)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregisterOnClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	c := &watcher{hub: hub, send: make(chan []byte, 1), userID: 1, sessionID: 5, logger: zerolog.Nop()}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.WatcherCount(5) == 1 }, time.Second, 5*time.Millisecond)

	hub.unregister <- c
	require.Eventually(t, func() bool { return hub.WatcherCount(5) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.send
	assert.False(t, open)
}

func TestHub_JoinAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	c := &watcher{hub: hub, send: make(chan []byte, 1), userID: 1, sessionID: 9, logger: zerolog.Nop()}
	hub.join(c)
	hub.leave(c)

	_, open := <-c.send
	assert.False(t, open)
	assert.Zero(t, hub.WatcherCount(9))
}

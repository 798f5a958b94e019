package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is public and CORS-open; the socket is read-only for clients.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleNowPlayingWS streams track changes to the music widget. The client
// receives the current track on connect, then one message per change. Slow
// clients miss updates rather than blocking the poller.
func (s *Server) HandleNowPlayingWS(w http.ResponseWriter, r *http.Request) {
	if s.playing == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Now-playing not configured", "Set nowplaying.url in the configuration")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debugf("websocket upgrade failed: %v", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	hub := s.playing.Hub()
	id, updates := hub.Register()
	defer hub.Unregister(id)

	// Reader loop exists only to notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if track := s.playing.Current(); track != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(track); err != nil {
			return
		}
	}

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case track, ok := <-updates:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(track); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Package nowplaying feeds the music widget: a poller for the configured
// now-playing endpoint and an in-process fan-out hub pushing track changes to
// WebSocket listeners.
//
// The hub is best-effort: a listener whose buffer is full misses that update,
// so one slow consumer never backpressures the poller. There is no
// persistence or replay; late subscribers get the current track from the
// service and changes from then on.
package nowplaying

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Track is the currently playing (or last played) song.
type Track struct {
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Album     string    `json:"album,omitempty"`
	AlbumArt  string    `json:"albumArt,omitempty"`
	URL       string    `json:"url,omitempty"`
	Playing   bool      `json:"playing"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Same reports whether two tracks describe the same playback state, ignoring
// fetch time.
func (t Track) Same(other Track) bool {
	return t.Title == other.Title &&
		t.Artist == other.Artist &&
		t.Album == other.Album &&
		t.Playing == other.Playing
}

// Hub is a concurrency-safe fan-out dispatcher. Each listener receives
// updates via its own buffered channel; full buffers drop.
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]chan Track
	bufSize   int
}

// NewHub constructs a hub with per-listener buffer size. If bufSize <= 0, a
// default of 8 is used.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 8
	}
	return &Hub{
		listeners: make(map[string]chan Track),
		bufSize:   bufSize,
	}
}

// Register adds a listener and returns its id and receive channel. Callers
// must Unregister the id to release resources.
func (h *Hub) Register() (string, <-chan Track) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := uuid.NewString()
	ch := make(chan Track, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes the listener and closes its channel. Unknown ids are
// ignored.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Broadcast delivers a track to all listeners, best effort.
func (h *Hub) Broadcast(t Track) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- t:
		default:
		}
	}
}

// Listeners returns the current listener count.
func (h *Hub) Listeners() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

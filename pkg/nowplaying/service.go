package nowplaying

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ashutoshsundresh/folio/pkg/log"
)

// Service polls the configured now-playing endpoint and republishes track
// changes through the hub.
type Service struct {
	url      string
	interval time.Duration
	client   *http.Client
	hub      *Hub
	logger   *log.Logger

	mu      sync.RWMutex
	current *Track
}

func NewService(url string, interval time.Duration, hub *Hub) *Service {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Service{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		hub:      hub,
		logger:   log.ForService("nowplaying"),
	}
}

// Hub returns the service's fan-out hub.
func (s *Service) Hub() *Hub {
	return s.hub
}

// Current returns the last fetched track, or nil before the first successful
// poll.
func (s *Service) Current() *Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	track := *s.current
	return &track
}

// Run polls until the context is cancelled. Poll failures keep the previous
// track; only state changes are broadcast.
func (s *Service) Run(ctx context.Context) {
	s.poll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *Service) poll(ctx context.Context) {
	track, err := s.fetch(ctx)
	if err != nil {
		s.logger.Debugf("poll failed: %v", err)
		return
	}

	s.mu.Lock()
	changed := s.current == nil || !s.current.Same(*track)
	s.current = track
	s.mu.Unlock()

	if changed {
		s.logger.Infof("now playing: %s — %s", track.Artist, track.Title)
		s.hub.Broadcast(*track)
	}
}

func (s *Service) fetch(ctx context.Context) (*Track, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching now-playing: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching now-playing: status %d", resp.StatusCode)
	}

	var track Track
	if err := json.NewDecoder(resp.Body).Decode(&track); err != nil {
		return nil, fmt.Errorf("decoding now-playing response: %w", err)
	}
	track.FetchedAt = time.Now().UTC()
	return &track, nil
}

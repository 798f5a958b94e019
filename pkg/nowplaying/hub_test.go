package nowplaying

import (
	"testing"
	"time"
)

func TestTrackSame(t *testing.T) {
	a := Track{Title: "Song", Artist: "Band", Album: "LP", Playing: true, FetchedAt: time.Now()}
	b := a
	b.FetchedAt = b.FetchedAt.Add(time.Hour)

	if !a.Same(b) {
		t.Error("tracks differing only in fetch time should compare equal")
	}

	b.Playing = false
	if a.Same(b) {
		t.Error("tracks differing in playback state should not compare equal")
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(4)

	id1, ch1 := hub.Register()
	id2, ch2 := hub.Register()
	defer hub.Unregister(id1)
	defer hub.Unregister(id2)

	if hub.Listeners() != 2 {
		t.Fatalf("listeners = %d, want 2", hub.Listeners())
	}

	track := Track{Title: "Song", Artist: "Band"}
	hub.Broadcast(track)

	for i, ch := range []<-chan Track{ch1, ch2} {
		select {
		case got := <-ch:
			if got.Title != "Song" {
				t.Errorf("listener %d got %+v", i, got)
			}
		default:
			t.Errorf("listener %d received nothing", i)
		}
	}
}

func TestHubDropsWhenFull(t *testing.T) {
	hub := NewHub(1)
	id, ch := hub.Register()
	defer hub.Unregister(id)

	hub.Broadcast(Track{Title: "first"})
	hub.Broadcast(Track{Title: "second"}) // buffer full, dropped

	got := <-ch
	if got.Title != "first" {
		t.Errorf("got %q, want the first broadcast", got.Title)
	}
	select {
	case extra := <-ch:
		t.Errorf("unexpected extra delivery %q", extra.Title)
	default:
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub(0)
	id, ch := hub.Register()

	hub.Unregister(id)
	if hub.Listeners() != 0 {
		t.Errorf("listeners = %d after unregister, want 0", hub.Listeners())
	}

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unregister")
	}

	// Unknown ids are a no-op.
	hub.Unregister("missing")
	hub.Unregister(id)
}

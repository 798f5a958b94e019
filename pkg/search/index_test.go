package search

import (
	"context"
	"fmt"
	"testing"
)

type fakeSource struct {
	name    string
	records []Record
	err     error
	calls   int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Records(ctx context.Context) ([]Record, error) {
	f.calls++
	return f.records, f.err
}

func TestIndexBuildsOnce(t *testing.T) {
	src := &fakeSource{
		name:    "fake",
		records: []Record{rec("a", "Alpha", "alpha", nil)},
	}
	index := NewIndex(src)

	if index.Built() {
		t.Fatal("index reports built before first Get")
	}

	first := index.Get(context.Background())
	second := index.Get(context.Background())

	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Errorf("got %d and %d records, want 1 each", len(first), len(second))
	}
	if !index.Built() {
		t.Error("index does not report built after Get")
	}
}

func TestIndexSkipsFailingSource(t *testing.T) {
	good := &fakeSource{
		name:    "good",
		records: []Record{rec("a", "Alpha", "alpha", nil)},
	}
	bad := &fakeSource{
		name: "bad",
		err:  fmt.Errorf("unreachable"),
	}
	index := NewIndex(bad, good)

	records := index.Get(context.Background())
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 from the surviving source", len(records))
	}
	if records[0].ID != "a" {
		t.Errorf("unexpected record %q", records[0].ID)
	}
}

func TestIndexInvalidateRebuilds(t *testing.T) {
	src := &fakeSource{
		name:    "fake",
		records: []Record{rec("a", "Alpha", "alpha", nil)},
	}
	index := NewIndex(src)

	index.Get(context.Background())
	index.Invalidate()

	if index.Built() {
		t.Error("index reports built after Invalidate")
	}

	index.Get(context.Background())
	if src.calls != 2 {
		t.Errorf("source called %d times, want 2 after invalidation", src.calls)
	}
}

func TestIndexConcatenatesSources(t *testing.T) {
	a := &fakeSource{name: "a", records: []Record{rec("a1", "A", "a", nil)}}
	b := &fakeSource{name: "b", records: []Record{rec("b1", "B", "b", nil), rec("b2", "B2", "b2", nil)}}
	index := NewIndex(a, b)

	records := index.Get(context.Background())
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].ID != "a1" || records[1].ID != "b1" {
		t.Errorf("records out of source order: %q, %q", records[0].ID, records[1].ID)
	}
}

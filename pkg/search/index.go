package search

import (
	"context"
	"sync"

	"github.com/ashutoshsundresh/folio/pkg/log"
)

// Source yields searchable records from one backing store. Implementations
// live next to the store they read: pkg/content for the structured document,
// pkg/crawler for rendered pages.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Records produces the source's records. An error means the source
	// contributes nothing to this build; it is never fatal to the build.
	Records(ctx context.Context) ([]Record, error)
}

// Index is an explicitly owned, build-once record cache. The first Get runs
// every source and caches the concatenated records; later Gets reuse them for
// the lifetime of the Index. There is no expiry: staleness is accepted, and a
// holder that wants fresh records calls Invalidate and rebuilds on the next
// Get.
type Index struct {
	mu      sync.Mutex
	sources []Source
	records []Record
	built   bool
	logger  *log.Logger
}

func NewIndex(sources ...Source) *Index {
	return &Index{
		sources: sources,
		logger:  log.ForService("search"),
	}
}

// Get returns the cached records, building them first if no build has
// happened yet. Source failures are isolated: a failing source contributes
// zero records and the build still succeeds.
func (ix *Index) Get(ctx context.Context) []Record {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.built {
		return ix.records
	}

	var records []Record
	for _, src := range ix.sources {
		recs, err := src.Records(ctx)
		if err != nil {
			ix.logger.Debugf("source %s contributed no records: %v", src.Name(), err)
			continue
		}
		records = append(records, recs...)
	}

	ix.records = records
	ix.built = true
	ix.logger.Infof("index built: %d records from %d sources", len(records), len(ix.sources))
	return ix.records
}

// Built reports whether a build has completed.
func (ix *Index) Built() bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.built
}

// Invalidate drops the cached records so the next Get rebuilds.
func (ix *Index) Invalidate() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.records = nil
	ix.built = false
}

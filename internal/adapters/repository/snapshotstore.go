package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/boardlens/internal/domain/catalog"
	"github.com/okian/boardlens/internal/domain/model"
	"github.com/okian/boardlens/pkg/metrics"
)

// SnapshotStore keeps the dataset behind an atomic pointer. Readers never
// block; writers build the next snapshot and swap it in.
type SnapshotStore struct {
	mu         sync.Mutex // serializes writers
	maxRecords int

	snapshot atomic.Pointer[Snapshot]
}

// NewSnapshotStore returns an empty store.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot.Store(&Snapshot{Games: []model.Game{}, Facets: catalog.Compute(nil)})
	return s
}

// Replace stores a copy of games as the new dataset.
func (s *SnapshotStore) Replace(ctx context.Context, games []model.Game) (uint64, error) {
	start := time.Now()
	if s.maxRecords > 0 && len(games) > s.maxRecords {
		metrics.RecordErrorByComponent("repository", "too_many_records")
		return 0, fmt.Errorf("%w: %d > %d", ErrTooManyRecords, len(games), s.maxRecords)
	}

	owned := slices.Clone(games)
	if owned == nil {
		owned = []model.Game{}
	}
	facets := catalog.Compute(owned)

	s.mu.Lock()
	next := &Snapshot{
		Version:  s.snapshot.Load().Version + 1,
		Games:    owned,
		Facets:   facets,
		LoadedAt: time.Now().UTC(),
	}
	s.snapshot.Store(next)
	s.mu.Unlock()

	metrics.UpdateDataset(len(owned), next.Version)
	metrics.RecordSnapshotSwap(float64(time.Since(start).Microseconds()) / 1000)
	return next.Version, nil
}

// Snapshot returns the current dataset.
func (s *SnapshotStore) Snapshot(ctx context.Context) *Snapshot {
	return s.snapshot.Load()
}

// All returns the current records.
func (s *SnapshotStore) All(ctx context.Context) []model.Game {
	return s.snapshot.Load().Games
}

// Count returns the number of records.
func (s *SnapshotStore) Count(ctx context.Context) int {
	return len(s.snapshot.Load().Games)
}

// Version returns the version of the current dataset.
func (s *SnapshotStore) Version(ctx context.Context) uint64 {
	return s.snapshot.Load().Version
}

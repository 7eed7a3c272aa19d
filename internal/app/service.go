// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/boardlens/internal/adapters/dataset"
	filterqueue "github.com/okian/boardlens/internal/adapters/mq/queue"
	"github.com/okian/boardlens/internal/adapters/mq/worker"
	"github.com/okian/boardlens/internal/adapters/repository"
	"github.com/okian/boardlens/internal/domain/aggregate"
	"github.com/okian/boardlens/internal/domain/catalog"
	"github.com/okian/boardlens/internal/domain/filter"
	"github.com/okian/boardlens/internal/domain/model"
	"github.com/okian/boardlens/internal/domain/palette"
	"github.com/okian/boardlens/internal/domain/projection"
	"github.com/okian/boardlens/internal/domain/view"
	"github.com/okian/boardlens/pkg/logger"
	"github.com/okian/boardlens/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

// Service owns the dataset, both color assigners and the filter pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	filterQueue filterqueue.Queue
	worker      *worker.InMemoryWorker
	watcher     *dataset.Watcher
	pie         *palette.Assigner
	scatter     *palette.Assigner

	// Configuration
	queueSize         int
	topCategories     int
	maxRecords        int
	defaultCategories []string
	datasetPath       string
	watchDataset      bool

	// State
	started bool
	cancel  context.CancelFunc

	// recomputeMu serializes recomputations so sequence numbers follow the
	// order in which filters were applied.
	recomputeMu sync.Mutex
	sequence    uint64
	current     atomic.Pointer[filter.State]
	userFilter  bool
	latest      atomic.Pointer[view.View]

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:         64,
		topCategories:     aggregate.DefaultLimit,
		defaultCategories: []string{},
		pie:               palette.NewPie(),
		scatter:           palette.NewScatter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewSnapshotStore(repository.WithMaxRecords(s.maxRecords))
	}
	initial := filter.Default(nil, s.defaultCategories)
	s.current.Store(&initial)
	return s
}

// Start initializes and starts the service components. When a dataset path
// is configured it is loaded before Start returns.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting boardlens service...")

	if s.datasetPath != "" {
		if _, err := s.LoadDataset(ctx, s.datasetPath); err != nil {
			return err
		}
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.filterQueue = filterqueue.NewInMemoryQueue(filterqueue.WithCapacity(s.queueSize))
	s.worker = worker.NewInMemoryWorker(s.filterQueue, s, s, worker.WithName("filters"), worker.WithLogger(s.logger.Named("worker")))
	go s.worker.Run(runCtx)

	if s.datasetPath != "" && s.watchDataset {
		w, err := dataset.NewWatcher(s.datasetPath, s.onReload, dataset.WithLogger(s.logger.Named("dataset")))
		if err != nil {
			cancel()
			return err
		}
		if err := w.Start(runCtx); err != nil {
			cancel()
			return err
		}
		s.watcher = w
	}

	s.started = true
	s.logger.Info(ctx, "boardlens service started",
		logger.Int("records", s.store.Count(ctx)),
		logger.Int("queueSize", s.queueSize),
		logger.Int("topCategories", s.topCategories),
		logger.Bool("watchDataset", s.watcher != nil),
	)
	return nil
}

// Stop gracefully shuts down the service. Queued filter changes are
// applied before it returns.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping boardlens service...")

	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	err := s.worker.Shutdown(shutdownCtx)
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "boardlens service stopped")
	return err
}

// LoadDataset reads path and replaces the dataset with it.
func (s *Service) LoadDataset(ctx context.Context, path string) (uint64, error) {
	games, err := dataset.Load(ctx, path)
	if err != nil {
		metrics.RecordDatasetReload("error")
		metrics.RecordErrorByComponent("service", "dataset_load")
		return 0, fmt.Errorf("load dataset %s: %w", path, err)
	}
	metrics.RecordDatasetReload("ok")
	return s.Replace(ctx, games)
}

func (s *Service) onReload(ctx context.Context, games []model.Game) {
	if _, err := s.Replace(ctx, games); err != nil {
		s.log().Error(ctx, "dataset reload rejected", logger.Error(err))
	}
}

// Replace swaps in a new dataset and recomputes the view for the current
// filter. Until a filter change arrives, the filter follows the dataset
// and accepts every age it contains.
func (s *Service) Replace(ctx context.Context, games []model.Game) (uint64, error) {
	version, err := s.store.Replace(ctx, games)
	if err != nil {
		return 0, err
	}

	s.recomputeMu.Lock()
	state := *s.current.Load()
	if !s.userFilter {
		facets := s.store.Snapshot(ctx).Facets
		state = filter.Default(facets.Ages, s.defaultCategories)
	}
	v := s.recomputeLocked(ctx, state)
	s.recomputeMu.Unlock()

	s.Publish(ctx, v)
	s.log().Info(ctx, "dataset replaced",
		logger.Uint64("version", version),
		logger.Int("records", len(games)),
		logger.String("filter", state.Key()),
	)
	return version, nil
}

// Categories runs the category aggregation for f.
func (s *Service) Categories(ctx context.Context, f filter.State, limit int) aggregate.Result {
	return s.categories(s.store.All(ctx), f.Normalize(), limit)
}

func (s *Service) categories(games []model.Game, f filter.State, limit int) aggregate.Result {
	if limit <= 0 {
		limit = s.topCategories
	}
	start := time.Now()
	res := aggregate.Aggregate(games, f, aggregate.WithLimit(limit), aggregate.WithColors(s.pie))
	metrics.RecordRecompute(metrics.PipelineAggregate, elapsedMs(start))
	metrics.UpdatePipelineRecords(metrics.PipelineAggregate, res.Matched)
	metrics.UpdateColorsAssigned("pie", s.pie.Len())
	return res
}

// Projection runs the discriminant projection for f. It returns
// projection.ErrInsufficientData when fewer than two categories are
// selected or fewer than two games are eligible.
func (s *Service) Projection(ctx context.Context, f filter.State) (projection.Result, error) {
	return s.projection(s.store.All(ctx), f.Normalize())
}

func (s *Service) projection(games []model.Game, f filter.State) (projection.Result, error) {
	start := time.Now()
	res, err := projection.Project(games, f, projection.WithColors(s.scatter))
	metrics.RecordRecompute(metrics.PipelineProjection, elapsedMs(start))
	metrics.UpdatePipelineRecords(metrics.PipelineProjection, res.Eligible)
	metrics.RecordRecordsExcluded("non_numeric", len(res.Excluded))
	metrics.UpdateColorsAssigned("scatter", s.scatter.Len())
	switch {
	case errors.Is(err, projection.ErrInsufficientData):
		metrics.RecordInsufficientData()
	case err != nil:
		metrics.RecordErrorByComponent("projection", "decomposition")
	}
	return res, err
}

// SubmitFilter queues f to be applied by the worker.
func (s *Service) SubmitFilter(ctx context.Context, f filter.State) (filter.Change, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return filter.Change{}, ErrNotStarted
	}
	c := filter.NewChange(f)
	if !s.filterQueue.Enqueue(ctx, c) {
		if err := ctx.Err(); err != nil {
			return filter.Change{}, err
		}
		if s.filterQueue.IsClosed() {
			return filter.Change{}, filterqueue.ErrStopped
		}
		return filter.Change{}, ErrBackpressure
	}
	s.log().Debug(ctx, "filter change queued",
		logger.String("change_id", c.ID),
		logger.String("filter", c.State.Key()),
	)
	return c, nil
}

// Filter returns the filter most recently applied.
func (s *Service) Filter(ctx context.Context) filter.State {
	return *s.current.Load()
}

// View returns the most recently published view.
func (s *Service) View(ctx context.Context) (view.View, error) {
	v := s.latest.Load()
	if v == nil {
		return view.View{}, ErrNoView
	}
	return *v, nil
}

// Facets describes the current dataset.
func (s *Service) Facets(ctx context.Context) catalog.Facets {
	return s.store.Snapshot(ctx).Facets
}

// Recompute derives both charts for f from the current dataset. It is
// called by the filter worker.
func (s *Service) Recompute(ctx context.Context, f filter.State) (view.View, error) {
	if err := ctx.Err(); err != nil {
		return view.View{}, err
	}
	s.recomputeMu.Lock()
	defer s.recomputeMu.Unlock()
	s.userFilter = true
	return s.recomputeLocked(ctx, f.Normalize()), nil
}

func (s *Service) recomputeLocked(ctx context.Context, f filter.State) view.View {
	s.current.Store(&f)
	snap := s.store.Snapshot(ctx)

	cats := s.categories(snap.Games, f, s.topCategories)
	proj, err := s.projection(snap.Games, f)

	s.sequence++
	v := view.New(f, cats, proj, err)
	v.Sequence = s.sequence
	v.DatasetVersion = snap.Version
	return v
}

// Publish makes v the latest view unless a newer one is already published.
func (s *Service) Publish(ctx context.Context, v view.View) {
	for {
		old := s.latest.Load()
		if old != nil && old.Sequence >= v.Sequence {
			return
		}
		if s.latest.CompareAndSwap(old, &v) {
			return
		}
	}
}

// Colors lists the color assignments of both charts.
func (s *Service) Colors() map[string][]palette.Assignment {
	return map[string][]palette.Assignment{
		"pie":     s.pie.Assignments(),
		"scatter": s.scatter.Assignments(),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	snap := s.store.Snapshot(ctx)
	stats := map[string]interface{}{
		"started":        s.started,
		"records":        len(snap.Games),
		"datasetVersion": snap.Version,
		"queueCapacity":  s.queueSize,
		"topCategories":  s.topCategories,
		"pieColors":      s.pie.Len(),
		"scatterColors":  s.scatter.Len(),
		"filter":         s.current.Load().Key(),
	}
	if !snap.LoadedAt.IsZero() {
		stats["loadedAt"] = snap.LoadedAt.Format(time.RFC3339)
	}
	if v := s.latest.Load(); v != nil {
		stats["viewSequence"] = v.Sequence
		stats["projectionState"] = v.ProjectionState
	}
	if s.started {
		queueLen := s.filterQueue.Len(ctx)
		stats["queueLength"] = queueLen
		metrics.UpdateQueueSize(queueLen)
	}
	return stats
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get().Named("service")
	}
	return s.logger
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

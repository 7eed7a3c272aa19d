// Package worker applies queued filter changes one at a time.
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/boardlens/internal/adapters/mq/queue"
	"github.com/okian/boardlens/internal/domain/filter"
	"github.com/okian/boardlens/internal/domain/view"
	"github.com/okian/boardlens/pkg/logger"
	"github.com/okian/boardlens/pkg/metrics"
)

// Change abstracts what the worker reads off the queue.
type Change = queue.Change

// Recomputer derives the charts for a filter state.
type Recomputer interface {
	Recompute(ctx context.Context, s filter.State) (view.View, error)
}

// Publisher makes a recomputed view visible to readers.
type Publisher interface {
	Publish(ctx context.Context, v view.View)
}

// Queue defines how the worker receives changes.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Change
}

// Worker applies filter changes.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// Changes already queued are applied before it returns.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker is the single consumer of the filter queue. Running one
// instance keeps views in submission order.
type InMemoryWorker struct {
	queue      Queue
	recomputer Recomputer
	publisher  Publisher
	name       string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, recomputer Recomputer, publisher Publisher, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:      q,
		recomputer: recomputer,
		publisher:  publisher,
		name:       "worker",
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	changes := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			if err := w.process(ctx, c); err != nil {
				w.logger.Error(ctx, "error applying filter change", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker. A closable queue is closed and
// drained; otherwise the loop stops after the change in progress.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	if closer, ok := w.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			w.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	} else {
		w.shutdownOnce.Do(func() { close(w.shutdown) })
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process applies a single change.
func (w *InMemoryWorker) process(ctx context.Context, c Change) error { //nolint:gocritic // hugeParam: Change is passed by value for channel semantics
	v, err := w.recomputer.Recompute(ctx, c.State)
	if err != nil {
		metrics.RecordErrorByComponent("worker", "recompute_error")
		return fmt.Errorf("recompute filter change %s: %w", c.ID, err)
	}
	v.ChangeID = c.ID
	w.publisher.Publish(ctx, v)
	metrics.RecordFilterChangeProcessed()

	w.logger.Debug(ctx, "filter change applied",
		logger.String("change_id", c.ID),
		logger.String("filter", c.State.Key()),
		logger.Uint64("sequence", v.Sequence),
	)
	return nil
}

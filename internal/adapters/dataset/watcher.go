package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/okian/boardlens/internal/domain/model"
	"github.com/okian/boardlens/pkg/logger"
	"github.com/okian/boardlens/pkg/metrics"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize.
var ErrWatcherFailed = errors.New("failed to initialize dataset watcher")

const defaultDebounce = 200 * time.Millisecond

// ReloadFunc receives every successfully reloaded dataset.
type ReloadFunc func(ctx context.Context, games []model.Game)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher logger.
func WithLogger(l logger.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher reloads a dataset file whenever it is written or replaced.
type Watcher struct {
	path     string
	onReload ReloadFunc
	debounce time.Duration
	log      logger.Logger

	watcher *fsnotify.Watcher
	stop    chan struct{}
	once    sync.Once
	started atomic.Bool
	done    chan struct{}
}

// NewWatcher creates a watcher for path. The parent directory is watched
// so that editors replacing the file are noticed too.
func NewWatcher(path string, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve dataset path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	w := &Watcher{
		path:     abs,
		onReload: onReload,
		debounce: defaultDebounce,
		watcher:  fw,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logger.Get().Named("dataset")
	}
	return w, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch dataset directory: %w", err)
	}
	w.started.Store(true)
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for it to exit.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stop)
		_ = w.watcher.Close()
	})
	if w.started.Load() {
		<-w.done
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn(ctx, "dataset watcher error", logger.Error(err))
			metrics.RecordErrorByComponent("dataset", "watch")
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	games, err := Load(ctx, w.path)
	if err != nil {
		// A writer may still be mid-flight; the next event retries.
		w.log.Warn(ctx, "dataset reload failed", logger.String("path", w.path), logger.Error(err))
		metrics.RecordDatasetReload("error")
		return
	}
	w.log.Info(ctx, "dataset reloaded", logger.String("path", w.path), logger.Int("records", len(games)))
	metrics.RecordDatasetReload("ok")
	if w.onReload != nil {
		w.onReload(ctx, games)
	}
}

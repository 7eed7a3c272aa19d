package service

import (
	"errors"
	"fmt"

	filterqueue "github.com/okian/boardlens/internal/adapters/mq/queue"
)

// Sentinel kinds for service errors. The filter errors wrap the queue
// sentinels so transports can map them without importing this package.
var (
	ErrNotStarted   = fmt.Errorf("service not started: %w", filterqueue.ErrStopped)
	ErrBackpressure = fmt.Errorf("filter changes backed up: %w", filterqueue.ErrFull)
	ErrNoView       = errors.New("no view computed yet")
)

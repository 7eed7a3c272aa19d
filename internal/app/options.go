package service

import (
	"github.com/okian/boardlens/internal/adapters/repository"
	"github.com/okian/boardlens/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the maximum number of pending filter changes.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithTopCategories sets how many categories the category chart shows.
func WithTopCategories(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topCategories = n
		}
	}
}

// WithDefaultCategories sets the projection selection used until a filter
// change is submitted.
func WithDefaultCategories(categories []string) Option {
	return func(s *Service) {
		s.defaultCategories = append([]string(nil), categories...)
	}
}

// WithDataset loads path on Start and, when watch is set, reloads it on change.
func WithDataset(path string, watch bool) Option {
	return func(s *Service) {
		s.datasetPath = path
		s.watchDataset = watch
	}
}

// WithStore replaces the default in-memory snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMaxRecords rejects datasets larger than n.
func WithMaxRecords(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxRecords = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

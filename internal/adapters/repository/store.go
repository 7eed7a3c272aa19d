// Package repository holds the game records every pipeline reads from.
package repository

import (
	"context"
	"time"

	"github.com/okian/boardlens/internal/domain/catalog"
	"github.com/okian/boardlens/internal/domain/model"
)

// Snapshot is an immutable view of the dataset. Callers must not modify
// Games.
type Snapshot struct {
	Version  uint64
	Games    []model.Game
	Facets   catalog.Facets
	LoadedAt time.Time
}

// Store provides read/write access to the dataset.
type Store interface {
	// Replace swaps in a new dataset and returns its version.
	Replace(ctx context.Context, games []model.Game) (uint64, error)

	// Snapshot returns the current dataset.
	Snapshot(ctx context.Context) *Snapshot

	// All returns the current records.
	All(ctx context.Context) []model.Game

	// Count returns the number of records.
	Count(ctx context.Context) int

	// Version returns the version of the current dataset, 0 before the first Replace.
	Version(ctx context.Context) uint64
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/boardlens/internal/domain/model"
)

func games(n int) []model.Game {
	out := make([]model.Game, n)
	for i := range out {
		out[i] = model.Game{Title: fmt.Sprintf("game-%d", i), MinAge: model.Num(float64(8 + i%3))}.WithCategories("Fantasy")
	}
	return out
}

func TestSnapshotStore_Empty(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
	if v := store.Version(ctx); v != 0 {
		t.Errorf("expected version 0, got %d", v)
	}
	if all := store.All(ctx); all == nil {
		t.Error("expected an empty, non-nil slice")
	}
	if snap := store.Snapshot(ctx); snap.Facets.Ages == nil {
		t.Error("expected empty facets")
	}
}

func TestSnapshotStore_Replace(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	v, err := store.Replace(ctx, games(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1 {
		t.Errorf("expected version 1, got %d", v)
	}
	if count := store.Count(ctx); count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}

	snap := store.Snapshot(ctx)
	if len(snap.Facets.Ages) != 3 {
		t.Errorf("expected 3 distinct ages, got %v", snap.Facets.Ages)
	}
	if snap.LoadedAt.IsZero() {
		t.Error("expected a load time")
	}

	v, err = store.Replace(ctx, games(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2 {
		t.Errorf("expected version 2, got %d", v)
	}

	// The earlier snapshot is unaffected by the swap.
	if len(snap.Games) != 3 {
		t.Errorf("expected old snapshot to keep 3 games, got %d", len(snap.Games))
	}
}

func TestSnapshotStore_ReplaceCopies(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	in := games(2)
	if _, err := store.Replace(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in[0].Title = "changed"

	if got := store.All(ctx)[0].Title; got != "game-0" {
		t.Errorf("expected stored title game-0, got %s", got)
	}
}

func TestSnapshotStore_MaxRecords(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(WithMaxRecords(2))

	_, err := store.Replace(ctx, games(3))
	if !errors.Is(err, ErrTooManyRecords) {
		t.Fatalf("expected ErrTooManyRecords, got %v", err)
	}
	if v := store.Version(ctx); v != 0 {
		t.Errorf("expected version to stay 0, got %d", v)
	}
	if _, err := store.Replace(ctx, games(2)); err != nil {
		t.Errorf("unexpected error at the limit: %v", err)
	}
}

func TestSnapshotStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			if _, err := store.Replace(ctx, games(n+1)); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			snap := store.Snapshot(ctx)
			if snap.Facets.Records != len(snap.Games) {
				t.Errorf("facets describe %d records, snapshot holds %d", snap.Facets.Records, len(snap.Games))
			}
		}()
	}
	wg.Wait()

	if v := store.Version(ctx); v != 8 {
		t.Errorf("expected version 8, got %d", v)
	}
}

// Package dataset reads game records from JSON files.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/okian/boardlens/internal/domain/model"
)

var (
	// ErrInvalidDataset is returned when the document is not a JSON array of records.
	ErrInvalidDataset = errors.New("invalid dataset")
	// ErrNoPath is returned when no dataset path is configured.
	ErrNoPath = errors.New("dataset path is empty")
)

// Decode reads a JSON array of game records from r.
func Decode(r io.Reader) ([]model.Game, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("%w: expected an array, got %v", ErrInvalidDataset, tok)
	}

	games := []model.Game{}
	for dec.More() {
		var g model.Game
		if err := dec.Decode(&g); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidDataset, len(games), err)
		}
		games = append(games, g)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return games, nil
}

// Load reads the dataset at path.
func Load(ctx context.Context, path string) ([]model.Game, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes games as an indented JSON array.
func Encode(w io.Writer, games []model.Game) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(games)
}

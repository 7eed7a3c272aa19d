// Package view combines both chart pipelines into one renderable result.
package view

import (
	"errors"
	"time"

	"github.com/okian/boardlens/internal/domain/aggregate"
	"github.com/okian/boardlens/internal/domain/filter"
	"github.com/okian/boardlens/internal/domain/projection"
)

// Projection states.
const (
	ProjectionReady            = "ready"
	ProjectionInsufficientData = "insufficient_data"
	ProjectionFailed           = "failed"
)

// View is what a chart renderer draws for one filter state.
type View struct {
	Sequence       uint64       `json:"sequence"`
	ChangeID       string       `json:"change_id,omitempty"`
	DatasetVersion uint64       `json:"dataset_version"`
	Filter         filter.State `json:"filter"`

	Categories aggregate.Result `json:"categories"`

	ProjectionState string             `json:"projection_state"`
	ProjectionError string             `json:"projection_error,omitempty"`
	Projection      *projection.Result `json:"projection,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}

// New assembles a view from the results of both pipelines. projErr is the
// error Project returned; a projection that cannot run never fails the
// category chart.
func New(s filter.State, categories aggregate.Result, proj projection.Result, projErr error) View {
	v := View{
		Filter:     s,
		Categories: categories,
		ComputedAt: time.Now().UTC(),
	}
	switch {
	case projErr == nil:
		v.ProjectionState = ProjectionReady
		v.Projection = &proj
	case errors.Is(projErr, projection.ErrInsufficientData):
		v.ProjectionState = ProjectionInsufficientData
		v.ProjectionError = projErr.Error()
	default:
		v.ProjectionState = ProjectionFailed
		v.ProjectionError = projErr.Error()
	}
	return v
}

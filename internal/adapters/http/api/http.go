// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	filterqueue "github.com/okian/boardlens/internal/adapters/mq/queue"
	"github.com/okian/boardlens/internal/domain/aggregate"
	"github.com/okian/boardlens/internal/domain/catalog"
	"github.com/okian/boardlens/internal/domain/filter"
	"github.com/okian/boardlens/internal/domain/projection"
	"github.com/okian/boardlens/internal/domain/view"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	FacetsDependencies
	CategoriesDependencies
	ProjectionDependencies
	FiltersDependencies
	ViewDependencies
}

// FacetsDependencies exposes the selectable values of the dataset.
type FacetsDependencies interface {
	Facets(ctx context.Context) catalog.Facets
}

// CategoriesDependencies runs the category aggregation.
type CategoriesDependencies interface {
	Filter(ctx context.Context) filter.State
	Categories(ctx context.Context, f filter.State, limit int) aggregate.Result
}

// ProjectionDependencies runs the discriminant projection.
type ProjectionDependencies interface {
	Filter(ctx context.Context) filter.State
	Projection(ctx context.Context, f filter.State) (projection.Result, error)
}

// FiltersDependencies reads and submits filter state.
type FiltersDependencies interface {
	Filter(ctx context.Context) filter.State
	// SubmitFilter queues a change. Errors wrapping queue.ErrFull mean
	// backpressure; errors wrapping queue.ErrStopped mean not accepting.
	SubmitFilter(ctx context.Context, f filter.State) (filter.Change, error)
}

// ViewDependencies exposes the latest recomputed view.
type ViewDependencies interface {
	View(ctx context.Context) (view.View, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	facetsHandler     *FacetsHandler
	categoriesHandler *CategoriesHandler
	projectionHandler *ProjectionHandler
	filtersHandler    *FiltersHandler
	viewHandler       *ViewHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// limit query parameter of /categories.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		facetsHandler:     NewFacetsHandler(deps),
		categoriesHandler: NewCategoriesHandler(deps, maxLimit),
		projectionHandler: NewProjectionHandler(deps),
		filtersHandler:    NewFiltersHandler(deps),
		viewHandler:       NewViewHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/facets", MetricsMiddleware(s.facetsHandler.HandleGetFacets, "facets"))
	mux.HandleFunc("/categories", MetricsMiddleware(s.categoriesHandler.HandleGetCategories, "categories"))
	mux.HandleFunc("/projection", MetricsMiddleware(s.projectionHandler.HandleGetProjection, "projection"))
	mux.HandleFunc("/filters", MetricsMiddleware(s.filtersHandler.HandleFilters, "filters"))
	mux.HandleFunc("/view", MetricsMiddleware(s.viewHandler.HandleGetView, "view"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeSubmitError translates queue errors to HTTP statuses.
func writeSubmitError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, filterqueue.ErrFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
	case errors.Is(err, filterqueue.ErrStopped):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

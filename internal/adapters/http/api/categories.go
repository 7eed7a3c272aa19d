package api

import (
	"net/http"
	"strconv"

	"github.com/okian/boardlens/internal/domain/aggregate"
)

// CategoriesHandler handles category chart requests.
type CategoriesHandler struct {
	deps     CategoriesDependencies
	maxLimit int
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(deps CategoriesDependencies, maxLimit int) *CategoriesHandler {
	if maxLimit <= 0 {
		maxLimit = aggregate.DefaultLimit
	}
	return &CategoriesHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetCategories handles GET /categories?age=N&limit=N requests.
func (h *CategoriesHandler) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_categories"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	f, err := filterFromQuery(q, h.deps.Filter(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Categories(r.Context(), f, limit))
}

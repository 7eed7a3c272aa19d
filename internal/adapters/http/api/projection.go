package api

import (
	"errors"
	"net/http"

	"github.com/okian/boardlens/internal/domain/projection"
)

// ProjectionHandler handles scatter chart requests.
type ProjectionHandler struct {
	deps ProjectionDependencies
}

// NewProjectionHandler creates a new projection handler.
func NewProjectionHandler(deps ProjectionDependencies) *ProjectionHandler {
	return &ProjectionHandler{deps: deps}
}

// HandleGetProjection handles GET /projection?category=A&category=B requests.
// Fewer than two categories or eligible games answer 422.
func (h *ProjectionHandler) HandleGetProjection(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_projection"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := filterFromQuery(r.URL.Query(), h.deps.Filter(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Projection(r.Context(), f)
	switch {
	case errors.Is(err, projection.ErrInsufficientData):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_data", WrapKind(op, ErrInsufficientData, err))
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/boardlens/internal/domain/filter"
)

// filterRequest mirrors the OpenAPI schema for PUT /filters.
type filterRequest struct {
	Ages              []int    `json:"ages"`
	IncludeUnknownAge bool     `json:"include_unknown_age"`
	Categories        []string `json:"categories"`
}

func (f filterRequest) validate() error {
	for _, age := range f.Ages {
		if age < 0 {
			return fmt.Errorf("invalid age %d", age)
		}
	}
	return nil
}

func (f filterRequest) state() filter.State {
	return filter.New(f.Ages, f.IncludeUnknownAge, f.Categories)
}

// FiltersHandler handles filter state requests.
type FiltersHandler struct {
	deps FiltersDependencies
}

// NewFiltersHandler creates a new filters handler.
func NewFiltersHandler(deps FiltersDependencies) *FiltersHandler {
	return &FiltersHandler{deps: deps}
}

// HandleFilters dispatches GET and PUT /filters.
func (h *FiltersHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.HandleGetFilter(w, r)
	case http.MethodPut:
		h.HandlePutFilter(w, r)
	default:
		http.NotFound(w, r)
	}
}

// HandleGetFilter handles GET /filters requests.
func (h *FiltersHandler) HandleGetFilter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Filter(r.Context()))
}

// HandlePutFilter handles PUT /filters requests. The change is applied
// asynchronously; the response carries its id.
func (h *FiltersHandler) HandlePutFilter(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_filter"
	var req filterRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Ages == nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing ages")))
		return
	}

	change, err := h.deps.SubmitFilter(r.Context(), req.state())
	if err != nil {
		writeSubmitError(w, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, change)
}

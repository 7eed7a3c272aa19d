package api

import "net/http"

// FacetsHandler handles facet requests.
type FacetsHandler struct {
	deps FacetsDependencies
}

// NewFacetsHandler creates a new facets handler.
func NewFacetsHandler(deps FacetsDependencies) *FacetsHandler {
	return &FacetsHandler{deps: deps}
}

// HandleGetFacets handles GET /facets requests.
func (h *FacetsHandler) HandleGetFacets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Facets(r.Context()))
}

package handlers

import "net/http"

// ListDivisionsHandler handles GET /api/divisions. CSI reference data with
// subdivisions nested under each division.
func (h *Handler) ListDivisionsHandler(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.Store.ListDivisions(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, divisions)
}

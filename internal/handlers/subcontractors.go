package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bidboard/internal/validate"
)

// ListSubcontractorsHandler handles GET /api/subcontractors.
func (h *Handler) ListSubcontractorsHandler(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Store.ListSubcontractors(r.Context(), UserID(r.Context()))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, subs)
}

// CreateSubcontractorHandler handles POST /api/subcontractors.
func (h *Handler) CreateSubcontractorHandler(w http.ResponseWriter, r *http.Request) {
	var in validate.CreateSubcontractorInput
	if !h.decode(w, r, &in) {
		return
	}
	sub, err := in.Validate()
	if err != nil {
		h.fail(w, err)
		return
	}
	if !h.verifyDivisions(w, r, sub.DivisionIDs) {
		return
	}

	sub.UserID = UserID(r.Context())
	if err := h.Store.CreateSubcontractor(r.Context(), sub); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusCreated, sub)
}

// GetSubcontractorHandler handles GET /api/subcontractors/{subcontractorId}.
func (h *Handler) GetSubcontractorHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "subcontractorId")
	sub, err := h.Store.GetSubcontractor(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	if sub.UserID != UserID(r.Context()) {
		h.respondError(w, http.StatusForbidden, CodeForbidden, "Forbidden")
		return
	}
	h.respond(w, http.StatusOK, sub)
}

// UpdateSubcontractorHandler handles PUT /api/subcontractors/{subcontractorId}.
func (h *Handler) UpdateSubcontractorHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "subcontractorId")
	owner, err := h.Store.GetSubcontractorOwner(r.Context(), id)
	if !h.requireOwner(w, r, owner, err) {
		return
	}

	var in validate.UpdateSubcontractorInput
	if !h.decode(w, r, &in) {
		return
	}
	sub, err := h.Store.GetSubcontractor(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := in.ApplyTo(sub); err != nil {
		h.fail(w, err)
		return
	}
	if in.ReplacesDivisions() {
		if !h.verifyDivisions(w, r, sub.DivisionIDs) {
			return
		}
	}

	if err := h.Store.UpdateSubcontractor(r.Context(), sub, in.ReplacesDivisions()); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, sub)
}

// DeleteSubcontractorHandler handles DELETE /api/subcontractors/{subcontractorId}.
func (h *Handler) DeleteSubcontractorHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "subcontractorId")
	owner, err := h.Store.GetSubcontractorOwner(r.Context(), id)
	if !h.requireOwner(w, r, owner, err) {
		return
	}
	if err := h.Store.DeleteSubcontractor(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

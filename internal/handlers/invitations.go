package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bidboard/internal/validate"
	"bidboard/models"
)

// ListBidInvitationsHandler handles GET /api/bid-invitations.
func (h *Handler) ListBidInvitationsHandler(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.Store.ListBidInvitations(r.Context(), UserID(r.Context()))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, invitations)
}

// ListInvitationsForBidsHandler handles GET /api/bid-invitations-for-bids:
// the invitations a bid can still be recorded against.
func (h *Handler) ListInvitationsForBidsHandler(w http.ResponseWriter, r *http.Request) {
	statuses := []string{
		models.InvitationResponded,
		models.InvitationContacted,
		models.InvitationAwaitingResponse,
	}
	invitations, err := h.Store.ListBidInvitationsByStatus(r.Context(), UserID(r.Context()), statuses)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, invitations)
}

// CreateBidInvitationHandler handles POST /api/bid-invitations. The project
// and subcontractor must both belong to the caller.
func (h *Handler) CreateBidInvitationHandler(w http.ResponseWriter, r *http.Request) {
	var in validate.CreateBidInvitationInput
	if !h.decode(w, r, &in) {
		return
	}
	inv, err := in.Validate()
	if err != nil {
		h.fail(w, err)
		return
	}

	owner, err := h.Store.GetProjectOwner(r.Context(), inv.ProjectID)
	if !h.requireOwner(w, r, owner, err) {
		return
	}
	owner, err = h.Store.GetSubcontractorOwner(r.Context(), inv.SubcontractorID)
	if !h.requireOwner(w, r, owner, err) {
		return
	}
	if !h.verifyDivisions(w, r, []string{inv.DivisionID}) {
		return
	}
	if inv.SubdivisionID != nil && !h.verifySubdivisions(w, r, []string{*inv.SubdivisionID}) {
		return
	}

	if err := h.Store.CreateBidInvitation(r.Context(), inv); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusCreated, inv)
}

// UpdateBidInvitationHandler handles PUT /api/bid-invitations/{invitationId}.
func (h *Handler) UpdateBidInvitationHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invitationId")
	owner, err := h.Store.GetBidInvitationOwner(r.Context(), id)
	if !h.requireOwner(w, r, owner, err) {
		return
	}

	var in validate.UpdateBidInvitationInput
	if !h.decode(w, r, &in) {
		return
	}
	inv, err := h.Store.GetBidInvitation(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := in.ApplyTo(inv); err != nil {
		h.fail(w, err)
		return
	}
	if in.SubcontractorID != nil {
		subOwner, err := h.Store.GetSubcontractorOwner(r.Context(), inv.SubcontractorID)
		if !h.requireOwner(w, r, subOwner, err) {
			return
		}
	}
	if in.DivisionID != nil {
		if !h.verifyDivisions(w, r, []string{inv.DivisionID}) {
			return
		}
	}
	if in.SubdivisionID != nil && inv.SubdivisionID != nil {
		if !h.verifySubdivisions(w, r, []string{*inv.SubdivisionID}) {
			return
		}
	}

	if err := h.Store.UpdateBidInvitation(r.Context(), inv); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, inv)
}

// DeleteBidInvitationHandler handles DELETE /api/bid-invitations/{invitationId}.
func (h *Handler) DeleteBidInvitationHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invitationId")
	owner, err := h.Store.GetBidInvitationOwner(r.Context(), id)
	if !h.requireOwner(w, r, owner, err) {
		return
	}
	if err := h.Store.DeleteBidInvitation(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

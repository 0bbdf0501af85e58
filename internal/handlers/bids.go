package handlers

import (
	"net/http"

	"bidboard/internal/validate"
)

// ListBidsHandler handles GET /api/bids.
func (h *Handler) ListBidsHandler(w http.ResponseWriter, r *http.Request) {
	bids, err := h.Store.ListBids(r.Context(), UserID(r.Context()))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, bids)
}

// CreateBidHandler handles POST /api/bids. The project, subcontractor and
// division ids are copied from the parent invitation rather than taken from
// the client, and the invitation moves to BID_SUBMITTED in the same
// transaction as the insert.
func (h *Handler) CreateBidHandler(w http.ResponseWriter, r *http.Request) {
	var in validate.CreateBidInput
	if !h.decode(w, r, &in) {
		return
	}
	bid, err := in.Validate()
	if err != nil {
		h.fail(w, err)
		return
	}

	owner, err := h.Store.GetBidInvitationOwner(r.Context(), bid.BidInvitationID)
	if !h.requireOwner(w, r, owner, err) {
		return
	}
	inv, err := h.Store.GetBidInvitation(r.Context(), bid.BidInvitationID)
	if err != nil {
		h.fail(w, err)
		return
	}
	bid.ProjectID = inv.ProjectID
	bid.SubcontractorID = inv.SubcontractorID
	bid.DivisionID = inv.DivisionID
	bid.SubdivisionID = inv.SubdivisionID

	if err := h.Store.CreateBid(r.Context(), bid); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusCreated, bid)
}

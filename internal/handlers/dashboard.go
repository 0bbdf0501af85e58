package handlers

import (
	"net/http"
	"time"

	"bidboard/models"
)

// Deadlines further out than this are not "upcoming".
const deadlineWindow = 14 * 24 * time.Hour

var projectStatusOrder = []string{
	models.ProjectDraft,
	models.ProjectActive,
	models.ProjectClosed,
	models.ProjectAwarded,
}

var invitationStatusOrder = []string{
	models.InvitationInvited,
	models.InvitationContacted,
	models.InvitationAwaitingResponse,
	models.InvitationResponded,
	models.InvitationDeclined,
	models.InvitationBidSubmitted,
}

func statusSummary(order []string, counts map[string]int, variant func(string) string) []models.StatusCount {
	out := make([]models.StatusCount, 0, len(order))
	for _, status := range order {
		out = append(out, models.StatusCount{
			Status:  status,
			Label:   models.FormatStatus(status),
			Variant: variant(status),
			Count:   counts[status],
		})
	}
	return out
}

// DashboardHandler handles GET /api/dashboard. The status summaries carry
// the display label and badge variant for each status so clients render the
// counts without duplicating the mapping.
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.DashboardStats(r.Context(), UserID(r.Context()), deadlineWindow)
	if err != nil {
		h.fail(w, err)
		return
	}
	stats.ProjectStatusSummary = statusSummary(projectStatusOrder, stats.ProjectsByStatus, models.ProjectStatusVariant)
	stats.InvitationStatusSummary = statusSummary(invitationStatusOrder, stats.InvitationsByStatus, models.InvitationStatusVariant)
	h.respond(w, http.StatusOK, stats)
}

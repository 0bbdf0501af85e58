package models

import "strings"

// Badge variants consumed by the web client when rendering status chips.
const (
	VariantDefault     = "default"
	VariantSecondary   = "secondary"
	VariantOutline     = "outline"
	VariantDestructive = "destructive"
)

func ProjectStatusVariant(status string) string {
	switch status {
	case ProjectDraft:
		return VariantSecondary
	case ProjectActive, ProjectAwarded:
		return VariantDefault
	case ProjectClosed:
		return VariantOutline
	default:
		return VariantSecondary
	}
}

func InvitationStatusVariant(status string) string {
	switch status {
	case InvitationBidSubmitted:
		return VariantDefault
	case InvitationDeclined:
		return VariantDestructive
	case InvitationAwaitingResponse:
		return VariantSecondary
	default:
		return VariantOutline
	}
}

// FormatStatus turns an enum value into a display label, e.g.
// AWAITING_RESPONSE -> "Awaiting Response".
func FormatStatus(status string) string {
	words := strings.Split(strings.ToLower(status), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

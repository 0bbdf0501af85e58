package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectStatusVariant(t *testing.T) {
	require.Equal(t, VariantSecondary, ProjectStatusVariant(ProjectDraft))
	require.Equal(t, VariantDefault, ProjectStatusVariant(ProjectActive))
	require.Equal(t, VariantOutline, ProjectStatusVariant(ProjectClosed))
	require.Equal(t, VariantSecondary, ProjectStatusVariant("SOMETHING_ELSE"))
}

func TestInvitationStatusVariant(t *testing.T) {
	require.Equal(t, VariantDestructive, InvitationStatusVariant(InvitationDeclined))
	require.Equal(t, VariantDefault, InvitationStatusVariant(InvitationBidSubmitted))
}

func TestFormatStatus(t *testing.T) {
	require.Equal(t, "Awaiting Response", FormatStatus(InvitationAwaitingResponse))
	require.Equal(t, "Draft", FormatStatus(ProjectDraft))
	require.Equal(t, "Bid Submitted", FormatStatus(InvitationBidSubmitted))
}

package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bidboard/models"
)

func strPtr(s string) *string { return &s }

func TestCreateProjectDefaults(t *testing.T) {
	in := CreateProjectInput{
		Name:             "  <b>Office Tower</b> ",
		BidDueDate:       "2026-10-01",
		ProjectDivisions: []ProjectDivisionInput{{DivisionID: "div-1"}},
	}

	p, err := in.Validate()
	require.NoError(t, err)
	require.Equal(t, "Office Tower", p.Name)
	require.Equal(t, models.ProjectDraft, p.Status)
	require.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), p.BidDueDate)
	require.Len(t, p.ProjectDivisions, 1)
}

func TestCreateProjectRequiredName(t *testing.T) {
	in := CreateProjectInput{
		BidDueDate:       "2026-10-01",
		ProjectDivisions: []ProjectDivisionInput{{DivisionID: "div-1"}},
	}
	_, err := in.Validate()
	require.EqualError(t, err, "Project name is required")

	// A name that sanitizes to nothing is also missing.
	in.Name = "<script>alert(1)</script>"
	_, err = in.Validate()
	require.EqualError(t, err, "Project name is required")
}

func TestCreateProjectRequiresDivision(t *testing.T) {
	in := CreateProjectInput{Name: "Office Tower", BidDueDate: "2026-10-01"}
	_, err := in.Validate()
	require.EqualError(t, err, "At least one division is required")
}

func TestCreateProjectRejectsBadStatus(t *testing.T) {
	in := CreateProjectInput{
		Name:             "Office Tower",
		BidDueDate:       "2026-10-01",
		Status:           "SHIPPED",
		ProjectDivisions: []ProjectDivisionInput{{DivisionID: "div-1"}},
	}
	_, err := in.Validate()
	require.Error(t, err)
}

func TestCreateProjectAcceptsRFC3339(t *testing.T) {
	in := CreateProjectInput{
		Name:             "Office Tower",
		BidDueDate:       "2026-10-01T15:00:00Z",
		ProjectDivisions: []ProjectDivisionInput{{DivisionID: "div-1"}},
	}
	p, err := in.Validate()
	require.NoError(t, err)
	require.Equal(t, 15, p.BidDueDate.Hour())
}

func TestUpdateProjectPatchSemantics(t *testing.T) {
	existing := &models.Project{
		Name:       "Office Tower",
		Location:   strPtr("Denver"),
		BidDueDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Status:     models.ProjectActive,
	}

	in := UpdateProjectInput{Status: strPtr(models.ProjectClosed)}
	require.NoError(t, in.ApplyTo(existing))

	require.Equal(t, models.ProjectClosed, existing.Status)
	require.Equal(t, "Office Tower", existing.Name)
	require.Equal(t, "Denver", *existing.Location)
	require.False(t, in.ReplacesDivisions())
}

func TestUpdateProjectClearsOptionalField(t *testing.T) {
	existing := &models.Project{Name: "Office Tower", Location: strPtr("Denver")}

	in := UpdateProjectInput{Location: strPtr("")}
	require.NoError(t, in.ApplyTo(existing))
	require.Nil(t, existing.Location)
}

func TestCreateSubcontractorEmail(t *testing.T) {
	base := func() CreateSubcontractorInput {
		return CreateSubcontractorInput{
			CompanyName: "Acme Concrete",
			DivisionIDs: []string{"div-1"},
		}
	}

	in := base()
	in.Email = strPtr(" Pat@Example.COM ")
	sub, err := in.Validate()
	require.NoError(t, err)
	require.Equal(t, "pat@example.com", *sub.Email)

	in = base()
	in.Email = strPtr("not-an-email")
	_, err = in.Validate()
	require.EqualError(t, err, "Invalid email")

	// Empty email means "no email", not "invalid email".
	in = base()
	in.Email = strPtr("")
	sub, err = in.Validate()
	require.NoError(t, err)
	require.Nil(t, sub.Email)
}

func TestCreateSubcontractorRequiresCompanyAndDivisions(t *testing.T) {
	_, err := CreateSubcontractorInput{DivisionIDs: []string{"div-1"}}.Validate()
	require.EqualError(t, err, "Company name is required")

	_, err = CreateSubcontractorInput{CompanyName: "Acme"}.Validate()
	require.EqualError(t, err, "At least one division is required")
}

func TestUpdateSubcontractorEmailPatch(t *testing.T) {
	existing := &models.Subcontractor{CompanyName: "Acme", Email: strPtr("old@example.com")}

	// Omitted email keeps the stored value.
	require.NoError(t, UpdateSubcontractorInput{Phone: strPtr("555-0100")}.ApplyTo(existing))
	require.Equal(t, "old@example.com", *existing.Email)

	// An explicit empty string clears it.
	require.NoError(t, UpdateSubcontractorInput{Email: strPtr("")}.ApplyTo(existing))
	require.Nil(t, existing.Email)
}

func TestCreateBidInvitationDefaults(t *testing.T) {
	in := CreateBidInvitationInput{
		ProjectID:       "project-1",
		SubcontractorID: "sub-1",
		DivisionID:      "div-1",
	}
	inv, err := in.Validate()
	require.NoError(t, err)
	require.Equal(t, models.InvitationInvited, inv.Status)
}

func TestCreateBidInvitationRejectsBadContactMethod(t *testing.T) {
	in := CreateBidInvitationInput{
		ProjectID:       "project-1",
		SubcontractorID: "sub-1",
		DivisionID:      "div-1",
		ContactMethod:   strPtr("CARRIER_PIGEON"),
	}
	_, err := in.Validate()
	require.Error(t, err)
}

func TestCreateBidInvitationRequiredFields(t *testing.T) {
	_, err := CreateBidInvitationInput{SubcontractorID: "sub-1", DivisionID: "div-1"}.Validate()
	require.EqualError(t, err, "Project is required")
}

func TestUpdateBidInvitationDates(t *testing.T) {
	inv := &models.BidInvitation{
		ProjectID:       "project-1",
		SubcontractorID: "sub-1",
		DivisionID:      "div-1",
		Status:          models.InvitationInvited,
	}
	received := true
	in := UpdateBidInvitationInput{
		ResponseReceived: &received,
		ResponseDate:     strPtr("2026-09-15"),
		Status:           strPtr(models.InvitationResponded),
	}
	require.NoError(t, in.ApplyTo(inv))
	require.True(t, inv.ResponseReceived)
	require.Equal(t, models.InvitationResponded, inv.Status)
	require.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *inv.ResponseDate)

	in = UpdateBidInvitationInput{ResponseDate: strPtr("not-a-date")}
	require.Error(t, in.ApplyTo(inv))
}

func TestUpdateBidInvitationRejectsEmptyIDs(t *testing.T) {
	inv := &models.BidInvitation{
		ProjectID:       "project-1",
		SubcontractorID: "sub-1",
		DivisionID:      "div-1",
		Status:          models.InvitationInvited,
	}

	err := UpdateBidInvitationInput{DivisionID: strPtr("")}.ApplyTo(inv)
	require.EqualError(t, err, "Division is required")
	require.Equal(t, "div-1", inv.DivisionID)

	err = UpdateBidInvitationInput{SubcontractorID: strPtr("  ")}.ApplyTo(inv)
	require.EqualError(t, err, "Subcontractor is required")
	require.Equal(t, "sub-1", inv.SubcontractorID)
}

func TestCreateBidAmount(t *testing.T) {
	base := func(amount string) CreateBidInput {
		return CreateBidInput{
			BidInvitationID: "inv-1",
			BidAmount:       decimal.RequireFromString(amount),
		}
	}

	bid, err := base("125000.50").Validate()
	require.NoError(t, err)
	require.Equal(t, models.BidSubmitted, bid.Status)
	require.False(t, bid.BidDate.IsZero())

	_, err = base("0").Validate()
	require.EqualError(t, err, "Bid amount must be positive")

	_, err = base("-125000.50").Validate()
	require.EqualError(t, err, "Bid amount must be positive")
}

func TestCreateBidRequiresInvitation(t *testing.T) {
	in := CreateBidInput{BidAmount: decimal.NewFromInt(100)}
	_, err := in.Validate()
	require.EqualError(t, err, "Bid invitation is required")
}

func TestRegisterInput(t *testing.T) {
	in := &RegisterInput{Email: " Pat@Example.com ", Name: "Pat", Password: "long enough pw"}
	require.NoError(t, in.Validate())
	require.Equal(t, "pat@example.com", in.Email)

	in = &RegisterInput{Email: "pat@example.com", Password: "long enough pw"}
	require.EqualError(t, in.Validate(), "Name is required")

	in = &RegisterInput{Email: "pat@example.com", Name: "Pat", Password: "short"}
	require.Error(t, in.Validate())
}

package validate

import (
	"bidboard/internal/sanitize"
	"bidboard/models"
)

type ProjectDivisionInput struct {
	DivisionID    string  `json:"divisionId" validate:"required"`
	SubdivisionID *string `json:"subdivisionId"`
}

type CreateProjectInput struct {
	Name                string                 `json:"name" validate:"required,max=255"`
	Description         *string                `json:"description"`
	Location            *string                `json:"location"`
	BidDueDate          string                 `json:"bidDueDate" validate:"required"`
	RFIDate             *string                `json:"rfiDate"`
	PrebidSiteVisit     bool                   `json:"prebidSiteVisit"`
	PrebidSiteVisitDate *string                `json:"prebidSiteVisitDate"`
	Status              string                 `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE CLOSED AWARDED"`
	ProjectDivisions    []ProjectDivisionInput `json:"projectDivisions" validate:"min=1,dive"`
}

// Validate produces a sanitized Project with defaults applied. The owner id
// and generated fields are filled in by the caller and the store.
func (in CreateProjectInput) Validate() (*models.Project, error) {
	if err := run(in); err != nil {
		return nil, err
	}

	name := sanitize.PlainText(in.Name)
	if name == "" {
		return nil, fieldErr("name", "Project name is required")
	}

	bidDue, err := parseDate("bidDueDate", in.BidDueDate)
	if err != nil {
		return nil, err
	}
	rfi, err := parseDatePtr("rfiDate", in.RFIDate)
	if err != nil {
		return nil, err
	}
	prebidDate, err := parseDatePtr("prebidSiteVisitDate", in.PrebidSiteVisitDate)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.ProjectDraft
	}

	return &models.Project{
		Name:                name,
		Description:         optText(in.Description, sanitize.RichText),
		Location:            optText(in.Location, sanitize.PlainText),
		BidDueDate:          bidDue,
		RFIDate:             rfi,
		PrebidSiteVisit:     in.PrebidSiteVisit,
		PrebidSiteVisitDate: prebidDate,
		Status:              status,
		ProjectDivisions:    projectDivisions(in.ProjectDivisions),
	}, nil
}

type UpdateProjectInput struct {
	Name                *string                `json:"name" validate:"omitempty,max=255"`
	Description         *string                `json:"description"`
	Location            *string                `json:"location"`
	BidDueDate          *string                `json:"bidDueDate"`
	RFIDate             *string                `json:"rfiDate"`
	PrebidSiteVisit     *bool                  `json:"prebidSiteVisit"`
	PrebidSiteVisitDate *string                `json:"prebidSiteVisitDate"`
	Status              *string                `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE CLOSED AWARDED"`
	ProjectDivisions    []ProjectDivisionInput `json:"projectDivisions" validate:"omitempty,min=1,dive"`
}

// ReplacesDivisions reports whether the patch supplies a new division set.
func (in UpdateProjectInput) ReplacesDivisions() bool {
	return in.ProjectDivisions != nil
}

// ApplyTo merges the patch into an existing project. Only supplied fields
// overwrite; omitted fields keep their current values.
func (in UpdateProjectInput) ApplyTo(p *models.Project) error {
	if err := run(in); err != nil {
		return err
	}

	if in.Name != nil {
		name := sanitize.PlainText(*in.Name)
		if name == "" {
			return fieldErr("name", "Project name is required")
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = optText(in.Description, sanitize.RichText)
	}
	if in.Location != nil {
		p.Location = optText(in.Location, sanitize.PlainText)
	}
	if in.BidDueDate != nil {
		t, err := parseDate("bidDueDate", *in.BidDueDate)
		if err != nil {
			return err
		}
		p.BidDueDate = t
	}
	if in.RFIDate != nil {
		t, err := parseDatePtr("rfiDate", in.RFIDate)
		if err != nil {
			return err
		}
		p.RFIDate = t
	}
	if in.PrebidSiteVisit != nil {
		p.PrebidSiteVisit = *in.PrebidSiteVisit
	}
	if in.PrebidSiteVisitDate != nil {
		t, err := parseDatePtr("prebidSiteVisitDate", in.PrebidSiteVisitDate)
		if err != nil {
			return err
		}
		p.PrebidSiteVisitDate = t
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.ProjectDivisions != nil {
		p.ProjectDivisions = projectDivisions(in.ProjectDivisions)
	}
	return nil
}

func projectDivisions(in []ProjectDivisionInput) []models.ProjectDivision {
	out := make([]models.ProjectDivision, 0, len(in))
	for _, pd := range in {
		out = append(out, models.ProjectDivision{
			DivisionID:    sanitize.Input(pd.DivisionID),
			SubdivisionID: optText(pd.SubdivisionID, sanitize.Input),
		})
	}
	return out
}

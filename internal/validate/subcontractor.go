package validate

import (
	"bidboard/internal/sanitize"
	"bidboard/models"
)

type CreateSubcontractorInput struct {
	CompanyName       string   `json:"companyName" validate:"required,max=255"`
	ContactPersonName *string  `json:"contactPersonName"`
	Email             *string  `json:"email" validate:"omitempty,email"`
	Phone             *string  `json:"phone" validate:"omitempty,max=20"`
	OfficeAddress     *string  `json:"officeAddress"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
	ZipCode           *string  `json:"zipCode"`
	Notes             *string  `json:"notes" validate:"omitempty,max=10000"`
	DivisionIDs       []string `json:"divisionIds" validate:"min=1,dive,required"`
}

func (in CreateSubcontractorInput) Validate() (*models.Subcontractor, error) {
	// The email rule runs against the sanitized form so "User@Example.com "
	// normalizes before format checking. An empty string stays valid: it
	// means "no email", not "invalid email".
	in.Email = optText(in.Email, sanitize.Email)
	if err := run(in); err != nil {
		return nil, err
	}

	company := sanitize.PlainText(in.CompanyName)
	if company == "" {
		return nil, fieldErr("companyName", "Company name is required")
	}

	return &models.Subcontractor{
		CompanyName:       company,
		ContactPersonName: optText(in.ContactPersonName, sanitize.PlainText),
		Email:             in.Email,
		Phone:             optText(in.Phone, sanitize.Phone),
		OfficeAddress:     optText(in.OfficeAddress, sanitize.PlainText),
		City:              optText(in.City, sanitize.PlainText),
		State:             optText(in.State, sanitize.PlainText),
		ZipCode:           optText(in.ZipCode, sanitize.Input),
		Notes:             optText(in.Notes, sanitize.RichText),
		DivisionIDs:       divisionIDs(in.DivisionIDs),
	}, nil
}

type UpdateSubcontractorInput struct {
	CompanyName       *string  `json:"companyName" validate:"omitempty,max=255"`
	ContactPersonName *string  `json:"contactPersonName"`
	Email             *string  `json:"email" validate:"omitempty,email"`
	Phone             *string  `json:"phone" validate:"omitempty,max=20"`
	OfficeAddress     *string  `json:"officeAddress"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
	ZipCode           *string  `json:"zipCode"`
	Notes             *string  `json:"notes" validate:"omitempty,max=10000"`
	DivisionIDs       []string `json:"divisionIds" validate:"omitempty,min=1,dive,required"`
}

func (in UpdateSubcontractorInput) ReplacesDivisions() bool {
	return in.DivisionIDs != nil
}

func (in UpdateSubcontractorInput) ApplyTo(s *models.Subcontractor) error {
	emailSupplied := in.Email != nil
	in.Email = optText(in.Email, sanitize.Email)
	if err := run(in); err != nil {
		return err
	}

	if in.CompanyName != nil {
		company := sanitize.PlainText(*in.CompanyName)
		if company == "" {
			return fieldErr("companyName", "Company name is required")
		}
		s.CompanyName = company
	}
	if in.ContactPersonName != nil {
		s.ContactPersonName = optText(in.ContactPersonName, sanitize.PlainText)
	}
	if emailSupplied {
		s.Email = in.Email
	}
	if in.Phone != nil {
		s.Phone = optText(in.Phone, sanitize.Phone)
	}
	if in.OfficeAddress != nil {
		s.OfficeAddress = optText(in.OfficeAddress, sanitize.PlainText)
	}
	if in.City != nil {
		s.City = optText(in.City, sanitize.PlainText)
	}
	if in.State != nil {
		s.State = optText(in.State, sanitize.PlainText)
	}
	if in.ZipCode != nil {
		s.ZipCode = optText(in.ZipCode, sanitize.Input)
	}
	if in.Notes != nil {
		s.Notes = optText(in.Notes, sanitize.RichText)
	}
	if in.DivisionIDs != nil {
		s.DivisionIDs = divisionIDs(in.DivisionIDs)
	}
	return nil
}

func divisionIDs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, id := range in {
		out = append(out, sanitize.Input(id))
	}
	return out
}

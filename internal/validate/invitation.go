package validate

import (
	"time"

	"bidboard/internal/sanitize"
	"bidboard/models"
)

type CreateBidInvitationInput struct {
	ProjectID              string  `json:"projectId" validate:"required"`
	SubcontractorID        string  `json:"subcontractorId" validate:"required"`
	DivisionID             string  `json:"divisionId" validate:"required"`
	SubdivisionID          *string `json:"subdivisionId"`
	FirstContactDate       *string `json:"firstContactDate"`
	ContactMethod          *string `json:"contactMethod" validate:"omitempty,oneof=EMAIL PHONE IN_PERSON OTHER"`
	ResponseReceived       bool    `json:"responseReceived"`
	ResponseDate           *string `json:"responseDate"`
	DocumentsSent          bool    `json:"documentsSent"`
	DocumentsSentDate      *string `json:"documentsSentDate"`
	DocumentsDelivered     bool    `json:"documentsDelivered"`
	DocumentsDeliveredDate *string `json:"documentsDeliveredDate"`
	DocumentsRead          bool    `json:"documentsRead"`
	DocumentsReadDate      *string `json:"documentsReadDate"`
	FollowUpDate           *string `json:"followUpDate"`
	Status                 string  `json:"status" validate:"omitempty,oneof=INVITED CONTACTED AWAITING_RESPONSE RESPONDED DECLINED BID_SUBMITTED"`
	Notes                  *string `json:"notes" validate:"omitempty,max=10000"`
}

func (in CreateBidInvitationInput) Validate() (*models.BidInvitation, error) {
	if err := run(in); err != nil {
		return nil, err
	}

	inv := &models.BidInvitation{
		ProjectID:          sanitize.Input(in.ProjectID),
		SubcontractorID:    sanitize.Input(in.SubcontractorID),
		DivisionID:         sanitize.Input(in.DivisionID),
		SubdivisionID:      optText(in.SubdivisionID, sanitize.Input),
		ContactMethod:      in.ContactMethod,
		ResponseReceived:   in.ResponseReceived,
		DocumentsSent:      in.DocumentsSent,
		DocumentsDelivered: in.DocumentsDelivered,
		DocumentsRead:      in.DocumentsRead,
		Status:             in.Status,
		Notes:              optText(in.Notes, sanitize.RichText),
	}
	if inv.Status == "" {
		inv.Status = models.InvitationInvited
	}

	var err error
	if inv.FirstContactDate, err = parseDatePtr("firstContactDate", in.FirstContactDate); err != nil {
		return nil, err
	}
	if inv.ResponseDate, err = parseDatePtr("responseDate", in.ResponseDate); err != nil {
		return nil, err
	}
	if inv.DocumentsSentDate, err = parseDatePtr("documentsSentDate", in.DocumentsSentDate); err != nil {
		return nil, err
	}
	if inv.DocumentsDeliveredDate, err = parseDatePtr("documentsDeliveredDate", in.DocumentsDeliveredDate); err != nil {
		return nil, err
	}
	if inv.DocumentsReadDate, err = parseDatePtr("documentsReadDate", in.DocumentsReadDate); err != nil {
		return nil, err
	}
	if inv.FollowUpDate, err = parseDatePtr("followUpDate", in.FollowUpDate); err != nil {
		return nil, err
	}
	return inv, nil
}

type UpdateBidInvitationInput struct {
	SubcontractorID        *string `json:"subcontractorId"`
	DivisionID             *string `json:"divisionId"`
	SubdivisionID          *string `json:"subdivisionId"`
	FirstContactDate       *string `json:"firstContactDate"`
	ContactMethod          *string `json:"contactMethod" validate:"omitempty,oneof=EMAIL PHONE IN_PERSON OTHER"`
	ResponseReceived       *bool   `json:"responseReceived"`
	ResponseDate           *string `json:"responseDate"`
	DocumentsSent          *bool   `json:"documentsSent"`
	DocumentsSentDate      *string `json:"documentsSentDate"`
	DocumentsDelivered     *bool   `json:"documentsDelivered"`
	DocumentsDeliveredDate *string `json:"documentsDeliveredDate"`
	DocumentsRead          *bool   `json:"documentsRead"`
	DocumentsReadDate      *string `json:"documentsReadDate"`
	FollowUpDate           *string `json:"followUpDate"`
	Status                 *string `json:"status" validate:"omitempty,oneof=INVITED CONTACTED AWAITING_RESPONSE RESPONDED DECLINED BID_SUBMITTED"`
	Notes                  *string `json:"notes" validate:"omitempty,max=10000"`
}

func (in UpdateBidInvitationInput) ApplyTo(inv *models.BidInvitation) error {
	if err := run(in); err != nil {
		return err
	}

	if in.SubcontractorID != nil {
		id := sanitize.Input(*in.SubcontractorID)
		if id == "" {
			return fieldErr("subcontractorId", "Subcontractor is required")
		}
		inv.SubcontractorID = id
	}
	if in.DivisionID != nil {
		id := sanitize.Input(*in.DivisionID)
		if id == "" {
			return fieldErr("divisionId", "Division is required")
		}
		inv.DivisionID = id
	}
	if in.SubdivisionID != nil {
		inv.SubdivisionID = optText(in.SubdivisionID, sanitize.Input)
	}
	if in.ContactMethod != nil {
		inv.ContactMethod = in.ContactMethod
	}
	if in.ResponseReceived != nil {
		inv.ResponseReceived = *in.ResponseReceived
	}
	if in.DocumentsSent != nil {
		inv.DocumentsSent = *in.DocumentsSent
	}
	if in.DocumentsDelivered != nil {
		inv.DocumentsDelivered = *in.DocumentsDelivered
	}
	if in.DocumentsRead != nil {
		inv.DocumentsRead = *in.DocumentsRead
	}
	if in.Status != nil {
		inv.Status = *in.Status
	}
	if in.Notes != nil {
		inv.Notes = optText(in.Notes, sanitize.RichText)
	}

	dates := []struct {
		field string
		src   *string
		dst   **time.Time
	}{
		{"firstContactDate", in.FirstContactDate, &inv.FirstContactDate},
		{"responseDate", in.ResponseDate, &inv.ResponseDate},
		{"documentsSentDate", in.DocumentsSentDate, &inv.DocumentsSentDate},
		{"documentsDeliveredDate", in.DocumentsDeliveredDate, &inv.DocumentsDeliveredDate},
		{"documentsReadDate", in.DocumentsReadDate, &inv.DocumentsReadDate},
		{"followUpDate", in.FollowUpDate, &inv.FollowUpDate},
	}
	for _, d := range dates {
		if d.src == nil {
			continue
		}
		t, err := parseDatePtr(d.field, d.src)
		if err != nil {
			return err
		}
		*d.dst = t
	}
	return nil
}

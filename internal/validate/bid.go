package validate

import (
	"time"

	"github.com/shopspring/decimal"

	"bidboard/internal/sanitize"
	"bidboard/models"
)

type CreateBidInput struct {
	BidInvitationID string          `json:"bidInvitationId" validate:"required"`
	BidAmount       decimal.Decimal `json:"bidAmount"`
	BidDate         *string         `json:"bidDate"`
	ValidUntil      *string         `json:"validUntil"`
	Status          string          `json:"status" validate:"omitempty,oneof=SUBMITTED UNDER_REVIEW ACCEPTED REJECTED"`
	Notes           *string         `json:"notes" validate:"omitempty,max=10000"`
}

// Validate produces a sanitized Bid. The denormalized project, subcontractor
// and division ids are copied from the parent invitation by the handler, not
// trusted from the client.
func (in CreateBidInput) Validate() (*models.Bid, error) {
	if err := run(in); err != nil {
		return nil, err
	}
	if !in.BidAmount.IsPositive() {
		return nil, fieldErr("bidAmount", "Bid amount must be positive")
	}

	bidDate := time.Now().UTC()
	if in.BidDate != nil && *in.BidDate != "" {
		t, err := parseDate("bidDate", *in.BidDate)
		if err != nil {
			return nil, err
		}
		bidDate = t
	}
	validUntil, err := parseDatePtr("validUntil", in.ValidUntil)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.BidSubmitted
	}

	return &models.Bid{
		BidInvitationID: sanitize.Input(in.BidInvitationID),
		BidAmount:       in.BidAmount,
		BidDate:         bidDate,
		ValidUntil:      validUntil,
		Status:          status,
		Notes:           optText(in.Notes, sanitize.RichText),
	}, nil
}

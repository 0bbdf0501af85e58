package db

import (
	"context"

	"github.com/google/uuid"

	"bidboard/models"
)

// CreateBid inserts the bid and flips the parent invitation to BID_SUBMITTED
// in one transaction. The status change is a fixed business rule.
func (s *Storage) CreateBid(ctx context.Context, b *models.Bid) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	b.ID = uuid.NewString()
	query := `
        INSERT INTO bids
            (id, bid_invitation_id, project_id, subcontractor_id, division_id,
             subdivision_id, bid_amount, bid_date, valid_until, status, notes)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`
	err = tx.QueryRowContext(ctx, query,
		b.ID, b.BidInvitationID, b.ProjectID, b.SubcontractorID, b.DivisionID,
		b.SubdivisionID, b.BidAmount, b.BidDate, b.ValidUntil, b.Status, b.Notes).
		Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE bid_invitations SET status = $1, updated_at = NOW() WHERE id = $2`,
		models.InvitationBidSubmitted, b.BidInvitationID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) ListBids(ctx context.Context, userID string) ([]models.Bid, error) {
	bids := []models.Bid{}
	query := `
        SELECT b.* FROM bids b
        JOIN projects p ON b.project_id = p.id
        WHERE p.user_id = $1
        ORDER BY b.created_at DESC`
	err := s.db.SelectContext(ctx, &bids, query, userID)
	return bids, err
}

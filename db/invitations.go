package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bidboard/models"
)

func (s *Storage) CreateBidInvitation(ctx context.Context, inv *models.BidInvitation) error {
	inv.ID = uuid.NewString()
	query := `
        INSERT INTO bid_invitations
            (id, project_id, subcontractor_id, division_id, subdivision_id,
             first_contact_date, contact_method, response_received, response_date,
             documents_sent, documents_sent_date, documents_delivered,
             documents_delivered_date, documents_read, documents_read_date,
             follow_up_date, status, notes)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		inv.ID, inv.ProjectID, inv.SubcontractorID, inv.DivisionID, inv.SubdivisionID,
		inv.FirstContactDate, inv.ContactMethod, inv.ResponseReceived, inv.ResponseDate,
		inv.DocumentsSent, inv.DocumentsSentDate, inv.DocumentsDelivered,
		inv.DocumentsDeliveredDate, inv.DocumentsRead, inv.DocumentsReadDate,
		inv.FollowUpDate, inv.Status, inv.Notes).
		Scan(&inv.CreatedAt, &inv.UpdatedAt)
}

func (s *Storage) GetBidInvitation(ctx context.Context, id string) (*models.BidInvitation, error) {
	inv := &models.BidInvitation{}
	query := `SELECT * FROM bid_invitations WHERE id = $1`
	if err := s.db.GetContext(ctx, inv, query, id); err != nil {
		return nil, notFound(err)
	}
	return inv, nil
}

func (s *Storage) ListBidInvitations(ctx context.Context, userID string) ([]models.BidInvitation, error) {
	invitations := []models.BidInvitation{}
	query := `
        SELECT bi.* FROM bid_invitations bi
        JOIN projects p ON bi.project_id = p.id
        WHERE p.user_id = $1
        ORDER BY bi.created_at DESC`
	err := s.db.SelectContext(ctx, &invitations, query, userID)
	return invitations, err
}

// ListBidInvitationsByStatus returns the caller's invitations restricted to
// the given statuses, used by the bid-entry screen.
func (s *Storage) ListBidInvitationsByStatus(ctx context.Context, userID string, statuses []string) ([]models.BidInvitation, error) {
	query, args, err := sqlx.In(`
        SELECT bi.* FROM bid_invitations bi
        JOIN projects p ON bi.project_id = p.id
        WHERE p.user_id = ? AND bi.status IN (?)
        ORDER BY bi.created_at DESC`, userID, statuses)
	if err != nil {
		return nil, err
	}
	invitations := []models.BidInvitation{}
	err = s.db.SelectContext(ctx, &invitations, s.db.Rebind(query), args...)
	return invitations, err
}

func (s *Storage) UpdateBidInvitation(ctx context.Context, inv *models.BidInvitation) error {
	query := `
        UPDATE bid_invitations
        SET subcontractor_id = $1, division_id = $2, subdivision_id = $3,
            first_contact_date = $4, contact_method = $5, response_received = $6,
            response_date = $7, documents_sent = $8, documents_sent_date = $9,
            documents_delivered = $10, documents_delivered_date = $11,
            documents_read = $12, documents_read_date = $13, follow_up_date = $14,
            status = $15, notes = $16, updated_at = NOW()
        WHERE id = $17
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query,
		inv.SubcontractorID, inv.DivisionID, inv.SubdivisionID,
		inv.FirstContactDate, inv.ContactMethod, inv.ResponseReceived,
		inv.ResponseDate, inv.DocumentsSent, inv.DocumentsSentDate,
		inv.DocumentsDelivered, inv.DocumentsDeliveredDate,
		inv.DocumentsRead, inv.DocumentsReadDate, inv.FollowUpDate,
		inv.Status, inv.Notes, inv.ID).
		Scan(&inv.UpdatedAt)
	return notFound(err)
}

func (s *Storage) DeleteBidInvitation(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM bid_invitations WHERE id = $1`, id)
	return err
}

// GetBidInvitationOwner resolves ownership through the parent project.
func (s *Storage) GetBidInvitationOwner(ctx context.Context, id string) (string, error) {
	var owner string
	query := `
        SELECT p.user_id FROM bid_invitations bi
        JOIN projects p ON bi.project_id = p.id
        WHERE bi.id = $1`
	if err := s.db.GetContext(ctx, &owner, query, id); err != nil {
		return "", notFound(err)
	}
	return owner, nil
}

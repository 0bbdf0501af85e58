package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bidboard/models"
)

func (s *Storage) CreateSubcontractor(ctx context.Context, sub *models.Subcontractor) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	sub.ID = uuid.NewString()
	query := `
        INSERT INTO subcontractors
            (id, company_name, contact_person_name, email, phone,
             office_address, city, state, zip_code, notes, user_id)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`
	err = tx.QueryRowContext(ctx, query,
		sub.ID, sub.CompanyName, sub.ContactPersonName, sub.Email, sub.Phone,
		sub.OfficeAddress, sub.City, sub.State, sub.ZipCode, sub.Notes, sub.UserID).
		Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertSubcontractorDivisions(ctx, tx, sub); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) GetSubcontractor(ctx context.Context, id string) (*models.Subcontractor, error) {
	sub := &models.Subcontractor{}
	query := `SELECT * FROM subcontractors WHERE id = $1`
	if err := s.db.GetContext(ctx, sub, query, id); err != nil {
		return nil, notFound(err)
	}
	if err := s.attachSubcontractorDivisions(ctx, []*models.Subcontractor{sub}); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Storage) ListSubcontractors(ctx context.Context, userID string) ([]models.Subcontractor, error) {
	subs := []models.Subcontractor{}
	query := `SELECT * FROM subcontractors WHERE user_id = $1 ORDER BY company_name ASC`
	if err := s.db.SelectContext(ctx, &subs, query, userID); err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return subs, nil
	}
	ptrs := make([]*models.Subcontractor, len(subs))
	for i := range subs {
		ptrs[i] = &subs[i]
	}
	if err := s.attachSubcontractorDivisions(ctx, ptrs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Storage) UpdateSubcontractor(ctx context.Context, sub *models.Subcontractor, replaceDivisions bool) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        UPDATE subcontractors
        SET company_name = $1, contact_person_name = $2, email = $3, phone = $4,
            office_address = $5, city = $6, state = $7, zip_code = $8,
            notes = $9, updated_at = NOW()
        WHERE id = $10
        RETURNING updated_at`
	err = tx.QueryRowContext(ctx, query,
		sub.CompanyName, sub.ContactPersonName, sub.Email, sub.Phone,
		sub.OfficeAddress, sub.City, sub.State, sub.ZipCode, sub.Notes, sub.ID).
		Scan(&sub.UpdatedAt)
	if err != nil {
		return notFound(err)
	}

	if replaceDivisions {
		if _, err := tx.ExecContext(ctx, `DELETE FROM subcontractor_divisions WHERE subcontractor_id = $1`, sub.ID); err != nil {
			return err
		}
		if err := insertSubcontractorDivisions(ctx, tx, sub); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) DeleteSubcontractor(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM subcontractors WHERE id = $1`, id)
	return err
}

func (s *Storage) GetSubcontractorOwner(ctx context.Context, id string) (string, error) {
	var owner string
	err := s.db.GetContext(ctx, &owner, `SELECT user_id FROM subcontractors WHERE id = $1`, id)
	if err != nil {
		return "", notFound(err)
	}
	return owner, nil
}

func insertSubcontractorDivisions(ctx context.Context, tx *sqlx.Tx, sub *models.Subcontractor) error {
	for _, divisionID := range sub.DivisionIDs {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO subcontractor_divisions (id, subcontractor_id, division_id)
            VALUES ($1, $2, $3)`,
			uuid.NewString(), sub.ID, divisionID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) attachSubcontractorDivisions(ctx context.Context, subs []*models.Subcontractor) error {
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}
	query, args, err := sqlx.In(
		`SELECT subcontractor_id, division_id FROM subcontractor_divisions WHERE subcontractor_id IN (?)`, ids)
	if err != nil {
		return err
	}
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	bySub := make(map[string][]string, len(subs))
	for rows.Next() {
		var subID, divisionID string
		if err := rows.Scan(&subID, &divisionID); err != nil {
			return err
		}
		bySub[subID] = append(bySub[subID], divisionID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, sub := range subs {
		sub.DivisionIDs = bySub[sub.ID]
		if sub.DivisionIDs == nil {
			sub.DivisionIDs = []string{}
		}
	}
	return nil
}

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bidboard/models"
)

func (s *Storage) CreateProject(ctx context.Context, p *models.Project) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	p.ID = uuid.NewString()
	query := `
        INSERT INTO projects
            (id, name, description, location, bid_due_date, rfi_date,
             prebid_site_visit, prebid_site_visit_date, status, user_id)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING created_at, updated_at`
	err = tx.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.Location, p.BidDueDate, p.RFIDate,
		p.PrebidSiteVisit, p.PrebidSiteVisitDate, p.Status, p.UserID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertProjectDivisions(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) GetProject(ctx context.Context, id string) (*models.Project, error) {
	p := &models.Project{}
	query := `SELECT * FROM projects WHERE id = $1`
	if err := s.db.GetContext(ctx, p, query, id); err != nil {
		return nil, notFound(err)
	}
	links, err := s.projectDivisions(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	p.ProjectDivisions = links[id]
	if p.ProjectDivisions == nil {
		p.ProjectDivisions = []models.ProjectDivision{}
	}
	return p, nil
}

func (s *Storage) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	projects := []models.Project{}
	query := `SELECT * FROM projects WHERE user_id = $1 ORDER BY created_at DESC`
	if err := s.db.SelectContext(ctx, &projects, query, userID); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return projects, nil
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	links, err := s.projectDivisions(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].ProjectDivisions = links[projects[i].ID]
		if projects[i].ProjectDivisions == nil {
			projects[i].ProjectDivisions = []models.ProjectDivision{}
		}
	}
	return projects, nil
}

// UpdateProject writes the project row and, when replaceDivisions is set,
// deletes and recreates the division links in the same transaction so a
// failure cannot leave a partial link set.
func (s *Storage) UpdateProject(ctx context.Context, p *models.Project, replaceDivisions bool) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        UPDATE projects
        SET name = $1, description = $2, location = $3, bid_due_date = $4,
            rfi_date = $5, prebid_site_visit = $6, prebid_site_visit_date = $7,
            status = $8, updated_at = NOW()
        WHERE id = $9
        RETURNING updated_at`
	err = tx.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Location, p.BidDueDate, p.RFIDate,
		p.PrebidSiteVisit, p.PrebidSiteVisitDate, p.Status, p.ID).
		Scan(&p.UpdatedAt)
	if err != nil {
		return notFound(err)
	}

	if replaceDivisions {
		if _, err := tx.ExecContext(ctx, `DELETE FROM project_divisions WHERE project_id = $1`, p.ID); err != nil {
			return err
		}
		if err := insertProjectDivisions(ctx, tx, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) DeleteProject(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

// GetProjectOwner fetches only the owner column for authorization checks.
func (s *Storage) GetProjectOwner(ctx context.Context, id string) (string, error) {
	var owner string
	err := s.db.GetContext(ctx, &owner, `SELECT user_id FROM projects WHERE id = $1`, id)
	if err != nil {
		return "", notFound(err)
	}
	return owner, nil
}

func insertProjectDivisions(ctx context.Context, tx *sqlx.Tx, p *models.Project) error {
	for i := range p.ProjectDivisions {
		pd := &p.ProjectDivisions[i]
		pd.ID = uuid.NewString()
		pd.ProjectID = p.ID
		_, err := tx.ExecContext(ctx, `
            INSERT INTO project_divisions (id, project_id, division_id, subdivision_id)
            VALUES ($1, $2, $3, $4)`,
			pd.ID, pd.ProjectID, pd.DivisionID, pd.SubdivisionID)
		if err != nil {
			return fmt.Errorf("insert project division: %w", err)
		}
	}
	return nil
}

func (s *Storage) projectDivisions(ctx context.Context, projectIDs []string) (map[string][]models.ProjectDivision, error) {
	query, args, err := sqlx.In(`SELECT * FROM project_divisions WHERE project_id IN (?)`, projectIDs)
	if err != nil {
		return nil, err
	}
	links := []models.ProjectDivision{}
	if err := s.db.SelectContext(ctx, &links, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	byProject := make(map[string][]models.ProjectDivision, len(projectIDs))
	for _, link := range links {
		byProject[link.ProjectID] = append(byProject[link.ProjectID], link)
	}
	return byProject, nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bidboard/models"
)

// ErrNotFound is returned when a row does not exist. Handlers translate it
// to a NOT_FOUND response.
var ErrNotFound = errors.New("not found")

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Users

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()
	query := `
        INSERT INTO users (id, email, name, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query, u.ID, u.Email, u.Name, u.PasswordHash).
		Scan(&u.CreatedAt, &u.UpdatedAt)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	query := `SELECT * FROM users WHERE email = $1`
	if err := s.db.GetContext(ctx, u, query, email); err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// Divisions (reference data, seeded by migration)

func (s *Storage) ListDivisions(ctx context.Context) ([]models.Division, error) {
	divisions := []models.Division{}
	query := `SELECT * FROM divisions ORDER BY code ASC`
	if err := s.db.SelectContext(ctx, &divisions, query); err != nil {
		return nil, err
	}

	subdivisions := []models.Subdivision{}
	query = `SELECT * FROM subdivisions ORDER BY code ASC`
	if err := s.db.SelectContext(ctx, &subdivisions, query); err != nil {
		return nil, err
	}

	byDivision := make(map[string][]models.Subdivision, len(divisions))
	for _, sub := range subdivisions {
		byDivision[sub.DivisionID] = append(byDivision[sub.DivisionID], sub)
	}
	for i := range divisions {
		divisions[i].Subdivisions = byDivision[divisions[i].ID]
	}
	return divisions, nil
}

// CountDivisions reports how many of the given ids exist. Callers compare
// the count to the id-set size to validate foreign keys in one query.
func (s *Storage) CountDivisions(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`SELECT COUNT(1) FROM divisions WHERE id IN (?)`, ids)
	if err != nil {
		return 0, err
	}
	var count int
	err = s.db.GetContext(ctx, &count, s.db.Rebind(query), args...)
	return count, err
}

// CountSubdivisions is the subdivision counterpart of CountDivisions.
func (s *Storage) CountSubdivisions(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`SELECT COUNT(1) FROM subdivisions WHERE id IN (?)`, ids)
	if err != nil {
		return 0, err
	}
	var count int
	err = s.db.GetContext(ctx, &count, s.db.Rebind(query), args...)
	return count, err
}

// Dashboard

func (s *Storage) DashboardStats(ctx context.Context, userID string, deadlineWindow time.Duration) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{ProjectsByStatus: map[string]int{}}

	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(1) FROM projects WHERE user_id = $1 GROUP BY status`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ProjectsByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.InvitationsByStatus = map[string]int{}
	invRows, err := s.db.QueryContext(ctx, `
        SELECT bi.status, COUNT(1)
        FROM bid_invitations bi
        JOIN projects p ON bi.project_id = p.id
        WHERE p.user_id = $1
        GROUP BY bi.status`, userID)
	if err != nil {
		return nil, err
	}
	defer invRows.Close()
	for invRows.Next() {
		var status string
		var count int
		if err := invRows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.InvitationsByStatus[status] = count
	}
	if err := invRows.Err(); err != nil {
		return nil, err
	}

	err = s.db.GetContext(ctx, &stats.OpenInvitations, `
        SELECT COUNT(1)
        FROM bid_invitations bi
        JOIN projects p ON bi.project_id = p.id
        WHERE p.user_id = $1 AND bi.status NOT IN ($2, $3)`,
		userID, models.InvitationDeclined, models.InvitationBidSubmitted)
	if err != nil {
		return nil, err
	}

	err = s.db.GetContext(ctx, &stats.BidsReceived, `
        SELECT COUNT(1)
        FROM bids b
        JOIN projects p ON b.project_id = p.id
        WHERE p.user_id = $1`, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	deadlines := []models.Project{}
	err = s.db.SelectContext(ctx, &deadlines, `
        SELECT * FROM projects
        WHERE user_id = $1 AND bid_due_date >= $2 AND bid_due_date < $3
        ORDER BY bid_due_date ASC
        LIMIT 10`, userID, now, now.Add(deadlineWindow))
	if err != nil {
		return nil, err
	}
	stats.UpcomingDeadlines = deadlines
	return stats, nil
}

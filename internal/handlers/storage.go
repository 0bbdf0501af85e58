package handlers

import (
	"context"
	"time"

	"bidboard/models"
)

// StorageInterface abstracts the database layer so handlers can be tested
// with a mock store.
type StorageInterface interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	ListDivisions(ctx context.Context) ([]models.Division, error)
	CountDivisions(ctx context.Context, ids []string) (int, error)
	CountSubdivisions(ctx context.Context, ids []string) (int, error)

	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project, replaceDivisions bool) error
	DeleteProject(ctx context.Context, id string) error
	GetProjectOwner(ctx context.Context, id string) (string, error)

	CreateSubcontractor(ctx context.Context, sub *models.Subcontractor) error
	GetSubcontractor(ctx context.Context, id string) (*models.Subcontractor, error)
	ListSubcontractors(ctx context.Context, userID string) ([]models.Subcontractor, error)
	UpdateSubcontractor(ctx context.Context, sub *models.Subcontractor, replaceDivisions bool) error
	DeleteSubcontractor(ctx context.Context, id string) error
	GetSubcontractorOwner(ctx context.Context, id string) (string, error)

	CreateBidInvitation(ctx context.Context, inv *models.BidInvitation) error
	GetBidInvitation(ctx context.Context, id string) (*models.BidInvitation, error)
	ListBidInvitations(ctx context.Context, userID string) ([]models.BidInvitation, error)
	ListBidInvitationsByStatus(ctx context.Context, userID string, statuses []string) ([]models.BidInvitation, error)
	UpdateBidInvitation(ctx context.Context, inv *models.BidInvitation) error
	DeleteBidInvitation(ctx context.Context, id string) error
	GetBidInvitationOwner(ctx context.Context, id string) (string, error)

	CreateBid(ctx context.Context, b *models.Bid) error
	ListBids(ctx context.Context, userID string) ([]models.Bid, error)

	DashboardStats(ctx context.Context, userID string, deadlineWindow time.Duration) (*models.DashboardStats, error)
}

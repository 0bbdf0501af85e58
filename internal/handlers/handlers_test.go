package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bidboard/db"
	"bidboard/internal/auth"
	"bidboard/internal/handlers"
	"bidboard/internal/handlers/testutils"
	"bidboard/internal/ratelimit"
	"bidboard/models"
)

// MockStorage implements handlers.StorageInterface with canned data.
// Individual methods can be overridden per test via the Func fields.
type MockStorage struct {
	CreateUserFunc         func(ctx context.Context, u *models.User) error
	GetUserByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	GetProjectFunc         func(ctx context.Context, id string) (*models.Project, error)
	GetProjectOwnerFunc    func(ctx context.Context, id string) (string, error)
	CountDivisionsFunc     func(ctx context.Context, ids []string) (int, error)
	CountSubdivisionsFunc  func(ctx context.Context, ids []string) (int, error)
	GetBidInvitationFunc   func(ctx context.Context, id string) (*models.BidInvitation, error)
	GetInvitationOwnerFunc func(ctx context.Context, id string) (string, error)

	CreatedProject    *models.Project
	UpdatedProject    *models.Project
	DeletedProjectID  string
	CreatedBid        *models.Bid
	CreatedInvitation *models.BidInvitation
}

func (m *MockStorage) Ping(ctx context.Context) error { return nil }

func (m *MockStorage) CreateUser(ctx context.Context, u *models.User) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, u)
	}
	u.ID = "user-1"
	return nil
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, db.ErrNotFound
}

func (m *MockStorage) ListDivisions(ctx context.Context) ([]models.Division, error) {
	return []models.Division{{ID: "div-1", Code: "03", Name: "Concrete"}}, nil
}

func (m *MockStorage) CountDivisions(ctx context.Context, ids []string) (int, error) {
	if m.CountDivisionsFunc != nil {
		return m.CountDivisionsFunc(ctx, ids)
	}
	return len(ids), nil
}

func (m *MockStorage) CountSubdivisions(ctx context.Context, ids []string) (int, error) {
	if m.CountSubdivisionsFunc != nil {
		return m.CountSubdivisionsFunc(ctx, ids)
	}
	return len(ids), nil
}

func (m *MockStorage) CreateProject(ctx context.Context, p *models.Project) error {
	p.ID = "project-1"
	m.CreatedProject = p
	return nil
}

func (m *MockStorage) GetProject(ctx context.Context, id string) (*models.Project, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, id)
	}
	return &models.Project{
		ID:         id,
		Name:       "Office Tower",
		BidDueDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Status:     models.ProjectActive,
		UserID:     "user-1",
		ProjectDivisions: []models.ProjectDivision{
			{ID: "pd-1", ProjectID: id, DivisionID: "div-1"},
		},
	}, nil
}

func (m *MockStorage) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	return []models.Project{{ID: "project-1", Name: "Office Tower", UserID: userID}}, nil
}

func (m *MockStorage) UpdateProject(ctx context.Context, p *models.Project, replaceDivisions bool) error {
	m.UpdatedProject = p
	return nil
}

func (m *MockStorage) DeleteProject(ctx context.Context, id string) error {
	m.DeletedProjectID = id
	return nil
}

func (m *MockStorage) GetProjectOwner(ctx context.Context, id string) (string, error) {
	if m.GetProjectOwnerFunc != nil {
		return m.GetProjectOwnerFunc(ctx, id)
	}
	return "user-1", nil
}

func (m *MockStorage) CreateSubcontractor(ctx context.Context, sub *models.Subcontractor) error {
	sub.ID = "sub-1"
	return nil
}

func (m *MockStorage) GetSubcontractor(ctx context.Context, id string) (*models.Subcontractor, error) {
	return &models.Subcontractor{ID: id, CompanyName: "Acme Concrete", UserID: "user-1", DivisionIDs: []string{"div-1"}}, nil
}

func (m *MockStorage) ListSubcontractors(ctx context.Context, userID string) ([]models.Subcontractor, error) {
	return []models.Subcontractor{}, nil
}

func (m *MockStorage) UpdateSubcontractor(ctx context.Context, sub *models.Subcontractor, replaceDivisions bool) error {
	return nil
}

func (m *MockStorage) DeleteSubcontractor(ctx context.Context, id string) error { return nil }

func (m *MockStorage) GetSubcontractorOwner(ctx context.Context, id string) (string, error) {
	return "user-1", nil
}

func (m *MockStorage) CreateBidInvitation(ctx context.Context, inv *models.BidInvitation) error {
	inv.ID = "inv-1"
	m.CreatedInvitation = inv
	return nil
}

func (m *MockStorage) GetBidInvitation(ctx context.Context, id string) (*models.BidInvitation, error) {
	if m.GetBidInvitationFunc != nil {
		return m.GetBidInvitationFunc(ctx, id)
	}
	return &models.BidInvitation{
		ID:              id,
		ProjectID:       "project-1",
		SubcontractorID: "sub-1",
		DivisionID:      "div-1",
		Status:          models.InvitationResponded,
	}, nil
}

func (m *MockStorage) ListBidInvitations(ctx context.Context, userID string) ([]models.BidInvitation, error) {
	return []models.BidInvitation{}, nil
}

func (m *MockStorage) ListBidInvitationsByStatus(ctx context.Context, userID string, statuses []string) ([]models.BidInvitation, error) {
	return []models.BidInvitation{}, nil
}

func (m *MockStorage) UpdateBidInvitation(ctx context.Context, inv *models.BidInvitation) error {
	return nil
}

func (m *MockStorage) DeleteBidInvitation(ctx context.Context, id string) error { return nil }

func (m *MockStorage) GetBidInvitationOwner(ctx context.Context, id string) (string, error) {
	if m.GetInvitationOwnerFunc != nil {
		return m.GetInvitationOwnerFunc(ctx, id)
	}
	return "user-1", nil
}

func (m *MockStorage) CreateBid(ctx context.Context, b *models.Bid) error {
	b.ID = "bid-1"
	m.CreatedBid = b
	return nil
}

func (m *MockStorage) ListBids(ctx context.Context, userID string) ([]models.Bid, error) {
	return []models.Bid{}, nil
}

func (m *MockStorage) DashboardStats(ctx context.Context, userID string, deadlineWindow time.Duration) (*models.DashboardStats, error) {
	return &models.DashboardStats{
		ProjectsByStatus:    map[string]int{models.ProjectActive: 2},
		InvitationsByStatus: map[string]int{models.InvitationAwaitingResponse: 4},
		OpenInvitations:     3,
		BidsReceived:        1,
		UpcomingDeadlines:   []models.Project{},
	}, nil
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func newHandler(store handlers.StorageInterface) *handlers.Handler {
	sessions := auth.NewSessions("test-secret", time.Hour)
	return handlers.NewHandler(store, sessions, ratelimit.New(), zap.NewNop())
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(handlers.WithUser(req.Context(), "user-1"))
}

func TestHealthHandler(t *testing.T) {
	h := newHandler(&MockStorage{})
	rec := httptest.NewRecorder()

	h.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
}

func TestCreateProjectHandler(t *testing.T) {
	store := &MockStorage{}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	body := `{"name":"Office Tower","bidDueDate":"2026-10-01","projectDivisions":[{"divisionId":"div-1"}]}`

	h.CreateProjectHandler(rec, authedRequest(http.MethodPost, "/api/projects", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.NotNil(t, store.CreatedProject)
	require.Equal(t, models.ProjectDraft, store.CreatedProject.Status)
	require.Equal(t, "user-1", store.CreatedProject.UserID)
}

func TestCreateProjectHandlerMissingName(t *testing.T) {
	h := newHandler(&MockStorage{})
	rec := httptest.NewRecorder()
	body := `{"bidDueDate":"2026-10-01","projectDivisions":[{"divisionId":"div-1"}]}`

	h.CreateProjectHandler(rec, authedRequest(http.MethodPost, "/api/projects", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.False(t, env.Success)
	require.Equal(t, "Project name is required", env.Error.Message)
	require.Equal(t, handlers.CodeBadRequest, env.Error.Code)
}

func TestCreateProjectHandlerNoDivisions(t *testing.T) {
	h := newHandler(&MockStorage{})
	rec := httptest.NewRecorder()
	body := `{"name":"Office Tower","bidDueDate":"2026-10-01","projectDivisions":[]}`

	h.CreateProjectHandler(rec, authedRequest(http.MethodPost, "/api/projects", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "At least one division is required", decodeEnvelope(t, rec).Error.Message)
}

func TestCreateProjectHandlerUnknownDivision(t *testing.T) {
	store := &MockStorage{
		CountDivisionsFunc: func(ctx context.Context, ids []string) (int, error) { return 0, nil },
	}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	body := `{"name":"Office Tower","bidDueDate":"2026-10-01","projectDivisions":[{"divisionId":"nope"}]}`

	h.CreateProjectHandler(rec, authedRequest(http.MethodPost, "/api/projects", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Nil(t, store.CreatedProject)
}

func TestCreateProjectHandlerUnknownSubdivision(t *testing.T) {
	store := &MockStorage{
		CountSubdivisionsFunc: func(ctx context.Context, ids []string) (int, error) { return 0, nil },
	}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	body := `{"name":"Office Tower","bidDueDate":"2026-10-01","projectDivisions":[{"divisionId":"div-1","subdivisionId":"nope"}]}`

	h.CreateProjectHandler(rec, authedRequest(http.MethodPost, "/api/projects", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "One or more subdivisions do not exist", decodeEnvelope(t, rec).Error.Message)
	require.Nil(t, store.CreatedProject)
}

func TestGetProjectHandlerForbidden(t *testing.T) {
	store := &MockStorage{
		GetProjectFunc: func(ctx context.Context, id string) (*models.Project, error) {
			return &models.Project{ID: id, Name: "Someone else's", UserID: "user-2"}, nil
		},
	}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	req := testutils.WithChiURLParams(
		authedRequest(http.MethodGet, "/api/projects/project-9", ""),
		map[string]string{"projectId": "project-9"})

	h.GetProjectHandler(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, handlers.CodeForbidden, decodeEnvelope(t, rec).Error.Code)
}

func TestGetProjectHandlerNotFound(t *testing.T) {
	store := &MockStorage{
		GetProjectFunc: func(ctx context.Context, id string) (*models.Project, error) {
			return nil, db.ErrNotFound
		},
	}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	req := testutils.WithChiURLParams(
		authedRequest(http.MethodGet, "/api/projects/missing", ""),
		map[string]string{"projectId": "missing"})

	h.GetProjectHandler(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, handlers.CodeNotFound, decodeEnvelope(t, rec).Error.Code)
}

func TestUpdateProjectHandlerPatch(t *testing.T) {
	store := &MockStorage{}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	req := testutils.WithChiURLParams(
		authedRequest(http.MethodPut, "/api/projects/project-1", `{"status":"CLOSED"}`),
		map[string]string{"projectId": "project-1"})

	h.UpdateProjectHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.UpdatedProject)
	require.Equal(t, models.ProjectClosed, store.UpdatedProject.Status)
	// Untouched fields keep their stored values.
	require.Equal(t, "Office Tower", store.UpdatedProject.Name)
}

func TestUpdateProjectHandlerWrongOwner(t *testing.T) {
	store := &MockStorage{
		GetProjectOwnerFunc: func(ctx context.Context, id string) (string, error) { return "user-2", nil },
	}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	req := testutils.WithChiURLParams(
		authedRequest(http.MethodPut, "/api/projects/project-1", `{"status":"CLOSED"}`),
		map[string]string{"projectId": "project-1"})

	h.UpdateProjectHandler(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Nil(t, store.UpdatedProject)
}

func TestDeleteProjectHandler(t *testing.T) {
	store := &MockStorage{}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	req := testutils.WithChiURLParams(
		authedRequest(http.MethodDelete, "/api/projects/project-1", ""),
		map[string]string{"projectId": "project-1"})

	h.DeleteProjectHandler(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "project-1", store.DeletedProjectID)
}

func TestCreateSubcontractorHandlerInvalidEmail(t *testing.T) {
	h := newHandler(&MockStorage{})
	rec := httptest.NewRecorder()
	body := `{"companyName":"Acme","email":"not-an-email","divisionIds":["div-1"]}`

	h.CreateSubcontractorHandler(rec, authedRequest(http.MethodPost, "/api/subcontractors", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid email", decodeEnvelope(t, rec).Error.Message)
}

func TestCreateBidInvitationHandler(t *testing.T) {
	store := &MockStorage{}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	body := `{"projectId":"project-1","subcontractorId":"sub-1","divisionId":"div-1"}`

	h.CreateBidInvitationHandler(rec, authedRequest(http.MethodPost, "/api/bid-invitations", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, store.CreatedInvitation)
	require.Equal(t, models.InvitationInvited, store.CreatedInvitation.Status)
}

func TestCreateBidHandlerCopiesInvitationFields(t *testing.T) {
	store := &MockStorage{}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	// Client-supplied denormalized ids would be ignored; only the invitation
	// link and the amount matter.
	body := `{"bidInvitationId":"inv-1","bidAmount":"125000.50"}`

	h.CreateBidHandler(rec, authedRequest(http.MethodPost, "/api/bids", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, store.CreatedBid)
	require.Equal(t, "project-1", store.CreatedBid.ProjectID)
	require.Equal(t, "sub-1", store.CreatedBid.SubcontractorID)
	require.Equal(t, "div-1", store.CreatedBid.DivisionID)
	require.Equal(t, models.BidSubmitted, store.CreatedBid.Status)
	require.True(t, store.CreatedBid.BidAmount.Equal(decimal.RequireFromString("125000.50")))
}

func TestCreateBidHandlerRejectsNonPositiveAmount(t *testing.T) {
	store := &MockStorage{}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	body := `{"bidInvitationId":"inv-1","bidAmount":"-5"}`

	h.CreateBidHandler(rec, authedRequest(http.MethodPost, "/api/bids", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Bid amount must be positive", decodeEnvelope(t, rec).Error.Message)
	require.Nil(t, store.CreatedBid)
}

func TestCreateBidHandlerForeignInvitation(t *testing.T) {
	store := &MockStorage{
		GetInvitationOwnerFunc: func(ctx context.Context, id string) (string, error) { return "user-2", nil },
	}
	h := newHandler(store)
	rec := httptest.NewRecorder()
	body := `{"bidInvitationId":"inv-1","bidAmount":"100"}`

	h.CreateBidHandler(rec, authedRequest(http.MethodPost, "/api/bids", body))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Nil(t, store.CreatedBid)
}

func TestDashboardHandler(t *testing.T) {
	h := newHandler(&MockStorage{})
	rec := httptest.NewRecorder()

	h.DashboardHandler(rec, authedRequest(http.MethodGet, "/api/dashboard", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	require.Equal(t, 3, stats.OpenInvitations)
	require.Equal(t, 2, stats.ProjectsByStatus[models.ProjectActive])

	require.Len(t, stats.ProjectStatusSummary, 4)
	require.Equal(t, models.StatusCount{
		Status:  models.ProjectActive,
		Label:   "Active",
		Variant: models.VariantDefault,
		Count:   2,
	}, stats.ProjectStatusSummary[1])

	require.Len(t, stats.InvitationStatusSummary, 6)
	require.Equal(t, models.StatusCount{
		Status:  models.InvitationAwaitingResponse,
		Label:   "Awaiting Response",
		Variant: models.VariantSecondary,
		Count:   4,
	}, stats.InvitationStatusSummary[2])
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project statuses
const (
	ProjectDraft   = "DRAFT"
	ProjectActive  = "ACTIVE"
	ProjectClosed  = "CLOSED"
	ProjectAwarded = "AWARDED"
)

// Bid invitation statuses
const (
	InvitationInvited          = "INVITED"
	InvitationContacted        = "CONTACTED"
	InvitationAwaitingResponse = "AWAITING_RESPONSE"
	InvitationResponded        = "RESPONDED"
	InvitationDeclined         = "DECLINED"
	InvitationBidSubmitted     = "BID_SUBMITTED"
)

// Bid statuses
const (
	BidSubmitted   = "SUBMITTED"
	BidUnderReview = "UNDER_REVIEW"
	BidAccepted    = "ACCEPTED"
	BidRejected    = "REJECTED"
)

// Contact methods for bid invitations
const (
	ContactEmail    = "EMAIL"
	ContactPhone    = "PHONE"
	ContactInPerson = "IN_PERSON"
	ContactOther    = "OTHER"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}

// Division is a CSI MasterFormat trade category. Reference data, seeded by
// migration and read-only from the API.
type Division struct {
	ID           string        `db:"id" json:"id"`
	Code         string        `db:"code" json:"code"`
	Name         string        `db:"name" json:"name"`
	Description  *string       `db:"description" json:"description"`
	Subdivisions []Subdivision `db:"-" json:"subdivisions,omitempty"`
}

// Subdivision narrows a Division to a specific work section.
type Subdivision struct {
	ID          string  `db:"id" json:"id"`
	DivisionID  string  `db:"division_id" json:"divisionId"`
	Code        string  `db:"code" json:"code"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
}

type Project struct {
	ID                  string            `db:"id" json:"id"`
	Name                string            `db:"name" json:"name"`
	Description         *string           `db:"description" json:"description"`
	Location            *string           `db:"location" json:"location"`
	BidDueDate          time.Time         `db:"bid_due_date" json:"bidDueDate"`
	RFIDate             *time.Time        `db:"rfi_date" json:"rfiDate"`
	PrebidSiteVisit     bool              `db:"prebid_site_visit" json:"prebidSiteVisit"`
	PrebidSiteVisitDate *time.Time        `db:"prebid_site_visit_date" json:"prebidSiteVisitDate"`
	Status              string            `db:"status" json:"status"`
	UserID              string            `db:"user_id" json:"userId"`
	CreatedAt           time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time         `db:"updated_at" json:"updatedAt"`
	ProjectDivisions    []ProjectDivision `db:"-" json:"projectDivisions"`
}

// ProjectDivision links a project to a division/subdivision pair. The link
// set is replaced as a unit when a project update supplies divisions.
type ProjectDivision struct {
	ID            string  `db:"id" json:"id"`
	ProjectID     string  `db:"project_id" json:"projectId"`
	DivisionID    string  `db:"division_id" json:"divisionId"`
	SubdivisionID *string `db:"subdivision_id" json:"subdivisionId"`
}

type Subcontractor struct {
	ID                string    `db:"id" json:"id"`
	CompanyName       string    `db:"company_name" json:"companyName"`
	ContactPersonName *string   `db:"contact_person_name" json:"contactPersonName"`
	Email             *string   `db:"email" json:"email"`
	Phone             *string   `db:"phone" json:"phone"`
	OfficeAddress     *string   `db:"office_address" json:"officeAddress"`
	City              *string   `db:"city" json:"city"`
	State             *string   `db:"state" json:"state"`
	ZipCode           *string   `db:"zip_code" json:"zipCode"`
	Notes             *string   `db:"notes" json:"notes"`
	UserID            string    `db:"user_id" json:"userId"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
	DivisionIDs       []string  `db:"-" json:"divisionIds"`
}

type BidInvitation struct {
	ID                     string     `db:"id" json:"id"`
	ProjectID              string     `db:"project_id" json:"projectId"`
	SubcontractorID        string     `db:"subcontractor_id" json:"subcontractorId"`
	DivisionID             string     `db:"division_id" json:"divisionId"`
	SubdivisionID          *string    `db:"subdivision_id" json:"subdivisionId"`
	FirstContactDate       *time.Time `db:"first_contact_date" json:"firstContactDate"`
	ContactMethod          *string    `db:"contact_method" json:"contactMethod"`
	ResponseReceived       bool       `db:"response_received" json:"responseReceived"`
	ResponseDate           *time.Time `db:"response_date" json:"responseDate"`
	DocumentsSent          bool       `db:"documents_sent" json:"documentsSent"`
	DocumentsSentDate      *time.Time `db:"documents_sent_date" json:"documentsSentDate"`
	DocumentsDelivered     bool       `db:"documents_delivered" json:"documentsDelivered"`
	DocumentsDeliveredDate *time.Time `db:"documents_delivered_date" json:"documentsDeliveredDate"`
	DocumentsRead          bool       `db:"documents_read" json:"documentsRead"`
	DocumentsReadDate      *time.Time `db:"documents_read_date" json:"documentsReadDate"`
	FollowUpDate           *time.Time `db:"follow_up_date" json:"followUpDate"`
	Status                 string     `db:"status" json:"status"`
	Notes                  *string    `db:"notes" json:"notes"`
	CreatedAt              time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updatedAt"`
}

// Bid carries denormalized project/subcontractor/division ids alongside the
// invitation link so comparison queries avoid joins.
type Bid struct {
	ID              string          `db:"id" json:"id"`
	BidInvitationID string          `db:"bid_invitation_id" json:"bidInvitationId"`
	ProjectID       string          `db:"project_id" json:"projectId"`
	SubcontractorID string          `db:"subcontractor_id" json:"subcontractorId"`
	DivisionID      string          `db:"division_id" json:"divisionId"`
	SubdivisionID   *string         `db:"subdivision_id" json:"subdivisionId"`
	BidAmount       decimal.Decimal `db:"bid_amount" json:"bidAmount"`
	BidDate         time.Time       `db:"bid_date" json:"bidDate"`
	ValidUntil      *time.Time      `db:"valid_until" json:"validUntil"`
	Status          string          `db:"status" json:"status"`
	Notes           *string         `db:"notes" json:"notes"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updatedAt"`
}

// StatusCount is a dashboard roll-up row: a status with its display label,
// badge variant and count.
type StatusCount struct {
	Status  string `json:"status"`
	Label   string `json:"label"`
	Variant string `json:"variant"`
	Count   int    `json:"count"`
}

// DashboardStats summarizes a user's bidding pipeline. The summary slices
// are derived from the maps for direct rendering as badge rows.
type DashboardStats struct {
	ProjectsByStatus        map[string]int `json:"projectsByStatus"`
	InvitationsByStatus     map[string]int `json:"invitationsByStatus"`
	OpenInvitations         int            `json:"openInvitations"`
	BidsReceived            int            `json:"bidsReceived"`
	UpcomingDeadlines       []Project      `json:"upcomingDeadlines"`
	ProjectStatusSummary    []StatusCount  `json:"projectStatusSummary"`
	InvitationStatusSummary []StatusCount  `json:"invitationStatusSummary"`
}

package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bidboard/models"
)

func newStorageWithMock(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewStorage(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func testBid() *models.Bid {
	return &models.Bid{
		BidInvitationID: "inv-1",
		ProjectID:       "project-1",
		SubcontractorID: "sub-1",
		DivisionID:      "div-1",
		BidAmount:       decimal.RequireFromString("125000.50"),
		BidDate:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:          models.BidSubmitted,
	}
}

func TestCreateBidFlipsInvitationStatus(t *testing.T) {
	storage, mock := newStorageWithMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO bids`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`UPDATE bid_invitations SET status`).
		WithArgs(models.InvitationBidSubmitted, "inv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	bid := testBid()
	require.NoError(t, storage.CreateBid(context.Background(), bid))
	require.NotEmpty(t, bid.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBidRollsBackWhenStatusUpdateFails(t *testing.T) {
	storage, mock := newStorageWithMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO bids`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`UPDATE bid_invitations SET status`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := storage.CreateBid(context.Background(), testBid())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventadmissions/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var requestRows = []string{"id", "event_id", "user_id", "status", "decided_by", "decided_at", "created_at"}

func TestInvitationRequestRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO event_invitation_requests`).
		WithArgs("ev-1", "user-1", domain.RequestStatusPending, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("req-1"))

	repo := NewInvitationRequestRepository(db)
	req := &domain.EventInvitationRequest{
		EventID:   "ev-1",
		UserID:    "user-1",
		Status:    domain.RequestStatusPending,
		CreatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, req))
	require.Equal(t, "req-1", req.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationRequestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	decided := now.Add(time.Hour)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE event_invitation_requests`).
					WithArgs("req-1", domain.RequestStatusApproved, "staff-1", decided).
					WillReturnRows(sqlmock.NewRows(requestRows).
						AddRow("req-1", "ev-1", "user-1", domain.RequestStatusApproved, "staff-1", decided, now))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE event_invitation_requests`).
					WithArgs("req-1", domain.RequestStatusApproved, "staff-1", decided).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewInvitationRequestRepository(db)
			req, err := repo.UpdateStatus(ctx, "req-1", domain.RequestStatusApproved, "staff-1", decided)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, domain.RequestStatusApproved, req.Status)
			require.Equal(t, "staff-1", req.DecidedBy)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationRequestRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	params := domain.PaginationParams{Page: 1, PageSize: 20}

	t.Run("filters by status", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM event_invitation_requests`).
			WithArgs("ev-1", domain.RequestStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`SELECT id, event_id, user_id, status, decided_by, decided_at, created_at`).
			WithArgs("ev-1", domain.RequestStatusPending, 20, 0).
			WillReturnRows(sqlmock.NewRows(requestRows).
				AddRow("req-2", "ev-1", "user-2", domain.RequestStatusPending, nil, nil, now).
				AddRow("req-1", "ev-1", "user-1", domain.RequestStatusPending, nil, nil, now.Add(-time.Hour)))

		repo := NewInvitationRequestRepository(db)
		reqs, total, err := repo.ListByEventID(ctx, "ev-1", domain.RequestStatusPending, params)
		require.NoError(t, err)
		require.Equal(t, 2, total)
		require.Len(t, reqs, 2)
		require.Equal(t, "req-2", reqs[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows yields an empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM event_invitation_requests`).
			WithArgs("ev-1", "").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT id, event_id, user_id, status, decided_by, decided_at, created_at`).
			WithArgs("ev-1", "", 20, 0).
			WillReturnRows(sqlmock.NewRows(requestRows))

		repo := NewInvitationRequestRepository(db)
		reqs, total, err := repo.ListByEventID(ctx, "ev-1", "", params)
		require.NoError(t, err)
		require.Zero(t, total)
		require.NotNil(t, reqs)
		require.Empty(t, reqs)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

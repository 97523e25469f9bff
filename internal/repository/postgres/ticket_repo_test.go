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

func TestTicketRepository_ClaimTicket(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	claim := domain.TicketClaim{EventID: "ev-1", TierID: "tier-1", UserID: "user-1", MaxQuantity: 100}

	expectLock := func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(`SELECT id FROM ticket_tiers WHERE id = \$1 FOR UPDATE`).
			WithArgs("tier-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tier-1"))
	}
	expectCount := func(mock sqlmock.Sqlmock, issued int) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tickets WHERE tier_id = \$1 AND status = \$2`).
			WithArgs("tier-1", domain.TicketStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(issued))
	}

	tests := []struct {
		name    string
		claim   domain.TicketClaim
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:  "ticket issued",
			claim: claim,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock)
				expectCount(mock, 42)
				mock.ExpectQuery(`INSERT INTO tickets`).
					WithArgs("ev-1", "tier-1", "user-1", domain.TicketStatusActive).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("tkt-1", now))
				mock.ExpectCommit()
			},
		},
		{
			name:  "unlimited tier skips the count",
			claim: domain.TicketClaim{EventID: "ev-1", TierID: "tier-1", UserID: "user-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock)
				mock.ExpectQuery(`INSERT INTO tickets`).
					WithArgs("ev-1", "tier-1", "user-1", domain.TicketStatusActive).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("tkt-1", now))
				mock.ExpectCommit()
			},
		},
		{
			name:  "tier sold out",
			claim: claim,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock)
				expectCount(mock, 100)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrEventFull,
		},
		{
			name:  "tier missing",
			claim: claim,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM ticket_tiers WHERE id = \$1 FOR UPDATE`).
					WithArgs("tier-1").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
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
			repo := NewTicketRepository(db)
			ticket, err := repo.ClaimTicket(ctx, tt.claim)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "tkt-1", ticket.ID)
			require.Equal(t, domain.TicketStatusActive, ticket.Status)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTicketRepository_GetTierByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.TicketTier
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, name, price_cents, max_quantity, created_at`).
					WithArgs("tier-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "price_cents", "max_quantity", "created_at"}).
						AddRow("tier-1", "ev-1", "General", 2500, 100, now))
			},
			want: &domain.TicketTier{
				ID:          "tier-1",
				EventID:     "ev-1",
				Name:        "General",
				PriceCents:  2500,
				MaxQuantity: 100,
				CreatedAt:   now,
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, name, price_cents, max_quantity, created_at`).
					WithArgs("tier-1").
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
			repo := NewTicketRepository(db)
			tier, err := repo.GetTierByID(ctx, "tier-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, tier)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

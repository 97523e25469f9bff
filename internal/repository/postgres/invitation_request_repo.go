package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventadmissions/internal/domain"
)

type invitationRequestRepository struct {
	DB *sql.DB
}

func NewInvitationRequestRepository(db *sql.DB) domain.EventInvitationRequestRepository {
	return &invitationRequestRepository{
		DB: db,
	}
}

const requestColumns = `id, event_id, user_id, status, decided_by, decided_at, created_at`

func scanRequest(row interface{ Scan(...any) error }) (*domain.EventInvitationRequest, error) {
	req := &domain.EventInvitationRequest{}
	var decidedBy sql.NullString
	err := row.Scan(&req.ID, &req.EventID, &req.UserID, &req.Status, &decidedBy, &req.DecidedAt, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	req.DecidedBy = decidedBy.String
	return req, nil
}

func (r *invitationRequestRepository) Create(ctx context.Context, req *domain.EventInvitationRequest) error {
	query := `
		INSERT INTO event_invitation_requests (event_id, user_id, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, req.EventID, req.UserID, req.Status, req.CreatedAt).
		Scan(&req.ID)
}

func (r *invitationRequestRepository) GetByID(ctx context.Context, id string) (*domain.EventInvitationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM event_invitation_requests WHERE id = $1`
	return scanRequest(r.DB.QueryRowContext(ctx, query, id))
}

func (r *invitationRequestRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventInvitationRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM event_invitation_requests
		WHERE event_id = $1 AND user_id = $2
	`
	return scanRequest(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

func (r *invitationRequestRepository) UpdateStatus(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) (*domain.EventInvitationRequest, error) {
	query := `
		UPDATE event_invitation_requests
		SET status = $2, decided_by = $3, decided_at = $4
		WHERE id = $1
		RETURNING ` + requestColumns + `
	`
	return scanRequest(r.DB.QueryRowContext(ctx, query, id, status, decidedBy, decidedAt))
}

func (r *invitationRequestRepository) ListByEventID(ctx context.Context, eventID string, status string, params domain.PaginationParams) ([]*domain.EventInvitationRequest, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_invitation_requests WHERE event_id = $1 AND ($2 = '' OR status = $2)`,
		eventID, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + requestColumns + `
		FROM event_invitation_requests
		WHERE event_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, status, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []*domain.EventInvitationRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if reqs == nil {
		reqs = []*domain.EventInvitationRequest{}
	}
	return reqs, total, nil
}

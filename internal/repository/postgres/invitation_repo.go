package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventadmissions/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.EventInvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

const invitationColumns = `id, event_id, user_id, email, waives_questionnaire, waives_purchase,
	waives_membership, waives_apply_deadline, overrides_max_attendees, created_at`

func scanInvitation(row interface{ Scan(...any) error }) (*domain.EventInvitation, error) {
	inv := &domain.EventInvitation{}
	err := row.Scan(&inv.ID, &inv.EventID, &inv.UserID, &inv.Email,
		&inv.WaivesQuestionnaire, &inv.WaivesPurchase, &inv.WaivesMembership,
		&inv.WaivesApplyDeadline, &inv.OverridesMaxAttendees, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.EventInvitation) error {
	query := `
		INSERT INTO event_invitations (event_id, user_id, email, waives_questionnaire, waives_purchase,
			waives_membership, waives_apply_deadline, overrides_max_attendees, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		inv.EventID, inv.UserID, inv.Email, inv.WaivesQuestionnaire, inv.WaivesPurchase,
		inv.WaivesMembership, inv.WaivesApplyDeadline, inv.OverridesMaxAttendees, inv.CreatedAt).
		Scan(&inv.ID)
}

func (r *invitationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM event_invitations
		WHERE event_id = $1 AND user_id = $2
	`
	return scanInvitation(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID string, search string, params domain.PaginationParams) ([]*domain.EventInvitation, int, error) {
	pattern := "%" + search + "%"

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_invitations WHERE event_id = $1 AND ($2 = '%%' OR email ILIKE $2)`,
		eventID, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + invitationColumns + `
		FROM event_invitations
		WHERE event_id = $1 AND ($2 = '%%' OR email ILIKE $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, pattern, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invs []*domain.EventInvitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, 0, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if invs == nil {
		invs = []*domain.EventInvitation{}
	}
	return invs, total, nil
}

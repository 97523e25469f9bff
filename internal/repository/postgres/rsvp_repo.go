package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventadmissions/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.EventRSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

const rsvpColumns = `id, event_id, user_id, guest_email, guest_name, status, created_at, updated_at`

func scanRSVP(row interface{ Scan(...any) error }) (*domain.EventRSVP, error) {
	rsvp := &domain.EventRSVP{}
	var userID, guestEmail, guestName sql.NullString
	err := row.Scan(&rsvp.ID, &rsvp.EventID, &userID, &guestEmail, &guestName,
		&rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	rsvp.UserID = userID.String
	rsvp.GuestEmail = guestEmail.String
	rsvp.GuestName = guestName.String
	return rsvp, nil
}

// ClaimSpot locks the event row for the duration of the count-then-insert so
// that at most MaxAttendees concurrent claims can commit. Going RSVPs and
// active tickets both count toward capacity; waitlisted RSVPs do not.
func (r *rsvpRepository) ClaimSpot(ctx context.Context, claim domain.SpotClaim) (*domain.EventRSVP, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var lockedID string
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM events WHERE id = $1 FOR UPDATE`, claim.EventID).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}

	status := domain.RSVPStatusGoing
	if claim.MaxAttendees > 0 && !claim.OverrideCapacity {
		var taken int
		countQuery := `
			SELECT
				(SELECT COUNT(*) FROM event_rsvps WHERE event_id = $1 AND status = $2) +
				(SELECT COUNT(*) FROM tickets WHERE event_id = $1 AND status = $3)
		`
		if err := tx.QueryRowContext(ctx, countQuery,
			claim.EventID, domain.RSVPStatusGoing, domain.TicketStatusActive).Scan(&taken); err != nil {
			return nil, fmt.Errorf("count attendees: %w", err)
		}
		if taken >= claim.MaxAttendees {
			if !claim.WaitlistOpen {
				return nil, domain.ErrEventFull
			}
			status = domain.RSVPStatusWaitlisted
		}
	}

	rsvp := &domain.EventRSVP{
		EventID:    claim.EventID,
		UserID:     claim.UserID,
		GuestEmail: claim.GuestEmail,
		GuestName:  claim.GuestName,
		Status:     status,
	}
	insertQuery := `
		INSERT INTO event_rsvps (event_id, user_id, guest_email, guest_name, status, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRowContext(ctx, insertQuery,
		claim.EventID, claim.UserID, claim.GuestEmail, claim.GuestName, status).
		Scan(&rsvp.ID, &rsvp.CreatedAt, &rsvp.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert rsvp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return rsvp, nil
}

func (r *rsvpRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRSVP, error) {
	query := `
		SELECT ` + rsvpColumns + `
		FROM event_rsvps
		WHERE event_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanRSVP(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

func (r *rsvpRepository) GetByEventAndGuestEmail(ctx context.Context, eventID, email string) (*domain.EventRSVP, error) {
	query := `
		SELECT ` + rsvpColumns + `
		FROM event_rsvps
		WHERE event_id = $1 AND guest_email = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanRSVP(r.DB.QueryRowContext(ctx, query, eventID, email))
}

func (r *rsvpRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.EventRSVP, error) {
	query := `
		UPDATE event_rsvps
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + rsvpColumns + `
	`
	return scanRSVP(r.DB.QueryRowContext(ctx, query, id, status))
}

func (r *rsvpRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.EventRSVP, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_rsvps WHERE event_id = $1`, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + rsvpColumns + `
		FROM event_rsvps
		WHERE event_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rsvps []*domain.EventRSVP
	for rows.Next() {
		rsvp, err := scanRSVP(rows)
		if err != nil {
			return nil, 0, err
		}
		rsvps = append(rsvps, rsvp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if rsvps == nil {
		rsvps = []*domain.EventRSVP{}
	}
	return rsvps, total, nil
}

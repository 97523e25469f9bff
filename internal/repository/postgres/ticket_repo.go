package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventadmissions/internal/domain"
)

type ticketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{
		DB: db,
	}
}

func (r *ticketRepository) CreateTier(ctx context.Context, tier *domain.TicketTier) error {
	query := `
		INSERT INTO ticket_tiers (event_id, name, price_cents, max_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		tier.EventID, tier.Name, tier.PriceCents, tier.MaxQuantity, tier.CreatedAt).
		Scan(&tier.ID)
}

func (r *ticketRepository) GetTierByID(ctx context.Context, id string) (*domain.TicketTier, error) {
	query := `
		SELECT id, event_id, name, price_cents, max_quantity, created_at
		FROM ticket_tiers
		WHERE id = $1
	`
	tier := &domain.TicketTier{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&tier.ID, &tier.EventID, &tier.Name, &tier.PriceCents, &tier.MaxQuantity, &tier.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return tier, nil
}

func (r *ticketRepository) ListTiersByEventID(ctx context.Context, eventID string) ([]*domain.TicketTier, error) {
	query := `
		SELECT id, event_id, name, price_cents, max_quantity, created_at
		FROM ticket_tiers
		WHERE event_id = $1
		ORDER BY price_cents ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []*domain.TicketTier
	for rows.Next() {
		tier := &domain.TicketTier{}
		if err := rows.Scan(&tier.ID, &tier.EventID, &tier.Name, &tier.PriceCents, &tier.MaxQuantity, &tier.CreatedAt); err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if tiers == nil {
		tiers = []*domain.TicketTier{}
	}
	return tiers, nil
}

// ClaimTicket locks the tier row for the duration of the count-then-insert so
// that at most MaxQuantity tickets can be issued against the tier.
func (r *ticketRepository) ClaimTicket(ctx context.Context, claim domain.TicketClaim) (*domain.Ticket, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var lockedID string
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM ticket_tiers WHERE id = $1 FOR UPDATE`, claim.TierID).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock tier: %w", err)
	}

	if claim.MaxQuantity > 0 {
		var issued int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tickets WHERE tier_id = $1 AND status = $2`,
			claim.TierID, domain.TicketStatusActive).Scan(&issued); err != nil {
			return nil, fmt.Errorf("count tickets: %w", err)
		}
		if issued >= claim.MaxQuantity {
			return nil, domain.ErrEventFull
		}
	}

	ticket := &domain.Ticket{
		EventID: claim.EventID,
		TierID:  claim.TierID,
		UserID:  claim.UserID,
		Status:  domain.TicketStatusActive,
	}
	insertQuery := `
		INSERT INTO tickets (event_id, tier_id, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, insertQuery,
		claim.EventID, claim.TierID, claim.UserID, domain.TicketStatusActive).
		Scan(&ticket.ID, &ticket.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return ticket, nil
}

func (r *ticketRepository) GetActiveByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Ticket, error) {
	query := `
		SELECT id, event_id, tier_id, user_id, status, created_at
		FROM tickets
		WHERE event_id = $1 AND user_id = $2 AND status = $3
		ORDER BY created_at DESC
		LIMIT 1
	`
	ticket := &domain.Ticket{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID, domain.TicketStatusActive).
		Scan(&ticket.ID, &ticket.EventID, &ticket.TierID, &ticket.UserID, &ticket.Status, &ticket.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

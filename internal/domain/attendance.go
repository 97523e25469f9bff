package domain

import (
	"context"
	"time"
)

// RSVP statuses. Only going RSVPs count toward capacity and toward the
// existing-attendance short-circuit.
const (
	RSVPStatusGoing      = "going"
	RSVPStatusWaitlisted = "waitlisted"
	RSVPStatusCancelled  = "cancelled"
)

// Ticket statuses.
const (
	TicketStatusActive    = "active"
	TicketStatusCancelled = "cancelled"
)

// EventRSVP represents a user's (or guest's) RSVP for an event.
// swagger:model EventRSVP
type EventRSVP struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id,omitempty"`
	GuestEmail string    `json:"guest_email,omitempty"`
	GuestName  string    `json:"guest_name,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TicketTier is a purchasable ticket class with its own capacity.
// swagger:model TicketTier
type TicketTier struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	PriceCents  int       `json:"price_cents"`
	MaxQuantity int       `json:"max_quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// Ticket is an issued ticket for an event tier.
// swagger:model Ticket
type Ticket struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	TierID    string    `json:"tier_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SpotClaim describes an atomic capacity claim against an event. The
// repository must lock the event row, count going RSVPs plus active tickets,
// and insert the RSVP only while the lock is held, so that at most
// MaxAttendees concurrent claims succeed.
type SpotClaim struct {
	EventID          string
	UserID           string
	GuestEmail       string
	GuestName        string
	MaxAttendees     int // 0 means unlimited
	OverrideCapacity bool
	WaitlistOpen     bool
}

// TicketClaim describes an atomic ticket issuance against a tier's quantity.
type TicketClaim struct {
	EventID     string
	TierID      string
	UserID      string
	MaxQuantity int // 0 means unlimited
}

// EventRSVPRepository defines storage operations for RSVPs.
type EventRSVPRepository interface {
	// ClaimSpot performs the locked check-then-insert described by SpotClaim.
	// Returns the created RSVP (going or waitlisted), or ErrEventFull when
	// capacity is exhausted and the waitlist is closed.
	ClaimSpot(ctx context.Context, claim SpotClaim) (*EventRSVP, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventRSVP, error)
	GetByEventAndGuestEmail(ctx context.Context, eventID, email string) (*EventRSVP, error)
	UpdateStatus(ctx context.Context, id, status string) (*EventRSVP, error)
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*EventRSVP, int, error)
}

// TicketRepository defines storage operations for ticket tiers and tickets.
type TicketRepository interface {
	CreateTier(ctx context.Context, tier *TicketTier) error
	GetTierByID(ctx context.Context, id string) (*TicketTier, error)
	ListTiersByEventID(ctx context.Context, eventID string) ([]*TicketTier, error)
	// ClaimTicket performs the locked check-then-insert described by
	// TicketClaim. Returns ErrEventFull when the tier is sold out.
	ClaimTicket(ctx context.Context, claim TicketClaim) (*Ticket, error)
	GetActiveByEventAndUser(ctx context.Context, eventID, userID string) (*Ticket, error)
}

// AttendanceService is the write side of admission: it re-checks eligibility
// and claims capacity atomically. The bool result is true when a new record
// was created, false when the caller was already attending (idempotent).
type AttendanceService interface {
	RSVP(ctx context.Context, eventID, userID string) (*EventRSVP, bool, error)
	CancelRSVP(ctx context.Context, eventID, userID string) (*EventRSVP, error)
	IssueTicket(ctx context.Context, eventID, tierID, userID string) (*Ticket, bool, error)
	GuestRSVP(ctx context.Context, eventID, email, name string) (*EventRSVP, bool, error)
	ListEventRSVPs(ctx context.Context, eventID, callerID string, params PaginationParams) ([]*EventRSVP, int, error)
}

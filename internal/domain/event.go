package domain

import (
	"context"
	"time"
)

// Event visibility levels. Visibility controls which gate applies in the
// eligibility pipeline.
const (
	VisibilityPublic      = "public"
	VisibilityPrivate     = "private"
	VisibilityMembersOnly = "members_only"
	VisibilityStaffOnly   = "staff_only"
)

// Event lifecycle statuses.
const (
	EventStatusDraft     = "draft"
	EventStatusOpen      = "open"
	EventStatusClosed    = "closed"
	EventStatusCancelled = "cancelled"
)

// Event represents an event hosted by an organization.
// swagger:model Event
type Event struct {
	ID                    string     `json:"id"`
	OrganizationID        string     `json:"organization_id"`
	Name                  string     `json:"name"`
	Slug                  string     `json:"slug"`
	Visibility            string     `json:"visibility"`
	Status                string     `json:"status"`
	StartsAt              time.Time  `json:"starts_at"`
	ApplyBefore           *time.Time `json:"apply_before"`
	RequiresTicket        bool       `json:"requires_ticket"`
	CanAttendWithoutLogin bool       `json:"can_attend_without_login"`
	MaxAttendees          int        `json:"max_attendees"`
	WaitlistOpen          bool       `json:"waitlist_open"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(organizationID, name, slug, visibility string, startsAt, createdAt, updatedAt time.Time) *Event {
	return &Event{
		OrganizationID: organizationID,
		Name:           name,
		Slug:           slug,
		Visibility:     visibility,
		Status:         EventStatusDraft,
		StartsAt:       startsAt,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// EffectiveApplyDeadline returns apply_before when set, otherwise the event start.
func (e *Event) EffectiveApplyDeadline() time.Time {
	if e.ApplyBefore != nil {
		return *e.ApplyBefore
	}
	return e.StartsAt
}

// RequiresInvitation reports whether attendance is invitation-gated.
// Private events always require one; so do events not open for registration.
func (e *Event) RequiresInvitation() bool {
	return e.Visibility == VisibilityPrivate || e.Status != EventStatusOpen
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	ListByOrganizationID(ctx context.Context, organizationID string, params PaginationParams) ([]*Event, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines organizer-facing event management operations.
type EventService interface {
	CreateEvent(ctx context.Context, callerID string, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListOrganizationEvents(ctx context.Context, organizationID string, params PaginationParams) ([]*Event, int, error)
	PublishEvent(ctx context.Context, eventID, callerID string) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, callerID string) error
	CreateTicketTier(ctx context.Context, eventID, callerID string, tier *TicketTier) error
	ListTicketTiers(ctx context.Context, eventID string) ([]*TicketTier, error)
}

package domain

import (
	"context"
	"time"
)

// Invitation request statuses.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// EventInvitation grants a user access to a restricted event. Waiver flags
// exempt the holder from individual eligibility gates; each flag is evaluated
// independently by the gate it names.
// swagger:model EventInvitation
type EventInvitation struct {
	ID                    string    `json:"id"`
	EventID               string    `json:"event_id"`
	UserID                string    `json:"user_id"`
	Email                 string    `json:"email"`
	WaivesQuestionnaire   bool      `json:"waives_questionnaire"`
	WaivesPurchase        bool      `json:"waives_purchase"`
	WaivesMembership      bool      `json:"waives_membership"`
	WaivesApplyDeadline   bool      `json:"waives_apply_deadline"`
	OverridesMaxAttendees bool      `json:"overrides_max_attendees"`
	CreatedAt             time.Time `json:"created_at"`
}

// EventInvitationRequest is a user's application for an invitation. Its
// existence, in any status, counts as "already applied" for deadline purposes.
// swagger:model EventInvitationRequest
type EventInvitationRequest struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	UserID    string     `json:"user_id"`
	Status    string     `json:"status"`
	DecidedBy string     `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// InvitationWaivers carries the per-gate waiver flags for a direct invitation.
type InvitationWaivers struct {
	Questionnaire bool
	Purchase      bool
	Membership    bool
	ApplyDeadline bool
	MaxAttendees  bool
}

// EventInvitationRepository defines storage operations for invitations.
type EventInvitationRepository interface {
	Create(ctx context.Context, inv *EventInvitation) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventInvitation, error)
	ListByEventID(ctx context.Context, eventID string, search string, params PaginationParams) ([]*EventInvitation, int, error)
}

// EventInvitationRequestRepository defines storage operations for invitation requests.
type EventInvitationRequestRepository interface {
	Create(ctx context.Context, req *EventInvitationRequest) error
	GetByID(ctx context.Context, id string) (*EventInvitationRequest, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventInvitationRequest, error)
	UpdateStatus(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) (*EventInvitationRequest, error)
	ListByEventID(ctx context.Context, eventID string, status string, params PaginationParams) ([]*EventInvitationRequest, int, error)
}

// InvitationService defines invitation request and grant operations.
type InvitationService interface {
	RequestInvitation(ctx context.Context, eventID, userID string) (*EventInvitationRequest, error)
	ApproveRequest(ctx context.Context, requestID, callerID string) (*EventInvitation, error)
	RejectRequest(ctx context.Context, requestID, callerID string) (*EventInvitationRequest, error)
	InviteDirect(ctx context.Context, eventID, callerID, userID string, waivers InvitationWaivers) (*EventInvitation, error)
	ListEventInvitations(ctx context.Context, eventID, callerID, search string, params PaginationParams) ([]*EventInvitation, int, error)
	ListEventRequests(ctx context.Context, eventID, callerID, status string, params PaginationParams) ([]*EventInvitationRequest, int, error)
}

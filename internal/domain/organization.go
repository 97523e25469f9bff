package domain

import (
	"context"
	"time"
)

// Membership statuses. Active and paused members keep members-only access;
// cancelled and banned members do not.
const (
	MemberStatusActive    = "active"
	MemberStatusPaused    = "paused"
	MemberStatusCancelled = "cancelled"
	MemberStatusBanned    = "banned"
)

// Organization represents a group that hosts events.
// swagger:model Organization
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewOrganization returns a new Organization. ID is typically set by the repository on create.
func NewOrganization(name, slug, ownerID string, createdAt, updatedAt time.Time) *Organization {
	return &Organization{
		Name:      name,
		Slug:      slug,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// OrganizationMember represents a user's membership in an organization.
// swagger:model OrganizationMember
type OrganizationMember struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	Status         string    `json:"status"`
	Tier           string    `json:"tier"`
	IsStaff        bool      `json:"is_staff"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CanAccessMembersOnly reports whether this membership satisfies the
// members-only gate. Paused members keep access; banned and cancelled do not.
func (m *OrganizationMember) CanAccessMembersOnly() bool {
	return m.Status == MemberStatusActive || m.Status == MemberStatusPaused
}

// OrganizationRepository defines the interface for organization storage.
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, id string) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
}

// MembershipRepository defines storage operations for organization members.
type MembershipRepository interface {
	Create(ctx context.Context, member *OrganizationMember) error
	GetByOrgAndUser(ctx context.Context, organizationID, userID string) (*OrganizationMember, error)
	UpdateStatus(ctx context.Context, organizationID, userID, status string) (*OrganizationMember, error)
	ListByOrganizationID(ctx context.Context, organizationID string, params PaginationParams) ([]*OrganizationMember, int, error)
}

// MembershipService defines membership management operations.
type MembershipService interface {
	CreateOrganization(ctx context.Context, name, slug, ownerID string) (*Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*Organization, error)
	JoinOrganization(ctx context.Context, organizationID, userID string) (*OrganizationMember, error)
	SetMemberStatus(ctx context.Context, organizationID, userID, status, callerID string) (*OrganizationMember, error)
	ListMembers(ctx context.Context, organizationID, callerID string, params PaginationParams) ([]*OrganizationMember, int, error)
	// IsStaff reports whether the user is the organization owner or a staff member.
	IsStaff(ctx context.Context, organizationID, userID string) (bool, error)
}

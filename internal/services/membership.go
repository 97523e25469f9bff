package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventadmissions/internal/domain"
)

type membershipService struct {
	orgRepo        domain.OrganizationRepository
	membershipRepo domain.MembershipRepository
	contextTimeout time.Duration
}

// NewMembershipService creates a MembershipService with the given repositories.
func NewMembershipService(orgRepo domain.OrganizationRepository, membershipRepo domain.MembershipRepository, timeout time.Duration) domain.MembershipService {
	return &membershipService{
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		contextTimeout: timeout,
	}
}

func (s *membershipService) CreateOrganization(ctx context.Context, name, slug, ownerID string) (*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(strings.ToLower(slug))
	if name == "" || slug == "" || ownerID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	org := domain.NewOrganization(name, slug, ownerID, now, now)
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

func (s *membershipService) GetOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}
	org, err := s.orgRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get organization by slug: %w", err)
	}
	return org, nil
}

// JoinOrganization creates an active membership. Idempotent: an existing
// membership in any status is returned unchanged; status transitions go
// through SetMemberStatus.
func (s *membershipService) JoinOrganization(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.orgRepo.GetByID(ctx, organizationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}

	if existing, err := s.membershipRepo.GetByOrgAndUser(ctx, organizationID, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get membership: %w", err)
	}

	now := time.Now()
	member := &domain.OrganizationMember{
		OrganizationID: organizationID,
		UserID:         userID,
		Status:         domain.MemberStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.membershipRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}
	return member, nil
}

func (s *membershipService) SetMemberStatus(ctx context.Context, organizationID, userID, status, callerID string) (*domain.OrganizationMember, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	switch status {
	case domain.MemberStatusActive, domain.MemberStatusPaused, domain.MemberStatusCancelled, domain.MemberStatusBanned:
	default:
		return nil, domain.ErrInvalidInput
	}

	staff, err := s.IsStaff(ctx, organizationID, callerID)
	if err != nil {
		return nil, err
	}
	if !staff {
		return nil, domain.ErrForbidden
	}

	updated, err := s.membershipRepo.UpdateStatus(ctx, organizationID, userID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update member status: %w", err)
	}
	return updated, nil
}

func (s *membershipService) ListMembers(ctx context.Context, organizationID, callerID string, params domain.PaginationParams) ([]*domain.OrganizationMember, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	staff, err := s.IsStaff(ctx, organizationID, callerID)
	if err != nil {
		return nil, 0, err
	}
	if !staff {
		return nil, 0, domain.ErrForbidden
	}

	members, total, err := s.membershipRepo.ListByOrganizationID(ctx, organizationID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	if members == nil {
		members = []*domain.OrganizationMember{}
	}
	return members, total, nil
}

// IsStaff reports whether the user is the organization owner or a staff member
// whose membership is in good standing.
func (s *membershipService) IsStaff(ctx context.Context, organizationID, userID string) (bool, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get organization: %w", err)
	}
	if org.OwnerID == userID {
		return true, nil
	}
	member, err := s.membershipRepo.GetByOrgAndUser(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get membership: %w", err)
	}
	return member.IsStaff && member.CanAccessMembersOnly(), nil
}

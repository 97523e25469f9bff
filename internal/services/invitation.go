package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventadmissions/internal/domain"
)

type invitationService struct {
	eventRepo      domain.EventRepository
	invitationRepo domain.EventInvitationRepository
	requestRepo    domain.EventInvitationRequestRepository
	userRepo       domain.UserRepository
	membership     domain.MembershipService
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewInvitationService creates an InvitationService with the given
// repositories and collaborators.
func NewInvitationService(
	eventRepo domain.EventRepository,
	invitationRepo domain.EventInvitationRepository,
	requestRepo domain.EventInvitationRequestRepository,
	userRepo domain.UserRepository,
	membership domain.MembershipService,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.InvitationService {
	return &invitationService{
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		requestRepo:    requestRepo,
		userRepo:       userRepo,
		membership:     membership,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// RequestInvitation records a pending application. The apply deadline gates
// fresh requests; existing requests are returned unchanged so the operation is
// idempotent.
func (s *invitationService) RequestInvitation(ctx context.Context, eventID, userID string) (*domain.EventInvitationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.RequiresInvitation() {
		return nil, fmt.Errorf("%w: event does not take invitation requests", domain.ErrInvalidInput)
	}

	if _, err := s.invitationRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, fmt.Errorf("%w: already invited", domain.ErrInvalidInput)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	if existing, err := s.requestRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get invitation request: %w", err)
	}

	if time.Now().After(event.EffectiveApplyDeadline()) {
		return nil, fmt.Errorf("%w: application deadline passed", domain.ErrInvalidInput)
	}

	req := &domain.EventInvitationRequest{
		EventID:   eventID,
		UserID:    userID,
		Status:    domain.RequestStatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create invitation request: %w", err)
	}
	return req, nil
}

// ApproveRequest marks the request approved and materializes the invitation.
// The approval email is best effort after the records are committed.
func (s *invitationService) ApproveRequest(ctx context.Context, requestID, callerID string) (*domain.EventInvitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, event, err := s.getRequestForReview(ctx, requestID, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if _, err := s.requestRepo.UpdateStatus(ctx, req.ID, domain.RequestStatusApproved, callerID, now); err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	inv := &domain.EventInvitation{
		EventID:   req.EventID,
		UserID:    req.UserID,
		CreatedAt: now,
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	if s.emailService != nil {
		if user, err := s.userRepo.GetByID(ctx, req.UserID); err == nil && user != nil {
			_ = s.emailService.SendInvitationApproved(ctx, &domain.InvitationApprovedEmailData{
				Email:     user.Email,
				EventName: event.Name,
			})
		}
	}
	return inv, nil
}

func (s *invitationService) RejectRequest(ctx context.Context, requestID, callerID string) (*domain.EventInvitationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, _, err := s.getRequestForReview(ctx, requestID, callerID)
	if err != nil {
		return nil, err
	}

	updated, err := s.requestRepo.UpdateStatus(ctx, req.ID, domain.RequestStatusRejected, callerID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	return updated, nil
}

// InviteDirect creates an invitation with the given waiver flags for a user,
// without requiring a prior request.
func (s *invitationService) InviteDirect(ctx context.Context, eventID, callerID, userID string, waivers domain.InvitationWaivers) (*domain.EventInvitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.requireOrganizer(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	if _, err := s.invitationRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, fmt.Errorf("%w: already invited", domain.ErrInvalidInput)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	inv := &domain.EventInvitation{
		EventID:               eventID,
		UserID:                userID,
		Email:                 user.Email,
		WaivesQuestionnaire:   waivers.Questionnaire,
		WaivesPurchase:        waivers.Purchase,
		WaivesMembership:      waivers.Membership,
		WaivesApplyDeadline:   waivers.ApplyDeadline,
		OverridesMaxAttendees: waivers.MaxAttendees,
		CreatedAt:             time.Now(),
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	if s.emailService != nil {
		_ = s.emailService.SendInvitation(ctx, &domain.InvitationEmailData{
			Email:     user.Email,
			EventName: event.Name,
		})
	}
	return inv, nil
}

func (s *invitationService) ListEventInvitations(ctx context.Context, eventID, callerID, search string, params domain.PaginationParams) ([]*domain.EventInvitation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return nil, 0, err
	}
	invs, total, err := s.invitationRepo.ListByEventID(ctx, eventID, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.EventInvitation{}
	}
	return invs, total, nil
}

func (s *invitationService) ListEventRequests(ctx context.Context, eventID, callerID, status string, params domain.PaginationParams) ([]*domain.EventInvitationRequest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return nil, 0, err
	}
	reqs, total, err := s.requestRepo.ListByEventID(ctx, eventID, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invitation requests: %w", err)
	}
	if reqs == nil {
		reqs = []*domain.EventInvitationRequest{}
	}
	return reqs, total, nil
}

func (s *invitationService) getRequestForReview(ctx context.Context, requestID, callerID string) (*domain.EventInvitationRequest, *domain.Event, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get invitation request: %w", err)
	}
	event, err := s.requireOrganizer(ctx, req.EventID, callerID)
	if err != nil {
		return nil, nil, err
	}
	if req.Status != domain.RequestStatusPending {
		return nil, nil, fmt.Errorf("%w: request already decided", domain.ErrInvalidInput)
	}
	return req, event, nil
}

// requireOrganizer loads the event and verifies the caller is staff of the
// hosting organization (or its owner).
func (s *invitationService) requireOrganizer(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	staff, err := s.membership.IsStaff(ctx, event.OrganizationID, callerID)
	if err != nil {
		return nil, err
	}
	if !staff {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

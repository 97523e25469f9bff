package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventadmissions/internal/domain"
)

type attendanceService struct {
	eventRepo      domain.EventRepository
	rsvpRepo       domain.EventRSVPRepository
	ticketRepo     domain.TicketRepository
	invitationRepo domain.EventInvitationRepository
	userRepo       domain.UserRepository
	eligibility    domain.EligibilityService
	membership     domain.MembershipService
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewAttendanceService creates an AttendanceService with the given
// repositories and collaborators.
func NewAttendanceService(
	eventRepo domain.EventRepository,
	rsvpRepo domain.EventRSVPRepository,
	ticketRepo domain.TicketRepository,
	invitationRepo domain.EventInvitationRepository,
	userRepo domain.UserRepository,
	eligibility domain.EligibilityService,
	membership domain.MembershipService,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.AttendanceService {
	return &attendanceService{
		eventRepo:      eventRepo,
		rsvpRepo:       rsvpRepo,
		ticketRepo:     ticketRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		eligibility:    eligibility,
		membership:     membership,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// RSVP re-checks eligibility immediately before claiming a spot. The claim
// itself runs under a row lock on the event, so two concurrent requests for
// the last slot cannot both succeed.
func (s *attendanceService) RSVP(ctx context.Context, eventID, userID string) (*domain.EventRSVP, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}
	if event.RequiresTicket {
		return nil, false, fmt.Errorf("%w: event requires a ticket", domain.ErrInvalidInput)
	}

	// Idempotent: an existing going or waitlisted RSVP is returned as-is.
	if existing, err := s.rsvpRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		if existing.Status != domain.RSVPStatusCancelled {
			return existing, false, nil
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get rsvp: %w", err)
	}

	decision, err := s.eligibility.CheckEligibility(ctx, userID, eventID)
	if err != nil {
		return nil, false, fmt.Errorf("check eligibility: %w", err)
	}
	if !decision.Allowed {
		return nil, false, &domain.NotEligibleError{Decision: decision}
	}

	override, err := s.invitationOverridesCapacity(ctx, eventID, userID)
	if err != nil {
		return nil, false, err
	}

	rsvp, err := s.rsvpRepo.ClaimSpot(ctx, domain.SpotClaim{
		EventID:          eventID,
		UserID:           userID,
		MaxAttendees:     event.MaxAttendees,
		OverrideCapacity: override,
		WaitlistOpen:     event.WaitlistOpen,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEventFull) {
			return nil, false, domain.ErrEventFull
		}
		return nil, false, fmt.Errorf("claim spot: %w", err)
	}

	s.sendConfirmation(ctx, event, userID, "", rsvp.Status == domain.RSVPStatusWaitlisted)
	return rsvp, true, nil
}

func (s *attendanceService) CancelRSVP(ctx context.Context, eventID, userID string) (*domain.EventRSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rsvp, err := s.rsvpRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rsvp: %w", err)
	}
	if rsvp.Status == domain.RSVPStatusCancelled {
		return rsvp, nil
	}
	updated, err := s.rsvpRepo.UpdateStatus(ctx, rsvp.ID, domain.RSVPStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel rsvp: %w", err)
	}
	return updated, nil
}

// IssueTicket claims a seat in the tier under a row lock on the tier, after an
// eligibility re-check. Idempotent per user and event.
func (s *attendanceService) IssueTicket(ctx context.Context, eventID, tierID, userID string) (*domain.Ticket, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}
	if !event.RequiresTicket {
		return nil, false, fmt.Errorf("%w: event does not sell tickets", domain.ErrInvalidInput)
	}

	tier, err := s.ticketRepo.GetTierByID(ctx, tierID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get tier: %w", err)
	}
	if tier.EventID != eventID {
		return nil, false, domain.ErrNotFound
	}

	if existing, err := s.ticketRepo.GetActiveByEventAndUser(ctx, eventID, userID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get ticket: %w", err)
	}

	decision, err := s.eligibility.CheckEligibility(ctx, userID, eventID)
	if err != nil {
		return nil, false, fmt.Errorf("check eligibility: %w", err)
	}
	if !decision.Allowed {
		return nil, false, &domain.NotEligibleError{Decision: decision}
	}

	ticket, err := s.ticketRepo.ClaimTicket(ctx, domain.TicketClaim{
		EventID:     eventID,
		TierID:      tierID,
		UserID:      userID,
		MaxQuantity: tier.MaxQuantity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEventFull) {
			return nil, false, domain.ErrEventFull
		}
		return nil, false, fmt.Errorf("claim ticket: %w", err)
	}

	s.sendConfirmation(ctx, event, userID, "", false)
	return ticket, true, nil
}

// GuestRSVP is the guest-checkout path for events that allow attending without
// login. The claim is keyed by normalized email.
func (s *attendanceService) GuestRSVP(ctx context.Context, eventID, email, name string) (*domain.EventRSVP, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, false, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}

	if existing, err := s.rsvpRepo.GetByEventAndGuestEmail(ctx, eventID, email); err == nil {
		if existing.Status != domain.RSVPStatusCancelled {
			return existing, false, nil
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get guest rsvp: %w", err)
	}

	decision, err := s.eligibility.CheckEligibility(ctx, "", eventID)
	if err != nil {
		return nil, false, fmt.Errorf("check eligibility: %w", err)
	}
	if !decision.Allowed {
		return nil, false, &domain.NotEligibleError{Decision: decision}
	}

	rsvp, err := s.rsvpRepo.ClaimSpot(ctx, domain.SpotClaim{
		EventID:      eventID,
		GuestEmail:   email,
		GuestName:    strings.TrimSpace(name),
		MaxAttendees: event.MaxAttendees,
		WaitlistOpen: event.WaitlistOpen,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEventFull) {
			return nil, false, domain.ErrEventFull
		}
		return nil, false, fmt.Errorf("claim spot: %w", err)
	}

	s.sendConfirmationTo(ctx, email, event.Name, rsvp.Status == domain.RSVPStatusWaitlisted)
	return rsvp, true, nil
}

// invitationOverridesCapacity reports whether the user holds an invitation
// with overrides_max_attendees for the event.
func (s *attendanceService) invitationOverridesCapacity(ctx context.Context, eventID, userID string) (bool, error) {
	inv, err := s.invitationRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get invitation: %w", err)
	}
	return inv.OverridesMaxAttendees, nil
}

// sendConfirmation emails the user after a committed claim. Delivery is best
// effort: a failed confirmation never rolls back the attendance record.
func (s *attendanceService) sendConfirmation(ctx context.Context, event *domain.Event, userID, email string, waitlisted bool) {
	if s.emailService == nil {
		return
	}
	if email == "" {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil || user == nil {
			return
		}
		email = user.Email
	}
	s.sendConfirmationTo(ctx, email, event.Name, waitlisted)
}

func (s *attendanceService) sendConfirmationTo(ctx context.Context, email, eventName string, waitlisted bool) {
	if s.emailService == nil {
		return
	}
	_ = s.emailService.SendAttendanceConfirmation(ctx, &domain.AttendanceConfirmationEmailData{
		Email:      email,
		EventName:  eventName,
		Waitlisted: waitlisted,
	})
}

// ListEventRSVPs returns the attendee list for organization staff.
func (s *attendanceService) ListEventRSVPs(ctx context.Context, eventID, callerID string, params domain.PaginationParams) ([]*domain.EventRSVP, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	staff, err := s.membership.IsStaff(ctx, event.OrganizationID, callerID)
	if err != nil {
		return nil, 0, err
	}
	if !staff {
		return nil, 0, domain.ErrForbidden
	}

	rsvps, total, err := s.rsvpRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list rsvps: %w", err)
	}
	if rsvps == nil {
		rsvps = []*domain.EventRSVP{}
	}
	return rsvps, total, nil
}

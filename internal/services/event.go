package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventadmissions/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	ticketRepo     domain.TicketRepository
	membership     domain.MembershipService
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, ticketRepo domain.TicketRepository, membership domain.MembershipService, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		ticketRepo:     ticketRepo,
		membership:     membership,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, callerID string, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Name = strings.TrimSpace(event.Name)
	event.Slug = strings.TrimSpace(strings.ToLower(event.Slug))
	if event.Name == "" || event.Slug == "" || event.OrganizationID == "" {
		return domain.ErrInvalidInput
	}
	switch event.Visibility {
	case domain.VisibilityPublic, domain.VisibilityPrivate, domain.VisibilityMembersOnly, domain.VisibilityStaffOnly:
	default:
		return domain.ErrInvalidInput
	}
	if event.StartsAt.IsZero() {
		return domain.ErrInvalidInput
	}
	if event.ApplyBefore != nil && event.ApplyBefore.After(event.StartsAt) {
		return fmt.Errorf("%w: apply deadline after event start", domain.ErrInvalidInput)
	}

	staff, err := s.membership.IsStaff(ctx, event.OrganizationID, callerID)
	if err != nil {
		return err
	}
	if !staff {
		return domain.ErrForbidden
	}

	event.Status = domain.EventStatusDraft
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListOrganizationEvents(ctx context.Context, organizationID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListByOrganizationID(ctx, organizationID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) PublishEvent(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.requireOrganizer(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}
	if event.Status == domain.EventStatusOpen {
		return event, nil
	}
	updated, err := s.eventRepo.UpdateStatus(ctx, eventID, domain.EventStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("publish event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) CreateTicketTier(ctx context.Context, eventID, callerID string, tier *domain.TicketTier) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tier.Name = strings.TrimSpace(tier.Name)
	if tier.Name == "" || tier.PriceCents < 0 || tier.MaxQuantity < 0 {
		return domain.ErrInvalidInput
	}
	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return err
	}

	tier.EventID = eventID
	tier.CreatedAt = time.Now()
	if err := s.ticketRepo.CreateTier(ctx, tier); err != nil {
		return fmt.Errorf("create ticket tier: %w", err)
	}
	return nil
}

func (s *eventService) ListTicketTiers(ctx context.Context, eventID string) ([]*domain.TicketTier, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	tiers, err := s.ticketRepo.ListTiersByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list ticket tiers: %w", err)
	}
	if tiers == nil {
		tiers = []*domain.TicketTier{}
	}
	return tiers, nil
}

func (s *eventService) requireOrganizer(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
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

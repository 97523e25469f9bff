package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventadmissions/internal/domain"
)

type eventServiceMocks struct {
	events     *mockEventRepo
	tickets    *mockTicketRepo
	membership *mockMembershipService
}

func newEventService(m eventServiceMocks) domain.EventService {
	if m.events == nil {
		m.events = &mockEventRepo{}
	}
	if m.tickets == nil {
		m.tickets = &mockTicketRepo{}
	}
	if m.membership == nil {
		m.membership = &mockMembershipService{}
	}
	return NewEventService(m.events, m.tickets, m.membership, 2*time.Second)
}

func TestEventService_CreateEvent(t *testing.T) {
	valid := func() *domain.Event {
		return &domain.Event{
			OrganizationID: testOrgID,
			Name:           "Summer Meetup",
			Slug:           "Summer-Meetup",
			Visibility:     domain.VisibilityPublic,
			StartsAt:       time.Now().Add(72 * time.Hour),
		}
	}

	t.Run("staff create a draft with a normalized slug", func(t *testing.T) {
		var created *domain.Event
		events := &mockEventRepo{
			CreateFn: func(_ context.Context, e *domain.Event) error {
				created = e
				return nil
			},
		}
		svc := newEventService(eventServiceMocks{events: events, membership: staffOnly(testStaffID)})

		err := svc.CreateEvent(context.Background(), testStaffID, valid())
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, domain.EventStatusDraft, created.Status)
		assert.Equal(t, "summer-meetup", created.Slug)
	})

	t.Run("non-staff forbidden", func(t *testing.T) {
		svc := newEventService(eventServiceMocks{membership: staffOnly(testStaffID)})
		err := svc.CreateEvent(context.Background(), testUserID, valid())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("apply deadline after start rejected", func(t *testing.T) {
		e := valid()
		late := e.StartsAt.Add(time.Hour)
		e.ApplyBefore = &late
		svc := newEventService(eventServiceMocks{membership: staffOnly(testStaffID)})
		err := svc.CreateEvent(context.Background(), testStaffID, e)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown visibility rejected", func(t *testing.T) {
		e := valid()
		e.Visibility = "secret"
		svc := newEventService(eventServiceMocks{membership: staffOnly(testStaffID)})
		err := svc.CreateEvent(context.Background(), testStaffID, e)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestEventService_PublishEvent(t *testing.T) {
	t.Run("draft becomes open", func(t *testing.T) {
		events := eventByID(testEvent(domain.VisibilityPublic, draft))
		events.UpdateStatusFn = func(_ context.Context, id, status string) (*domain.Event, error) {
			e := testEvent(domain.VisibilityPublic)
			e.Status = status
			return e, nil
		}
		svc := newEventService(eventServiceMocks{events: events, membership: staffOnly(testStaffID)})

		event, err := svc.PublishEvent(context.Background(), testEventID, testStaffID)
		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusOpen, event.Status)
	})

	t.Run("publishing an open event is a no-op", func(t *testing.T) {
		updates := 0
		events := eventByID(testEvent(domain.VisibilityPublic))
		events.UpdateStatusFn = func(_ context.Context, _, _ string) (*domain.Event, error) {
			updates++
			return nil, nil
		}
		svc := newEventService(eventServiceMocks{events: events, membership: staffOnly(testStaffID)})

		event, err := svc.PublishEvent(context.Background(), testEventID, testStaffID)
		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusOpen, event.Status)
		assert.Zero(t, updates)
	})

	t.Run("non-staff forbidden", func(t *testing.T) {
		svc := newEventService(eventServiceMocks{
			events:     eventByID(testEvent(domain.VisibilityPublic, draft)),
			membership: staffOnly(testStaffID),
		})
		_, err := svc.PublishEvent(context.Background(), testEventID, testUserID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestEventService_TicketTiers(t *testing.T) {
	t.Run("staff create a tier", func(t *testing.T) {
		var created *domain.TicketTier
		tickets := &mockTicketRepo{
			CreateTierFn: func(_ context.Context, tier *domain.TicketTier) error {
				created = tier
				return nil
			},
		}
		svc := newEventService(eventServiceMocks{
			events:     eventByID(testEvent(domain.VisibilityPublic)),
			tickets:    tickets,
			membership: staffOnly(testStaffID),
		})

		tier := &domain.TicketTier{Name: " General ", PriceCents: 2500, MaxQuantity: 100}
		err := svc.CreateTicketTier(context.Background(), testEventID, testStaffID, tier)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "General", created.Name)
		assert.Equal(t, testEventID, created.EventID)
	})

	t.Run("non-staff forbidden", func(t *testing.T) {
		svc := newEventService(eventServiceMocks{
			events:     eventByID(testEvent(domain.VisibilityPublic)),
			membership: staffOnly(testStaffID),
		})
		tier := &domain.TicketTier{Name: "General"}
		err := svc.CreateTicketTier(context.Background(), testEventID, testUserID, tier)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		svc := newEventService(eventServiceMocks{membership: staffOnly(testStaffID)})
		tier := &domain.TicketTier{Name: "General", MaxQuantity: -1}
		err := svc.CreateTicketTier(context.Background(), testEventID, testStaffID, tier)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("listing returns an empty slice for events without tiers", func(t *testing.T) {
		svc := newEventService(eventServiceMocks{events: eventByID(testEvent(domain.VisibilityPublic))})
		tiers, err := svc.ListTicketTiers(context.Background(), testEventID)
		require.NoError(t, err)
		require.NotNil(t, tiers)
		assert.Empty(t, tiers)
	})

	t.Run("listing for an unknown event", func(t *testing.T) {
		svc := newEventService(eventServiceMocks{})
		_, err := svc.ListTicketTiers(context.Background(), testEventID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

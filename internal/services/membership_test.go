package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventadmissions/internal/domain"
)

func newMembershipService(orgs *mockOrgRepo, members *mockMembershipRepo) domain.MembershipService {
	if orgs == nil {
		orgs = &mockOrgRepo{}
	}
	if members == nil {
		members = &mockMembershipRepo{}
	}
	return NewMembershipService(orgs, members, 2*time.Second)
}

func orgByID(org *domain.Organization) *mockOrgRepo {
	return &mockOrgRepo{
		GetByIDFn: func(_ context.Context, id string) (*domain.Organization, error) {
			if org != nil && org.ID == id {
				return org, nil
			}
			return nil, domain.ErrNotFound
		},
		GetBySlugFn: func(_ context.Context, slug string) (*domain.Organization, error) {
			if org != nil && org.Slug == slug {
				return org, nil
			}
			return nil, domain.ErrNotFound
		},
	}
}

func TestMembershipService_GetOrganizationBySlug(t *testing.T) {
	org := &domain.Organization{ID: testOrgID, Slug: "go-meetup", OwnerID: testStaffID}

	t.Run("slug is trimmed and lowercased before lookup", func(t *testing.T) {
		svc := newMembershipService(orgByID(org), nil)

		got, err := svc.GetOrganizationBySlug(context.Background(), "  Go-Meetup ")
		require.NoError(t, err)
		assert.Equal(t, testOrgID, got.ID)
	})

	t.Run("blank slug is invalid input", func(t *testing.T) {
		svc := newMembershipService(orgByID(org), nil)

		_, err := svc.GetOrganizationBySlug(context.Background(), "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown slug", func(t *testing.T) {
		svc := newMembershipService(orgByID(org), nil)

		_, err := svc.GetOrganizationBySlug(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMembershipService_JoinOrganization(t *testing.T) {
	org := &domain.Organization{ID: testOrgID, Slug: "go-meetup", OwnerID: testStaffID}

	t.Run("creates an active membership", func(t *testing.T) {
		var created *domain.OrganizationMember
		members := &mockMembershipRepo{
			CreateFn: func(_ context.Context, member *domain.OrganizationMember) error {
				created = member
				return nil
			},
		}
		svc := newMembershipService(orgByID(org), members)

		member, err := svc.JoinOrganization(context.Background(), testOrgID, testUserID)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, domain.MemberStatusActive, member.Status)
		assert.Equal(t, testUserID, created.UserID)
	})

	t.Run("rejoining returns the existing membership unchanged", func(t *testing.T) {
		creates := 0
		members := &mockMembershipRepo{
			GetByOrgAndUserFn: func(_ context.Context, _, _ string) (*domain.OrganizationMember, error) {
				return &domain.OrganizationMember{OrganizationID: testOrgID, UserID: testUserID, Status: domain.MemberStatusPaused}, nil
			},
			CreateFn: func(_ context.Context, _ *domain.OrganizationMember) error {
				creates++
				return nil
			},
		}
		svc := newMembershipService(orgByID(org), members)

		member, err := svc.JoinOrganization(context.Background(), testOrgID, testUserID)
		require.NoError(t, err)
		assert.Equal(t, domain.MemberStatusPaused, member.Status)
		assert.Zero(t, creates)
	})

	t.Run("unknown organization", func(t *testing.T) {
		svc := newMembershipService(orgByID(org), nil)

		_, err := svc.JoinOrganization(context.Background(), testEventID, testUserID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMembershipService_IsStaff(t *testing.T) {
	org := &domain.Organization{ID: testOrgID, Slug: "go-meetup", OwnerID: testStaffID}

	tests := []struct {
		name   string
		userID string
		member *domain.OrganizationMember
		want   bool
	}{
		{
			name:   "owner is staff without a membership row",
			userID: testStaffID,
			want:   true,
		},
		{
			name:   "active staff member",
			userID: testUserID,
			member: &domain.OrganizationMember{Status: domain.MemberStatusActive, IsStaff: true},
			want:   true,
		},
		{
			name:   "banned staff member loses access",
			userID: testUserID,
			member: &domain.OrganizationMember{Status: domain.MemberStatusBanned, IsStaff: true},
			want:   false,
		},
		{
			name:   "active non-staff member",
			userID: testUserID,
			member: &domain.OrganizationMember{Status: domain.MemberStatusActive},
			want:   false,
		},
		{
			name:   "no membership",
			userID: testUserID,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := &mockMembershipRepo{}
			if tt.member != nil {
				member := tt.member
				members.GetByOrgAndUserFn = func(_ context.Context, _, _ string) (*domain.OrganizationMember, error) {
					return member, nil
				}
			}
			svc := newMembershipService(orgByID(org), members)

			staff, err := svc.IsStaff(context.Background(), testOrgID, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, staff)
		})
	}
}

func TestMembershipService_SetMemberStatus(t *testing.T) {
	org := &domain.Organization{ID: testOrgID, Slug: "go-meetup", OwnerID: testStaffID}

	t.Run("staff can transition a member's status", func(t *testing.T) {
		var gotStatus string
		members := &mockMembershipRepo{
			UpdateStatusFn: func(_ context.Context, _, userID, status string) (*domain.OrganizationMember, error) {
				gotStatus = status
				return &domain.OrganizationMember{OrganizationID: testOrgID, UserID: userID, Status: status}, nil
			},
		}
		svc := newMembershipService(orgByID(org), members)

		member, err := svc.SetMemberStatus(context.Background(), testOrgID, testUserID, domain.MemberStatusBanned, testStaffID)
		require.NoError(t, err)
		assert.Equal(t, domain.MemberStatusBanned, gotStatus)
		assert.Equal(t, domain.MemberStatusBanned, member.Status)
	})

	t.Run("non-staff callers are forbidden", func(t *testing.T) {
		svc := newMembershipService(orgByID(org), nil)

		_, err := svc.SetMemberStatus(context.Background(), testOrgID, testUserID, domain.MemberStatusPaused, testUserID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc := newMembershipService(orgByID(org), nil)

		_, err := svc.SetMemberStatus(context.Background(), testOrgID, testUserID, "suspended", testStaffID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

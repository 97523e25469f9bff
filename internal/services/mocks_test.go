package services

import (
	"context"
	"time"

	"eventadmissions/internal/domain"
)

// Hand-rolled function-field mocks. Any func left nil behaves as "not found"
// for getters and as a no-op success for writes.

type mockEventRepo struct {
	CreateFn       func(ctx context.Context, event *domain.Event) error
	GetByIDFn      func(ctx context.Context, id string) (*domain.Event, error)
	GetBySlugFn    func(ctx context.Context, slug string) (*domain.Event, error)
	ListByOrgFn    func(ctx context.Context, organizationID string, params domain.PaginationParams) ([]*domain.Event, int, error)
	UpdateStatusFn func(ctx context.Context, id, status string) (*domain.Event, error)
	DeleteFn       func(ctx context.Context, id string) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, event)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.GetByIDFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if m.GetBySlugFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetBySlugFn(ctx, slug)
}

func (m *mockEventRepo) ListByOrganizationID(ctx context.Context, organizationID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if m.ListByOrgFn == nil {
		return nil, 0, nil
	}
	return m.ListByOrgFn(ctx, organizationID, params)
}

func (m *mockEventRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Event, error) {
	if m.UpdateStatusFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.UpdateStatusFn(ctx, id, status)
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

type mockOrgRepo struct {
	CreateFn    func(ctx context.Context, org *domain.Organization) error
	GetByIDFn   func(ctx context.Context, id string) (*domain.Organization, error)
	GetBySlugFn func(ctx context.Context, slug string) (*domain.Organization, error)
}

func (m *mockOrgRepo) Create(ctx context.Context, org *domain.Organization) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, org)
}

func (m *mockOrgRepo) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	if m.GetByIDFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockOrgRepo) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	if m.GetBySlugFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetBySlugFn(ctx, slug)
}

type mockMembershipRepo struct {
	CreateFn          func(ctx context.Context, member *domain.OrganizationMember) error
	GetByOrgAndUserFn func(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error)
	UpdateStatusFn    func(ctx context.Context, organizationID, userID, status string) (*domain.OrganizationMember, error)
	ListByOrgFn       func(ctx context.Context, organizationID string, params domain.PaginationParams) ([]*domain.OrganizationMember, int, error)
}

func (m *mockMembershipRepo) Create(ctx context.Context, member *domain.OrganizationMember) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, member)
}

func (m *mockMembershipRepo) GetByOrgAndUser(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error) {
	if m.GetByOrgAndUserFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByOrgAndUserFn(ctx, organizationID, userID)
}

func (m *mockMembershipRepo) UpdateStatus(ctx context.Context, organizationID, userID, status string) (*domain.OrganizationMember, error) {
	if m.UpdateStatusFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.UpdateStatusFn(ctx, organizationID, userID, status)
}

func (m *mockMembershipRepo) ListByOrganizationID(ctx context.Context, organizationID string, params domain.PaginationParams) ([]*domain.OrganizationMember, int, error) {
	if m.ListByOrgFn == nil {
		return nil, 0, nil
	}
	return m.ListByOrgFn(ctx, organizationID, params)
}

type mockInvitationRepo struct {
	CreateFn            func(ctx context.Context, inv *domain.EventInvitation) error
	GetByEventAndUserFn func(ctx context.Context, eventID, userID string) (*domain.EventInvitation, error)
	ListByEventIDFn     func(ctx context.Context, eventID, search string, params domain.PaginationParams) ([]*domain.EventInvitation, int, error)
}

func (m *mockInvitationRepo) Create(ctx context.Context, inv *domain.EventInvitation) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, inv)
}

func (m *mockInvitationRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventInvitation, error) {
	if m.GetByEventAndUserFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByEventAndUserFn(ctx, eventID, userID)
}

func (m *mockInvitationRepo) ListByEventID(ctx context.Context, eventID string, search string, params domain.PaginationParams) ([]*domain.EventInvitation, int, error) {
	if m.ListByEventIDFn == nil {
		return nil, 0, nil
	}
	return m.ListByEventIDFn(ctx, eventID, search, params)
}

type mockRequestRepo struct {
	CreateFn            func(ctx context.Context, req *domain.EventInvitationRequest) error
	GetByIDFn           func(ctx context.Context, id string) (*domain.EventInvitationRequest, error)
	GetByEventAndUserFn func(ctx context.Context, eventID, userID string) (*domain.EventInvitationRequest, error)
	UpdateStatusFn      func(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) (*domain.EventInvitationRequest, error)
	ListByEventIDFn     func(ctx context.Context, eventID, status string, params domain.PaginationParams) ([]*domain.EventInvitationRequest, int, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, req *domain.EventInvitationRequest) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, req)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id string) (*domain.EventInvitationRequest, error) {
	if m.GetByIDFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockRequestRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventInvitationRequest, error) {
	if m.GetByEventAndUserFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByEventAndUserFn(ctx, eventID, userID)
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) (*domain.EventInvitationRequest, error) {
	if m.UpdateStatusFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.UpdateStatusFn(ctx, id, status, decidedBy, decidedAt)
}

func (m *mockRequestRepo) ListByEventID(ctx context.Context, eventID, status string, params domain.PaginationParams) ([]*domain.EventInvitationRequest, int, error) {
	if m.ListByEventIDFn == nil {
		return nil, 0, nil
	}
	return m.ListByEventIDFn(ctx, eventID, status, params)
}

type mockQuestionnaireRepo struct {
	CreateQuestionnaireFn   func(ctx context.Context, q *domain.OrganizationQuestionnaire) error
	GetQuestionnaireByIDFn  func(ctx context.Context, id string) (*domain.OrganizationQuestionnaire, error)
	GetAdmissionByEventIDFn func(ctx context.Context, eventID string) (*domain.OrganizationQuestionnaire, error)
	CreateSubmissionFn      func(ctx context.Context, sub *domain.QuestionnaireSubmission) error
	GetSubmissionByIDFn     func(ctx context.Context, id string) (*domain.QuestionnaireSubmission, error)
	GetLatestSubmissionFn   func(ctx context.Context, questionnaireID, userID string) (*domain.QuestionnaireSubmission, error)
	CountSubmissionsFn      func(ctx context.Context, questionnaireID, userID string) (int, error)
	UpdateEvaluationFn      func(ctx context.Context, submissionID, status, evaluatedBy string, evaluatedAt time.Time) (*domain.QuestionnaireSubmission, error)
}

func (m *mockQuestionnaireRepo) CreateQuestionnaire(ctx context.Context, q *domain.OrganizationQuestionnaire) error {
	if m.CreateQuestionnaireFn == nil {
		return nil
	}
	return m.CreateQuestionnaireFn(ctx, q)
}

func (m *mockQuestionnaireRepo) GetQuestionnaireByID(ctx context.Context, id string) (*domain.OrganizationQuestionnaire, error) {
	if m.GetQuestionnaireByIDFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetQuestionnaireByIDFn(ctx, id)
}

func (m *mockQuestionnaireRepo) GetAdmissionByEventID(ctx context.Context, eventID string) (*domain.OrganizationQuestionnaire, error) {
	if m.GetAdmissionByEventIDFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetAdmissionByEventIDFn(ctx, eventID)
}

func (m *mockQuestionnaireRepo) CreateSubmission(ctx context.Context, sub *domain.QuestionnaireSubmission) error {
	if m.CreateSubmissionFn == nil {
		return nil
	}
	return m.CreateSubmissionFn(ctx, sub)
}

func (m *mockQuestionnaireRepo) GetSubmissionByID(ctx context.Context, id string) (*domain.QuestionnaireSubmission, error) {
	if m.GetSubmissionByIDFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetSubmissionByIDFn(ctx, id)
}

func (m *mockQuestionnaireRepo) GetLatestSubmission(ctx context.Context, questionnaireID, userID string) (*domain.QuestionnaireSubmission, error) {
	if m.GetLatestSubmissionFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetLatestSubmissionFn(ctx, questionnaireID, userID)
}

func (m *mockQuestionnaireRepo) CountSubmissions(ctx context.Context, questionnaireID, userID string) (int, error) {
	if m.CountSubmissionsFn == nil {
		return 0, nil
	}
	return m.CountSubmissionsFn(ctx, questionnaireID, userID)
}

func (m *mockQuestionnaireRepo) UpdateEvaluation(ctx context.Context, submissionID, status, evaluatedBy string, evaluatedAt time.Time) (*domain.QuestionnaireSubmission, error) {
	if m.UpdateEvaluationFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.UpdateEvaluationFn(ctx, submissionID, status, evaluatedBy, evaluatedAt)
}

type mockRSVPRepo struct {
	ClaimSpotFn               func(ctx context.Context, claim domain.SpotClaim) (*domain.EventRSVP, error)
	GetByEventAndUserFn       func(ctx context.Context, eventID, userID string) (*domain.EventRSVP, error)
	GetByEventAndGuestEmailFn func(ctx context.Context, eventID, email string) (*domain.EventRSVP, error)
	UpdateStatusFn            func(ctx context.Context, id, status string) (*domain.EventRSVP, error)
	ListByEventIDFn           func(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.EventRSVP, int, error)
}

func (m *mockRSVPRepo) ClaimSpot(ctx context.Context, claim domain.SpotClaim) (*domain.EventRSVP, error) {
	if m.ClaimSpotFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.ClaimSpotFn(ctx, claim)
}

func (m *mockRSVPRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRSVP, error) {
	if m.GetByEventAndUserFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByEventAndUserFn(ctx, eventID, userID)
}

func (m *mockRSVPRepo) GetByEventAndGuestEmail(ctx context.Context, eventID, email string) (*domain.EventRSVP, error) {
	if m.GetByEventAndGuestEmailFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByEventAndGuestEmailFn(ctx, eventID, email)
}

func (m *mockRSVPRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.EventRSVP, error) {
	if m.UpdateStatusFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.UpdateStatusFn(ctx, id, status)
}

func (m *mockRSVPRepo) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.EventRSVP, int, error) {
	if m.ListByEventIDFn == nil {
		return nil, 0, nil
	}
	return m.ListByEventIDFn(ctx, eventID, params)
}

type mockTicketRepo struct {
	CreateTierFn              func(ctx context.Context, tier *domain.TicketTier) error
	GetTierByIDFn             func(ctx context.Context, id string) (*domain.TicketTier, error)
	ListTiersByEventIDFn      func(ctx context.Context, eventID string) ([]*domain.TicketTier, error)
	ClaimTicketFn             func(ctx context.Context, claim domain.TicketClaim) (*domain.Ticket, error)
	GetActiveByEventAndUserFn func(ctx context.Context, eventID, userID string) (*domain.Ticket, error)
}

func (m *mockTicketRepo) CreateTier(ctx context.Context, tier *domain.TicketTier) error {
	if m.CreateTierFn == nil {
		return nil
	}
	return m.CreateTierFn(ctx, tier)
}

func (m *mockTicketRepo) GetTierByID(ctx context.Context, id string) (*domain.TicketTier, error) {
	if m.GetTierByIDFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetTierByIDFn(ctx, id)
}

func (m *mockTicketRepo) ListTiersByEventID(ctx context.Context, eventID string) ([]*domain.TicketTier, error) {
	if m.ListTiersByEventIDFn == nil {
		return nil, nil
	}
	return m.ListTiersByEventIDFn(ctx, eventID)
}

func (m *mockTicketRepo) ClaimTicket(ctx context.Context, claim domain.TicketClaim) (*domain.Ticket, error) {
	if m.ClaimTicketFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.ClaimTicketFn(ctx, claim)
}

func (m *mockTicketRepo) GetActiveByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Ticket, error) {
	if m.GetActiveByEventAndUserFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetActiveByEventAndUserFn(ctx, eventID, userID)
}

type mockUserRepo struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id string) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByEmailFn(ctx, email)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, id)
}

type mockEligibilityService struct {
	CheckFn func(ctx context.Context, userID, eventID string) (*domain.Eligibility, error)
}

func (m *mockEligibilityService) CheckEligibility(ctx context.Context, userID, eventID string) (*domain.Eligibility, error) {
	if m.CheckFn == nil {
		return domain.Allowed(), nil
	}
	return m.CheckFn(ctx, userID, eventID)
}

type mockMembershipService struct {
	CreateOrganizationFn    func(ctx context.Context, name, slug, ownerID string) (*domain.Organization, error)
	GetOrganizationBySlugFn func(ctx context.Context, slug string) (*domain.Organization, error)
	JoinOrganizationFn      func(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error)
	SetMemberStatusFn       func(ctx context.Context, organizationID, userID, status, callerID string) (*domain.OrganizationMember, error)
	ListMembersFn           func(ctx context.Context, organizationID, callerID string, params domain.PaginationParams) ([]*domain.OrganizationMember, int, error)
	IsStaffFn               func(ctx context.Context, organizationID, userID string) (bool, error)
}

func (m *mockMembershipService) CreateOrganization(ctx context.Context, name, slug, ownerID string) (*domain.Organization, error) {
	if m.CreateOrganizationFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.CreateOrganizationFn(ctx, name, slug, ownerID)
}

func (m *mockMembershipService) GetOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	if m.GetOrganizationBySlugFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetOrganizationBySlugFn(ctx, slug)
}

func (m *mockMembershipService) JoinOrganization(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error) {
	if m.JoinOrganizationFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.JoinOrganizationFn(ctx, organizationID, userID)
}

func (m *mockMembershipService) SetMemberStatus(ctx context.Context, organizationID, userID, status, callerID string) (*domain.OrganizationMember, error) {
	if m.SetMemberStatusFn == nil {
		return nil, domain.ErrNotFound
	}
	return m.SetMemberStatusFn(ctx, organizationID, userID, status, callerID)
}

func (m *mockMembershipService) ListMembers(ctx context.Context, organizationID, callerID string, params domain.PaginationParams) ([]*domain.OrganizationMember, int, error) {
	if m.ListMembersFn == nil {
		return nil, 0, nil
	}
	return m.ListMembersFn(ctx, organizationID, callerID, params)
}

func (m *mockMembershipService) IsStaff(ctx context.Context, organizationID, userID string) (bool, error) {
	if m.IsStaffFn == nil {
		return false, nil
	}
	return m.IsStaffFn(ctx, organizationID, userID)
}

type mockEmailService struct {
	welcome     []*domain.WelcomeMessageEmailData
	invitations []*domain.InvitationEmailData
	approved    []*domain.InvitationApprovedEmailData
	attendance  []*domain.AttendanceConfirmationEmailData
}

func (m *mockEmailService) SendWelcomeMessage(_ context.Context, data *domain.WelcomeMessageEmailData) error {
	m.welcome = append(m.welcome, data)
	return nil
}

func (m *mockEmailService) SendInvitation(_ context.Context, data *domain.InvitationEmailData) error {
	m.invitations = append(m.invitations, data)
	return nil
}

func (m *mockEmailService) SendInvitationApproved(_ context.Context, data *domain.InvitationApprovedEmailData) error {
	m.approved = append(m.approved, data)
	return nil
}

func (m *mockEmailService) SendAttendanceConfirmation(_ context.Context, data *domain.AttendanceConfirmationEmailData) error {
	m.attendance = append(m.attendance, data)
	return nil
}

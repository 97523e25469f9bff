package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventadmissions/internal/domain"
)

type eligibilityService struct {
	eventRepo         domain.EventRepository
	orgRepo           domain.OrganizationRepository
	membershipRepo    domain.MembershipRepository
	invitationRepo    domain.EventInvitationRepository
	requestRepo       domain.EventInvitationRequestRepository
	questionnaireRepo domain.QuestionnaireRepository
	rsvpRepo          domain.EventRSVPRepository
	ticketRepo        domain.TicketRepository
}

// NewEligibilityService creates an EligibilityService with the given repositories.
func NewEligibilityService(
	eventRepo domain.EventRepository,
	orgRepo domain.OrganizationRepository,
	membershipRepo domain.MembershipRepository,
	invitationRepo domain.EventInvitationRepository,
	requestRepo domain.EventInvitationRequestRepository,
	questionnaireRepo domain.QuestionnaireRepository,
	rsvpRepo domain.EventRSVPRepository,
	ticketRepo domain.TicketRepository,
) domain.EligibilityService {
	return &eligibilityService{
		eventRepo:         eventRepo,
		orgRepo:           orgRepo,
		membershipRepo:    membershipRepo,
		invitationRepo:    invitationRepo,
		requestRepo:       requestRepo,
		questionnaireRepo: questionnaireRepo,
		rsvpRepo:          rsvpRepo,
		ticketRepo:        ticketRepo,
	}
}

// CheckEligibility evaluates the admission gates in order; the first gate that
// blocks determines the result. It reads current state only and never mutates.
func (s *eligibilityService) CheckEligibility(ctx context.Context, userID, eventID string) (*domain.Eligibility, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if userID == "" {
		return s.checkGuest(ctx, event)
	}

	// Existing attendance short-circuits every other gate: re-checks for a
	// user who already holds a spot must stay idempotent.
	attending, err := s.alreadyAttending(ctx, event.ID, userID)
	if err != nil {
		return nil, err
	}
	if attending {
		return domain.Allowed(), nil
	}

	inv, err := s.findInvitation(ctx, event.ID, userID)
	if err != nil {
		return nil, err
	}
	member, err := s.findMember(ctx, event.OrganizationID, userID)
	if err != nil {
		return nil, err
	}

	if event.Visibility == domain.VisibilityStaffOnly {
		staff, err := s.isOrgStaff(ctx, event.OrganizationID, userID, member)
		if err != nil {
			return nil, err
		}
		if !staff {
			return domain.Blocked(domain.ReasonStaffOnly, ""), nil
		}
	}

	if event.RequiresInvitation() && inv == nil {
		if res, err := s.invitationGate(ctx, event, userID); err != nil || res != nil {
			return res, err
		}
	}

	if event.Visibility == domain.VisibilityMembersOnly && (inv == nil || !inv.WaivesMembership) {
		if member == nil || !member.CanAccessMembersOnly() {
			return domain.Blocked(domain.ReasonMembershipRequired, domain.StepJoinOrganization), nil
		}
	}

	if res, err := s.questionnaireGate(ctx, event, userID, inv, member); err != nil || res != nil {
		return res, err
	}

	return domain.Allowed(), nil
}

// invitationGate handles users without an invitation on invitation-required
// events. Any existing request, whatever its status, exempts the user from the
// deadline gate; the request's outcome then decides.
func (s *eligibilityService) invitationGate(ctx context.Context, event *domain.Event, userID string) (*domain.Eligibility, error) {
	req, err := s.findRequest(ctx, event.ID, userID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		if time.Now().After(event.EffectiveApplyDeadline()) {
			return domain.Blocked(domain.ReasonApplicationDeadlinePassed, ""), nil
		}
		return domain.Blocked(domain.ReasonRequiresInvitation, domain.StepRequestInvitation), nil
	}
	switch req.Status {
	case domain.RequestStatusPending:
		return domain.Blocked(domain.ReasonInvitationRequestPending, domain.StepWaitForInvitationApproval), nil
	case domain.RequestStatusRejected:
		return domain.Blocked(domain.ReasonInvitationRequestRejected, ""), nil
	}
	// Approved requests are materialized as invitations; if the invitation
	// row is not visible yet, the approval still passes the gate.
	return nil, nil
}

// questionnaireGate applies the admission questionnaire, if one is linked to
// the event and the user is not exempt. An approved evaluation persists and is
// never deadline-blocked; fresh and retake attempts are.
func (s *eligibilityService) questionnaireGate(ctx context.Context, event *domain.Event, userID string, inv *domain.EventInvitation, member *domain.OrganizationMember) (*domain.Eligibility, error) {
	q, err := s.questionnaireRepo.GetAdmissionByEventID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admission questionnaire: %w", err)
	}

	if inv != nil && inv.WaivesQuestionnaire {
		return nil, nil
	}
	if q.MembersExempt && member != nil && member.CanAccessMembersOnly() {
		return nil, nil
	}

	deadlinePassed := time.Now().After(event.EffectiveApplyDeadline())
	if inv != nil && inv.WaivesApplyDeadline {
		deadlinePassed = false
	}

	sub, err := s.findLatestSubmission(ctx, q.ID, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		if deadlinePassed {
			return domain.Blocked(domain.ReasonApplicationDeadlinePassed, ""), nil
		}
		return domain.Blocked(domain.ReasonQuestionnaireRequired, domain.StepTakeQuestionnaire), nil
	}

	switch sub.EvaluationStatus {
	case domain.EvaluationApproved:
		return nil, nil
	case domain.EvaluationPendingReview:
		return domain.Blocked(domain.ReasonQuestionnairePendingReview, domain.StepWaitForEvaluation), nil
	}

	// Rejected. Exhausted attempts are terminal regardless of the deadline:
	// the rejection is strictly more informative than a deadline the user
	// could not have beaten anyway.
	attempts, err := s.questionnaireRepo.CountSubmissions(ctx, q.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	if q.MaxAttempts > 0 && attempts >= q.MaxAttempts {
		return domain.Blocked(domain.ReasonQuestionnaireRejected, ""), nil
	}
	if deadlinePassed {
		return domain.Blocked(domain.ReasonApplicationDeadlinePassed, ""), nil
	}
	return domain.Blocked(domain.ReasonQuestionnaireRequired, domain.StepRetakeQuestionnaire), nil
}

// checkGuest evaluates anonymous access. Guests pass only when the event
// explicitly allows attending without login and no gate requiring identity
// (invitation, membership, questionnaire) applies.
func (s *eligibilityService) checkGuest(ctx context.Context, event *domain.Event) (*domain.Eligibility, error) {
	if !event.CanAttendWithoutLogin {
		return domain.Blocked(domain.ReasonLoginRequired, domain.StepLogIn), nil
	}
	if event.RequiresInvitation() || event.Visibility != domain.VisibilityPublic {
		return domain.Blocked(domain.ReasonLoginRequired, domain.StepLogIn), nil
	}
	_, err := s.questionnaireRepo.GetAdmissionByEventID(ctx, event.ID)
	if err == nil {
		return domain.Blocked(domain.ReasonLoginRequired, domain.StepLogIn), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get admission questionnaire: %w", err)
	}
	return domain.Allowed(), nil
}

func (s *eligibilityService) alreadyAttending(ctx context.Context, eventID, userID string) (bool, error) {
	if _, err := s.ticketRepo.GetActiveByEventAndUser(ctx, eventID, userID); err == nil {
		return true, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("get ticket: %w", err)
	}
	rsvp, err := s.rsvpRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get rsvp: %w", err)
	}
	return rsvp.Status == domain.RSVPStatusGoing, nil
}

func (s *eligibilityService) isOrgStaff(ctx context.Context, organizationID, userID string, member *domain.OrganizationMember) (bool, error) {
	if member != nil && member.IsStaff && member.CanAccessMembersOnly() {
		return true, nil
	}
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get organization: %w", err)
	}
	return org.OwnerID == userID, nil
}

func (s *eligibilityService) findInvitation(ctx context.Context, eventID, userID string) (*domain.EventInvitation, error) {
	inv, err := s.invitationRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil
}

func (s *eligibilityService) findRequest(ctx context.Context, eventID, userID string) (*domain.EventInvitationRequest, error) {
	req, err := s.requestRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation request: %w", err)
	}
	return req, nil
}

func (s *eligibilityService) findMember(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error) {
	member, err := s.membershipRepo.GetByOrgAndUser(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return member, nil
}

func (s *eligibilityService) findLatestSubmission(ctx context.Context, questionnaireID, userID string) (*domain.QuestionnaireSubmission, error) {
	sub, err := s.questionnaireRepo.GetLatestSubmission(ctx, questionnaireID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest submission: %w", err)
	}
	return sub, nil
}

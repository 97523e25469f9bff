package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventadmissions/internal/domain"
)

type questionnaireService struct {
	questionnaireRepo domain.QuestionnaireRepository
	eventRepo         domain.EventRepository
	invitationRepo    domain.EventInvitationRepository
	membership        domain.MembershipService
	contextTimeout    time.Duration
}

// NewQuestionnaireService creates a QuestionnaireService with the given
// repositories and collaborators.
func NewQuestionnaireService(
	questionnaireRepo domain.QuestionnaireRepository,
	eventRepo domain.EventRepository,
	invitationRepo domain.EventInvitationRepository,
	membership domain.MembershipService,
	timeout time.Duration,
) domain.QuestionnaireService {
	return &questionnaireService{
		questionnaireRepo: questionnaireRepo,
		eventRepo:         eventRepo,
		invitationRepo:    invitationRepo,
		membership:        membership,
		contextTimeout:    timeout,
	}
}

func (s *questionnaireService) CreateQuestionnaire(ctx context.Context, callerID string, q *domain.OrganizationQuestionnaire) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	q.Name = strings.TrimSpace(q.Name)
	if q.Name == "" || q.OrganizationID == "" || q.EventID == "" {
		return domain.ErrInvalidInput
	}
	if q.Type != domain.QuestionnaireTypeAdmission && q.Type != domain.QuestionnaireTypeFeedback {
		return domain.ErrInvalidInput
	}
	staff, err := s.membership.IsStaff(ctx, q.OrganizationID, callerID)
	if err != nil {
		return err
	}
	if !staff {
		return domain.ErrForbidden
	}

	q.CreatedAt = time.Now()
	if err := s.questionnaireRepo.CreateQuestionnaire(ctx, q); err != nil {
		return fmt.Errorf("create questionnaire: %w", err)
	}
	return nil
}

// SubmitAdmission records an attempt. The same effective-deadline and waiver
// rules as the eligibility engine gate fresh attempts; max_attempts bounds the
// total number of submissions.
func (s *questionnaireService) SubmitAdmission(ctx context.Context, questionnaireID, userID, answers string) (*domain.QuestionnaireSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	q, err := s.questionnaireRepo.GetQuestionnaireByID(ctx, questionnaireID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get questionnaire: %w", err)
	}
	if q.Type != domain.QuestionnaireTypeAdmission {
		return nil, fmt.Errorf("%w: not an admission questionnaire", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, q.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if latest, err := s.questionnaireRepo.GetLatestSubmission(ctx, questionnaireID, userID); err == nil {
		switch latest.EvaluationStatus {
		case domain.EvaluationPendingReview:
			return nil, fmt.Errorf("%w: submission awaiting review", domain.ErrInvalidInput)
		case domain.EvaluationApproved:
			return nil, fmt.Errorf("%w: already approved", domain.ErrInvalidInput)
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get latest submission: %w", err)
	}

	if q.MaxAttempts > 0 {
		attempts, err := s.questionnaireRepo.CountSubmissions(ctx, questionnaireID, userID)
		if err != nil {
			return nil, fmt.Errorf("count submissions: %w", err)
		}
		if attempts >= q.MaxAttempts {
			return nil, fmt.Errorf("%w: no attempts remaining", domain.ErrForbidden)
		}
	}

	deadlinePassed := time.Now().After(event.EffectiveApplyDeadline())
	if deadlinePassed {
		inv, err := s.invitationRepo.GetByEventAndUser(ctx, event.ID, userID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get invitation: %w", err)
		}
		if err != nil || !inv.WaivesApplyDeadline {
			return nil, fmt.Errorf("%w: application deadline passed", domain.ErrForbidden)
		}
	}

	sub := &domain.QuestionnaireSubmission{
		QuestionnaireID:  questionnaireID,
		UserID:           userID,
		Answers:          answers,
		EvaluationStatus: domain.EvaluationPendingReview,
		CreatedAt:        time.Now(),
	}
	if err := s.questionnaireRepo.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return sub, nil
}

func (s *questionnaireService) Evaluate(ctx context.Context, submissionID, callerID, status string) (*domain.QuestionnaireSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != domain.EvaluationApproved && status != domain.EvaluationRejected {
		return nil, domain.ErrInvalidInput
	}

	sub, err := s.questionnaireRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	q, err := s.questionnaireRepo.GetQuestionnaireByID(ctx, sub.QuestionnaireID)
	if err != nil {
		return nil, fmt.Errorf("get questionnaire: %w", err)
	}
	staff, err := s.membership.IsStaff(ctx, q.OrganizationID, callerID)
	if err != nil {
		return nil, err
	}
	if !staff {
		return nil, domain.ErrForbidden
	}

	updated, err := s.questionnaireRepo.UpdateEvaluation(ctx, submissionID, status, callerID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("update evaluation: %w", err)
	}
	return updated, nil
}

package domain

import (
	"context"
	"time"
)

// Questionnaire types. Only admission questionnaires participate in
// eligibility gating.
const (
	QuestionnaireTypeAdmission = "admission"
	QuestionnaireTypeFeedback  = "feedback"
)

// Evaluation statuses for questionnaire submissions.
const (
	EvaluationPendingReview = "pending_review"
	EvaluationApproved      = "approved"
	EvaluationRejected      = "rejected"
)

// OrganizationQuestionnaire links a questionnaire to an event. MembersExempt
// exempts active and paused organization members from the admission gate.
// swagger:model OrganizationQuestionnaire
type OrganizationQuestionnaire struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	EventID        string    `json:"event_id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	MembersExempt  bool      `json:"members_exempt"`
	MaxAttempts    int       `json:"max_attempts"`
	CreatedAt      time.Time `json:"created_at"`
}

// QuestionnaireSubmission is a user's attempt at a questionnaire together with
// its evaluation outcome. EvaluationStatus starts as pending_review.
// swagger:model QuestionnaireSubmission
type QuestionnaireSubmission struct {
	ID               string     `json:"id"`
	QuestionnaireID  string     `json:"questionnaire_id"`
	UserID           string     `json:"user_id"`
	Answers          string     `json:"answers"`
	EvaluationStatus string     `json:"evaluation_status"`
	EvaluatedBy      string     `json:"evaluated_by,omitempty"`
	EvaluatedAt      *time.Time `json:"evaluated_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// QuestionnaireRepository defines storage operations for questionnaires and submissions.
type QuestionnaireRepository interface {
	CreateQuestionnaire(ctx context.Context, q *OrganizationQuestionnaire) error
	GetQuestionnaireByID(ctx context.Context, id string) (*OrganizationQuestionnaire, error)
	// GetAdmissionByEventID returns the admission questionnaire linked to the
	// event, or ErrNotFound when the event has none.
	GetAdmissionByEventID(ctx context.Context, eventID string) (*OrganizationQuestionnaire, error)
	CreateSubmission(ctx context.Context, sub *QuestionnaireSubmission) error
	GetSubmissionByID(ctx context.Context, id string) (*QuestionnaireSubmission, error)
	// GetLatestSubmission returns the user's most recent submission for the
	// questionnaire, or ErrNotFound when the user has never submitted.
	GetLatestSubmission(ctx context.Context, questionnaireID, userID string) (*QuestionnaireSubmission, error)
	CountSubmissions(ctx context.Context, questionnaireID, userID string) (int, error)
	UpdateEvaluation(ctx context.Context, submissionID, status, evaluatedBy string, evaluatedAt time.Time) (*QuestionnaireSubmission, error)
}

// QuestionnaireService defines admission questionnaire operations.
type QuestionnaireService interface {
	CreateQuestionnaire(ctx context.Context, callerID string, q *OrganizationQuestionnaire) error
	SubmitAdmission(ctx context.Context, questionnaireID, userID, answers string) (*QuestionnaireSubmission, error)
	Evaluate(ctx context.Context, submissionID, callerID, status string) (*QuestionnaireSubmission, error)
}

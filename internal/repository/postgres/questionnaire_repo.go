package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventadmissions/internal/domain"
)

type questionnaireRepository struct {
	DB *sql.DB
}

func NewQuestionnaireRepository(db *sql.DB) domain.QuestionnaireRepository {
	return &questionnaireRepository{
		DB: db,
	}
}

const questionnaireColumns = `id, organization_id, event_id, name, type, members_exempt, max_attempts, created_at`

func scanQuestionnaire(row interface{ Scan(...any) error }) (*domain.OrganizationQuestionnaire, error) {
	q := &domain.OrganizationQuestionnaire{}
	err := row.Scan(&q.ID, &q.OrganizationID, &q.EventID, &q.Name, &q.Type, &q.MembersExempt, &q.MaxAttempts, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

const submissionColumns = `id, questionnaire_id, user_id, answers, evaluation_status, evaluated_by, evaluated_at, created_at`

func scanSubmission(row interface{ Scan(...any) error }) (*domain.QuestionnaireSubmission, error) {
	sub := &domain.QuestionnaireSubmission{}
	var evaluatedBy sql.NullString
	err := row.Scan(&sub.ID, &sub.QuestionnaireID, &sub.UserID, &sub.Answers,
		&sub.EvaluationStatus, &evaluatedBy, &sub.EvaluatedAt, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	sub.EvaluatedBy = evaluatedBy.String
	return sub, nil
}

func (r *questionnaireRepository) CreateQuestionnaire(ctx context.Context, q *domain.OrganizationQuestionnaire) error {
	query := `
		INSERT INTO organization_questionnaires (organization_id, event_id, name, type, members_exempt, max_attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		q.OrganizationID, q.EventID, q.Name, q.Type, q.MembersExempt, q.MaxAttempts, q.CreatedAt).
		Scan(&q.ID)
}

func (r *questionnaireRepository) GetQuestionnaireByID(ctx context.Context, id string) (*domain.OrganizationQuestionnaire, error) {
	query := `SELECT ` + questionnaireColumns + ` FROM organization_questionnaires WHERE id = $1`
	return scanQuestionnaire(r.DB.QueryRowContext(ctx, query, id))
}

func (r *questionnaireRepository) GetAdmissionByEventID(ctx context.Context, eventID string) (*domain.OrganizationQuestionnaire, error) {
	query := `
		SELECT ` + questionnaireColumns + `
		FROM organization_questionnaires
		WHERE event_id = $1 AND type = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanQuestionnaire(r.DB.QueryRowContext(ctx, query, eventID, domain.QuestionnaireTypeAdmission))
}

func (r *questionnaireRepository) CreateSubmission(ctx context.Context, sub *domain.QuestionnaireSubmission) error {
	query := `
		INSERT INTO questionnaire_submissions (questionnaire_id, user_id, answers, evaluation_status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		sub.QuestionnaireID, sub.UserID, sub.Answers, sub.EvaluationStatus, sub.CreatedAt).
		Scan(&sub.ID)
}

func (r *questionnaireRepository) GetSubmissionByID(ctx context.Context, id string) (*domain.QuestionnaireSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM questionnaire_submissions WHERE id = $1`
	return scanSubmission(r.DB.QueryRowContext(ctx, query, id))
}

func (r *questionnaireRepository) GetLatestSubmission(ctx context.Context, questionnaireID, userID string) (*domain.QuestionnaireSubmission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM questionnaire_submissions
		WHERE questionnaire_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanSubmission(r.DB.QueryRowContext(ctx, query, questionnaireID, userID))
}

func (r *questionnaireRepository) CountSubmissions(ctx context.Context, questionnaireID, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questionnaire_submissions WHERE questionnaire_id = $1 AND user_id = $2`,
		questionnaireID, userID).Scan(&count)
	return count, err
}

func (r *questionnaireRepository) UpdateEvaluation(ctx context.Context, submissionID, status, evaluatedBy string, evaluatedAt time.Time) (*domain.QuestionnaireSubmission, error) {
	query := `
		UPDATE questionnaire_submissions
		SET evaluation_status = $2, evaluated_by = $3, evaluated_at = $4
		WHERE id = $1
		RETURNING ` + submissionColumns + `
	`
	return scanSubmission(r.DB.QueryRowContext(ctx, query, submissionID, status, evaluatedBy, evaluatedAt))
}

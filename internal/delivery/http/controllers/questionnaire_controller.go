package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventadmissions/internal/delivery/http/helpers"
	"eventadmissions/internal/delivery/http/middleware"
	"eventadmissions/internal/domain"
)

// CreateQuestionnaireRequest is the request body for POST /organizations/{orgID}/questionnaires.
type CreateQuestionnaireRequest struct {
	EventID       string `json:"event_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	MembersExempt bool   `json:"members_exempt"`
	MaxAttempts   int    `json:"max_attempts"`
}

// Validate implements Validator.
func (c CreateQuestionnaireRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	switch c.Type {
	case domain.QuestionnaireTypeAdmission, domain.QuestionnaireTypeFeedback:
	default:
		errs = append(errs, "type must be one of: admission, feedback")
	}
	if c.EventID != "" && !uuidRegex.MatchString(c.EventID) {
		errs = append(errs, "event_id must be a valid UUID")
	}
	if c.MaxAttempts < 0 {
		errs = append(errs, "max_attempts must not be negative")
	}
	return errs
}

// SubmitAnswersRequest is the request body for POST /questionnaires/{questionnaireID}/submissions.
type SubmitAnswersRequest struct {
	Answers string `json:"answers"`
}

// Validate implements Validator.
func (s SubmitAnswersRequest) Validate() []string {
	if strings.TrimSpace(s.Answers) == "" {
		return []string{"answers is required"}
	}
	return nil
}

// EvaluateSubmissionRequest is the request body for POST /submissions/{submissionID}/evaluation.
type EvaluateSubmissionRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (e EvaluateSubmissionRequest) Validate() []string {
	switch e.Status {
	case domain.EvaluationApproved, domain.EvaluationRejected:
		return nil
	default:
		return []string{"status must be one of: approved, rejected"}
	}
}

type QuestionnaireController struct {
	Logger  *slog.Logger
	Service domain.QuestionnaireService
}

func NewQuestionnaireController(logger *slog.Logger, svc domain.QuestionnaireService) *QuestionnaireController {
	return &QuestionnaireController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateQuestionnaire godoc
// @Summary Create a questionnaire
// @Description Create an admission or feedback questionnaire, optionally bound to one event. The caller must be organization staff.
// @Tags questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orgID path string true "Organization ID (UUID)"
// @Param body body CreateQuestionnaireRequest true "Questionnaire data"
// @Success 201 {object} helpers.APIResponse "data contains the created questionnaire"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/questionnaires [post]
func (c *QuestionnaireController) CreateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "orgID")
	if !ok {
		return
	}
	var req CreateQuestionnaireRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	q := &domain.OrganizationQuestionnaire{
		OrganizationID: orgID,
		EventID:        req.EventID,
		Name:           strings.TrimSpace(req.Name),
		Type:           req.Type,
		MembersExempt:  req.MembersExempt,
		MaxAttempts:    req.MaxAttempts,
		CreatedAt:      time.Now(),
	}
	if err := c.Service.CreateQuestionnaire(r.Context(), callerID, q); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, q)
}

// SubmitAnswers godoc
// @Summary Submit questionnaire answers
// @Description Submit an admission questionnaire attempt for the authenticated user. Rejected submissions may be retried until attempts run out; pending and approved submissions block resubmission.
// @Tags questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionnaireID path string true "Questionnaire ID (UUID)"
// @Param body body SubmitAnswersRequest true "Answers payload"
// @Success 201 {object} helpers.APIResponse "data contains the submission"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /questionnaires/{questionnaireID}/submissions [post]
func (c *QuestionnaireController) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	questionnaireID, ok := pathUUID(w, r, "questionnaireID")
	if !ok {
		return
	}
	var req SubmitAnswersRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sub, err := c.Service.SubmitAdmission(r.Context(), questionnaireID, userID, req.Answers)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// EvaluateSubmission godoc
// @Summary Evaluate a submission
// @Description Approve or reject a pending submission. The caller must be organization staff.
// @Tags questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submissionID path string true "Submission ID (UUID)"
// @Param body body EvaluateSubmissionRequest true "Evaluation outcome"
// @Success 200 {object} helpers.APIResponse "data contains the evaluated submission"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /submissions/{submissionID}/evaluation [post]
func (c *QuestionnaireController) EvaluateSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := pathUUID(w, r, "submissionID")
	if !ok {
		return
	}
	var req EvaluateSubmissionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sub, err := c.Service.Evaluate(r.Context(), submissionID, callerID, req.Status)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sub)
}

package domain

import "context"

// Reason codes for a blocked eligibility decision. These are machine-readable
// values surfaced to API clients; the HTTP layer maps them to messages.
const (
	ReasonRequiresInvitation         = "requires_invitation"
	ReasonInvitationRequestPending   = "invitation_request_pending"
	ReasonInvitationRequestRejected  = "invitation_request_rejected"
	ReasonApplicationDeadlinePassed  = "application_deadline_passed"
	ReasonMembershipRequired         = "membership_required"
	ReasonStaffOnly                  = "staff_only"
	ReasonQuestionnaireRequired      = "questionnaire_required"
	ReasonQuestionnairePendingReview = "questionnaire_pending_review"
	ReasonQuestionnaireRejected      = "questionnaire_rejected"
	ReasonLoginRequired              = "login_required"
	ReasonEventNotOpen               = "event_not_open"
)

// NextStep codes telling the client what action, if any, can unblock the user.
// An empty next step means the state is terminal.
const (
	StepRequestInvitation         = "request_invitation"
	StepWaitForInvitationApproval = "wait_for_invitation_approval"
	StepJoinOrganization          = "join_organization"
	StepTakeQuestionnaire         = "take_questionnaire"
	StepRetakeQuestionnaire       = "retake_questionnaire"
	StepWaitForEvaluation         = "wait_for_evaluation"
	StepLogIn                     = "log_in"
)

// Eligibility is the decision value produced by the eligibility engine.
// When Allowed is true, Reason and NextStep are empty. When Allowed is false,
// Reason is always set and NextStep is set only if the user has an actionable
// way forward.
// swagger:model Eligibility
type Eligibility struct {
	Allowed  bool   `json:"allowed"`
	Reason   string `json:"reason,omitempty"`
	NextStep string `json:"next_step,omitempty"`
}

// Allowed returns the positive decision.
func Allowed() *Eligibility {
	return &Eligibility{Allowed: true}
}

// Blocked returns a negative decision with the given reason and next step.
// Pass an empty nextStep for terminal states.
func Blocked(reason, nextStep string) *Eligibility {
	return &Eligibility{Allowed: false, Reason: reason, NextStep: nextStep}
}

// NotEligibleError is returned by write paths (RSVP, ticket issuance) when the
// pre-commit eligibility re-check blocks the operation. It carries the decision
// so callers can surface the reason and next step.
type NotEligibleError struct {
	Decision *Eligibility
}

func (e *NotEligibleError) Error() string {
	return "not eligible: " + e.Decision.Reason
}

// Is makes errors.Is(err, ErrNotEligible) match.
func (e *NotEligibleError) Is(target error) bool {
	return target == ErrNotEligible
}

// EligibilityService evaluates whether a user may attend an event.
// CheckEligibility is a pure read path: it never mutates state, and
// ineligibility is a normal return value, never an error. An empty userID
// checks guest access.
type EligibilityService interface {
	CheckEligibility(ctx context.Context, userID, eventID string) (*Eligibility, error)
}

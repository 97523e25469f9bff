package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventadmissions/internal/delivery/http/controllers"
	"eventadmissions/internal/delivery/http/middleware"
	"eventadmissions/internal/domain"
)

// Controllers groups the controllers wired into the router.
type Controllers struct {
	Auth          *controllers.AuthController
	Event         *controllers.EventController
	Attendance    *controllers.AttendanceController
	Invitation    *controllers.InvitationController
	Organization  *controllers.OrganizationController
	Questionnaire *controllers.QuestionnaireController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	optAuth := middleware.OptionalAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Organizations and membership
	mux.HandleFunc("POST /organizations", auth(c.Organization.CreateOrganization))
	mux.HandleFunc("GET /organizations/by-slug/{slug}", c.Organization.GetOrganizationBySlug)
	mux.HandleFunc("POST /organizations/{orgID}/members", auth(c.Organization.JoinOrganization))
	mux.HandleFunc("PATCH /organizations/{orgID}/members/{userID}", auth(c.Organization.SetMemberStatus))
	mux.HandleFunc("GET /organizations/{orgID}/members", auth(c.Organization.ListMembers))

	// Events
	mux.HandleFunc("POST /organizations/{orgID}/events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /organizations/{orgID}/events", c.Event.ListOrganizationEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Event.GetEvent)
	mux.HandleFunc("GET /events/by-slug/{slug}", c.Event.GetEventBySlug)
	mux.HandleFunc("POST /events/{eventID}/publish", auth(c.Event.PublishEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/eligibility", optAuth(c.Event.CheckEligibility))
	mux.HandleFunc("POST /events/{eventID}/ticket-tiers", auth(c.Event.CreateTicketTier))
	mux.HandleFunc("GET /events/{eventID}/ticket-tiers", c.Event.ListTicketTiers)

	// Attendance
	mux.HandleFunc("POST /events/{eventID}/rsvp", auth(c.Attendance.RSVP))
	mux.HandleFunc("DELETE /events/{eventID}/rsvp", auth(c.Attendance.CancelRSVP))
	mux.HandleFunc("POST /events/{eventID}/tickets", auth(c.Attendance.IssueTicket))
	mux.HandleFunc("POST /events/{eventID}/guest-rsvp", c.Attendance.GuestRSVP)
	mux.HandleFunc("GET /events/{eventID}/rsvps", auth(c.Attendance.ListEventRSVPs))

	// Invitations
	mux.HandleFunc("POST /events/{eventID}/invitation-requests", auth(c.Invitation.RequestInvitation))
	mux.HandleFunc("GET /events/{eventID}/invitation-requests", auth(c.Invitation.ListRequests))
	mux.HandleFunc("POST /invitation-requests/{requestID}/approve", auth(c.Invitation.ApproveRequest))
	mux.HandleFunc("POST /invitation-requests/{requestID}/reject", auth(c.Invitation.RejectRequest))
	mux.HandleFunc("POST /events/{eventID}/invitations", auth(c.Invitation.InviteDirect))
	mux.HandleFunc("GET /events/{eventID}/invitations", auth(c.Invitation.ListInvitations))

	// Questionnaires
	mux.HandleFunc("POST /organizations/{orgID}/questionnaires", auth(c.Questionnaire.CreateQuestionnaire))
	mux.HandleFunc("POST /questionnaires/{questionnaireID}/submissions", auth(c.Questionnaire.SubmitAnswers))
	mux.HandleFunc("POST /submissions/{submissionID}/evaluation", auth(c.Questionnaire.EvaluateSubmission))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

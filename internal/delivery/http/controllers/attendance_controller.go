package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventadmissions/internal/delivery/http/helpers"
	"eventadmissions/internal/delivery/http/middleware"
	"eventadmissions/internal/domain"
)

// IssueTicketRequest is the request body for POST /events/{eventID}/tickets.
type IssueTicketRequest struct {
	TierID string `json:"tier_id"`
}

// Validate implements Validator.
func (t IssueTicketRequest) Validate() []string {
	var errs []string
	if !uuidRegex.MatchString(t.TierID) {
		errs = append(errs, "tier_id must be a valid UUID")
	}
	return errs
}

// GuestRSVPRequest is the request body for POST /events/{eventID}/guest-rsvp.
type GuestRSVPRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate implements Validator.
func (g GuestRSVPRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(g.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// RSVPResponse wraps an RSVP with whether the call created it.
type RSVPResponse struct {
	RSVP    *domain.EventRSVP `json:"rsvp"`
	Created bool              `json:"created"`
}

// TicketResponse wraps a ticket with whether the call created it.
type TicketResponse struct {
	Ticket  *domain.Ticket `json:"ticket"`
	Created bool           `json:"created"`
}

type AttendanceController struct {
	Logger  *slog.Logger
	Service domain.AttendanceService
}

func NewAttendanceController(logger *slog.Logger, svc domain.AttendanceService) *AttendanceController {
	return &AttendanceController{
		Logger:  logger,
		Service: svc,
	}
}

// RSVP godoc
// @Summary RSVP to an event
// @Description Reserve a spot at the event for the authenticated user. Eligibility is re-checked before the spot is claimed. Idempotent: repeating the call returns the existing RSVP with created=false.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains rsvp and created=true"
// @Success 200 {object} helpers.APIResponse "data contains the existing rsvp and created=false"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: not_eligible or conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvp [post]
func (c *AttendanceController) RSVP(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	rsvp, created, err := c.Service.RSVP(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, RSVPResponse{RSVP: rsvp, Created: created})
}

// CancelRSVP godoc
// @Summary Cancel an RSVP
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the cancelled rsvp"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvp [delete]
func (c *AttendanceController) CancelRSVP(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	rsvp, err := c.Service.CancelRSVP(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}

// IssueTicket godoc
// @Summary Issue a ticket
// @Description Issue a ticket in the given tier for the authenticated user. Eligibility is re-checked before the ticket is claimed. Idempotent: an existing active ticket is returned with created=false.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body IssueTicketRequest true "Ticket tier"
// @Success 201 {object} helpers.APIResponse "data contains ticket and created=true"
// @Success 200 {object} helpers.APIResponse "data contains the existing ticket and created=false"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: not_eligible or conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tickets [post]
func (c *AttendanceController) IssueTicket(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req IssueTicketRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	ticket, created, err := c.Service.IssueTicket(r.Context(), eventID, req.TierID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, TicketResponse{Ticket: ticket, Created: created})
}

// ListEventRSVPs godoc
// @Summary List RSVPs for an event
// @Description List the event's RSVPs with pagination. The caller must be organization staff.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvps [get]
func (c *AttendanceController) ListEventRSVPs(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	rsvps, total, err := c.Service.ListEventRSVPs(r.Context(), eventID, callerID, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListResponse{
		Items:      rsvps,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GuestRSVP godoc
// @Summary RSVP to an event as a guest
// @Description Reserve a spot without an account. Only allowed for events that permit attending without login. Idempotent per guest email.
// @Tags attendance
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body GuestRSVPRequest true "Guest contact"
// @Success 201 {object} helpers.APIResponse "data contains rsvp and created=true"
// @Success 200 {object} helpers.APIResponse "data contains the existing rsvp and created=false"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: not_eligible or conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/guest-rsvp [post]
func (c *AttendanceController) GuestRSVP(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req GuestRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, created, err := c.Service.GuestRSVP(r.Context(), eventID, req.Email, req.Name)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, RSVPResponse{RSVP: rsvp, Created: created})
}

package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventadmissions/internal/delivery/http/helpers"
	"eventadmissions/internal/delivery/http/middleware"
	"eventadmissions/internal/domain"
)

// InviteDirectRequest is the request body for POST /events/{eventID}/invitations.
type InviteDirectRequest struct {
	UserID                string `json:"user_id"`
	WaivesQuestionnaire   bool   `json:"waives_questionnaire"`
	WaivesPurchase        bool   `json:"waives_purchase"`
	WaivesMembership      bool   `json:"waives_membership"`
	WaivesApplyDeadline   bool   `json:"waives_apply_deadline"`
	OverridesMaxAttendees bool   `json:"overrides_max_attendees"`
}

// Validate implements Validator.
func (i InviteDirectRequest) Validate() []string {
	var errs []string
	if !uuidRegex.MatchString(i.UserID) {
		errs = append(errs, "user_id must be a valid UUID")
	}
	return errs
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// RequestInvitation godoc
// @Summary Request an invitation to an event
// @Description Create a pending invitation request for an invitation-gated event. Idempotent: an existing request is returned as-is.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the invitation request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitation-requests [post]
func (c *InvitationController) RequestInvitation(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	request, err := c.Service.RequestInvitation(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, request)
}

// ApproveRequest godoc
// @Summary Approve an invitation request
// @Description Approve a pending request and create the invitation. The caller must be organization staff.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Request ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the created invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitation-requests/{requestID}/approve [post]
func (c *InvitationController) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathUUID(w, r, "requestID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invitation, err := c.Service.ApproveRequest(r.Context(), requestID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invitation)
}

// RejectRequest godoc
// @Summary Reject an invitation request
// @Description Reject a pending request. The caller must be organization staff.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Request ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the rejected request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitation-requests/{requestID}/reject [post]
func (c *InvitationController) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathUUID(w, r, "requestID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	request, err := c.Service.RejectRequest(r.Context(), requestID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, request)
}

// InviteDirect godoc
// @Summary Invite a user directly
// @Description Create an invitation for a user without a request, optionally waiving gates. The caller must be organization staff.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body InviteDirectRequest true "Invitee and waiver flags"
// @Success 201 {object} helpers.APIResponse "data contains the created invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [post]
func (c *InvitationController) InviteDirect(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req InviteDirectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	waivers := domain.InvitationWaivers{
		Questionnaire: req.WaivesQuestionnaire,
		Purchase:      req.WaivesPurchase,
		Membership:    req.WaivesMembership,
		ApplyDeadline: req.WaivesApplyDeadline,
		MaxAttendees:  req.OverridesMaxAttendees,
	}
	invitation, err := c.Service.InviteDirect(r.Context(), eventID, callerID, req.UserID, waivers)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, invitation)
}

// ListInvitations godoc
// @Summary List invitations for an event
// @Description List invitations, optionally filtered by invitee email search. The caller must be organization staff.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param search query string false "Email search"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [get]
func (c *InvitationController) ListInvitations(w http.ResponseWriter, r *http.Request) {
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
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	invitations, total, err := c.Service.ListEventInvitations(r.Context(), eventID, callerID, search, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListResponse{
		Items:      invitations,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListRequests godoc
// @Summary List invitation requests for an event
// @Description List requests, optionally filtered by status. The caller must be organization staff.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitation-requests [get]
func (c *InvitationController) ListRequests(w http.ResponseWriter, r *http.Request) {
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
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	requests, total, err := c.Service.ListEventRequests(r.Context(), eventID, callerID, status, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListResponse{
		Items:      requests,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

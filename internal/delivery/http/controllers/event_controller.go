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

// CreateEventRequest is the request body for POST /organizations/{orgID}/events.
type CreateEventRequest struct {
	Name                  string     `json:"name"`
	Slug                  string     `json:"slug"`
	Visibility            string     `json:"visibility"`
	StartsAt              time.Time  `json:"starts_at"`
	ApplyBefore           *time.Time `json:"apply_before"`
	RequiresTicket        bool       `json:"requires_ticket"`
	CanAttendWithoutLogin bool       `json:"can_attend_without_login"`
	MaxAttendees          int        `json:"max_attendees"`
	WaitlistOpen          bool       `json:"waitlist_open"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Slug) == "" {
		errs = append(errs, "slug is required")
	}
	switch c.Visibility {
	case domain.VisibilityPublic, domain.VisibilityPrivate, domain.VisibilityMembersOnly, domain.VisibilityStaffOnly:
	default:
		errs = append(errs, "visibility must be one of: public, private, members_only, staff_only")
	}
	if c.StartsAt.IsZero() {
		errs = append(errs, "starts_at is required")
	}
	if c.ApplyBefore != nil && !c.StartsAt.IsZero() && c.ApplyBefore.After(c.StartsAt) {
		errs = append(errs, "apply_before must not be after starts_at")
	}
	if c.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must not be negative")
	}
	return errs
}

// CreateTicketTierRequest is the request body for POST /events/{eventID}/ticket-tiers.
type CreateTicketTierRequest struct {
	Name        string `json:"name"`
	PriceCents  int    `json:"price_cents"`
	MaxQuantity int    `json:"max_quantity"`
}

// Validate implements Validator.
func (c CreateTicketTierRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.PriceCents < 0 {
		errs = append(errs, "price_cents must not be negative")
	}
	if c.MaxQuantity < 0 {
		errs = append(errs, "max_quantity must not be negative")
	}
	return errs
}

type EventController struct {
	Logger      *slog.Logger
	Service     domain.EventService
	Eligibility domain.EligibilityService
}

func NewEventController(logger *slog.Logger, svc domain.EventService, eligibility domain.EligibilityService) *EventController {
	return &EventController{
		Logger:      logger,
		Service:     svc,
		Eligibility: eligibility,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an event in the organization. The caller must be organization staff. Events start in draft status.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orgID path string true "Organization ID (UUID)"
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "orgID")
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	now := time.Now()
	event := domain.NewEvent(orgID, req.Name, req.Slug, req.Visibility, req.StartsAt, now, now)
	event.ApplyBefore = req.ApplyBefore
	event.RequiresTicket = req.RequiresTicket
	event.CanAttendWithoutLogin = req.CanAttendWithoutLogin
	event.MaxAttendees = req.MaxAttendees
	event.WaitlistOpen = req.WaitlistOpen
	if err := c.Service.CreateEvent(r.Context(), userID, event); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/by-slug/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if strings.TrimSpace(slug) == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid slug")
		return
	}
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListOrganizationEvents godoc
// @Summary List events for an organization
// @Tags events
// @Produce json
// @Param orgID path string true "Organization ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/events [get]
func (c *EventController) ListOrganizationEvents(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "orgID")
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListOrganizationEvents(r.Context(), orgID, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListResponse{
		Items:      events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// PublishEvent godoc
// @Summary Publish an event
// @Description Move the event from draft to open. The caller must be organization staff. Idempotent for already-open events.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/publish [post]
func (c *EventController) PublishEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.PublishEvent(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Delete the event. The caller must be organization staff.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains deleted: true"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

// CreateTicketTier godoc
// @Summary Create a ticket tier
// @Description Add a ticket tier to the event. The caller must be organization staff. max_quantity 0 means unlimited.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param tier body CreateTicketTierRequest true "Tier data"
// @Success 201 {object} helpers.APIResponse "data contains the created tier"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ticket-tiers [post]
func (c *EventController) CreateTicketTier(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req CreateTicketTierRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	tier := &domain.TicketTier{
		Name:        req.Name,
		PriceCents:  req.PriceCents,
		MaxQuantity: req.MaxQuantity,
	}
	if err := c.Service.CreateTicketTier(r.Context(), eventID, userID, tier); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, tier)
}

// ListTicketTiers godoc
// @Summary List ticket tiers for an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the tiers"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ticket-tiers [get]
func (c *EventController) ListTicketTiers(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	tiers, err := c.Service.ListTicketTiers(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tiers)
}

// CheckEligibility godoc
// @Summary Check attendance eligibility
// @Description Evaluate whether the caller may attend the event. Works without authentication; anonymous callers are evaluated as guests. Ineligibility is a 200 with allowed=false, never an error.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the eligibility decision"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/eligibility [get]
func (c *EventController) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	decision, err := c.Eligibility.CheckEligibility(r.Context(), userID, eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, decision)
}

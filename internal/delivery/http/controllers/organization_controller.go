package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventadmissions/internal/delivery/http/helpers"
	"eventadmissions/internal/delivery/http/middleware"
	"eventadmissions/internal/domain"
)

// CreateOrganizationRequest is the request body for POST /organizations.
type CreateOrganizationRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Validate implements Validator.
func (c CreateOrganizationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Slug) == "" {
		errs = append(errs, "slug is required")
	}
	return errs
}

// SetMemberStatusRequest is the request body for PATCH /organizations/{orgID}/members/{userID}.
type SetMemberStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (s SetMemberStatusRequest) Validate() []string {
	switch s.Status {
	case domain.MemberStatusActive, domain.MemberStatusPaused, domain.MemberStatusCancelled, domain.MemberStatusBanned:
		return nil
	default:
		return []string{"status must be one of: active, paused, cancelled, banned"}
	}
}

type OrganizationController struct {
	Logger  *slog.Logger
	Service domain.MembershipService
}

func NewOrganizationController(logger *slog.Logger, svc domain.MembershipService) *OrganizationController {
	return &OrganizationController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateOrganization godoc
// @Summary Create an organization
// @Description Create a new organization. The authenticated user becomes the owner.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateOrganizationRequest true "Organization data"
// @Success 201 {object} helpers.APIResponse "data contains the created organization"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations [post]
func (c *OrganizationController) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganizationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	org, err := c.Service.CreateOrganization(r.Context(), req.Name, req.Slug, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, org)
}

// GetOrganizationBySlug godoc
// @Summary Get an organization by slug
// @Tags organizations
// @Produce json
// @Param slug path string true "Organization slug"
// @Success 200 {object} helpers.APIResponse "data contains the organization"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/by-slug/{slug} [get]
func (c *OrganizationController) GetOrganizationBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if strings.TrimSpace(slug) == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid slug")
		return
	}
	org, err := c.Service.GetOrganizationBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, org)
}

// JoinOrganization godoc
// @Summary Join an organization
// @Description Add the authenticated user as an active member. Idempotent: an existing membership is returned as-is.
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param orgID path string true "Organization ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the membership"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/members [post]
func (c *OrganizationController) JoinOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "orgID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	member, err := c.Service.JoinOrganization(r.Context(), orgID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, member)
}

// SetMemberStatus godoc
// @Summary Set a member's status
// @Description Change a member's status (active, paused, cancelled, banned). The caller must be organization staff.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orgID path string true "Organization ID (UUID)"
// @Param userID path string true "Member user ID (UUID)"
// @Param body body SetMemberStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated membership"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/members/{userID} [patch]
func (c *OrganizationController) SetMemberStatus(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "orgID")
	if !ok {
		return
	}
	memberID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}
	var req SetMemberStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	member, err := c.Service.SetMemberStatus(r.Context(), orgID, memberID, req.Status, callerID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, member)
}

// ListMembers godoc
// @Summary List organization members
// @Description List members with pagination. The caller must be organization staff.
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param orgID path string true "Organization ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/members [get]
func (c *OrganizationController) ListMembers(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "orgID")
	if !ok {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	members, total, err := c.Service.ListMembers(r.Context(), orgID, callerID, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListResponse{
		Items:      members,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

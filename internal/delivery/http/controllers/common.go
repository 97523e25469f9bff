package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"eventadmissions/internal/delivery/http/helpers"
	"eventadmissions/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// pathUUID reads a path parameter and validates it as a UUID. On failure it
// writes a 400 JSON error and returns false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if !uuidRegex.MatchString(v) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return v, true
}

// writeServiceError maps domain sentinel errors to HTTP status codes and
// error codes. Unrecognized errors are logged and returned as 500.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var notEligible *domain.NotEligibleError
	switch {
	case errors.As(err, &notEligible):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeNotEligible, notEligible.Decision.Reason)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrEventFull):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "event is full")
	case errors.Is(err, domain.ErrAlreadyAttending):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already attending")
	case errors.Is(err, domain.ErrDuplicateEmail):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "email already registered")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// ListResponse is the envelope payload for paginated list endpoints.
type ListResponse struct {
	Items      any                    `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

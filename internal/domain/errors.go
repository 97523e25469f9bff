package domain

import "errors"

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned when the request is invalid.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEventFull is returned when a capacity claim fails because the event or tier is full.
	ErrEventFull = errors.New("event is full")
	// ErrAlreadyAttending is returned when the user already holds an RSVP or ticket for the event.
	ErrAlreadyAttending = errors.New("already attending")
	// ErrNotEligible is returned by write paths when the eligibility re-check blocks the operation.
	ErrNotEligible = errors.New("not eligible")
)

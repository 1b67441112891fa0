// Package apperr holds the error kinds shared by every module. Modules wrap
// one of these sentinels with context; the HTTP layer maps the kind to a
// status code with errors.Is.
package apperr

import "errors"

var (
	ErrInvalid      = errors.New("invalid request")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	// ErrUpstream marks a failed collaborator call (payment gateway, Tray API).
	ErrUpstream = errors.New("upstream failure")
)

package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid configuration or input.
	ErrValidation = errors.New("validation error")

	// ErrConnectivity indicates the GitLab API could not be reached.
	ErrConnectivity = errors.New("connectivity error")

	// ErrPermission indicates a rejected or insufficient access token.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a project, branch, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates GitLab refused a write because the object already exists.
	ErrConflict = errors.New("conflict")
)

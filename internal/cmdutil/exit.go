package cmdutil

import (
	"errors"

	oerrors "github.com/avides/gitlab-release/internal/errors"
)

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return oerrors.ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrValidation):
		return oerrors.ExitValidationError
	case errors.Is(err, oerrors.ErrConnectivity):
		return oerrors.ExitConnectivityError
	case errors.Is(err, oerrors.ErrPermission):
		return oerrors.ExitPermissionDenied
	case errors.Is(err, oerrors.ErrNotFound):
		return oerrors.ExitNotFound
	case errors.Is(err, oerrors.ErrConflict):
		return oerrors.ExitConflict
	default:
		return oerrors.ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case oerrors.ExitSuccess:
		return "Success"
	case oerrors.ExitGeneralError:
		return "General Error"
	case oerrors.ExitValidationError:
		return "Validation Error"
	case oerrors.ExitConnectivityError:
		return "Connectivity Error"
	case oerrors.ExitPermissionDenied:
		return "Permission Denied"
	case oerrors.ExitNotFound:
		return "Not Found"
	case oerrors.ExitConflict:
		return "Conflict"
	default:
		return "Unknown"
	}
}

// NewExitError wraps err with the exit code derived from it. The error is
// marked as printed when the command already reported it.
func NewExitError(err error, printed bool) *oerrors.ExitError {
	return &oerrors.ExitError{Code: ExitCodeFromError(err), Err: err, Printed: printed}
}

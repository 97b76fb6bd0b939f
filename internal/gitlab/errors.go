package gitlab

import (
	"errors"
	"fmt"
	"net/http"

	gl "gitlab.com/gitlab-org/api/client-go"

	oerrors "github.com/avides/gitlab-release/internal/errors"
)

const (
	hintPermission   = "check that the access token is valid and has the api scope"
	hintConnectivity = "check that the host is reachable and GitLab is up"
)

// classify attaches the sentinel matching the HTTP status of a failed call.
// Errors without a status (transport failures, timeouts) count as connectivity
// problems. 400 and 409 only mean a conflict when writing.
func (r *Repository) classify(resp *gl.Response, err error, msg string, write bool) error {
	if err == nil {
		return nil
	}

	switch status := statusCode(resp, err); {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return oerrors.NewPermissionError(fmt.Sprintf("%s: %v", msg, err),
			map[string]string{"host": r.host}, hintPermission)
	case status == http.StatusNotFound:
		return oerrors.WrapCause(oerrors.ErrNotFound, err, msg)
	case write && (status == http.StatusBadRequest || status == http.StatusConflict):
		return oerrors.WrapCause(oerrors.ErrConflict, err, msg)
	case status == 0, status >= http.StatusInternalServerError:
		return oerrors.NewConnectivityError(fmt.Sprintf("%s: %v", msg, err),
			map[string]string{"host": r.host}, hintConnectivity)
	default:
		return oerrors.WrapCause(oerrors.ErrValidation, err, msg)
	}
}

func statusCode(resp *gl.Response, err error) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	var errResp *gl.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	return 0
}

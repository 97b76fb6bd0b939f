package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/avides/gitlab-release/internal/config"
	oerrors "github.com/avides/gitlab-release/internal/errors"
	"github.com/avides/gitlab-release/internal/output"
	"github.com/avides/gitlab-release/internal/release"
)

// PrintReleaseError reports a failed run. Resolution errors were already
// logged by the Releaser with their stage, so only a hint carried by their
// cause is printed. Detail errors keep their multi-line layout.
func PrintReleaseError(w io.Writer, err error) {
	var resErr *release.ResolutionError
	var detailErr *oerrors.DetailError

	switch {
	case errors.As(err, &resErr):
		if errors.As(resErr.Cause, &detailErr) && detailErr.Hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", detailErr.Hint)
		}
	case errors.As(err, &detailErr):
		fmt.Fprint(w, detailErr.Error())
	default:
		output.Error(err.Error())
	}
}

// PrintValidationErrors writes config validation errors in `cue vet` style.
func PrintValidationErrors(w io.Writer, path string, err error) {
	var verrs config.ValidationErrors
	if !errors.As(err, &verrs) {
		output.Error("config validation failed", "file", path, "error", err)
		return
	}

	var b strings.Builder
	b.WriteString("Error: config validation failed\n")
	fmt.Fprintf(&b, "  File: %s\n\n", path)
	for _, e := range verrs {
		fmt.Fprintf(&b, "  %s: %s\n", e.Field, e.Message)
	}
	fmt.Fprint(w, b.String())
}

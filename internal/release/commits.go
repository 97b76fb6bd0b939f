package release

import (
	"context"
	"fmt"

	oerrors "github.com/avides/gitlab-release/internal/errors"
)

// ResolveCommits lists the commits on branch since the watermark, newest first.
//
// With a watermark the listing includes the boundary commit the watermark tag
// points to; it is the last element and is dropped unless it is the only one.
// The first returned commit is the one to tag.
func ResolveCommits(ctx context.Context, repo TagRepository, projectID int, branch string, since *Watermark) ([]Commit, error) {
	commits, err := repo.ListCommits(ctx, projectID, branch, since)
	if err != nil {
		return nil, newResolutionError(StageCommits, MsgCommits, err)
	}
	if len(commits) == 0 {
		cause := oerrors.Wrap(oerrors.ErrNotFound, fmt.Sprintf("no commits on branch %q", branch))
		return nil, newResolutionError(StageCommits, MsgCommits, cause)
	}

	if since != nil && len(commits) > 1 {
		commits = commits[:len(commits)-1]
	}
	return commits, nil
}

package gitlab

import (
	"context"
	"fmt"
	"net/http"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/avides/gitlab-release/internal/release"
)

// pageSize is the per_page value used for every listing.
const pageSize = 100

// Repository talks to one GitLab instance.
type Repository struct {
	client *gl.Client
	host   string
}

var _ release.TagRepository = (*Repository)(nil)

// Host returns the configured base URL.
func (r *Repository) Host() string {
	return r.host
}

// GetProject looks the project up by its full path.
func (r *Repository) GetProject(ctx context.Context, namespace, name string) (*release.Project, error) {
	path := namespace + "/" + name

	p, resp, err := r.client.Projects.GetProject(path, nil, gl.WithContext(ctx))
	if err != nil {
		return nil, r.classify(resp, err, fmt.Sprintf("getting project %s", path), false)
	}

	display := p.NameWithNamespace
	if display == "" {
		display = path
	}
	return &release.Project{ID: p.ID, DisplayName: display}, nil
}

// GetTags lists every tag of the project, most recently updated first.
func (r *Repository) GetTags(ctx context.Context, project *release.Project) ([]release.Tag, error) {
	opts := &gl.ListTagsOptions{
		ListOptions: gl.ListOptions{PerPage: pageSize, Page: 1},
		OrderBy:     gl.Ptr("updated"),
		Sort:        gl.Ptr("desc"),
	}

	var tags []release.Tag
	for {
		page, resp, err := r.client.Tags.ListTags(project.ID, opts, gl.WithContext(ctx))
		if err != nil {
			return nil, r.classify(resp, err, fmt.Sprintf("listing tags of project %d", project.ID), false)
		}
		for _, t := range page {
			tags = append(tags, convertTag(t))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return tags, nil
}

type listCommitsOptions struct {
	RefName string `url:"ref_name"`
	Since   string `url:"since,omitempty"`
	Page    int    `url:"page,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
}

// ListCommits lists the commits of branch, newest first. The request is built
// by hand so that since is sent as a local date-time without offset.
func (r *Repository) ListCommits(ctx context.Context, projectID int, branch string, since *release.Watermark) ([]release.Commit, error) {
	opts := &listCommitsOptions{
		RefName: branch,
		Since:   since.String(),
		Page:    1,
		PerPage: pageSize,
	}
	path := fmt.Sprintf("projects/%d/repository/commits", projectID)

	var commits []release.Commit
	for {
		req, err := r.client.NewRequest(http.MethodGet, path, opts, []gl.RequestOptionFunc{gl.WithContext(ctx)})
		if err != nil {
			return nil, r.classify(nil, err, "building commit listing request", false)
		}

		var page []*gl.Commit
		resp, err := r.client.Do(req, &page)
		if err != nil {
			return nil, r.classify(resp, err, fmt.Sprintf("listing commits of branch %s", branch), false)
		}
		for _, c := range page {
			commits = append(commits, convertCommit(c))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return commits, nil
}

// CreateTag creates tagName at commitID with message as annotation. A non-empty
// releaseDescription additionally creates a GitLab release for the tag.
func (r *Repository) CreateTag(ctx context.Context, project *release.Project, tagName, commitID, releaseDescription, message string) (*release.Tag, error) {
	opts := &gl.CreateTagOptions{
		TagName: gl.Ptr(tagName),
		Ref:     gl.Ptr(commitID),
		Message: gl.Ptr(message),
	}

	t, resp, err := r.client.Tags.CreateTag(project.ID, opts, gl.WithContext(ctx))
	if err != nil {
		return nil, r.classify(resp, err, fmt.Sprintf("creating tag %s", tagName), true)
	}

	if releaseDescription != "" {
		_, resp, err := r.client.Releases.CreateRelease(project.ID, &gl.CreateReleaseOptions{
			Name:        gl.Ptr(tagName),
			TagName:     gl.Ptr(tagName),
			Description: gl.Ptr(releaseDescription),
		}, gl.WithContext(ctx))
		if err != nil {
			return nil, r.classify(resp, err, fmt.Sprintf("creating release %s", tagName), true)
		}
	}

	tag := convertTag(t)
	return &tag, nil
}

func convertTag(t *gl.Tag) release.Tag {
	tag := release.Tag{Name: t.Name}
	if t.Commit != nil {
		tag.Commit = convertCommit(t.Commit)
	}
	return tag
}

func convertCommit(c *gl.Commit) release.Commit {
	commit := release.Commit{ID: c.ID, Title: c.Title}
	if c.CommittedDate != nil {
		commit.CommittedDate = c.CommittedDate.UTC()
	}
	return commit
}

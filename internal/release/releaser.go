package release

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// Releaser runs the release decision and tagging flow.
type Releaser struct {
	connector Connector
	log       *log.Logger
}

// Option configures a Releaser.
type Option func(*Releaser)

// WithLogger sets the logger used for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(r *Releaser) {
		r.log = l
	}
}

// NewReleaser creates a Releaser that reaches the hosting API through connector.
func NewReleaser(connector Connector, opts ...Option) *Releaser {
	r := &Releaser{connector: connector}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = log.New(io.Discard)
	}
	return r
}

// Run evaluates req and creates the release tag when appropriate.
//
// Skips (no namespace, pre-release, tag already present) return a Result and
// a nil error. Any failure talking to the hosting API aborts the run with a
// *ResolutionError; no tag is created in that case.
func (r *Releaser) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Version: req.Version}

	if !CanResolveNamespace(req.Namespace, req.ScmURL) {
		r.log.Warn("GitLab repository namespace not found, define 'scmUrl' or 'repositoryNamespace' in the configuration")
		result.Outcome = OutcomeNamespaceUnresolved
		return result, nil
	}

	if req.Branch == "" {
		r.log.Info("Using default branch", "branch", DefaultBranch)
	}
	result.Branch = ResolveBranch(req.Branch)

	if !req.PreReleaseDesired && IsPreRelease(req.Version) {
		r.log.Info("Don't add new tag for a pre-release", "version", req.Version)
		result.Outcome = OutcomePreReleaseSkipped
		return result, nil
	}

	namespace := ResolveNamespace(req.Namespace, req.ScmURL, req.Host)
	if namespace == "" {
		r.log.Warn("Could not derive a namespace from the SCM URL", "scmUrl", req.ScmURL, "host", req.Host)
		result.Outcome = OutcomeNamespaceUnresolved
		return result, nil
	}
	if req.Namespace == "" {
		r.log.Info("Resolved namespace", "namespace", namespace)
	}
	result.Namespace = namespace

	r.log.Info("Connecting to GitLab...")
	repo, err := r.connector.Connect(req.Host, req.Token)
	if err != nil {
		r.log.Error(MsgConnect, "err", err)
		return nil, newResolutionError(StageConnect, MsgConnect, err)
	}
	r.log.Info("Connected to GitLab", "host", repo.Host())

	project, err := r.resolveProject(ctx, repo, namespace, req.RepositoryName)
	if err != nil {
		return nil, err
	}
	result.Project = project.DisplayName

	tags, err := repo.GetTags(ctx, project)
	if err != nil {
		r.log.Error(MsgTags, "err", err)
		return nil, newResolutionError(StageTags, MsgTags, err)
	}
	if TagExists(tags, req.Version) {
		r.log.Info("Tag already exists for version", "version", req.Version)
		result.Outcome = OutcomeAlreadyTagged
		return result, nil
	}

	since := ResolveWatermark(tags)
	if since != nil {
		r.log.Debug("Found previous release", "since", since.String())
		result.Since = since.String()
	} else {
		r.log.Debug("No previous release tag, using the whole branch history")
	}

	r.log.Info("Resolving latest commits...", "branch", result.Branch)
	commits, err := ResolveCommits(ctx, repo, project.ID, result.Branch, since)
	if err != nil {
		r.log.Error(MsgCommits, "err", err)
		return nil, err
	}
	r.log.Info("Resolved latest commits", "branch", result.Branch, "count", len(commits))

	note := ComposeNote(commits)
	result.CommitID = commits[0].ID
	result.Commits = len(commits)
	result.ReleaseNote = note
	result.TagName = req.Version

	if req.DryRun {
		r.log.Info("Dry run, not adding tag", "tag", req.Version, "commit", result.CommitID)
		result.Outcome = OutcomeDryRun
		return result, nil
	}

	r.log.Info("Adding tag...")
	tag, err := repo.CreateTag(ctx, project, req.Version, result.CommitID, "", note)
	if err != nil {
		r.log.Error(MsgTag, "err", err)
		return nil, newResolutionError(StageTag, MsgTag, err)
	}
	r.log.Info("Added tag", "tag", tag.Name)

	result.TagName = tag.Name
	result.Outcome = OutcomeTagged
	return result, nil
}

func (r *Releaser) resolveProject(ctx context.Context, repo TagRepository, namespace, name string) (*Project, error) {
	r.log.Info("Resolving repository...")
	project, err := repo.GetProject(ctx, namespace, name)
	if err != nil {
		r.log.Error(MsgProject, "err", err)
		return nil, newResolutionError(StageProject, MsgProject, err)
	}
	r.log.Info("Resolved repository", "project", project.DisplayName)
	return project, nil
}

// Package release decides whether a build deserves a release tag and, when it
// does, creates that tag on the hosting project with a changelog of the
// commits made since the previous release.
//
// A run is a pure function of the current repository state plus the Request:
// every intermediate value (tags, watermark, commits, note) is passed forward
// explicitly and nothing is cached between runs.
package release

import (
	"context"
	"fmt"
	"strings"
	"time"

	oerrors "github.com/avides/gitlab-release/internal/errors"
)

// DefaultBranch is used when no branch name is configured.
const DefaultBranch = "master"

// Request is the immutable input of a release run.
type Request struct {
	// Version is the project version to evaluate and the name of the tag to create.
	Version string

	// Branch is the branch whose commits are released. Empty means DefaultBranch.
	Branch string

	// Namespace is the explicitly configured repository namespace (optional).
	Namespace string

	// ScmURL is the fallback source for the namespace.
	ScmURL string

	// Host is the GitLab base URL.
	Host string

	// Token is the GitLab access token.
	Token string

	// RepositoryName is the GitLab project name.
	RepositoryName string

	// PreReleaseDesired forces tagging of pre-release versions.
	PreReleaseDesired bool

	// DryRun performs every read but skips tag creation.
	DryRun bool
}

// Validate checks the request invariants.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Version) == "" {
		return oerrors.NewValidationError("project version must not be empty", "", "projectVersion",
			"set --project-version or projectVersion in the config file")
	}
	return nil
}

// Commit is a commit as reported by the hosting API.
type Commit struct {
	ID            string    `json:"id" yaml:"id"`
	Title         string    `json:"title" yaml:"title"`
	CommittedDate time.Time `json:"committedDate,omitempty" yaml:"committedDate,omitempty"`
}

// Tag is a tag and the commit it points to.
type Tag struct {
	Name   string `json:"name" yaml:"name"`
	Commit Commit `json:"commit" yaml:"commit"`
}

// Project identifies a hosted repository.
type Project struct {
	ID          int    `json:"id" yaml:"id"`
	DisplayName string `json:"displayName" yaml:"displayName"`
}

// Connector opens a TagRepository for a host. Implementations may connect
// lazily; invalid credentials then surface on the first call.
type Connector interface {
	Connect(host, token string) (TagRepository, error)
}

// TagRepository is the hosting API surface the engine relies on.
type TagRepository interface {
	// Host returns the base URL the repository talks to.
	Host() string

	GetProject(ctx context.Context, namespace, name string) (*Project, error)

	// GetTags lists the project's tags, most recently updated first.
	GetTags(ctx context.Context, project *Project) ([]Tag, error)

	// ListCommits lists commits on branch newest-first. A non-nil since limits
	// the listing to commits at or after the watermark.
	ListCommits(ctx context.Context, projectID int, branch string, since *Watermark) ([]Commit, error)

	CreateTag(ctx context.Context, project *Project, tagName, commitID, releaseDescription, message string) (*Tag, error)
}

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomeNamespaceUnresolved Outcome = "namespace-unresolved"
	OutcomePreReleaseSkipped   Outcome = "pre-release-skipped"
	OutcomeAlreadyTagged       Outcome = "already-tagged"
	OutcomeTagged              Outcome = "tagged"
	OutcomeDryRun              Outcome = "dry-run"
)

// Result summarizes a run.
type Result struct {
	Outcome     Outcome `json:"outcome" yaml:"outcome"`
	Version     string  `json:"version" yaml:"version"`
	Namespace   string  `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Branch      string  `json:"branch,omitempty" yaml:"branch,omitempty"`
	Project     string  `json:"project,omitempty" yaml:"project,omitempty"`
	TagName     string  `json:"tagName,omitempty" yaml:"tagName,omitempty"`
	CommitID    string  `json:"commitId,omitempty" yaml:"commitId,omitempty"`
	Since       string  `json:"since,omitempty" yaml:"since,omitempty"`
	Commits     int     `json:"commits,omitempty" yaml:"commits,omitempty"`
	ReleaseNote string  `json:"releaseNote,omitempty" yaml:"releaseNote,omitempty"`
}

// Created reports whether the run created (or, in dry-run mode, would create) a tag.
func (r *Result) Created() bool {
	return r.Outcome == OutcomeTagged || r.Outcome == OutcomeDryRun
}

// Stage names the network step a ResolutionError came from.
type Stage string

const (
	StageConnect Stage = "connect"
	StageProject Stage = "project"
	StageTags    Stage = "tags"
	StageCommits Stage = "commits"
	StageTag     Stage = "tag"
)

// Fixed, stage-specific failure messages.
const (
	MsgConnect = "Failed to connect to GitLab"
	MsgProject = "Failed to resolve project"
	MsgTags    = "Failed to resolve tags"
	MsgCommits = "Failed to resolve latest commit"
	MsgTag     = "Failed to add tag"
)

// ResolutionError is the single fatal failure type of a run. It carries the
// stage-specific message and the original cause.
type ResolutionError struct {
	Stage   Stage
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

func newResolutionError(stage Stage, msg string, cause error) *ResolutionError {
	return &ResolutionError{Stage: stage, Message: msg, Cause: cause}
}

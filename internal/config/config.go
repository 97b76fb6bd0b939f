// Package config provides configuration loading and management.
package config

import (
	"time"

	"github.com/avides/gitlab-release/internal/release"
)

// DefaultHost is the GitLab instance used when none is configured.
const DefaultHost = "https://gitlab.com"

// DefaultTimeout bounds each GitLab API request.
const DefaultTimeout = 30 * time.Second

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// HTTPConfig contains settings of the GitLab API client.
type HTTPConfig struct {
	// Timeout is the total timeout of one API request.
	// Env: GITLAB_RELEASE_HTTP_TIMEOUT, Default: 30s
	Timeout time.Duration `json:"timeout,omitempty" mapstructure:"timeout"`
}

// Config represents the gitlab-release configuration.
// Loaded from ~/.gitlab-release/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// Host is the GitLab base URL.
	// Env: GITLAB_RELEASE_HOST
	Host string `json:"host,omitempty" mapstructure:"host"`

	// AccessToken authenticates API calls.
	// Env: GITLAB_RELEASE_ACCESS_TOKEN, GITLAB_ACCESS_TOKEN
	AccessToken string `json:"accessToken,omitempty" mapstructure:"accessToken"`

	// RepositoryNamespace is the project namespace. Derived from ScmURL when empty.
	// Env: GITLAB_RELEASE_NAMESPACE
	RepositoryNamespace string `json:"repositoryNamespace,omitempty" mapstructure:"repositoryNamespace"`

	// ScmURL is the project URL, e.g. https://gitlab.com/group/project.
	// Env: GITLAB_RELEASE_SCM_URL
	ScmURL string `json:"scmUrl,omitempty" mapstructure:"scmUrl"`

	// RepositoryName is the GitLab project name.
	// Env: GITLAB_RELEASE_REPOSITORY
	RepositoryName string `json:"repositoryName,omitempty" mapstructure:"repositoryName"`

	// ProjectVersion is the version to release.
	// Env: GITLAB_RELEASE_PROJECT_VERSION
	ProjectVersion string `json:"projectVersion,omitempty" mapstructure:"projectVersion"`

	// PreReleaseDesired forces tagging of pre-release versions.
	// Env: GITLAB_RELEASE_PRE_RELEASE
	PreReleaseDesired bool `json:"preReleaseDesired,omitempty" mapstructure:"preReleaseDesired"`

	// BranchName is the released branch. Default: master.
	// Env: GITLAB_RELEASE_BRANCH
	BranchName string `json:"branchName,omitempty" mapstructure:"branchName"`

	Log  LogConfig  `json:"log,omitempty" mapstructure:"log"`
	HTTP HTTPConfig `json:"http,omitempty" mapstructure:"http"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		Host: DefaultHost,
		HTTP: HTTPConfig{Timeout: DefaultTimeout},
	}
}

// WithDefaults fills unset fields with their defaults.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.Host == "" {
		out.Host = DefaultHost
	}
	if out.HTTP.Timeout <= 0 {
		out.HTTP.Timeout = DefaultTimeout
	}
	return &out
}

// Request converts the configuration into a release request.
func (c *Config) Request(dryRun bool) release.Request {
	return release.Request{
		Version:           c.ProjectVersion,
		Branch:            c.BranchName,
		Namespace:         c.RepositoryNamespace,
		ScmURL:            c.ScmURL,
		Host:              c.Host,
		Token:             c.AccessToken,
		RepositoryName:    c.RepositoryName,
		PreReleaseDesired: c.PreReleaseDesired,
		DryRun:            dryRun,
	}
}

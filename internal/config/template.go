package config

import (
	"fmt"
	"os"
	"path/filepath"

	oerrors "github.com/avides/gitlab-release/internal/errors"
)

// Template is the config file written by `gitlab-release config init`.
const Template = `# gitlab-release configuration
# Precedence: flag > environment (GITLAB_RELEASE_*) > this file > default

# GitLab base URL.
host: https://gitlab.com

# Access token with api scope. Prefer GITLAB_ACCESS_TOKEN over storing it here.
# accessToken: ""

# Namespace (group) of the project. Derived from scmUrl when omitted.
# repositoryNamespace: my-group

# Project URL; its first path segment after the host is the namespace.
# scmUrl: https://gitlab.com/my-group/my-project

# repositoryName: my-project
# projectVersion: 1.0.0

# Tag pre-release versions (SNAPSHOT, ALPHA, BETA, RC, M) too.
preReleaseDesired: false

# Released branch. Defaults to master.
# branchName: master

log:
  timestamps: true

http:
  timeout: 30s
`

// WriteTemplate writes Template to path, creating parent directories.
// An existing file is only replaced when force is set.
func WriteTemplate(path string, force bool) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(expanded); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "config file exists",
			Message:  "refusing to overwrite the existing config file",
			Location: expanded,
			Hint:     "use --force to overwrite",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := os.MkdirAll(filepath.Dir(expanded), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(Template), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

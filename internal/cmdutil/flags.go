// Package cmdutil provides shared command utilities for gitlab-release
// subcommands. It centralizes flag group management, exit code mapping and
// error reporting helpers.
package cmdutil

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/avides/gitlab-release/internal/config"
)

// ProjectFlags holds flags that describe the project being released
// (release, check).
type ProjectFlags struct {
	Host           string
	AccessToken    string
	Namespace      string
	ScmURL         string
	Repository     string
	ProjectVersion string
	PreRelease     bool
	Branch         string
}

// AddTo registers the project flags on the given cobra command.
func (f *ProjectFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Host, "host", "",
		"GitLab base URL (default: https://gitlab.com)")
	cmd.Flags().StringVar(&f.AccessToken, "access-token", "",
		"GitLab access token (env: GITLAB_ACCESS_TOKEN)")
	cmd.Flags().StringVar(&f.Namespace, "namespace", "",
		"Repository namespace (default: derived from --scm-url)")
	cmd.Flags().StringVar(&f.ScmURL, "scm-url", "",
		"SCM URL the namespace is derived from")
	cmd.Flags().StringVar(&f.Repository, "repository", "",
		"Repository (project) name")
	cmd.Flags().StringVar(&f.ProjectVersion, "project-version", "",
		"Project version, also the name of the tag to create")
	cmd.Flags().BoolVar(&f.PreRelease, "pre-release", false,
		"Tag pre-release versions too")
	cmd.Flags().StringVar(&f.Branch, "branch", "",
		"Branch to release (default: master)")
}

// FlagKeys maps configuration keys to the flags that override them.
var FlagKeys = map[string]string{
	"host":                "host",
	"accessToken":         "access-token",
	"repositoryNamespace": "namespace",
	"scmUrl":              "scm-url",
	"repositoryName":      "repository",
	"projectVersion":      "project-version",
	"preReleaseDesired":   "pre-release",
	"branchName":          "branch",
	"log.timestamps":      "timestamps",
}

// BindFlags binds every flag of fs named in FlagKeys to its configuration key.
// Flags the command does not define are skipped.
func BindFlags(loader *config.Loader, fs *pflag.FlagSet) error {
	for key, name := range FlagKeys {
		if err := loader.BindFlag(key, fs.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

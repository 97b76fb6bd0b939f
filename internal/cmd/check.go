package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/avides/gitlab-release/internal/cmdtypes"
	"github.com/avides/gitlab-release/internal/cmdutil"
	"github.com/avides/gitlab-release/internal/config"
	"github.com/avides/gitlab-release/internal/output"
	"github.com/avides/gitlab-release/internal/release"
)

// checkResult is the offline preview of a release decision.
type checkResult struct {
	release.VersionInfo `json:",inline" yaml:",inline"`

	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Branch    string `json:"branch" yaml:"branch"`
	Decision  string `json:"decision" yaml:"decision"`
}

// NewCheckCmd creates the check command.
func NewCheckCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var pf cmdutil.ProjectFlags

	c := &cobra.Command{
		Use:   "check",
		Short: "Preview the release decision without calling GitLab",
		Long: `Classify the project version and resolve the namespace and branch the
release command would use. No GitLab API calls are made, so the preview
cannot tell whether the tag already exists.

Examples:
  # Is 2.0.0-RC1 a pre-release?
  gitlab-release check --project-version 2.0.0-RC1

  # Resolve the namespace from the SCM URL
  gitlab-release check --project-version 2.0.0 --scm-url https://gitlab.com/platform/billing`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(c, cfg)
		},
	}

	pf.AddTo(c)

	return c
}

func runCheck(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	conf, err := cfg.RequireConfig()
	if err != nil {
		cmdutil.PrintReleaseError(c.ErrOrStderr(), err)
		return cmdutil.NewExitError(err, true)
	}

	req := conf.Request(false)
	if err := req.Validate(); err != nil {
		cmdutil.PrintReleaseError(c.ErrOrStderr(), err)
		return cmdutil.NewExitError(err, true)
	}

	result := previewRelease(conf)

	if cfg.Output != output.FormatText {
		return output.WriteStructured(c.OutOrStdout(), cfg.Output, result)
	}
	writeCheckResult(c.OutOrStdout(), result)
	return nil
}

// previewRelease walks the offline part of a release run.
func previewRelease(conf *config.Config) checkResult {
	result := checkResult{
		VersionInfo: release.Describe(conf.ProjectVersion),
		Branch:      release.ResolveBranch(conf.BranchName),
	}

	switch {
	case !release.CanResolveNamespace(conf.RepositoryNamespace, conf.ScmURL):
		result.Decision = string(release.OutcomeNamespaceUnresolved)
	case result.PreRelease && !conf.PreReleaseDesired:
		result.Decision = string(release.OutcomePreReleaseSkipped)
	default:
		result.Namespace = release.ResolveNamespace(conf.RepositoryNamespace, conf.ScmURL, conf.Host)
		if result.Namespace == "" {
			result.Decision = string(release.OutcomeNamespaceUnresolved)
		} else {
			result.Decision = "tag"
		}
	}

	return result
}

func writeCheckResult(w io.Writer, result checkResult) {
	fmt.Fprintln(w, output.RenderDetails(
		output.Detail{Label: "Version", Value: result.Version},
		output.Detail{Label: "Pre-release", Value: strconv.FormatBool(result.PreRelease)},
		output.Detail{Label: "Indicator", Value: result.Indicator},
		output.Detail{Label: "Semver", Value: result.Canonical},
		output.Detail{Label: "Namespace", Value: result.Namespace},
		output.Detail{Label: "Branch", Value: result.Branch},
	))

	if result.Decision == "tag" {
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("%s would be tagged on %s", result.Version, result.Branch)))
		return
	}
	fmt.Fprintln(w, output.StyleDim.Render(fmt.Sprintf("%s would not be tagged (%s)", result.Version, result.Decision)))
}

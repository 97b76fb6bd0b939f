package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avides/gitlab-release/internal/cmdtypes"
	"github.com/avides/gitlab-release/internal/cmdutil"
	"github.com/avides/gitlab-release/internal/gitlab"
	"github.com/avides/gitlab-release/internal/output"
	"github.com/avides/gitlab-release/internal/release"
)

// NewReleaseCmd creates the release command.
func NewReleaseCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var pf cmdutil.ProjectFlags
	var dryRunFlag bool

	c := &cobra.Command{
		Use:   "release",
		Short: "Tag the project version on GitLab",
		Long: `Decide whether the project version deserves a release and, if so, create
a tag named after it on the branch head. The tag message lists the commits
made since the previous release.

Pre-release versions (SNAPSHOT, ALPHA, BETA, RC, M, BUILD_SNAPSHOT) are
skipped unless --pre-release is set. Running twice for the same version is
safe: an existing tag is left alone.

Examples:
  # Release version 1.4.0 of platform/billing
  gitlab-release release --namespace platform --repository billing --project-version 1.4.0

  # Derive the namespace from the SCM URL
  gitlab-release release --scm-url https://gitlab.com/platform/billing --repository billing --project-version 1.4.0

  # Show the tag and changelog without creating anything
  gitlab-release release --project-version 1.4.0 --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runRelease(c, cfg, dryRunFlag)
		},
	}

	pf.AddTo(c)
	c.Flags().BoolVar(&dryRunFlag, "dry-run", false,
		"Resolve the tag and changelog without creating the tag")

	return c
}

// runRelease executes the release command.
func runRelease(c *cobra.Command, cfg *cmdtypes.GlobalConfig, dryRun bool) error {
	conf, err := cfg.RequireConfig()
	if err != nil {
		cmdutil.PrintReleaseError(c.ErrOrStderr(), err)
		return cmdutil.NewExitError(err, true)
	}

	transport := gitlab.DefaultTransportConfig()
	transport.Timeout = conf.HTTP.Timeout

	connector := gitlab.NewConnector(
		gitlab.WithHTTPClient(gitlab.NewHTTPClient(transport)),
		gitlab.WithLogger(output.Logger()),
	)
	releaser := release.NewReleaser(connector,
		release.WithLogger(output.ProjectLogger(projectLabel(conf.RepositoryName))),
	)

	req := conf.Request(dryRun)
	output.Debug("release request",
		"version", req.Version,
		"branch", req.Branch,
		"namespace", req.Namespace,
		"host", req.Host,
		"dry_run", req.DryRun,
	)

	var result *release.Result
	err = output.RunWithSpinner(c.Context(), func(ctx context.Context) error {
		var runErr error
		result, runErr = releaser.Run(ctx, req)
		return runErr
	},
		output.WithTitle(fmt.Sprintf("Releasing %s...", req.Version)),
		output.WithSpinnerEnabled(output.IsTTY() && !cfg.Verbose && cfg.Output == output.FormatText),
	)
	if err != nil {
		cmdutil.PrintReleaseError(c.ErrOrStderr(), err)
		return cmdutil.NewExitError(err, true)
	}

	if cfg.Output != output.FormatText {
		return output.WriteStructured(c.OutOrStdout(), cfg.Output, result)
	}
	writeReleaseResult(c.OutOrStdout(), conf.RepositoryName, result)
	return nil
}

// writeReleaseResult renders a run summary for the terminal.
func writeReleaseResult(w io.Writer, repository string, result *release.Result) {
	project := result.Project
	if project == "" {
		project = repository
	}

	switch result.Outcome {
	case release.OutcomeTagged:
		fmt.Fprintln(w, output.FormatTagLine(project, result.TagName, output.StatusTagged))
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Added tag %s (%d commits)", result.TagName, result.Commits)))
	case release.OutcomeDryRun:
		fmt.Fprintln(w, output.FormatTagLine(project, result.TagName, output.StatusPlanned))
		fmt.Fprintln(w, output.RenderDetails(
			output.Detail{Label: "Commit", Value: result.CommitID},
			output.Detail{Label: "Since", Value: result.Since},
			output.Detail{Label: "Commits", Value: fmt.Sprint(result.Commits)},
		))
		if note := strings.TrimRight(result.ReleaseNote, "\n"); note != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, note)
		}
	case release.OutcomeAlreadyTagged:
		fmt.Fprintln(w, output.FormatTagLine(project, result.Version, output.StatusUnchanged))
	default:
		fmt.Fprintln(w, output.FormatTagLine(project, result.Version, output.StatusSkipped)+
			output.StyleDim.Render("  ("+string(result.Outcome)+")"))
	}
}

func projectLabel(repository string) string {
	if repository == "" {
		return "gitlab-release"
	}
	return repository
}

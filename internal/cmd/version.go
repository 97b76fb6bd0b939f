package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avides/gitlab-release/internal/cmdtypes"
	"github.com/avides/gitlab-release/internal/output"
	"github.com/avides/gitlab-release/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show gitlab-release version information.

Displays:
  - gitlab-release version, commit, and build date
  - Go version and GitLab API client version`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			info := version.Get()
			if cfg.Output != "" && cfg.Output != output.FormatText {
				return output.WriteStructured(c.OutOrStdout(), cfg.Output, info)
			}
			fmt.Fprintln(c.OutOrStdout(), info.String())
			return nil
		},
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avides/gitlab-release/internal/cmdtypes"
	"github.com/avides/gitlab-release/internal/cmdutil"
	"github.com/avides/gitlab-release/internal/config"
	"github.com/avides/gitlab-release/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var forceFlag bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new gitlab-release configuration file",
		Long: `Create a new gitlab-release configuration file with default values.

The configuration file is created at ~/.gitlab-release/config.yaml by default.
Use --config flag or GITLAB_RELEASE_CONFIG to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runInit(c, cfg, forceFlag)
		},
	}

	c.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path := cfg.ConfigPath
	if path == "" {
		var err error
		path, err = config.GetConfigFile()
		if err != nil {
			return fmt.Errorf("getting config file path: %w", err)
		}
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(expanded); err == nil && force {
		output.Warn("Overwriting existing config file", "path", expanded)
	}

	if err := config.WriteTemplate(expanded, force); err != nil {
		fmt.Fprint(c.ErrOrStderr(), err.Error())
		return cmdutil.NewExitError(err, true)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+expanded))
	return nil
}

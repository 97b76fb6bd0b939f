package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avides/gitlab-release/internal/cmdtypes"
	"github.com/avides/gitlab-release/internal/cmdutil"
	"github.com/avides/gitlab-release/internal/config"
	"github.com/avides/gitlab-release/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the gitlab-release configuration file",
		Long: `Validate the gitlab-release configuration file against the embedded schema.

The command validates ~/.gitlab-release/config.yaml by default.
Use --config flag or GITLAB_RELEASE_CONFIG to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
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

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(expanded); err != nil {
		cmdutil.PrintValidationErrors(c.ErrOrStderr(), expanded, err)
		return cmdutil.NewExitError(err, true)
	}

	// The schema accepts the file; make sure it also decodes.
	if cfg.LoadErr != nil {
		cmdutil.PrintValidationErrors(c.ErrOrStderr(), expanded, cfg.LoadErr)
		return cmdutil.NewExitError(cfg.LoadErr, true)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatVetCheck("Config file is valid", expanded))
	return nil
}

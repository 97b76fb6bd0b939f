// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cmdconfig "github.com/avides/gitlab-release/internal/cmd/config"
	"github.com/avides/gitlab-release/internal/cmdtypes"
	"github.com/avides/gitlab-release/internal/cmdutil"
	"github.com/avides/gitlab-release/internal/config"
	oerrors "github.com/avides/gitlab-release/internal/errors"
	"github.com/avides/gitlab-release/internal/output"
)

// NewRootCmd creates the root command for the gitlab-release CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag       string
		outputFormatFlag string
		verboseFlag      bool
		timestampsFlag   bool
	)

	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "gitlab-release",
		Short: "Release decision and tag synchronization for GitLab",
		Long: `gitlab-release decides whether a project version deserves a release and,
when it does, creates the matching tag on GitLab annotated with a changelog
of the commits made since the previous release.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			cfg.Verbose = verboseFlag
			return initializeGlobals(c, cfg, configFlag, outputFormatFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: GITLAB_RELEASE_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputFormatFlag, "output", "o", "text",
		fmt.Sprintf("Output format: %s", strings.Join(output.ValidFormats(), ", ")))
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewReleaseCmd(cfg),
		NewCheckCmd(cfg),
		cmdconfig.NewConfigCmd(cfg),
		NewVersionCmd(cfg),
	)

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(c *cobra.Command, cfg *cmdtypes.GlobalConfig, configFlag, outputFlag string) error {
	format, ok := output.ParseOutputFormat(outputFlag)
	if !ok {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitValidationError,
			Err: oerrors.NewValidationError(fmt.Sprintf("unknown output format %q", outputFlag), "", "output",
				fmt.Sprintf("use one of: %s", strings.Join(output.ValidFormats(), ", "))),
		}
	}
	cfg.Output = format

	pathResult, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}
	cfg.ConfigPath = pathResult.ConfigPath
	cfg.ConfigSource = pathResult.Source

	loader := config.NewLoader()
	if err := cmdutil.BindFlags(loader, c.Flags()); err != nil {
		return err
	}
	cfg.Loader = loader

	// Don't fail here; commands that don't need config still work.
	if err := loader.Load(pathResult.ConfigPath, pathResult.Source != config.SourceDefault); err != nil {
		cfg.Config, cfg.LoadErr = nil, err
	} else {
		cfg.Config, cfg.LoadErr = loader.Config()
	}

	// Timestamps: flag > env > config > default (nil = true).
	logCfg := output.LogConfig{Verbose: cfg.Verbose}
	if cfg.Config != nil {
		logCfg.Timestamps = cfg.Config.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if cfg.LoadErr != nil {
		output.Debug("config load error", "error", cfg.LoadErr)
	}

	if cfg.Verbose {
		output.Debug("initializing CLI",
			"config", cfg.ConfigPath,
			"config_source", cfg.ConfigSource,
			"config_loaded", loader.Loaded(),
			"output", cfg.Output,
		)
		config.LogResolvedValues(loader.Resolve())
	}

	return nil
}

// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and internal/cmd/config.
package cmdtypes

import (
	"github.com/avides/gitlab-release/internal/config"
	oerrors "github.com/avides/gitlab-release/internal/errors"
	"github.com/avides/gitlab-release/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is created once by the root command and passed explicitly into every
// sub-command constructor.
type GlobalConfig struct {
	// Loader is the loader the configuration was read with.
	Loader *config.Loader

	// Config is the merged configuration (nil when loading failed).
	Config *config.Config

	// LoadErr is the error loading the config file produced, if any.
	// Commands that need configuration report it; others ignore it.
	LoadErr error

	ConfigPath   string              // resolved --config path
	ConfigSource config.ConfigSource // where ConfigPath came from
	Output       output.OutputFormat // resolved --output
	Verbose      bool
}

// RequireConfig returns the merged configuration or the load error.
func (g *GlobalConfig) RequireConfig() (*config.Config, error) {
	if g.LoadErr != nil {
		return nil, g.LoadErr
	}
	if g.Config == nil {
		return config.DefaultConfig(), nil
	}
	return g.Config, nil
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess           = oerrors.ExitSuccess
	ExitGeneralError      = oerrors.ExitGeneralError
	ExitValidationError   = oerrors.ExitValidationError
	ExitConnectivityError = oerrors.ExitConnectivityError
	ExitPermissionDenied  = oerrors.ExitPermissionDenied
	ExitNotFound          = oerrors.ExitNotFound
	ExitConflict          = oerrors.ExitConflict
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

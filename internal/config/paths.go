package config

import (
	"os"
	"path/filepath"
)

// ConfigEnvVar overrides the default config file location.
const ConfigEnvVar = "GITLAB_RELEASE_CONFIG"

// Paths contains standard filesystem paths for gitlab-release.
type Paths struct {
	// ConfigFile is the path to the config file (~/.gitlab-release/config.yaml).
	ConfigFile string

	// HomeDir is the gitlab-release home directory (~/.gitlab-release).
	HomeDir string
}

// DefaultPaths returns the default paths for gitlab-release.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".gitlab-release")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If GITLAB_RELEASE_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(ConfigEnvVar); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/avides/gitlab-release/internal/errors"
	"github.com/avides/gitlab-release/internal/release"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https://gitlab.com", cfg.Host)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.False(t, cfg.PreReleaseDesired)
	assert.Empty(t, cfg.BranchName, "empty branch means master")
}

func TestWithDefaults(t *testing.T) {
	cfg := &Config{ProjectVersion: "1.0.0"}
	filled := cfg.WithDefaults()

	assert.Equal(t, DefaultHost, filled.Host)
	assert.Equal(t, DefaultTimeout, filled.HTTP.Timeout)
	assert.Equal(t, "1.0.0", filled.ProjectVersion)
	assert.Empty(t, cfg.Host, "receiver is not modified")

	custom := (&Config{Host: "https://gitlab.example.com", HTTP: HTTPConfig{Timeout: time.Second}}).WithDefaults()
	assert.Equal(t, "https://gitlab.example.com", custom.Host)
	assert.Equal(t, time.Second, custom.HTTP.Timeout)
}

func TestConfigRequest(t *testing.T) {
	cfg := &Config{
		Host:                "HOST",
		AccessToken:         "TOKEN",
		RepositoryNamespace: "NS",
		ScmURL:              "HOST/NS/REPO",
		RepositoryName:      "REPO",
		ProjectVersion:      "1.0.0",
		PreReleaseDesired:   true,
		BranchName:          "main",
	}

	assert.Equal(t, release.Request{
		Version:           "1.0.0",
		Branch:            "main",
		Namespace:         "NS",
		ScmURL:            "HOST/NS/REPO",
		Host:              "HOST",
		Token:             "TOKEN",
		RepositoryName:    "REPO",
		PreReleaseDesired: true,
		DryRun:            true,
	}, cfg.Request(true))
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteTemplate(path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Template, string(data))

	err = WriteTemplate(path, false)
	assert.ErrorIs(t, err, oerrors.ErrValidation, "existing file is kept without --force")

	require.NoError(t, os.WriteFile(path, []byte("host: x\n"), 0o600))
	require.NoError(t, WriteTemplate(path, true))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Template, string(data))
}

func TestTemplateLoads(t *testing.T) {
	clearEnv(t)

	loader := NewLoader()
	require.NoError(t, loader.Load(writeConfig(t, Template), true))

	cfg, err := loader.Config()
	require.NoError(t, err)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultTimeout, cfg.HTTP.Timeout)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)
}

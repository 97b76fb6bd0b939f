package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avides/gitlab-release/internal/config"
	oerrors "github.com/avides/gitlab-release/internal/errors"
	"github.com/avides/gitlab-release/internal/release"
)

func TestPreviewRelease(t *testing.T) {
	tests := []struct {
		name          string
		conf          config.Config
		wantDecision  string
		wantNamespace string
		wantBranch    string
		wantIndicator string
	}{
		{
			name:          "release version with namespace",
			conf:          config.Config{ProjectVersion: "1.2.0", RepositoryNamespace: "platform"},
			wantDecision:  "tag",
			wantNamespace: "platform",
			wantBranch:    release.DefaultBranch,
		},
		{
			name: "namespace from scm url",
			conf: config.Config{
				Host:           "https://gitlab.example.com",
				ProjectVersion: "1.2.0",
				ScmURL:         "https://gitlab.example.com/platform/billing",
				BranchName:     "main",
			},
			wantDecision:  "tag",
			wantNamespace: "platform",
			wantBranch:    "main",
		},
		{
			name:          "pre-release is skipped",
			conf:          config.Config{ProjectVersion: "1.2.0-SNAPSHOT", RepositoryNamespace: "platform"},
			wantDecision:  string(release.OutcomePreReleaseSkipped),
			wantBranch:    release.DefaultBranch,
			wantIndicator: "SNAPSHOT",
		},
		{
			name:          "pre-release desired",
			conf:          config.Config{ProjectVersion: "1.2.0-RC1", RepositoryNamespace: "platform", PreReleaseDesired: true},
			wantDecision:  "tag",
			wantNamespace: "platform",
			wantBranch:    release.DefaultBranch,
			wantIndicator: "RC",
		},
		{
			name:         "no namespace source",
			conf:         config.Config{ProjectVersion: "1.2.0"},
			wantDecision: string(release.OutcomeNamespaceUnresolved),
			wantBranch:   release.DefaultBranch,
		},
		{
			name:         "scm url without namespace",
			conf:         config.Config{Host: "https://gitlab.com", ProjectVersion: "1.2.0", ScmURL: "https://gitlab.com/billing"},
			wantDecision: string(release.OutcomeNamespaceUnresolved),
			wantBranch:   release.DefaultBranch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := previewRelease(&tt.conf)
			assert.Equal(t, tt.wantDecision, got.Decision)
			assert.Equal(t, tt.wantNamespace, got.Namespace)
			assert.Equal(t, tt.wantBranch, got.Branch)
			assert.Equal(t, tt.wantIndicator, got.Indicator)
		})
	}
}

func TestCheckCmd_JSON(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "check", "--project-version", "2.1.0-M1", "--namespace", "platform", "-o", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "2.1.0-M1", got["version"])
	assert.Equal(t, true, got["preRelease"])
	assert.Equal(t, "M", got["indicator"])
	assert.Equal(t, true, got["semver"])
	assert.Equal(t, string(release.OutcomePreReleaseSkipped), got["decision"])
}

func TestCheckCmd_Text(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "check", "--project-version", "1.0.0", "--namespace", "platform", "--branch", "main")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Namespace")
	assert.Contains(t, stdout, "platform")
	assert.Contains(t, stdout, "v1.0.0")
	assert.Contains(t, stdout, "1.0.0 would be tagged on main")
}

func TestCheckCmd_MissingVersion(t *testing.T) {
	isolateEnv(t)

	_, stderr, err := execute(t, "check", "--namespace", "platform")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
	assert.Contains(t, stderr, "project version must not be empty")
}

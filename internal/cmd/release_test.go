package cmd

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/avides/gitlab-release/internal/errors"
	"github.com/avides/gitlab-release/internal/release"
	"github.com/avides/gitlab-release/internal/testutil"
)

func newProject(t *testing.T) *testutil.GitLab {
	t.Helper()
	gl := testutil.NewGitLab(t, "platform/billing")
	gl.Commits = []testutil.Commit{
		{ID: "c3", Title: "Add invoices"},
		{ID: "c2", Title: "Merge branch 'feature' into 'master'"},
		{ID: "c1", Title: "Initial commit"},
	}
	return gl
}

func releaseArgs(gl *testutil.GitLab, extra ...string) []string {
	args := []string{
		"release",
		"--host", gl.URL,
		"--access-token", "secret",
		"--namespace", "platform",
		"--repository", "billing",
	}
	return append(args, extra...)
}

func decodeResult(t *testing.T, stdout string) release.Result {
	t.Helper()
	var result release.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result), stdout)
	return result
}

func TestReleaseCmd_FlagsExist(t *testing.T) {
	c := NewReleaseCmd(nil)
	assert.Equal(t, "release", c.Use)
	for _, name := range []string{
		"host", "access-token", "namespace", "scm-url", "repository",
		"project-version", "pre-release", "branch", "dry-run",
	} {
		assert.NotNil(t, c.Flags().Lookup(name), name)
	}
}

func TestReleaseCmd_FirstRelease(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)

	stdout, _, err := execute(t, releaseArgs(gl, "--project-version", "1.0.0", "-o", "json")...)
	require.NoError(t, err)

	result := decodeResult(t, stdout)
	assert.Equal(t, release.OutcomeTagged, result.Outcome)
	assert.Equal(t, "1.0.0", result.TagName)
	assert.Equal(t, "c3", result.CommitID)
	assert.Equal(t, "master", result.Branch)
	assert.Equal(t, "platform / billing", result.Project)

	created := gl.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "1.0.0", created[0].Name)
	assert.Equal(t, "c3", created[0].Commit.ID)
	assert.Equal(t, "* Add invoices (c3)\n* Initial commit (c1)\n", created[0].Message)
	assert.Empty(t, gl.Since, "first release lists the whole history")
}

func TestReleaseCmd_SinceLastRelease(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)
	released := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	gl.Tags = []testutil.Tag{
		{Name: "1.1.0-SNAPSHOT", Commit: &testutil.Commit{ID: "c2"}},
		{Name: "1.0.0", Commit: &testutil.Commit{ID: "c1", CommittedDate: &released}},
	}

	stdout, _, err := execute(t, releaseArgs(gl, "--project-version", "1.1.0", "-o", "json")...)
	require.NoError(t, err)

	result := decodeResult(t, stdout)
	assert.Equal(t, release.OutcomeTagged, result.Outcome)
	assert.Equal(t, "2024-03-01T09:30:00", gl.Since)
	assert.Equal(t, "2024-03-01T09:30:00", result.Since)

	created := gl.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "* Add invoices (c3)\n", created[0].Message, "boundary commit is dropped")
}

func TestReleaseCmd_Idempotent(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)

	_, _, err := execute(t, releaseArgs(gl, "--project-version", "1.0.0", "-o", "json")...)
	require.NoError(t, err)

	stdout, _, err := execute(t, releaseArgs(gl, "--project-version", "1.0.0", "-o", "json")...)
	require.NoError(t, err)

	assert.Equal(t, release.OutcomeAlreadyTagged, decodeResult(t, stdout).Outcome)
	assert.Len(t, gl.Created(), 1)
}

func TestReleaseCmd_PreReleaseSkipped(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)

	stdout, _, err := execute(t, releaseArgs(gl, "--project-version", "1.0.0-SNAPSHOT", "--verbose")...)
	require.NoError(t, err)

	assert.Contains(t, stdout, "skipped")
	assert.Contains(t, stdout, string(release.OutcomePreReleaseSkipped))
	assert.Empty(t, gl.Requests, "no API calls for pre-releases")
}

func TestReleaseCmd_PreReleaseDesired(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)

	stdout, _, err := execute(t, releaseArgs(gl, "--project-version", "1.0.0-RC1", "--pre-release", "-o", "yaml")...)
	require.NoError(t, err)

	assert.Contains(t, stdout, "outcome: tagged")
	require.Len(t, gl.Created(), 1)
	assert.Equal(t, "1.0.0-RC1", gl.Created()[0].Name)
}

func TestReleaseCmd_NamespaceFromScmURL(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)

	stdout, _, err := execute(t,
		"release",
		"--host", gl.URL,
		"--scm-url", gl.URL+"/platform/billing",
		"--repository", "billing",
		"--project-version", "2.0.0",
		"--branch", "main",
		"-o", "json",
	)
	require.NoError(t, err)

	result := decodeResult(t, stdout)
	assert.Equal(t, "platform", result.Namespace)
	assert.Equal(t, "main", result.Branch)
	assert.Contains(t, strings.Join(gl.Requests, "\n"), "ref_name=main")
}

func TestReleaseCmd_NamespaceUnresolved(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)

	stdout, _, err := execute(t,
		"release", "--host", gl.URL, "--repository", "billing", "--project-version", "2.0.0", "-o", "json")
	require.NoError(t, err)

	assert.Equal(t, release.OutcomeNamespaceUnresolved, decodeResult(t, stdout).Outcome)
	assert.Empty(t, gl.Requests)
}

func TestReleaseCmd_DryRun(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)

	stdout, _, err := execute(t, releaseArgs(gl, "--project-version", "1.0.0", "--dry-run", "--verbose")...)
	require.NoError(t, err)

	assert.Contains(t, stdout, "planned")
	assert.Contains(t, stdout, "* Add invoices (c3)")
	assert.Contains(t, stdout, "c3")
	assert.Empty(t, gl.Created())
}

func TestReleaseCmd_ConfigFile(t *testing.T) {
	home := isolateEnv(t)
	gl := newProject(t)

	path := testutil.WriteFile(t, home, "release.yaml", `
host: `+gl.URL+`
repositoryNamespace: platform
repositoryName: billing
projectVersion: 0.1.0
branchName: develop
`)

	stdout, _, err := execute(t, "--config", path, "release", "--project-version", "0.2.0", "-o", "json")
	require.NoError(t, err)

	result := decodeResult(t, stdout)
	assert.Equal(t, "0.2.0", result.TagName, "flag overrides the config file")
	assert.Equal(t, "develop", result.Branch)
}

func TestReleaseCmd_EnvToken(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)
	t.Setenv("GITLAB_ACCESS_TOKEN", "ci-token")
	t.Setenv("GITLAB_RELEASE_PROJECT_VERSION", "3.0.0")

	stdout, _, err := execute(t,
		"release", "--host", gl.URL, "--namespace", "platform", "--repository", "billing", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", decodeResult(t, stdout).TagName)
}

func TestReleaseCmd_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode int
		wantHint string
	}{
		{name: "unauthorized", status: 401, wantCode: oerrors.ExitPermissionDenied, wantHint: "api scope"},
		{name: "forbidden", status: 403, wantCode: oerrors.ExitPermissionDenied, wantHint: "api scope"},
		{name: "not found", status: 404, wantCode: oerrors.ExitNotFound},
		{name: "server error", status: 502, wantCode: oerrors.ExitConnectivityError, wantHint: "reachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			gl := newProject(t)
			gl.FailStatus = tt.status

			_, stderr, err := execute(t, releaseArgs(gl, "--project-version", "1.0.0", "-o", "json")...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, exitCode(t, err))
			if tt.wantHint != "" {
				assert.Contains(t, stderr, tt.wantHint)
			} else {
				assert.Empty(t, stderr)
			}

			var resErr *release.ResolutionError
			require.ErrorAs(t, err, &resErr)
			assert.Equal(t, release.StageProject, resErr.Stage)
			assert.Empty(t, gl.Created())
		})
	}
}

func TestReleaseCmd_UnknownProject(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)

	_, _, err := execute(t,
		"release", "--host", gl.URL, "--namespace", "platform", "--repository", "payroll", "--project-version", "1.0.0", "-o", "json")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
	assert.Contains(t, err.Error(), release.MsgProject)
}

func TestReleaseCmd_MissingVersion(t *testing.T) {
	isolateEnv(t)
	gl := newProject(t)

	_, stderr, err := execute(t, releaseArgs(gl, "-o", "json")...)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
	assert.Contains(t, stderr, "projectVersion")
	assert.Empty(t, gl.Requests)
}

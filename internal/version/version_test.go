package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.Equal(t, BuildDate, info.BuildDate)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.NotEmpty(t, info.GitLabClient)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:      "v1.2.3",
		GitCommit:    "abc123",
		BuildDate:    "2026-01-02",
		GoVersion:    "go1.25.0",
		GitLabClient: "v0.129.0",
	}

	s := info.String()
	assert.Contains(t, s, "gitlab-release version v1.2.3")
	assert.Contains(t, s, "abc123")
	assert.Contains(t, s, "2026-01-02")
	assert.Contains(t, s, "go1.25.0")
	assert.Contains(t, s, "v0.129.0")
}

func TestModuleVersion_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", moduleVersion("example.com/not/a/dependency"))
}

package release

import (
	"strings"

	"golang.org/x/mod/semver"
)

// PreReleaseIndicators are the tokens marking an unstable build, in match order.
var PreReleaseIndicators = []string{"SNAPSHOT", "ALPHA", "BETA", "RC", "M", "BUILD_SNAPSHOT"}

// IsPreRelease reports whether version contains any pre-release indicator,
// ignoring case.
//
// Matching is plain substring containment: "1.0.0-RC1" matches RC, and so does
// any version that happens to contain an "M" anywhere.
func IsPreRelease(version string) bool {
	_, ok := PreReleaseIndicator(version)
	return ok
}

// PreReleaseIndicator returns the first indicator contained in version.
func PreReleaseIndicator(version string) (string, bool) {
	upper := strings.ToUpper(version)
	for _, indicator := range PreReleaseIndicators {
		if strings.Contains(upper, indicator) {
			return indicator, true
		}
	}
	return "", false
}

// hasPreReleaseSuffix reports whether name, upper-cased, ends with an indicator.
// Tag selection uses suffix matching, unlike IsPreRelease.
func hasPreReleaseSuffix(name string) bool {
	upper := strings.ToUpper(name)
	for _, indicator := range PreReleaseIndicators {
		if strings.HasSuffix(upper, indicator) {
			return true
		}
	}
	return false
}

// VersionInfo describes a project version for display.
type VersionInfo struct {
	Version    string `json:"version" yaml:"version"`
	PreRelease bool   `json:"preRelease" yaml:"preRelease"`
	Indicator  string `json:"indicator,omitempty" yaml:"indicator,omitempty"`
	Semver     bool   `json:"semver" yaml:"semver"`
	Canonical  string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
}

// Describe classifies version. The semver fields are informational only.
func Describe(version string) VersionInfo {
	info := VersionInfo{Version: version}
	info.Indicator, info.PreRelease = PreReleaseIndicator(version)

	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if semver.IsValid(v) {
		info.Semver = true
		info.Canonical = semver.Canonical(v)
	}
	return info
}

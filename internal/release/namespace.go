package release

import "strings"

// ResolveNamespace returns the configured namespace when it is set, otherwise
// the first path segment of scmURL once host has been removed from it.
// It returns "" when neither input yields a namespace.
func ResolveNamespace(configured, scmURL, host string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	if strings.TrimSpace(scmURL) == "" {
		return ""
	}

	path := scmURL
	if host != "" {
		path = strings.ReplaceAll(path, host, "")
	}
	path = strings.TrimPrefix(path, "/")

	namespace, _, found := strings.Cut(path, "/")
	if !found {
		return ""
	}
	return namespace
}

// CanResolveNamespace reports whether a namespace could be derived at all.
func CanResolveNamespace(configured, scmURL string) bool {
	return strings.TrimSpace(configured) != "" || strings.TrimSpace(scmURL) != ""
}

// ResolveBranch returns branch, or DefaultBranch when it is blank.
func ResolveBranch(branch string) string {
	if strings.TrimSpace(branch) == "" {
		return DefaultBranch
	}
	return branch
}

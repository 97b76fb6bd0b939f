package release

import "strings"

// mergeCommitPrefix marks commits GitLab generates when merging branches.
const mergeCommitPrefix = "Merge branch"

// ComposeNote renders the release note for commits, one "* <title> (<id>)"
// line per commit in input order. Merge commits are left out.
func ComposeNote(commits []Commit) string {
	var b strings.Builder
	for _, c := range commits {
		if strings.HasPrefix(c.Title, mergeCommitPrefix) {
			continue
		}
		b.WriteString("* ")
		b.WriteString(c.Title)
		b.WriteString(" (")
		b.WriteString(c.ID)
		b.WriteString(")\n")
	}
	return b.String()
}

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Commit is a commit served by the GitLab fake.
type Commit struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	CommittedDate *time.Time `json:"committed_date,omitempty"`
}

// Tag is a tag served by the GitLab fake.
type Tag struct {
	Name    string  `json:"name"`
	Message string  `json:"message,omitempty"`
	Commit  *Commit `json:"commit,omitempty"`
}

// GitLab is a stateful in-process fake of the parts of the GitLab v4 API used
// for releasing: project lookup, tag listing and creation, commit listing.
// Created tags are added to the front of the tag list.
type GitLab struct {
	*httptest.Server

	mu sync.Mutex

	// ProjectPath is the "namespace/name" path the project answers to.
	ProjectPath string
	ProjectID   int

	Tags    []Tag
	Commits []Commit

	// FailStatus, when non-zero, is returned for every API call.
	FailStatus int

	// Requests records "METHOD path?query" for every call.
	Requests []string

	// Since records the since parameter of the last commit listing.
	Since string

	created []Tag
}

// NewGitLab starts a fake serving one project.
func NewGitLab(t *testing.T, projectPath string) *GitLab {
	t.Helper()
	g := &GitLab{ProjectPath: projectPath, ProjectID: 42}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.Close)
	return g
}

// Created returns the tags created through the API, oldest first.
func (g *GitLab) Created() []Tag {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Tag(nil), g.created...)
}

func (g *GitLab) serve(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Requests = append(g.Requests, r.Method+" "+r.URL.EscapedPath()+"?"+r.URL.RawQuery)

	path := strings.TrimPrefix(r.URL.EscapedPath(), "/api/v4/")
	if path == r.URL.EscapedPath() {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if g.FailStatus != 0 {
		writeJSON(w, g.FailStatus, map[string]string{"message": http.StatusText(g.FailStatus)})
		return
	}

	projectPrefix := "projects/" + strconv.Itoa(g.ProjectID) + "/"
	switch {
	case r.Method == http.MethodGet && path == "projects/"+url.PathEscape(g.ProjectPath):
		writeJSON(w, http.StatusOK, map[string]any{
			"id":                  g.ProjectID,
			"path_with_namespace": g.ProjectPath,
			"name_with_namespace": strings.ReplaceAll(g.ProjectPath, "/", " / "),
		})
	case r.Method == http.MethodGet && path == projectPrefix+"repository/tags":
		writeJSON(w, http.StatusOK, g.Tags)
	case r.Method == http.MethodPost && path == projectPrefix+"repository/tags":
		g.createTag(w, r)
	case r.Method == http.MethodGet && path == projectPrefix+"repository/commits":
		g.Since = r.URL.Query().Get("since")
		writeJSON(w, http.StatusOK, g.Commits)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "404 Not Found"})
	}
}

func (g *GitLab) createTag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TagName string `json:"tag_name"`
		Ref     string `json:"ref"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	for _, t := range g.Tags {
		if t.Name == body.TagName {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Tag " + body.TagName + " already exists"})
			return
		}
	}

	tag := Tag{Name: body.TagName, Message: body.Message, Commit: &Commit{ID: body.Ref}}
	for _, c := range g.Commits {
		if c.ID == body.Ref {
			commit := c
			tag.Commit = &commit
		}
	}
	g.Tags = append([]Tag{tag}, g.Tags...)
	g.created = append(g.created, tag)
	writeJSON(w, http.StatusCreated, tag)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package release

import (
	"context"
	"fmt"
	"sync"
)

// fakeRepo is an in-memory TagRepository that records every call.
type fakeRepo struct {
	mu sync.Mutex

	host    string
	project *Project
	tags    []Tag
	commits []Commit

	projectErr error
	tagsErr    error
	commitsErr error
	createErr  error

	// rejectDuplicates makes CreateTag fail when the tag already exists.
	rejectDuplicates bool

	calls     []string
	since     *Watermark
	branch    string
	created   []createdTag
	connected int
}

type createdTag struct {
	Name     string
	CommitID string
	Message  string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		host:    "https://gitlab.example.com",
		project: &Project{ID: 42, DisplayName: "NS / REPO"},
	}
}

func (f *fakeRepo) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeRepo) Host() string {
	return f.host
}

func (f *fakeRepo) GetProject(_ context.Context, namespace, name string) (*Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("GetProject %s/%s", namespace, name))
	if f.projectErr != nil {
		return nil, f.projectErr
	}
	return f.project, nil
}

func (f *fakeRepo) GetTags(_ context.Context, _ *Project) ([]Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetTags")
	if f.tagsErr != nil {
		return nil, f.tagsErr
	}
	tags := make([]Tag, len(f.tags))
	copy(tags, f.tags)
	return tags, nil
}

func (f *fakeRepo) ListCommits(_ context.Context, _ int, branch string, since *Watermark) ([]Commit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListCommits")
	f.branch = branch
	f.since = since
	if f.commitsErr != nil {
		return nil, f.commitsErr
	}
	commits := make([]Commit, len(f.commits))
	copy(commits, f.commits)
	return commits, nil
}

func (f *fakeRepo) CreateTag(_ context.Context, _ *Project, tagName, commitID, _, message string) (*Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateTag")
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.rejectDuplicates {
		for _, t := range f.tags {
			if t.Name == tagName {
				return nil, fmt.Errorf("tag %s already exists", tagName)
			}
		}
	}
	f.created = append(f.created, createdTag{Name: tagName, CommitID: commitID, Message: message})
	tag := Tag{Name: tagName, Commit: Commit{ID: commitID}}
	f.tags = append([]Tag{tag}, f.tags...)
	return &tag, nil
}

// fakeConnector hands out the same fakeRepo on every Connect.
type fakeConnector struct {
	repo  *fakeRepo
	err   error
	calls int
	host  string
	token string
}

func (c *fakeConnector) Connect(host, token string) (TagRepository, error) {
	c.calls++
	c.host = host
	c.token = token
	if c.err != nil {
		return nil, c.err
	}
	c.repo.connected++
	return c.repo, nil
}

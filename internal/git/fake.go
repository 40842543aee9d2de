package git

import (
	"context"
	"errors"
	"sort"
)

// ErrRepositoryNotFound is returned by FakeBackend.Open for paths it
// does not know about.
var ErrRepositoryNotFound = errors.New("repository does not exist")

var errReferenceNotFound = errors.New("reference not found")

// FakeBackend is a test double for Backend. It allows traversal and
// aggregation tests to run against predefined repositories without
// touching the filesystem.
type FakeBackend struct {
	Repos map[string]*FakeRepository // keyed by path
}

// NewFakeBackend creates an empty FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{Repos: map[string]*FakeRepository{}}
}

// Add registers a fake repository under the given path.
func (b *FakeBackend) Add(path string, repo *FakeRepository) *FakeBackend {
	b.Repos[path] = repo
	return b
}

// Open returns the registered repository or an *OpenError.
func (b *FakeBackend) Open(path string) (Repository, error) {
	repo, ok := b.Repos[path]
	if !ok {
		return nil, &OpenError{Path: path, Err: ErrRepositoryNotFound}
	}
	if repo.OpenErr != nil {
		return nil, &OpenError{Path: path, Err: repo.OpenErr}
	}
	repo.path = path
	return repo, nil
}

// FakeRepository holds predefined branch histories. Each branch maps
// to its full ancestry, tip first.
type FakeRepository struct {
	Branches  map[string][]Commit
	HeadState HeadState
	HeadErr   error
	OpenErr   error
	ListErr   error
	WalkErrs  map[string]error // per-branch resolution failures

	path string
}

func (r *FakeRepository) LocalBranches() ([]string, error) {
	if r.ListErr != nil {
		return nil, &BranchError{Path: r.path, Err: r.ListErr}
	}
	names := make([]string, 0, len(r.Branches))
	for name := range r.Branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *FakeRepository) Head() (HeadState, error) {
	if r.HeadErr != nil {
		return HeadState{}, &HeadError{Path: r.path, Err: r.HeadErr}
	}
	return r.HeadState, nil
}

func (r *FakeRepository) WalkBranch(ctx context.Context, branch string, visit func(Commit) error) error {
	if err, ok := r.WalkErrs[branch]; ok {
		return &BranchError{Path: r.path, Branch: branch, Err: err}
	}
	commits, ok := r.Branches[branch]
	if !ok {
		return &BranchError{Path: r.path, Branch: branch, Err: errReferenceNotFound}
	}
	for _, commit := range commits {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := visit(commit); err != nil {
			return err
		}
	}
	return nil
}

// Compile-time interface conformance checks.
var (
	_ Backend    = (*FakeBackend)(nil)
	_ Repository = (*FakeRepository)(nil)
)

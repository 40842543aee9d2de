package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitBackend opens repositories with go-git. This is the default
// backend.
type GoGitBackend struct{}

// NewGoGitBackend creates the go-git backed Backend.
func NewGoGitBackend() *GoGitBackend {
	return &GoGitBackend{}
}

// Open opens the repository at path. PlainOpen accepts both bare
// repositories and working copies.
func (b *GoGitBackend) Open(path string) (Repository, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &goGitRepository{path: path, repo: repo}, nil
}

type goGitRepository struct {
	path string
	repo *gogit.Repository
}

func (r *goGitRepository) LocalBranches() ([]string, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, &BranchError{Path: r.path, Err: err}
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, &BranchError{Path: r.path, Err: err}
	}
	return names, nil
}

func (r *goGitRepository) Head() (HeadState, error) {
	ref, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// Initialized repository with no commits yet.
		return HeadState{Kind: HeadUnborn}, nil
	}
	if err != nil {
		return HeadState{}, &HeadError{Path: r.path, Err: err}
	}
	if ref.Name().IsBranch() {
		return HeadState{Kind: HeadOnBranch, Branch: ref.Name().Short()}, nil
	}
	return HeadState{Kind: HeadDetached}, nil
}

func (r *goGitRepository) WalkBranch(ctx context.Context, branch string, visit func(Commit) error) error {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return &BranchError{Path: r.path, Branch: branch, Err: err}
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: ref.Hash()})
	if err != nil {
		return &BranchError{Path: r.path, Branch: branch, Err: err}
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return visit(Commit{
			Hash:    c.Hash.String(),
			Author:  fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email),
			Message: c.Message,
			When:    c.Author.When,
		})
	})
}

// Compile-time interface conformance checks.
var (
	_ Backend    = (*GoGitBackend)(nil)
	_ Repository = (*goGitRepository)(nil)
)

package git

import "context"

// Backend abstracts access to local Git repositories.
//
// The default implementation uses go-git, but the interface allows
// alternative implementations: a git-CLI backend and an in-memory fake
// for testing traversal and aggregation logic.
type Backend interface {
	// Open validates that path is a readable local repository (bare or
	// working copy) and returns a handle for it. The handle is only
	// valid for the duration of the current operation and must not be
	// shared between goroutines.
	Open(path string) (Repository, error)
}

// Repository is a read-only view of one opened repository.
type Repository interface {
	// LocalBranches returns the short names of all local branches, in
	// whatever order the backend yields them. An empty slice is valid
	// (freshly initialized repository).
	LocalBranches() ([]string, error)

	// Head resolves the repository's HEAD. Unborn and detached HEADs
	// are valid states, not errors; any other resolution failure
	// returns a *HeadError.
	Head() (HeadState, error)

	// WalkBranch resolves the named branch to its tip and visits every
	// reachable ancestor, newest first. The walk stops early when visit
	// or the context returns an error.
	WalkBranch(ctx context.Context, branch string, visit func(Commit) error) error
}

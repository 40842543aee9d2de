package search

import (
	"path/filepath"

	"github.com/grepo-cli/grepo/internal/git"
)

// Set is the watched repository set: a base directory plus the names
// of the repositories under it. It is an immutable snapshot supplied
// by the configuration layer; the engine never mutates it.
type Set struct {
	BasePath string
	Repos    []string
}

// RepoPath returns the filesystem path of a watched repository.
func (s Set) RepoPath(name string) string {
	return filepath.Join(s.BasePath, name)
}

// Branch identifies a local branch within a watched repository.
type Branch struct {
	Repo string
	Name string
}

// Match records a commit found by a branch walk. A commit reachable
// from several branches produces one Match per branch; the engine does
// not deduplicate across branches.
type Match struct {
	Repo   string
	Branch string
	Commit git.Commit
}

// HeadStatus reports where a watched repository's HEAD points. Err is
// set when HEAD exists but could not be resolved; the unborn and
// detached states are carried in Head, not Err.
type HeadStatus struct {
	Repo string
	Head git.HeadState
	Err  error
}

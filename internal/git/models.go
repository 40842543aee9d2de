package git

import "time"

// Commit represents minimal information about a Git commit.
type Commit struct {
	Hash    string
	Author  string // "Name <email>"
	Message string
	When    time.Time
}

// Summary returns the first line of the commit message.
func (c Commit) Summary() string {
	for i := 0; i < len(c.Message); i++ {
		if c.Message[i] == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}

// HeadKind classifies the state of a repository's HEAD reference.
type HeadKind int

const (
	// HeadOnBranch means HEAD points at a local branch.
	HeadOnBranch HeadKind = iota
	// HeadUnborn means HEAD names a branch that has no commits yet.
	HeadUnborn
	// HeadDetached means HEAD points directly at a commit.
	HeadDetached
)

// NoBranchSentinel is reported for repositories that are not currently
// on any branch (unborn or detached HEAD). It is a valid state, not an
// error.
const NoBranchSentinel = "(no branch)"

// HeadState describes where a repository's HEAD currently points.
type HeadState struct {
	Kind   HeadKind
	Branch string // short branch name, set only for HeadOnBranch
}

// String returns the short branch name, or NoBranchSentinel when the
// repository is not on a branch.
func (h HeadState) String() string {
	if h.Kind == HeadOnBranch {
		return h.Branch
	}
	return NoBranchSentinel
}

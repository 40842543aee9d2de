package search

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/grepo-cli/grepo/internal/git"
)

// Options configures a Searcher.
type Options struct {
	// Workers bounds the number of repositories processed concurrently.
	// Defaults to runtime.NumCPU().
	Workers int
}

// Searcher drives branch and commit queries across a watched
// repository set. Repositories are opened fresh for every call and
// processed independently, so one broken repository never aborts a
// whole listing run.
type Searcher struct {
	backend git.Backend
	logger  *zap.Logger
	workers int
}

// NewSearcher creates a Searcher on top of the given backend.
func NewSearcher(backend git.Backend, logger *zap.Logger, opts Options) *Searcher {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{backend: backend, logger: logger, workers: workers}
}

// IsValidRepository reports whether basePath/name is an openable local
// repository. Used by the watch-registration and scan workflows to
// filter candidate names.
func (s *Searcher) IsValidRepository(basePath, name string) bool {
	_, err := s.backend.Open(Set{BasePath: basePath}.RepoPath(name))
	return err == nil
}

// ListBranches enumerates the local branches of every watched
// repository. Repositories that cannot be opened or read contribute
// nothing and are logged; an entry with an empty branch list is a
// valid, freshly initialized repository. Result order is unspecified.
func (s *Searcher) ListBranches(ctx context.Context, set Set) (map[string][]Branch, error) {
	results := make(map[string][]Branch, len(set.Repos))
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for _, name := range set.Repos {
		name := name
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			branches, err := s.repoBranches(set, name)
			if err != nil {
				s.logger.Warn("skipping repository",
					zap.String("repo", name), zap.Error(err))
				return nil
			}
			mu.Lock()
			results[name] = branches
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SearchBranches returns, per repository, the local branches whose
// name contains pattern. Repositories with no matching branches are
// omitted from the mapping entirely.
func (s *Searcher) SearchBranches(ctx context.Context, set Set, pattern string) (map[string][]Branch, error) {
	all, err := s.ListBranches(ctx, set)
	if err != nil {
		return nil, err
	}

	results := make(map[string][]Branch)
	for repo, branches := range all {
		var matched []Branch
		for _, branch := range branches {
			if strings.Contains(branch.Name, pattern) {
				matched = append(matched, branch)
			}
		}
		if len(matched) > 0 {
			results[repo] = matched
		}
	}
	return results, nil
}

// CurrentBranches resolves the current branch of every watched
// repository. Repositories that cannot be opened are skipped; a HEAD
// that resolves to no branch yields the sentinel state, while a
// corrupt HEAD is carried as the repository's Err. Result order is
// unspecified.
func (s *Searcher) CurrentBranches(ctx context.Context, set Set) ([]HeadStatus, error) {
	var (
		results []HeadStatus
		mu      sync.Mutex
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for _, name := range set.Repos {
		name := name
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			repo, err := s.backend.Open(set.RepoPath(name))
			if err != nil {
				s.logger.Warn("skipping repository",
					zap.String("repo", name), zap.Error(err))
				return nil
			}
			head, err := repo.Head()
			mu.Lock()
			results = append(results, HeadStatus{Repo: name, Head: head, Err: err})
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CommitQuery configures SearchCommits.
type CommitQuery struct {
	Pattern string
	// IncludeAuthor also matches the pattern against the author string.
	IncludeAuthor bool
}

// Matches reports whether a commit satisfies the query.
func (q CommitQuery) Matches(c git.Commit) bool {
	if strings.Contains(c.Message, q.Pattern) {
		return true
	}
	return q.IncludeAuthor && strings.Contains(c.Author, q.Pattern)
}

// SearchCommits walks the full history of every local branch in every
// watched repository and returns the commits matching the query, one
// Match per (branch, commit) pair.
//
// Failure policy: repositories that cannot be opened are skipped, but
// a branch that enumerates and then fails to resolve means the
// repository is corrupt mid-read, so the whole call fails rather than
// returning a silently incomplete result. Result order is unspecified.
func (s *Searcher) SearchCommits(ctx context.Context, set Set, query CommitQuery) ([]Match, error) {
	var (
		results []Match
		mu      sync.Mutex
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for _, name := range set.Repos {
		name := name
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			repo, err := s.backend.Open(set.RepoPath(name))
			if err != nil {
				s.logger.Warn("skipping repository",
					zap.String("repo", name), zap.Error(err))
				return nil
			}
			branches, err := repo.LocalBranches()
			if err != nil {
				return err
			}

			var found []Match
			for _, branch := range branches {
				err := repo.WalkBranch(ctx, branch, func(c git.Commit) error {
					if query.Matches(c) {
						found = append(found, Match{Repo: name, Branch: branch, Commit: c})
					}
					return nil
				})
				if err != nil {
					return err
				}
			}

			mu.Lock()
			results = append(results, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Searcher) repoBranches(set Set, name string) ([]Branch, error) {
	repo, err := s.backend.Open(set.RepoPath(name))
	if err != nil {
		return nil, err
	}
	names, err := repo.LocalBranches()
	if err != nil {
		return nil, err
	}
	branches := make([]Branch, 0, len(names))
	for _, branch := range names {
		branches = append(branches, Branch{Repo: name, Name: branch})
	}
	return branches, nil
}

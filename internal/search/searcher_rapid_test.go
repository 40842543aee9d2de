package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/grepo-cli/grepo/internal/git"
)

// --- Generators ---

func genCommit() *rapid.Generator[git.Commit] {
	return rapid.Custom(func(t *rapid.T) git.Commit {
		return git.Commit{
			Hash:    fmt.Sprintf("%040x", rapid.Uint64().Draw(t, "hash")),
			Author:  rapid.SampledFrom([]string{"Alice <a@x>", "Bob <b@x>", "Carol <c@x>"}).Draw(t, "author"),
			Message: rapid.StringMatching(`[a-z ]{0,30}`).Draw(t, "message"),
		}
	})
}

func genRepository() *rapid.Generator[*git.FakeRepository] {
	return rapid.Custom(func(t *rapid.T) *git.FakeRepository {
		branchNames := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[a-z]{1,8}`), 0, 4, rapid.ID[string],
		).Draw(t, "branches")

		branches := map[string][]git.Commit{}
		for _, name := range branchNames {
			branches[name] = rapid.SliceOfN(genCommit(), 0, 10).Draw(t, "commits-"+name)
		}
		return &git.FakeRepository{
			Branches:  branches,
			HeadState: git.HeadState{Kind: git.HeadUnborn},
		}
	})
}

func genSet(t *rapid.T) (*git.FakeBackend, Set) {
	repoNames := rapid.SliceOfNDistinct(
		rapid.StringMatching(`[a-z]{1,8}`), 0, 4, rapid.ID[string],
	).Draw(t, "repos")

	backend := git.NewFakeBackend()
	set := Set{BasePath: "/repos", Repos: repoNames}
	for _, name := range repoNames {
		backend.Add(set.RepoPath(name), genRepository().Draw(t, "repo-"+name))
	}
	return backend, set
}

func matchKeys(matches []Match) []string {
	keys := make([]string, 0, len(matches))
	for _, match := range matches {
		keys = append(keys, match.Repo+"\x00"+match.Branch+"\x00"+match.Commit.Hash)
	}
	sort.Strings(keys)
	return keys
}

// --- Property Tests ---

// Running a search twice against an unchanged set yields the same
// records regardless of worker scheduling.
func TestRapidSearchCommits_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		backend, set := genSet(t)
		pattern := rapid.StringMatching(`[a-z]{0,3}`).Draw(t, "pattern")
		searcher := NewSearcher(backend, zap.NewNop(), Options{Workers: rapid.IntRange(1, 4).Draw(t, "workers")})

		first, err := searcher.SearchCommits(context.Background(), set, CommitQuery{Pattern: pattern})
		if err != nil {
			t.Fatalf("first SearchCommits: %v", err)
		}
		second, err := searcher.SearchCommits(context.Background(), set, CommitQuery{Pattern: pattern})
		if err != nil {
			t.Fatalf("second SearchCommits: %v", err)
		}

		firstKeys, secondKeys := matchKeys(first), matchKeys(second)
		if len(firstKeys) != len(secondKeys) {
			t.Fatalf("result sizes differ: %d vs %d", len(firstKeys), len(secondKeys))
		}
		for i := range firstKeys {
			if firstKeys[i] != secondKeys[i] {
				t.Fatalf("results differ at %d: %q vs %q", i, firstKeys[i], secondKeys[i])
			}
		}
	})
}

// Every reported match satisfies the query, and the count equals a
// sequential brute-force scan over the same data.
func TestRapidSearchCommits_MatchesBruteForce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		backend, set := genSet(t)
		query := CommitQuery{
			Pattern:       rapid.StringMatching(`[a-z]{0,3}`).Draw(t, "pattern"),
			IncludeAuthor: rapid.Bool().Draw(t, "author"),
		}
		searcher := NewSearcher(backend, zap.NewNop(), Options{Workers: 3})

		matches, err := searcher.SearchCommits(context.Background(), set, query)
		if err != nil {
			t.Fatalf("SearchCommits: %v", err)
		}

		expected := 0
		for _, name := range set.Repos {
			for _, commits := range backend.Repos[set.RepoPath(name)].Branches {
				for _, c := range commits {
					if query.Matches(c) {
						expected++
					}
				}
			}
		}
		if len(matches) != expected {
			t.Fatalf("matches = %d, brute force found %d", len(matches), expected)
		}

		for _, match := range matches {
			if strings.Contains(match.Commit.Message, query.Pattern) {
				continue
			}
			if query.IncludeAuthor && strings.Contains(match.Commit.Author, query.Pattern) {
				continue
			}
			t.Fatalf("match %+v does not satisfy query %+v", match, query)
		}
	})
}

// Branch search never invents entries: every mapping entry is
// non-empty and every branch name contains the pattern.
func TestRapidSearchBranches_NoEmptyEntries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		backend, set := genSet(t)
		pattern := rapid.StringMatching(`[a-z]{0,3}`).Draw(t, "pattern")
		searcher := NewSearcher(backend, zap.NewNop(), Options{Workers: 2})

		matches, err := searcher.SearchBranches(context.Background(), set, pattern)
		if err != nil {
			t.Fatalf("SearchBranches: %v", err)
		}

		for repo, branches := range matches {
			if len(branches) == 0 {
				t.Fatalf("repo %s has an empty entry", repo)
			}
			for _, branch := range branches {
				if !strings.Contains(branch.Name, pattern) {
					t.Fatalf("branch %q does not contain %q", branch.Name, pattern)
				}
				if branch.Repo != repo {
					t.Fatalf("branch %+v filed under repo %s", branch, repo)
				}
			}
		}
	})
}

// Package output renders engine result records for the console. It
// owns all presentation concerns so the search engine can stay free of
// formatting.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/grepo-cli/grepo/internal/search"
)

// Console writes human-readable reports.
type Console struct {
	Out io.Writer
}

// NewConsole creates a Console writing to stdout.
func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

// WriteBranchList prints every repository with its local branches.
func (c *Console) WriteBranchList(branches map[string][]search.Branch) {
	for _, repo := range sortedKeys(branches) {
		c.section(repo)
		for _, branch := range sortedBranches(branches[repo]) {
			fmt.Fprintln(c.Out, branch.Name)
		}
		fmt.Fprintln(c.Out)
	}
}

// WriteBranchMatches prints branch search results as a table.
func (c *Console) WriteBranchMatches(pattern string, matches map[string][]search.Branch) {
	if len(matches) == 0 {
		fmt.Fprintf(c.Out, "Pattern %q not found in any watched repo\n", pattern)
		return
	}

	c.green("Pattern %q found in:", pattern)
	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Repo\tBranch")
	for _, repo := range sortedKeys(matches) {
		for _, branch := range sortedBranches(matches[repo]) {
			fmt.Fprintf(tw, "%s\t%s\n", repo, branch.Name)
		}
	}
	tw.Flush()
}

// WriteCurrentBranches prints the branch each repository is on.
func (c *Console) WriteCurrentBranches(statuses []search.HeadStatus) {
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Repo < statuses[j].Repo })

	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Repo\tCurrent branch")
	for _, status := range statuses {
		if status.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\n", status.Repo, status.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", status.Repo, status.Head)
	}
	tw.Flush()
}

// WriteCommitMatches prints commit search results as a table, one row
// per (branch, commit) pair.
func (c *Console) WriteCommitMatches(pattern string, matches []search.Match) {
	if len(matches) == 0 {
		fmt.Fprintf(c.Out, "Pattern %q not found in any commit\n", pattern)
		return
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Repo != matches[j].Repo {
			return matches[i].Repo < matches[j].Repo
		}
		if matches[i].Branch != matches[j].Branch {
			return matches[i].Branch < matches[j].Branch
		}
		return matches[i].Commit.Hash < matches[j].Commit.Hash
	})

	c.green("Pattern %q found in %d commits:", pattern, len(matches))
	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Repo\tBranch\tCommit\tAuthor\tMessage")
	for _, match := range matches {
		fmt.Fprintf(tw, "%s\t%s\t%.8s\t%s\t%s\n",
			match.Repo, match.Branch, match.Commit.Hash,
			match.Commit.Author, match.Commit.Summary())
	}
	tw.Flush()
}

// WriteNames prints a plain section with one name per line.
func (c *Console) WriteNames(title string, names []string) {
	c.section(title)
	for _, name := range names {
		fmt.Fprintln(c.Out, name)
	}
}

func (c *Console) green(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(c.Out, format+"\n", args...)
}

func (c *Console) section(title string) {
	fmt.Fprintf(c.Out, "%s\n--------------------------\n", title)
}

func sortedKeys(m map[string][]search.Branch) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedBranches(branches []search.Branch) []search.Branch {
	sorted := make([]search.Branch, len(branches))
	copy(sorted, branches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}

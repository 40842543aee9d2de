package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CLIBackend opens repositories by shelling out to the git executable.
// It exists for repositories go-git cannot read (exotic extensions,
// very large object stores); select it with --backend=gitcli.
type CLIBackend struct {
	// Git is the executable to invoke. Defaults to "git".
	Git string
}

// NewCLIBackend creates a Backend that shells out to git.
func NewCLIBackend() *CLIBackend {
	return &CLIBackend{Git: "git"}
}

func (b *CLIBackend) run(ctx context.Context, dir string, args ...string) (string, error) {
	git := b.Git
	if git == "" {
		git = "git"
	}
	cmd := exec.CommandContext(ctx, git, append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// Open validates path with rev-parse and returns a handle bound to it.
func (b *CLIBackend) Open(path string) (Repository, error) {
	if _, err := b.run(context.Background(), path, "rev-parse", "--git-dir"); err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &cliRepository{backend: b, path: path}, nil
}

type cliRepository struct {
	backend *CLIBackend
	path    string
}

func (r *cliRepository) LocalBranches() ([]string, error) {
	out, err := r.backend.run(context.Background(), r.path,
		"for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, &BranchError{Path: r.path, Err: err}
	}

	var names []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

func (r *cliRepository) Head() (HeadState, error) {
	out, err := r.backend.run(context.Background(), r.path, "symbolic-ref", "--quiet", "--short", "HEAD")
	if err != nil {
		// symbolic-ref exits 1 (quietly) when HEAD is detached.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return HeadState{Kind: HeadDetached}, nil
		}
		return HeadState{}, &HeadError{Path: r.path, Err: err}
	}

	branch := strings.TrimSpace(out)
	// HEAD names a branch; if the branch has no commits yet it is unborn.
	if _, err := r.backend.run(context.Background(), r.path, "rev-parse", "--verify", "--quiet", "HEAD"); err != nil {
		return HeadState{Kind: HeadUnborn}, nil
	}
	return HeadState{Kind: HeadOnBranch, Branch: branch}, nil
}

func (r *cliRepository) WalkBranch(ctx context.Context, branch string, visit func(Commit) error) error {
	ref := "refs/heads/" + branch
	if _, err := r.backend.run(ctx, r.path, "rev-parse", "--verify", "--quiet", ref); err != nil {
		return &BranchError{Path: r.path, Branch: branch, Err: err}
	}

	// Each record is prefixed by 0x1e (record separator) with
	// NUL-separated fields, so arbitrary commit messages parse reliably.
	const format = "%x1e%H%x00%an <%ae>%x00%aI%x00%B"
	out, err := r.backend.run(ctx, r.path, "log", "--no-color", "--pretty=format:"+format, ref)
	if err != nil {
		return &BranchError{Path: r.path, Branch: branch, Err: err}
	}

	for _, record := range strings.Split(out, "\x1e") {
		if record == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.SplitN(record, "\x00", 4)
		if len(fields) != 4 {
			return &BranchError{Path: r.path, Branch: branch,
				Err: fmt.Errorf("malformed log record %q", record)}
		}

		when, err := time.Parse(time.RFC3339, fields[2])
		if err != nil {
			return &BranchError{Path: r.path, Branch: branch, Err: err}
		}

		commit := Commit{
			Hash:    fields[0],
			Author:  fields[1],
			Message: strings.TrimSuffix(fields[3], "\n"),
			When:    when,
		}
		if err := visit(commit); err != nil {
			return err
		}
	}
	return nil
}

// Compile-time interface conformance checks.
var (
	_ Backend    = (*CLIBackend)(nil)
	_ Repository = (*cliRepository)(nil)
)

// Package discovery locates candidate repositories directly under the
// watched base directory, for re-populating the watched set.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/grepo-cli/grepo/internal/git"
)

// Scanner scans one directory level below a base path for valid
// repositories.
type Scanner struct {
	backend git.Backend
	logger  *zap.Logger
	exclude []string // glob patterns matched against directory names
}

// NewScanner creates a Scanner that validates candidates with backend
// and drops directory names matching any exclude pattern.
func NewScanner(backend git.Backend, logger *zap.Logger, exclude []string) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{backend: backend, logger: logger, exclude: exclude}
}

// Scan returns the sorted names of directories directly under basePath
// that are openable repositories. Non-repository directories and
// excluded names are skipped and logged.
func (s *Scanner) Scan(basePath string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}

	var repos []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if s.excluded(name) {
			s.logger.Debug("excluded by pattern", zap.String("dir", name))
			continue
		}
		if _, err := s.backend.Open(filepath.Join(basePath, name)); err != nil {
			s.logger.Debug("not a repository", zap.String("dir", name), zap.Error(err))
			continue
		}
		repos = append(repos, name)
	}

	sort.Strings(repos)
	return repos, nil
}

func (s *Scanner) excluded(name string) bool {
	for _, pattern := range s.exclude {
		matched, _ := doublestar.Match(pattern, name)
		if matched {
			return true
		}
	}
	return false
}

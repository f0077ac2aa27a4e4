package gitrepo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRepositoryNotFound reports that no .git directory exists in the start
// directory or any of its ancestors.
var ErrRepositoryNotFound = errors.New("not inside a git repository")

// Discover walks up from start until it finds a .git directory and returns
// its absolute path. The walk stops at the filesystem root.
func Discover(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return gitDir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRepositoryNotFound
		}
		dir = parent
	}
}

package gitrepo

import (
	"log/slog"
	"path/filepath"
)

// Repository is the on-disk collaborator set for one git repository: ref
// enumeration plus the loose-object store. It only ever reads.
type Repository struct {
	gitDir        string
	includePacked bool
	logger        *slog.Logger

	Objects *ObjectStore
}

// Options configures Open.
type Options struct {
	// IncludePacked enables packed-refs entries in Branches.
	IncludePacked bool
	// Logger receives debug diagnostics; nil means slog.Default().
	Logger *slog.Logger
}

// Open discovers the .git directory at or above dir and returns a
// Repository over it.
func Open(dir string, opts Options) (*Repository, error) {
	gitDir, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("opened repository", "git_dir", gitDir)
	return &Repository{
		gitDir:        gitDir,
		includePacked: opts.IncludePacked,
		logger:        logger,
		Objects:       NewObjectStore(filepath.Join(gitDir, "objects")),
	}, nil
}

// GitDir returns the absolute path of the repository's .git directory.
func (r *Repository) GitDir() string {
	return r.gitDir
}

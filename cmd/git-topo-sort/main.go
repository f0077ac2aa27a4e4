package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dhruvpatel-05/Git-Topo-Sort/internal/config"
	"github.com/dhruvpatel-05/Git-Topo-Sort/internal/dag"
	"github.com/dhruvpatel-05/Git-Topo-Sort/internal/gitrepo"
	"github.com/dhruvpatel-05/Git-Topo-Sort/internal/watch"
)

func main() {
	var (
		workDir    string
		configPath string
		logLevel   string
		logFormat  string
		watchMode  bool
	)

	flag.StringVar(&workDir, "C", ".", "Run as if started in this directory")
	flag.StringVar(&configPath, "config", "", "Path to optional YAML config file")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	flag.BoolVar(&watchMode, "watch", false, "Keep running and re-print when branch refs change")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "git-topo-sort: %v\n", err)
			os.Exit(1)
		}
		cfg = c
	}
	// Flags override the config file.
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	// Logs go to stderr so the ordering on stdout stays byte-exact.
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	repo, err := gitrepo.Open(workDir, gitrepo.Options{
		IncludePacked: cfg.Refs.IncludePacked,
		Logger:        logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "git-topo-sort: %v\n", err)
		os.Exit(1)
	}

	if err := run(repo, logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "git-topo-sort: %v\n", err)
		os.Exit(1)
	}

	if !watchMode {
		return
	}

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	w, err := watch.New(watchPaths(repo.GitDir()), debounce, func() {
		if err := run(repo, logger, os.Stdout); err != nil {
			logger.Error("re-run failed", "error", err)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "git-topo-sort: %v\n", err)
		os.Exit(1)
	}
	defer w.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	logger.Info("watching for ref changes", "git_dir", repo.GitDir())
	<-sig
	logger.Info("shutting down")
}

// run executes the full pipeline once: enumerate branches, build the
// commit graph from the heads, sequence it, render to out.
func run(repo *gitrepo.Repository, logger *slog.Logger, out io.Writer) error {
	branches, err := repo.Branches()
	if err != nil {
		return err
	}

	// Heads are deduplicated for traversal; every branch name per head is
	// kept for annotation.
	headBranches := make(map[string][]string)
	heads := make([]string, 0, len(branches))
	for _, b := range branches {
		if _, ok := headBranches[b.Head]; !ok {
			heads = append(heads, b.Head)
		}
		headBranches[b.Head] = append(headBranches[b.Head], b.Name)
	}

	g, err := dag.Build(repo.Objects, heads)
	if err != nil {
		return err
	}
	logger.Debug("graph built", "commits", g.Len(), "heads", len(heads))

	order := g.Sequence()
	bw := bufio.NewWriter(out)
	for _, line := range dag.Render(g, order, headBranches) {
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}

// watchPaths lists what -watch observes: the .git directory itself (for
// packed-refs and HEAD writes) plus every directory under refs/heads.
func watchPaths(gitDir string) []string {
	paths := []string{gitDir}
	headsDir := filepath.Join(gitDir, "refs", "heads")
	filepath.WalkDir(headsDir, func(p string, d fs.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			paths = append(paths, p)
		}
		return nil
	})
	return paths
}

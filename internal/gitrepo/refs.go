package gitrepo

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Branch is a named pointer to a head commit. Multiple branch names may
// share the same head; callers rely on every name being preserved.
type Branch struct {
	Name string
	Head string
}

// Branches enumerates the repository's local branches: every file under
// refs/heads (nested names keep their / separators), plus packed-refs
// entries when the repository has them. A loose ref shadows a packed ref
// of the same name, matching git's own resolution order.
func (r *Repository) Branches() ([]Branch, error) {
	loose, err := r.looseBranches()
	if err != nil {
		return nil, err
	}

	branches := loose
	if r.includePacked {
		seen := make(map[string]struct{}, len(loose))
		for _, b := range loose {
			seen[b.Name] = struct{}{}
		}
		packed, err := r.packedBranches()
		if err != nil {
			return nil, err
		}
		for _, b := range packed {
			if _, ok := seen[b.Name]; !ok {
				branches = append(branches, b)
			}
		}
	}

	r.logger.Debug("enumerated branches", "count", len(branches))
	return branches, nil
}

func (r *Repository) looseBranches() ([]Branch, error) {
	headsDir := filepath.Join(r.gitDir, "refs", "heads")
	if _, err := os.Stat(headsDir); os.IsNotExist(err) {
		return nil, nil
	}

	var branches []Branch
	err := filepath.WalkDir(headsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		head, err := readRefFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(headsDir, path)
		if err != nil {
			return err
		}
		branches = append(branches, Branch{Name: filepath.ToSlash(rel), Head: head})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk refs/heads: %w", err)
	}
	return branches, nil
}

// readRefFile returns the first line of a ref file, trimmed.
func readRefFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read ref %s: %w", path, err)
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line), nil
}

// packedBranches parses refs/heads entries out of the packed-refs file.
// Comment lines (#) and peeled-tag lines (^) are skipped.
func (r *Repository) packedBranches() ([]Branch, error) {
	f, err := os.Open(filepath.Join(r.gitDir, "packed-refs"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open packed-refs: %w", err)
	}
	defer f.Close()

	var branches []Branch
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "^") {
			continue
		}
		hash, ref, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		if name, found := strings.CutPrefix(ref, "refs/heads/"); found {
			branches = append(branches, Branch{Name: name, Head: hash})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read packed-refs: %w", err)
	}
	return branches, nil
}

package gitrepo

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// initGitDir lays out a bare .git skeleton inside a temp dir and returns
// both the work dir and the .git path.
func initGitDir(t *testing.T) (workDir, gitDir string) {
	t.Helper()
	workDir = t.TempDir()
	gitDir = filepath.Join(workDir, ".git")
	for _, dir := range []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "refs", "heads"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return workDir, gitDir
}

// writeCommit stores a loose commit object with the given parents and
// returns its real SHA-1 ID.
func writeCommit(t *testing.T, gitDir string, parents []string, msg string) string {
	t.Helper()

	var body bytes.Buffer
	body.WriteString("tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n")
	for _, p := range parents {
		body.WriteString("parent " + p + "\n")
	}
	body.WriteString("author A U Thor <author@example.com> 1700000000 +0000\n")
	body.WriteString("committer A U Thor <author@example.com> 1700000000 +0000\n")
	body.WriteString("\n")
	body.WriteString(msg + "\n")

	payload := fmt.Sprintf("commit %d\x00%s", body.Len(), body.String())
	id, err := ObjectID([]byte(payload))
	if err != nil {
		t.Fatalf("ObjectID: %v", err)
	}

	writeObject(t, gitDir, id, []byte(payload))
	return id
}

// writeObject zlib-compresses payload into objects/<id[:2]>/<id[2:]>.
func writeObject(t *testing.T, gitDir, id string, payload []byte) {
	t.Helper()
	objDir := filepath.Join(gitDir, "objects", id[:2])
	if err := os.MkdirAll(objDir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", objDir, err)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(payload); err != nil {
		t.Fatalf("compress object: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close compressor: %v", err)
	}
	if err := os.WriteFile(filepath.Join(objDir, id[2:]), compressed.Bytes(), 0644); err != nil {
		t.Fatalf("write object: %v", err)
	}
}

// writeRef writes a loose branch ref file. Nested names create directories.
func writeRef(t *testing.T, gitDir, name, head string) {
	t.Helper()
	path := filepath.Join(gitDir, "refs", "heads", filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir ref dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(head+"\n"), 0644); err != nil {
		t.Fatalf("write ref %s: %v", name, err)
	}
}

// writePackedRefs writes a packed-refs file from name→hash entries.
func writePackedRefs(t *testing.T, gitDir string, entries map[string]string) {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("# pack-refs with: peeled fully-peeled sorted \n")
	for name, hash := range entries {
		sb.WriteString(hash + " refs/heads/" + name + "\n")
	}
	if err := os.WriteFile(filepath.Join(gitDir, "packed-refs"), []byte(sb.String()), 0644); err != nil {
		t.Fatalf("write packed-refs: %v", err)
	}
}

func openTestRepo(t *testing.T, workDir string) *Repository {
	t.Helper()
	repo, err := Open(workDir, Options{
		IncludePacked: true,
		Logger:        slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return repo
}

package gitrepo

import (
	"strings"
	"testing"
)

func branchMap(branches []Branch) map[string]string {
	m := make(map[string]string, len(branches))
	for _, b := range branches {
		m[b.Name] = b.Head
	}
	return m
}

func TestBranches_LooseWithNestedNames(t *testing.T) {
	workDir, gitDir := initGitDir(t)
	writeRef(t, gitDir, "main", "1111111111111111111111111111111111111111")
	writeRef(t, gitDir, "feature/login", "2222222222222222222222222222222222222222")
	writeRef(t, gitDir, "feature/deep/fix", "3333333333333333333333333333333333333333")

	repo := openTestRepo(t, workDir)
	branches, err := repo.Branches()
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if len(branches) != 3 {
		t.Fatalf("got %d branches, want 3: %v", len(branches), branches)
	}

	got := branchMap(branches)
	if got["feature/login"] != "2222222222222222222222222222222222222222" {
		t.Errorf("feature/login = %q", got["feature/login"])
	}
	if got["feature/deep/fix"] != "3333333333333333333333333333333333333333" {
		t.Errorf("feature/deep/fix = %q", got["feature/deep/fix"])
	}
	for name := range got {
		if strings.Contains(name, "\\") {
			t.Errorf("branch name %q contains a path separator", name)
		}
	}
}

func TestBranches_PackedRefs(t *testing.T) {
	workDir, gitDir := initGitDir(t)
	writePackedRefs(t, gitDir, map[string]string{
		"main":   "4444444444444444444444444444444444444444",
		"v2-dev": "5555555555555555555555555555555555555555",
	})

	repo := openTestRepo(t, workDir)
	branches, err := repo.Branches()
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}

	got := branchMap(branches)
	if len(got) != 2 {
		t.Fatalf("got %d branches, want 2: %v", len(got), got)
	}
	if got["main"] != "4444444444444444444444444444444444444444" {
		t.Errorf("main = %q", got["main"])
	}
}

func TestBranches_LooseShadowsPacked(t *testing.T) {
	workDir, gitDir := initGitDir(t)
	writePackedRefs(t, gitDir, map[string]string{
		"main": "4444444444444444444444444444444444444444",
	})
	writeRef(t, gitDir, "main", "6666666666666666666666666666666666666666")

	repo := openTestRepo(t, workDir)
	branches, err := repo.Branches()
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if len(branches) != 1 {
		t.Fatalf("got %d branches, want 1: %v", len(branches), branches)
	}
	if branches[0].Head != "6666666666666666666666666666666666666666" {
		t.Errorf("head = %q, want the loose value", branches[0].Head)
	}
}

func TestBranches_PackedDisabled(t *testing.T) {
	workDir, gitDir := initGitDir(t)
	writePackedRefs(t, gitDir, map[string]string{
		"main": "4444444444444444444444444444444444444444",
	})

	repo, err := Open(workDir, Options{IncludePacked: false})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	branches, err := repo.Branches()
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if len(branches) != 0 {
		t.Errorf("got %d branches, want 0 with packed-refs disabled", len(branches))
	}
}

func TestBranches_SharedHeadKeepsBothNames(t *testing.T) {
	workDir, gitDir := initGitDir(t)
	head := "7777777777777777777777777777777777777777"
	writeRef(t, gitDir, "main", head)
	writeRef(t, gitDir, "release", head)

	repo := openTestRepo(t, workDir)
	branches, err := repo.Branches()
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if len(branches) != 2 {
		t.Fatalf("got %d branches, want 2 names for one head", len(branches))
	}
	for _, b := range branches {
		if b.Head != head {
			t.Errorf("branch %s head = %q, want %q", b.Name, b.Head, head)
		}
	}
}

func TestBranches_EmptyRepository(t *testing.T) {
	workDir, _ := initGitDir(t)
	repo := openTestRepo(t, workDir)

	branches, err := repo.Branches()
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if len(branches) != 0 {
		t.Errorf("got %d branches, want 0", len(branches))
	}
}

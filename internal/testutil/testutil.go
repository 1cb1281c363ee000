// Package testutil provides fixture helpers for tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// WriteFile writes content to dir/name and returns the path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// ReadFile returns the content of path
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// TestRepo is a throwaway git repository in a temp dir
type TestRepo struct {
	Dir  string
	Repo *git.Repository
}

// InitRepo creates an empty repository
func InitRepo(t *testing.T) *TestRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repository: %v", err)
	}
	return &TestRepo{Dir: dir, Repo: repo}
}

// Commit stages files (relative to the repository root) and commits them
func (r *TestRepo) Commit(t *testing.T, files ...string) {
	t.Helper()

	wt, err := r.Repo.Worktree()
	if err != nil {
		t.Fatalf("failed to open worktree: %v", err)
	}
	for _, f := range files {
		if _, err := wt.Add(f); err != nil {
			t.Fatalf("failed to add %s: %v", f, err)
		}
	}

	_, err = wt.Commit("fixture", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "clientgen",
			Email: "clientgen@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}

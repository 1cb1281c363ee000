package source

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrDirty is returned when a file to be rewritten in place has uncommitted
// changes.
var ErrDirty = errors.New("file has uncommitted changes")

// CheckClean returns ErrDirty if any of paths is modified, staged or
// untracked in its git worktree. Files outside a repository pass.
func CheckClean(paths ...string) error {
	for _, path := range paths {
		abs, err := resolve(path)
		if err != nil {
			return err
		}

		repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
		if errors.Is(err, git.ErrRepositoryNotExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to open repository for %s: %w", path, err)
		}

		wt, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("failed to open worktree for %s: %w", path, err)
		}
		status, err := wt.Status()
		if err != nil {
			return fmt.Errorf("failed to read status for %s: %w", path, err)
		}

		root, err := resolve(wt.Filesystem.Root())
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			return fmt.Errorf("failed to locate %s in worktree: %w", path, err)
		}

		// clean tracked files are absent from the status map
		fs, ok := status[filepath.ToSlash(rel)]
		if ok && (fs.Worktree != git.Unmodified || fs.Staging != git.Unmodified) {
			return fmt.Errorf("%s: %w", path, ErrDirty)
		}
	}
	return nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	return abs, nil
}

// Package source reads and writes the line-oriented files the rewrite passes
// work on.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// OutputPrefix is prepended to the file name when not rewriting in place
const OutputPrefix = "new_"

// ErrEmptyBody is returned when a pass produced no lines at all.
var ErrEmptyBody = errors.New("refusing to write empty body")

// SplitLines splits content into lines with trailing whitespace removed. A
// final newline does not produce an extra empty line.
func SplitLines(content string) []string {
	content = strings.TrimSuffix(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if content == "" {
		return []string{}
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return lines
}

// ReadLines reads path as lines
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return SplitLines(string(data)), nil
}

// OutputPath returns where a rewrite of path is written
func OutputPath(path string, inplace bool) string {
	if inplace {
		return path
	}
	return filepath.Join(filepath.Dir(path), OutputPrefix+filepath.Base(path))
}

// Save writes lines to OutputPath(path, inplace) in one step: the content goes
// to a temporary file next to the target, which then replaces it. It returns
// the path written.
func Save(path string, lines []string, inplace bool) (string, error) {
	if len(lines) == 0 {
		return "", fmt.Errorf("%s: %w", path, ErrEmptyBody)
	}

	dest := OutputPath(path, inplace)
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to set mode of %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", dest, err)
	}

	return dest, nil
}

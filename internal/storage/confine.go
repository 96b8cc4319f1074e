package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve maps relative onto root and returns the canonical absolute path.
// Paths that land outside root after symlink resolution are reported as
// ErrNotFound so callers cannot probe what exists beyond the boundary.
func Resolve(root, relative string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", errors.New("root is required")
	}
	rootCanonical, err := canonicalPath(root)
	if err != nil {
		return "", fmt.Errorf("canonicalize root: %w", err)
	}

	candidate := filepath.FromSlash(relative)
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(rootCanonical, candidate)
	}
	resolved, err := canonicalPath(candidate)
	if err != nil {
		return "", fmt.Errorf("canonicalize path: %w", err)
	}

	if !isWithin(rootCanonical, resolved) {
		return "", fmt.Errorf("%w: outside of base directory", ErrNotFound)
	}
	return resolved, nil
}

// canonicalPath resolves symlinks on the longest existing prefix of p and
// re-appends the part that does not exist yet.
func canonicalPath(p string) (string, error) {
	absolute, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absolute = filepath.Clean(absolute)

	existing := nearestExisting(absolute)
	if existing == "" {
		return absolute, nil
	}
	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	remainder, err := filepath.Rel(existing, absolute)
	if err != nil {
		return "", err
	}
	return filepath.Clean(filepath.Join(resolved, remainder)), nil
}

// isWithin reports whether candidate is root itself or lies below it.
func isWithin(root, candidate string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(candidate))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// nearestExisting walks p upwards until an entry exists. A component that is
// a regular file stops lookups below it with ENOTDIR, which is treated the
// same as a missing component.
func nearestExisting(p string) string {
	for cur := p; ; {
		_, err := os.Lstat(cur)
		switch {
		case err == nil:
			return cur
		case !isMissingPath(err):
			return ""
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return ""
		}
		cur = parent
	}
}

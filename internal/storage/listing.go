package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	EntryTypeFile   = "file"
	EntryTypeFolder = "folder"
)

type Entry struct {
	Name         string  `json:"name"`
	FullPath     string  `json:"full_path"`
	RelativePath string  `json:"relative_path"`
	Type         string  `json:"type"`
	Size         *string `json:"size"`
	Modified     string  `json:"modified"`
}

// ListFolder returns the visible children of root/relative, non-recursively.
func (store *Store) ListFolder(root, relative string) ([]Entry, error) {
	base, err := Resolve(root, "")
	if err != nil {
		return nil, err
	}
	target, err := Resolve(base, relative)
	if err != nil {
		return nil, err
	}

	info, err := store.fs.Stat(target)
	if err != nil {
		return nil, classifyFSError(target, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, target)
	}

	children, err := afero.ReadDir(store.fs, target)
	if err != nil {
		return nil, classifyFSError(target, err)
	}

	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		itemPath := filepath.Join(target, child.Name())
		if IsHidden(itemPath) {
			continue
		}

		// Follow symlinks the way a plain stat would.
		itemInfo, err := store.fs.Stat(itemPath)
		if err != nil {
			slog.Debug("skip unreadable entry", "path", itemPath, "error", err)
			continue
		}

		relativePath, err := filepath.Rel(base, itemPath)
		if err != nil {
			return nil, fmt.Errorf("relative path for %s: %w", itemPath, err)
		}

		entry := Entry{
			Name:         child.Name(),
			FullPath:     resolvedOrSelf(itemPath),
			RelativePath: relativePath,
			Type:         EntryTypeFolder,
			Modified:     itemInfo.ModTime().Local().Format(modifiedLayout),
		}
		if itemInfo.Mode().IsRegular() {
			size, err := FormatBytes(float64(itemInfo.Size()))
			if err != nil {
				return nil, err
			}
			entry.Type = EntryTypeFile
			entry.Size = &size
		} else if !itemInfo.IsDir() {
			entry.Type = EntryTypeFile
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func resolvedOrSelf(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	if absolute, err := filepath.Abs(resolved); err == nil {
		return absolute
	}
	return resolved
}

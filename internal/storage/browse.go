package storage

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

const browseModifiedLayout = "2006-01-02T15:04:05"

type BrowseEntry struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Modified string `json:"modified"`
	Category string `json:"category"`
}

type BrowseResult struct {
	Files      []BrowseEntry `json:"files"`
	TotalCount int           `json:"total_count"`
}

// Browse collects the files stored directly inside each category folder of
// root. Missing or unreadable folders are skipped.
func (store *Store) Browse(root string, categories []string) BrowseResult {
	result := BrowseResult{Files: make([]BrowseEntry, 0)}

	for _, category := range categories {
		folder, err := Resolve(root, category)
		if err != nil {
			continue
		}
		children, err := afero.ReadDir(store.fs, folder)
		if err != nil {
			slog.Debug("skip category folder", "category", category, "error", err)
			continue
		}

		for _, child := range children {
			itemPath := filepath.Join(folder, child.Name())
			if IsHidden(itemPath) {
				continue
			}
			info, err := store.fs.Stat(itemPath)
			if err != nil || info.IsDir() {
				continue
			}
			result.Files = append(result.Files, BrowseEntry{
				Name:     child.Name(),
				Size:     info.Size(),
				Type:     ContentTypeFor(itemPath),
				Modified: info.ModTime().Local().Format(browseModifiedLayout),
				Category: category,
			})
		}
	}

	result.TotalCount = len(result.Files)
	return result
}

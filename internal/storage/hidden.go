package storage

import (
	"path/filepath"
	"strings"
)

// IsHidden reports dot-prefixed names and, on Windows, the hidden attribute.
func IsHidden(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	return hasHiddenAttribute(path)
}

package storage

import (
	"github.com/spf13/afero"
)

const modifiedLayout = "2006-01-02 15:04:05"

// Store performs confined file operations under per-user roots.
type Store struct {
	fs afero.Fs
}

func NewStore(fs afero.Fs) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs}
}

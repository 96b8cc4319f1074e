package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrNotDirectory     = errors.New("not a directory")
	ErrIsDirectory      = errors.New("is a directory")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidName      = errors.New("invalid file name")
)

func classifyFSError(path string, err error) error {
	switch {
	case err == nil:
		return nil
	case isMissingPath(err):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}

// isMissingPath reports errors for paths that do not exist, including paths
// that continue below a regular file.
func isMissingPath(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

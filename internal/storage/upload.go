package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

const (
	uploadDirPerm  = 0o755
	uploadFilePerm = 0o644
)

// SanitizeFileName reduces a client supplied name to its base component.
func SanitizeFileName(name string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	base := filepath.Base(filepath.Clean("/" + normalized))
	if base == "" || base == "." || base == "/" || base == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return base, nil
}

// SaveUpload writes src into root/folder under the sanitized name. The data
// lands in a hidden temporary file first and is renamed into place once the
// copy completed.
func (store *Store) SaveUpload(root, folder, name string, src io.Reader) (string, error) {
	fileName, err := SanitizeFileName(name)
	if err != nil {
		return "", err
	}

	directory, err := Resolve(root, folder)
	if err != nil {
		return "", err
	}
	target, err := Resolve(root, filepath.Join(directory, fileName))
	if err != nil {
		return "", err
	}
	if info, err := store.fs.Stat(target); err == nil && info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, target)
	}

	if err := store.fs.MkdirAll(directory, uploadDirPerm); err != nil {
		return "", classifyFSError(directory, err)
	}

	tempPath := filepath.Join(directory, "."+fileName+"."+uuid.NewString()+".part")
	temp, err := store.fs.OpenFile(tempPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, uploadFilePerm)
	if err != nil {
		return "", classifyFSError(tempPath, err)
	}

	written, copyErr := io.CopyBuffer(temp, src, make([]byte, StreamChunkSize))
	closeErr := temp.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = store.fs.Remove(tempPath)
		return "", fmt.Errorf("write upload %s: %w", fileName, err)
	}

	if err := store.fs.Rename(tempPath, target); err != nil {
		_ = store.fs.Remove(tempPath)
		return "", classifyFSError(target, err)
	}

	slog.Info("stored upload", "path", target, "bytes", written, "size", humanize.IBytes(uint64(written)))
	return fileName, nil
}

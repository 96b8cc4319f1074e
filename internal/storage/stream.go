package storage

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
)

// StreamChunkSize bounds every read issued against a streamed file.
const StreamChunkSize = 1 << 20

const defaultContentType = "application/octet-stream"

type FileStream struct {
	io.ReadCloser
	Name        string
	Size        int64
	ContentType string
}

// OpenStream opens root/relative for chunked reading. The caller owns the
// returned stream and must close it.
func (store *Store) OpenStream(root, relative string) (*FileStream, error) {
	target, err := Resolve(root, relative)
	if err != nil {
		return nil, err
	}

	info, err := store.fs.Stat(target)
	if err != nil {
		return nil, classifyFSError(target, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, target)
	}

	file, err := store.fs.Open(target)
	if err != nil {
		return nil, classifyFSError(target, err)
	}

	return &FileStream{
		ReadCloser:  &chunkedReader{source: file},
		Name:        filepath.Base(target),
		Size:        info.Size(),
		ContentType: ContentTypeFor(target),
	}, nil
}

// ContentTypeFor guesses a media type from the file extension.
func ContentTypeFor(name string) string {
	if contentType := mime.TypeByExtension(filepath.Ext(name)); contentType != "" {
		return contentType
	}
	return defaultContentType
}

type chunkedReader struct {
	source io.ReadCloser
	closed bool
}

func (reader *chunkedReader) Read(p []byte) (int, error) {
	if len(p) > StreamChunkSize {
		p = p[:StreamChunkSize]
	}
	return reader.source.Read(p)
}

func (reader *chunkedReader) Close() error {
	if reader.closed {
		return nil
	}
	reader.closed = true
	return reader.source.Close()
}

package storage

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestOpenStreamReadsWholeFileInBoundedChunks(t *testing.T) {
	root := t.TempDir()
	payload := bytes.Repeat([]byte("a"), StreamChunkSize+512)
	writeTestFile(t, filepath.Join(root, "docs", "manual.pdf"), string(payload))

	stream, err := NewStore(afero.NewOsFs()).OpenStream(root, "docs/manual.pdf")
	if err != nil {
		t.Fatalf("OpenStream() error = %v", err)
	}
	defer stream.Close()

	if stream.ContentType != "application/pdf" {
		t.Fatalf("ContentType = %q, want application/pdf", stream.ContentType)
	}
	if stream.Size != int64(len(payload)) || stream.Name != "manual.pdf" {
		t.Fatalf("unexpected stream metadata: %+v", stream)
	}

	buffer := make([]byte, 4*StreamChunkSize)
	n, err := stream.Read(buffer)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n > StreamChunkSize {
		t.Fatalf("expected reads capped at %d bytes, got %d", StreamChunkSize, n)
	}

	rest, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if n+len(rest) != len(payload) {
		t.Fatalf("expected %d bytes in total, got %d", len(payload), n+len(rest))
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestOpenStreamErrors(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "folder", "a.txt"), "a")
	store := NewStore(afero.NewOsFs())

	if _, err := store.OpenStream(root, "missing.bin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.OpenStream(root, "../../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for traversal, got %v", err)
	}
	if _, err := store.OpenStream(root, "folder"); !errors.Is(err, ErrIsDirectory) {
		t.Fatalf("expected ErrIsDirectory, got %v", err)
	}
	if _, err := store.OpenStream(root, "folder/a.txt/x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound below a regular file, got %v", err)
	}
}

func TestOpenStreamReportsUnreadableFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "secret.bin"), "x")
	store := NewStore(deniedFs{Fs: afero.NewOsFs()})

	if _, err := store.OpenStream(root, "secret.bin"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestContentTypeForFallsBackToOctetStream(t *testing.T) {
	if got := ContentTypeFor("archive.unknownext"); got != "application/octet-stream" {
		t.Fatalf("ContentTypeFor() = %q", got)
	}
	if got := ContentTypeFor("paper.pdf"); got != "application/pdf" {
		t.Fatalf("ContentTypeFor() = %q", got)
	}
}

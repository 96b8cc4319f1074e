package api

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/spf13/afero"
)

func TestStreamSendsFileWithMediaType(t *testing.T) {
	env := newTestEnv(t)
	_, root := env.createUserWithRoot(t, ownerEmail)

	content := bytes.Repeat([]byte("0123456789"), 300_000)
	writeRootFile(t, root, "docs/report.pdf", string(content))

	response := performRequest(t, env.app, http.MethodGet, "/file/stream?file_name=docs/report.pdf", nil, "", env.sessionCookie(t, ownerEmail))
	assertStatus(t, response, http.StatusOK)

	if contentType := response.Header.Get("Content-Type"); contentType != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", contentType)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read stream body: %v", err)
	}
	if !bytes.Equal(body, content) {
		t.Fatalf("expected %d streamed bytes, got %d", len(content), len(body))
	}
}

func TestStreamFallsBackToOctetStream(t *testing.T) {
	env := newTestEnv(t)
	_, root := env.createUserWithRoot(t, ownerEmail)
	writeRootFile(t, root, "blob.unknownext", "data")

	response := performRequest(t, env.app, http.MethodGet, "/file/stream?file_name=blob.unknownext", nil, "", env.sessionCookie(t, ownerEmail))
	assertStatus(t, response, http.StatusOK)
	if contentType := response.Header.Get("Content-Type"); contentType != "application/octet-stream" {
		t.Fatalf("expected application/octet-stream, got %q", contentType)
	}
}

func TestStreamErrors(t *testing.T) {
	env := newTestEnv(t)
	_, root := env.createUserWithRoot(t, ownerEmail)
	writeRootFile(t, root, "albums/summer.jpg", "jpg")
	cookie := env.sessionCookie(t, ownerEmail)

	tests := []struct {
		name   string
		query  string
		status int
		detail string
	}{
		{name: "missing parameter", query: "", status: http.StatusUnprocessableEntity, detail: "file_name is required"},
		{name: "missing file", query: "?file_name=nope.txt", status: http.StatusNotFound, detail: "File not found"},
		{name: "traversal", query: "?file_name=../../../etc/passwd", status: http.StatusNotFound, detail: "File not found"},
		{name: "directory", query: "?file_name=albums", status: http.StatusBadRequest, detail: "Path is not a file"},
		{name: "below file", query: "?file_name=albums/summer.jpg/x", status: http.StatusNotFound, detail: "File not found"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			response := performRequest(t, env.app, http.MethodGet, "/file/stream"+test.query, nil, "", cookie)
			assertDetail(t, response, test.status, test.detail)
		})
	}
}

func TestStreamUnreadableFile(t *testing.T) {
	env := newTestEnvWithOptions(t, testEnvOptions{storeFs: lockedFs{Fs: afero.NewOsFs()}})
	_, root := env.createUserWithRoot(t, ownerEmail)
	writeRootFile(t, root, "secret.bin", "x")

	response := performRequest(t, env.app, http.MethodGet, "/file/stream?file_name=secret.bin", nil, "", env.sessionCookie(t, ownerEmail))
	assertDetail(t, response, http.StatusForbidden, "Permission denied")
}

package api

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/KennethL27/personal-cloud-service/internal/drives"
	"github.com/KennethL27/personal-cloud-service/internal/metrics"
	"github.com/KennethL27/personal-cloud-service/internal/storage"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListFolderItems(c *fiber.Ctx) error {
	root, err := handler.callerRoot(c)
	if err != nil {
		return err
	}

	relative := c.Query("path")
	entries, err := handler.store.ListFolder(root, relative)
	switch {
	case err == nil:
		return c.JSON(entries)
	case errors.Is(err, storage.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "Directory not found")
	case errors.Is(err, storage.ErrNotDirectory):
		return apiError(c, fiber.StatusBadRequest, "Path is not a directory")
	case errors.Is(err, storage.ErrPermissionDenied):
		return apiError(c, fiber.StatusForbidden, "Permission denied")
	default:
		slog.Error("list folder", "path", relative, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
			"path":  relative,
		})
	}
}

func (handler *Handler) ListMountedDrives(c *fiber.Ctx) error {
	mounted, err := drives.ListMounted(c.UserContext(), handler.probe)
	if err != nil {
		slog.Error("enumerate mounted drives", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to enumerate drives")
	}
	return c.JSON(mounted)
}

func (handler *Handler) Stream(c *fiber.Ctx) error {
	fileName := c.Query("file_name")
	if strings.TrimSpace(fileName) == "" {
		return apiError(c, fiber.StatusUnprocessableEntity, "file_name is required")
	}

	root, err := handler.callerRoot(c)
	if err != nil {
		return err
	}

	stream, err := handler.store.OpenStream(root, fileName)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "File not found")
	case errors.Is(err, storage.ErrIsDirectory):
		return apiError(c, fiber.StatusBadRequest, "Path is not a file")
	case errors.Is(err, storage.ErrPermissionDenied):
		return apiError(c, fiber.StatusForbidden, "Permission denied")
	default:
		slog.Error("open stream", "file_name", fileName, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to open file")
	}

	c.Set(fiber.HeaderContentType, stream.ContentType)
	return c.SendStream(&countingReader{ReadCloser: stream}, int(stream.Size))
}

func (handler *Handler) ExternalDrive(c *fiber.Ctx) error {
	path, ok := handler.locator.Locate(c.UserContext())
	if !ok {
		return c.JSON(fiber.Map{"path": nil})
	}
	return c.JSON(fiber.Map{"path": path})
}

func (handler *Handler) Browse(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))
	empty := storage.BrowseResult{Files: []storage.BrowseEntry{}}
	if category != "" && !drives.IsCategory(category) {
		return c.JSON(empty)
	}

	root, err := handler.callerRoot(c)
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
			return c.JSON(empty)
		}
		return err
	}

	categories := drives.Categories
	if category != "" {
		categories = []string{category}
	}
	return c.JSON(handler.store.Browse(root, categories))
}

// countingReader reports streamed bytes as they leave the server.
type countingReader struct {
	io.ReadCloser
}

func (reader *countingReader) Read(p []byte) (int, error) {
	n, err := reader.ReadCloser.Read(p)
	if n > 0 {
		metrics.StreamedBytesTotal.Add(float64(n))
	}
	return n, err
}

package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/KennethL27/personal-cloud-service/internal/drives"
	"github.com/KennethL27/personal-cloud-service/internal/metrics"
	"github.com/KennethL27/personal-cloud-service/internal/storage"
	"github.com/gofiber/fiber/v2"
)

const (
	uploadFilesField  = "files"
	uploadFolderField = "path"
	customFolderLabel = "custom"
)

func (handler *Handler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "Invalid multipart form")
	}
	files := form.File[uploadFilesField]
	if len(files) == 0 {
		return apiError(c, fiber.StatusUnprocessableEntity, "files are required")
	}
	folder := ""
	if values := form.Value[uploadFolderField]; len(values) > 0 {
		folder = strings.TrimSpace(values[0])
	}

	root, err := handler.callerRoot(c)
	if err != nil {
		return err
	}

	uploaded := make([]string, 0, len(files))
	for _, header := range files {
		destination, label := folder, customFolderLabel
		if destination == "" {
			destination = drives.ClassifyUpload(header.Header.Get(fiber.HeaderContentType), header.Filename)
			label = destination
		}

		name, err := handler.saveUploadedFile(root, destination, header)
		switch {
		case err == nil:
		case errors.Is(err, storage.ErrInvalidName):
			return apiError(c, fiber.StatusBadRequest, "Invalid file name")
		case errors.Is(err, storage.ErrNotFound):
			return apiError(c, fiber.StatusNotFound, "Directory not found")
		case errors.Is(err, storage.ErrIsDirectory):
			return apiError(c, fiber.StatusBadRequest, "A folder with that name already exists")
		default:
			slog.Error("store upload", "file", header.Filename, "folder", destination, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Unexpected error occurred: " + err.Error(),
			})
		}

		metrics.UploadedFilesTotal.WithLabelValues(label).Inc()
		uploaded = append(uploaded, name)
	}

	return c.JSON(fiber.Map{"uploaded_files": uploaded})
}

func (handler *Handler) saveUploadedFile(root, folder string, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return handler.store.SaveUpload(root, folder, header.Filename, src)
}

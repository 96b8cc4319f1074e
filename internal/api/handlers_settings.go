package api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/KennethL27/personal-cloud-service/internal/auth"
	"github.com/KennethL27/personal-cloud-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) PutUserSettings(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, auth.MessageNotAuthenticated)
	}

	var input userSettingsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "Invalid request body")
	}
	path := strings.TrimSpace(input.HardDrivePathSelection)
	if path == "" {
		return apiError(c, fiber.StatusUnprocessableEntity, "hard_drive_path_selection is required")
	}

	_, err := handler.directory.SaveSettingForEmail(principal.Email, path)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"status": "ok"})
	case errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, messageUserNotFound)
	default:
		slog.Error("save user setting", "email", principal.Email, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to save settings")
	}
}

// GetUserSettings answers null when the caller has not chosen a root yet.
func (handler *Handler) GetUserSettings(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, auth.MessageNotAuthenticated)
	}

	user, err := handler.directory.GetUser(principal.Email)
	if err != nil {
		slog.Error("load user", "email", principal.Email, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to load settings")
	}
	if user == nil {
		return apiError(c, fiber.StatusNotFound, messageUserNotFound)
	}

	setting, err := handler.directory.GetSetting(user.ID)
	if err != nil {
		slog.Error("load user setting", "email", principal.Email, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to load settings")
	}
	if setting == nil {
		return c.JSON(nil)
	}
	return c.JSON(setting)
}

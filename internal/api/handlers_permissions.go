package api

import (
	"errors"
	"log/slog"

	"github.com/KennethL27/personal-cloud-service/internal/auth"
	"github.com/KennethL27/personal-cloud-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Share(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, auth.MessageNotAuthenticated)
	}

	var request services.ShareRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "Invalid request body")
	}

	guest, err := handler.shares.Share(principal.Email, request)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrShareUnauthorized):
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized sharing access")
	case errors.Is(err, services.ErrShareInvalid):
		return apiError(c, fiber.StatusUnprocessableEntity, "email and hard_drive_path_selection are required")
	case errors.Is(err, services.ErrShareTargetAdmin):
		return apiError(c, fiber.StatusConflict, "Cannot share to an administrator account")
	default:
		slog.Error("share access", "caller", principal.Email, "guest", request.Email, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to share access")
	}

	if !handler.allowList.IsAllowed(guest.Email) {
		slog.Warn("shared with an email outside the allow-list", "guest", guest.Email)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) AdminCheck(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, auth.MessageNotAuthenticated)
	}

	isAdmin, err := handler.directory.IsAdmin(principal.Email)
	if err != nil {
		slog.Error("admin check", "email", principal.Email, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to check permissions")
	}
	return c.JSON(fiber.Map{"is_admin": isAdmin})
}

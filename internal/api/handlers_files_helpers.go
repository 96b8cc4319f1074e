package api

import (
	"errors"
	"log/slog"

	"github.com/KennethL27/personal-cloud-service/internal/auth"
	"github.com/KennethL27/personal-cloud-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	messageUserNotFound      = "User not found"
	messageRootNotConfigured = "Default Path Section not found"
)

// callerRoot resolves the storage root of the authenticated caller. The
// returned error is a *fiber.Error ready to be returned from a handler.
func (handler *Handler) callerRoot(c *fiber.Ctx) (string, error) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, auth.MessageNotAuthenticated)
	}

	root, err := handler.directory.ResolveRoot(principal.Email)
	switch {
	case err == nil:
		return root, nil
	case errors.Is(err, services.ErrUserNotFound):
		return "", fiber.NewError(fiber.StatusNotFound, messageUserNotFound)
	case errors.Is(err, services.ErrRootNotConfigured):
		return "", fiber.NewError(fiber.StatusNotFound, messageRootNotConfigured)
	default:
		slog.Error("resolve storage root", "email", principal.Email, "error", err)
		return "", fiber.NewError(fiber.StatusInternalServerError, "Unable to resolve storage root")
	}
}

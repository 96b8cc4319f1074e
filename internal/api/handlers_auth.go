package api

import (
	"log/slog"
	"strings"

	"github.com/KennethL27/personal-cloud-service/internal/auth"
	"github.com/KennethL27/personal-cloud-service/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

const (
	loginOutcomeSuccess   = "success"
	loginOutcomeInvalid   = "invalid_token"
	loginOutcomeForbidden = "forbidden"
	loginOutcomeError     = "error"
)

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "Invalid request body")
	}
	if strings.TrimSpace(input.Token) == "" {
		return apiError(c, fiber.StatusUnprocessableEntity, "token is required")
	}

	identity, err := handler.identities.VerifyIdentity(c.UserContext(), input.Token)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcomeInvalid).Inc()
		slog.Info("rejected identity assertion", "error", err)
		return apiError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	if identity.Email == "" {
		metrics.LoginsTotal.WithLabelValues(loginOutcomeInvalid).Inc()
		return apiError(c, fiber.StatusUnauthorized, "Email not found in Google token")
	}
	if !handler.allowList.IsAllowed(identity.Email) {
		metrics.LoginsTotal.WithLabelValues(loginOutcomeForbidden).Inc()
		return apiError(c, fiber.StatusForbidden, auth.MessageNotAllowed)
	}

	token, err := handler.sessions.Issue(identity)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcomeError).Inc()
		slog.Error("issue session token", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to create session")
	}
	if err := handler.setAuthCookie(c, token); err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcomeError).Inc()
		slog.Error("seal session cookie", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to create session")
	}

	if _, err := handler.directory.EnsurePrincipal(identity.Email, identity.Name); err != nil {
		slog.Warn("record principal on login", "email", auth.NormalizeEmail(identity.Email), "error", err)
	}

	metrics.LoginsTotal.WithLabelValues(loginOutcomeSuccess).Inc()
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user": loginUser{
			Email:   identity.Email,
			Name:    identity.Name,
			Picture: identity.Picture,
		},
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

func (handler *Handler) Verify(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, auth.MessageNotAuthenticated)
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          principal,
	})
}

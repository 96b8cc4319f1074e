package api

import (
	"errors"

	"github.com/KennethL27/personal-cloud-service/internal/auth"
	"github.com/KennethL27/personal-cloud-service/internal/metrics"
	"github.com/KennethL27/personal-cloud-service/internal/security"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	principal, err := handler.gate.Authenticate(handler.sessionToken(c))
	if err != nil {
		var accessErr *auth.AccessError
		if !errors.As(err, &accessErr) {
			return apiError(c, fiber.StatusUnauthorized, auth.MessageInvalidCredential)
		}
		metrics.AccessRejectionsTotal.WithLabelValues(string(accessErr.Kind)).Inc()
		if accessErr.Kind == auth.KindForbidden {
			return apiError(c, fiber.StatusForbidden, accessErr.Message)
		}
		c.Set(fiber.HeaderWWWAuthenticate, wwwAuthenticateHeader)
		return apiError(c, fiber.StatusUnauthorized, accessErr.Message)
	}

	c.Locals(contextPrincipalKey, principal)
	return c.Next()
}

// sessionToken returns the JWT carried by the auth cookie. Sealed values that
// fail to open are passed through unchanged so verification rejects them.
func (handler *Handler) sessionToken(c *fiber.Ctx) string {
	raw := c.Cookies(authCookieName)
	if raw == "" || handler.cookies == nil || !security.IsSealed(raw) {
		return raw
	}
	opened, err := handler.cookies.Open(sessionCookiePurpose, raw)
	if err != nil {
		return raw
	}
	return string(opened)
}

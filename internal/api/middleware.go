package api

import (
	"github.com/KennethL27/personal-cloud-service/internal/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName        = "access_token"
	sessionCookiePurpose  = "session"
	contextPrincipalKey   = "current_principal"
	wwwAuthenticateHeader = "Bearer"
)

func currentPrincipal(c *fiber.Ctx) (auth.Principal, bool) {
	principal, ok := c.Locals(contextPrincipalKey).(auth.Principal)
	return principal, ok
}

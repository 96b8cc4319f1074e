package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) setAuthCookie(c *fiber.Ctx, token string) error {
	value := token
	if handler.cookies != nil {
		sealed, err := handler.cookies.Seal(sessionCookiePurpose, []byte(token))
		if err != nil {
			return err
		}
		value = sealed
	}

	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		MaxAge:   int(handler.sessions.Lifetime() / time.Second),
	})
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

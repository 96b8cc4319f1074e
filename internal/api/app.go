package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const appName = "personal-cloud"

type AppOptions struct {
	// BodyLimit caps request bodies in bytes; zero keeps the fiber default.
	BodyLimit        int
	CORSAllowOrigins []string
}

// NewApp builds the fiber application with middleware and the route table.
func NewApp(handler *Handler, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		BodyLimit:             opts.BodyLimit,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(requestid.New())
	app.Use(RequestLogger)
	app.Use(recover.New())
	if len(opts.CORSAllowOrigins) > 0 {
		app.Use(cors.New(corsConfig(opts.CORSAllowOrigins)))
	}

	RegisterRoutes(app, handler)
	return app
}

func corsConfig(origins []string) cors.Config {
	wildcard := false
	for _, origin := range origins {
		if origin == "*" {
			wildcard = true
			break
		}
	}
	// Credentialed requests cannot be combined with a wildcard origin.
	return cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowCredentials: !wildcard,
	}
}

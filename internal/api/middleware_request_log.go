package api

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/KennethL27/personal-cloud-service/internal/logging"
	"github.com/KennethL27/personal-cloud-service/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request and records request metrics.
func RequestLogger(c *fiber.Ctx) error {
	started := time.Now()

	if err := c.Next(); err != nil {
		if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	elapsed := time.Since(started)
	route := c.Route().Path
	if route == "" || route == "/" && c.Path() != "/" {
		route = "unmatched"
	}

	metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())

	slog.Log(c.UserContext(), logging.LevelForStatus(status), "http request",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration_ms", elapsed.Milliseconds(),
		"ip", c.IP(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
	)
	return nil
}

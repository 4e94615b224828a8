package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wanderhq/wander/internal/backend"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// backendFailure maps a failed remote call onto our own response: upstream
// 4xx statuses pass through so the page can show the server's verdict,
// anything else (upstream 5xx, network failure) becomes a 502.
func backendFailure(c *fiber.Ctx, err error, message string) error {
	status := fiber.StatusBadGateway
	statusErr := &backend.StatusError{}
	if errors.As(err, &statusErr) && statusErr.Status >= 400 && statusErr.Status < 500 {
		status = statusErr.Status
	}
	return apiError(c, status, message)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

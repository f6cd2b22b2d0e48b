package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"libraryapi/internal/storage"
)

// HealthCheck reports readiness: it pings the checkpoint backend so a broken
// persistence layer is visible before it silently drops durability.
func HealthCheck(snaps storage.Snapshotter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := snaps.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "checkpoint backend unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is the simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

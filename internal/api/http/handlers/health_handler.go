package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/munivisitas/gateway/internal/session"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	redis *session.Redis
}

func NewHealthHandler(redis *session.Redis) *HealthHandler {
	return &HealthHandler{redis: redis}
}

// Live reports that the process is serving.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready reports whether the session store is reachable.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.redis.Ping(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"redis":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

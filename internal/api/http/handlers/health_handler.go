package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-registration/internal/persistence"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance. redis may be nil when
// sessions are kept in memory.
func NewHealthHandler(serviceName, version string, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := map[string]any{}
	ready := true

	if h.redis == nil {
		depStatus["sessions"] = "memory"
	} else if err := h.redis.Ping(ctx); err != nil {
		depStatus["redis"] = err.Error()
		ready = false
	} else {
		depStatus["redis"] = "ok"
	}

	if !ready {
		return apperrors.NewDependencyUnavailable("one or more dependencies unavailable", depStatus)
	}
	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": depStatus,
	})
}

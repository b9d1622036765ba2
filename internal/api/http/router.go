package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-registration/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Metrics      *handlers.MetricsHandler
	Registration *handlers.RegistrationHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Show)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/register", fiber.StatusSeeOther)
	})

	register := app.Group("/register")
	register.Get("", cfg.Registration.Show)
	register.Post("", cfg.Registration.Submit)
	register.Post("/fields", cfg.Registration.UpdateFields)
	register.Post("/check", cfg.Registration.Check)
}

package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/partner-desk/internal/api/http/handlers"
	"github.com/spec-kit/partner-desk/internal/auth"
)

// RouteConfig bundles dependencies for route registration. A nil
// AuthMiddleware leaves /api open; a nil WriteLimiter disables throttling.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Partners       *handlers.PartnersHandler
	Interactions   *handlers.InteractionsHandler
	Threads        *handlers.ThreadsHandler
	Dashboard      *handlers.DashboardHandler
	Metrics        http.Handler
	AuthMiddleware *auth.AuthMiddleware
	WriteLimiter   fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	writes := []fiber.Handler{}
	if cfg.WriteLimiter != nil {
		writes = append(writes, cfg.WriteLimiter)
	}
	withWrites := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, writes...), h)
	}

	if cfg.Users != nil {
		authGroup := app.Group("/auth")
		authGroup.Post("/register", withWrites(cfg.Users.Register)...)
		authGroup.Post("/login", withWrites(cfg.Users.Login)...)
	}

	api := app.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.Handle)
		if cfg.Users != nil {
			api.Get("/me", cfg.Users.Me)
		}
	}

	api.Get("/dashboard", cfg.Dashboard.GetDashboard)

	api.Get("/partners", cfg.Partners.ListPartners)
	api.Post("/partners", withWrites(cfg.Partners.CreatePartner)...)
	api.Get("/partners/:id", cfg.Partners.GetPartner)
	api.Patch("/partners/:id/health", withWrites(cfg.Partners.UpdateHealth)...)
	api.Post("/partners/:id/contacts", withWrites(cfg.Partners.AddContact)...)

	api.Get("/interactions", cfg.Interactions.ListInteractions)
	api.Post("/interactions", withWrites(cfg.Interactions.CreateInteraction)...)

	api.Get("/threads", cfg.Threads.ListThreads)
	api.Post("/threads", withWrites(cfg.Threads.CreateThread)...)
	api.Patch("/threads/:id/status", withWrites(cfg.Threads.UpdateStatus)...)
}

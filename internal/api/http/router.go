package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/church-service/internal/api/http/handlers"
	"github.com/spec-kit/church-service/internal/auth"
	"github.com/spec-kit/church-service/internal/domain"
	"github.com/spec-kit/church-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Members        *handlers.MembersHandler
	AuthMiddleware *auth.Middleware
	Metrics        *observability.Metrics
	LoginRPS       float64
	LoginBurst     int
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	authGroup := app.Group("/auth", RateLimit(cfg.LoginRPS, cfg.LoginBurst))
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)

	members := app.Group("/members", cfg.AuthMiddleware.Authenticate)
	members.Get("", cfg.AuthMiddleware.RequirePermission(domain.PermViewMembers), cfg.Members.List)
	members.Get("/:id", cfg.AuthMiddleware.RequirePermission(domain.PermViewMembers), cfg.Members.Get)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mosquito-alert/internal/api/http/handlers"
	"github.com/spec-kit/mosquito-alert/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/qr", cfg.Auth.QRLogin)
	authGroup.Get("/qr-code", cfg.Auth.QRCode)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	reports := app.Group("/reports")
	reports.Get("/", cfg.Reports.List)
	reports.Get("/export", cfg.Reports.Export)
	reports.Get("/mine", cfg.AuthMiddleware.Handle, cfg.Reports.Mine)
	reports.Post("/image", cfg.AuthMiddleware.Handle, cfg.Reports.UploadImage)
	reports.Post("/", cfg.AuthMiddleware.Handle, cfg.Reports.Create)
	reports.Get("/:id", cfg.Reports.GetByID)
}

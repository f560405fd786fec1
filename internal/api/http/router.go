package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/storefront/internal/api/http/handlers"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Products      *handlers.ProductsHandler
	Orders        *handlers.OrdersHandler
	Contacts      *handlers.ContactsHandler
	Newsletter    *handlers.NewsletterHandler
	Authenticator *auth.Authenticator
	Limiters      Limiters
	Metrics       *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	requireAuth := cfg.Authenticator.Handle
	requireAdmin := auth.RequireAdmin()
	limit := cfg.Limiters

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", limit.Auth, cfg.Auth.Register)
	authGroup.Post("/login", limit.Auth, cfg.Auth.Login)
	authGroup.Post("/logout", limit.API, requireAuth, cfg.Auth.Logout)
	authGroup.Get("/me", limit.API, requireAuth, cfg.Auth.Me)
	authGroup.Put("/me", limit.API, requireAuth, cfg.Auth.UpdateMe)

	products := api.Group("/products", limit.API)
	products.Get("/", cfg.Products.List)
	products.Get("/featured", cfg.Products.Featured)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", requireAuth, requireAdmin, cfg.Products.Create)
	products.Put("/:id", requireAuth, requireAdmin, cfg.Products.Update)
	products.Delete("/:id", requireAuth, requireAdmin, cfg.Products.Delete)

	orders := api.Group("/orders", limit.API)
	orders.Get("/", requireAuth, requireAdmin, cfg.Orders.List)
	orders.Get("/my", requireAuth, cfg.Orders.ListMine)
	orders.Post("/", limit.Order, cfg.Authenticator.Optional, cfg.Orders.Create)
	orders.Put("/:id/status", requireAuth, requireAdmin, cfg.Orders.UpdateStatus)
	orders.Post("/:orderId/verify-phone", cfg.Orders.VerifyPhone)
	orders.Post("/:orderId/resend-verification", cfg.Orders.ResendVerification)
	orders.Get("/:orderId/verification-status", requireAuth, requireAdmin, cfg.Orders.VerificationStatus)

	contacts := api.Group("/contacts", limit.API)
	contacts.Get("/", requireAuth, requireAdmin, cfg.Contacts.List)
	contacts.Post("/", cfg.Contacts.Create)
	contacts.Put("/:id/status", requireAuth, requireAdmin, cfg.Contacts.UpdateStatus)

	newsletter := api.Group("/newsletter", limit.API)
	newsletter.Get("/", requireAuth, requireAdmin, cfg.Newsletter.List)
	newsletter.Post("/", cfg.Newsletter.Subscribe)
	newsletter.Post("/unsubscribe", cfg.Newsletter.Unsubscribe)
}

package routes

import (
	"time"

	"github.com/estateops/backend/internal/config"
	"github.com/estateops/backend/internal/handlers"
	"github.com/estateops/backend/internal/middleware"
	"github.com/estateops/backend/internal/modules"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	revenueHandler *handlers.RevenueHandler,
	invoiceHandler *handlers.InvoiceHandler,
	settingsHandler *handlers.SettingsHandler,
	organizationHandler *handlers.OrganizationHandler,
	plugins []modules.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no tenant required)
	api.Get("/health", healthHandler.Check)

	// Settings (tenant-scoped read for the back-office UI)
	api.Get("/settings", settingsHandler.GetSettings)

	// Auth — public (tenant middleware already applied globally)
	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware to individual routes
	// This prevents JWT middleware from affecting public routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Admin panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))

	// Organization management
	admin.Post("/organizations", organizationHandler.Create)
	admin.Get("/organizations", organizationHandler.List)
	admin.Delete("/organizations/:id", organizationHandler.Deactivate)

	// Subscription management
	admin.Post("/subscriptions", subscriptionHandler.Create)
	admin.Post("/subscriptions/quote", subscriptionHandler.Quote)
	admin.Get("/subscriptions/:id", subscriptionHandler.Get)
	admin.Put("/subscriptions/:id", subscriptionHandler.Update)
	admin.Post("/subscriptions/:id/cancel", subscriptionHandler.Cancel)
	admin.Get("/organizations/:org_id/subscriptions", subscriptionHandler.ListByOrganization)

	// Revenue analytics and the billing run trigger
	admin.Get("/revenue", revenueHandler.Stats)
	admin.Post("/billing/run", revenueHandler.RunBilling)

	// Invoice ledger
	admin.Get("/invoices", invoiceHandler.List)
	admin.Get("/organizations/:org_id/invoices", invoiceHandler.ListByOrganization)
	admin.Post("/invoices/:id/pay", invoiceHandler.MarkPaid)
	admin.Post("/invoices/:id/void", invoiceHandler.Void)

	// Settings management
	admin.Put("/settings/:org_id/:key", settingsHandler.SetSettingKey)
	admin.Delete("/settings/:org_id/:key", settingsHandler.DeleteSettingKey)

	// Module routes - create a protected group for modules only
	// This ensures JWT middleware doesn't affect public routes
	protected := api.Group("/p", middleware.JWTProtected(cfg))
	for _, p := range plugins {
		p.RegisterRoutes(protected, db, cfg)
		// If the module also implements AdminPlugin, register admin routes
		if ap, ok := p.(modules.AdminPlugin); ok {
			ap.RegisterAdminRoutes(admin, db, cfg)
		}
	}
}

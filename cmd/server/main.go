package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/estateops/backend/internal/billing"
	"github.com/estateops/backend/internal/config"
	"github.com/estateops/backend/internal/database"
	"github.com/estateops/backend/internal/handlers"
	"github.com/estateops/backend/internal/jobs"
	"github.com/estateops/backend/internal/logging"
	"github.com/estateops/backend/internal/middleware"
	"github.com/estateops/backend/internal/modules"
	"github.com/estateops/backend/internal/modules/buildings"
	"github.com/estateops/backend/internal/modules/complaints"
	"github.com/estateops/backend/internal/modules/leases"
	"github.com/estateops/backend/internal/modules/parking"
	"github.com/estateops/backend/internal/modules/security"
	"github.com/estateops/backend/internal/modules/workorders"
	"github.com/estateops/backend/internal/repository"
	"github.com/estateops/backend/internal/routes"
	"github.com/estateops/backend/internal/services"
	"github.com/estateops/backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Plan catalog
	catalog, err := billing.LoadCatalog(cfg.PlansConfigPath)
	if err != nil {
		slog.Error("failed to load plan catalog", "path", cfg.PlansConfigPath, "error", err)
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// Organization registry
	registry, err := tenant.LoadFromDB(database.DB)
	if err != nil {
		slog.Error("failed to load organization registry", "error", err)
		os.Exit(1)
	}
	slog.Info("organization registry loaded", "organizations", len(registry.All()))

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Services
	clock := billing.SystemClock()
	subscriptionRepo := repository.NewGormSubscriptionRepository(database.DB)
	invoiceRepo := repository.NewGormInvoiceRepository(database.DB)
	authService := services.NewAuthService(database.DB, cfg)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, catalog, clock)

	// Scheduled billing transitions (trial conversion, renewal, expiry)
	billingRunner := jobs.NewBillingRunner(subscriptionRepo, invoiceRepo, clock)
	billingDone := make(chan struct{})
	billingRunner.Start(cfg.BillingRunInterval, billingDone)

	// Register back-office modules
	plugins := []modules.Plugin{
		buildings.New(),
		leases.New(),
		workorders.New(),
		complaints.New(),
		parking.New(),
		security.New(),
	}

	// Migrate module models
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("module migration failed", "module", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("module migrated", "module", p.ID(), "models", len(models))
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, registry)
	healthHandler := handlers.NewHealthHandler(registry)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	revenueHandler := handlers.NewRevenueHandler(subscriptionService, billingRunner)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceRepo)
	settingsHandler := handlers.NewSettingsHandler(database.DB, registry)
	organizationHandler := handlers.NewOrganizationHandler(database.DB, registry)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})
	app.Use(middleware.TenantMiddleware(registry))

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, healthHandler, subscriptionHandler, revenueHandler, invoiceHandler, settingsHandler, organizationHandler, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(billingDone)
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

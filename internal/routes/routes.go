// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"casacalc/internal/handlers"
	"casacalc/internal/middleware"
	"casacalc/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Handlers bundles everything SetupRoutes wires.
type Handlers struct {
	Calculator *handlers.CalculatorHandler
	Rates      *handlers.RatesHandler
	Admin      *handlers.AdminHandler
	Health     *handlers.HealthHandler
	Auth       *middleware.AuthMiddleware
}

// MiddlewareConfig configures the app-wide middleware.
type MiddlewareConfig struct {
	CORSOrigins string
	AccessLog   bool
	LoginLimit  int
}

// SetupMiddleware installs recovery, request IDs, CORS and access logging.
func SetupMiddleware(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
	}))

	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	limit := cfg.LoginLimit
	if limit <= 0 {
		limit = 5
	}
	app.Use("/api/admin/login", limiter.New(limiter.Config{
		Max:        limit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/", handlers.Welcome)
	app.Get("/health", h.Health.Health)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/calculate", h.Calculator.Calculate)
	api.Get("/calculations/:id", h.Calculator.GetCalculation)
	api.Get("/rates", h.Rates.GetRates)
	api.Get("/tax-rates", h.Rates.GetTaxRates)
	api.Post("/admin/login", h.Admin.Login)

	// Admin endpoints
	api.Post("/admin/rates/refresh",
		h.Auth.Handler,
		middleware.RequirePermission(models.PermissionRatesWrite),
		h.Rates.RefreshRates,
	)
}

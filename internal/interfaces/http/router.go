package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/estoque-api/internal/application/analytics"
	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/reports"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/metrics"
	"github.com/jhoicas/estoque-api/internal/interfaces/bridge"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	HistoryUC   *usecase.HistoryUseCase
	AdjustStock *inventory.AdjustStockUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *reports.MonthlyReportUseCase
	AuthUC      *auth.AuthUseCase
	Bridge      *bridge.Dispatcher
	Metrics     *metrics.Metrics // nil desactiva /metrics
	Health      func(ctx context.Context) error

	HTTP      config.HTTPConfig
	JWTSecret string // vacío: acceso local sin token
	JWTIssuer string
	AppName   string
	Log       *logger.Logger
}

// NewApp construye la aplicación Fiber con middlewares y rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: NewErrorHandler(deps.Log),
	})

	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}
	app.Use(RequestLogger(deps.Log))
	app.Use(recover.New())
	app.Use(helmet.New())
	if deps.HTTP.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.ReplaceAll(deps.HTTP.CORSOrigins, " ", ""),
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + HeaderRequestID,
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}))
	}
	if deps.HTTP.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        deps.HTTP.RateLimit,
			Expiration: deps.HTTP.RateWindow,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/api/health" || c.Path() == "/metrics"
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
					Code: "RATE_LIMITED", Message: "Muitas requisições, tente novamente mais tarde",
				})
			},
		}))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				deps.Log.Error().Err(err).Msg("health check")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNHEALTHY", Message: "Banco de dados indisponível"})
			}
		}
		return ok(c, fiber.StatusOK, fiber.Map{"status": "ok", "service": deps.AppName}, "")
	})

	// Rutas protegidas (requieren Bearer Token salvo en modo local)
	guard := LocalAccess()
	if deps.JWTSecret != "" {
		guard = AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
	}
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleOperador)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.JWTSecret != "")
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/me", guard, anyRole, authHandler.Me)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.HistoryUC)
	inventoryHandler := NewInventoryHandler(deps.AdjustStock)
	products := api.Group("/products", guard, anyRole)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/expiring", productHandler.Expiring)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Post("/:id/adjust", inventoryHandler.Adjust)
	products.Get("/:id/history", productHandler.History)

	// History
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	history := api.Group("/history", guard, anyRole)
	history.Get("/", historyHandler.List)
	history.Post("/", adminOnly, historyHandler.Create)

	// Dashboard y relatórios
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", guard, anyRole, dashboardHandler.GetSummary)
	reportHandler := NewReportHandler(deps.ReportUC)
	api.Get("/reports/monthly", guard, anyRole, reportHandler.Monthly)

	// Bridge del cliente de escritorio
	if deps.Bridge != nil {
		bridgeHandler := NewBridgeHandler(deps.Bridge)
		app.Post("/bridge/:channel", guard, anyRole, bridgeHandler.Invoke)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/estoque-api/docs"
	appanalytics "github.com/jhoicas/estoque-api/internal/application/analytics"
	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/reports"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/cache"
	"github.com/jhoicas/estoque-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/internal/infrastructure/report"
	"github.com/jhoicas/estoque-api/internal/interfaces/bridge"
	httpRouter "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// @title						Estoque API
// @version					1.0
// @description				Controle de estoque de produtos perecíveis com histórico de movimentações.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Report.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate").Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	m := metrics.New("estoque")

	userRepo := postgres.NewUserRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Lecturas de productos: Redis opcional delante de PostgreSQL.
	var productRepo repository.ProductRepository = postgres.NewProductRepository(pool)
	var invalidator inventory.CacheInvalidator = inventory.NopInvalidator{}
	if cfg.Redis.Enabled() {
		rdb, err := cache.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer rdb.Close()
			cached := cache.NewCachedProductRepository(productRepo, rdb, cfg.Redis.TTL, log.Zerolog())
			productRepo = cached
			invalidator = cached
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("caché de productos activa")
		}
	}

	productUC := usecase.NewProductUseCase(productRepo, txRunner, invalidator, m, loc)
	historyUC := usecase.NewHistoryUseCase(historyRepo, productRepo, loc)
	adjustUC := inventory.NewAdjustStockUseCase(txRunner, invalidator, m)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, historyRepo, loc)
	reportUC := reports.NewMonthlyReportUseCase(historyRepo, map[string]reports.Renderer{
		"csv": report.CSVRenderer{},
		"pdf": infrapdf.NewMarotoReportGenerator(),
		"xml": report.XMLRenderer{},
	}, loc)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	dispatcher := bridge.NewDispatcher(bridge.Deps{
		Products:  productUC,
		History:   historyUC,
		Stock:     adjustUC,
		Dashboard: dashboardUC,
		Log:       log.Component("bridge").Zerolog(),
	})

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		ProductUC:   productUC,
		HistoryUC:   historyUC,
		AdjustStock: adjustUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
		Bridge:      dispatcher,
		Metrics:     m,
		Health:      pool.Ping,
		HTTP:        cfg.HTTP,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		AppName:     cfg.App.Name,
		Log:         log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Estoque API",
	}))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

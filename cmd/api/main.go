package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tienda-pos-api/internal/application/analytics"
	"github.com/jhoicas/tienda-pos-api/internal/application/auth"
	"github.com/jhoicas/tienda-pos-api/internal/application/sales"
	"github.com/jhoicas/tienda-pos-api/internal/application/usecase"
	infracache "github.com/jhoicas/tienda-pos-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/tienda-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-pos-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-pos-api/pkg/config"
	"github.com/jhoicas/tienda-pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	shopRepo := postgres.NewShopRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	adjRepo := postgres.NewStockAdjustmentRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de reportes: si REDIS_ADDR no está definido la app corre sin
	// caché y los reportes van directo a la base de datos.
	var reportCache analytics.ReportCache
	if cfg.Redis.Addr != "" {
		redisCache, err := infracache.NewRedisReportCache(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		reportCache = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de reportes habilitado")
	}
	cacheTTL := time.Duration(cfg.Redis.TTLSeconds) * time.Second

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	shopUC := usecase.NewShopUseCase(shopRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, shopRepo, adjRepo, txRunner)
	saleUC := sales.NewSaleUseCase(txRunner, shopRepo, saleRepo, log)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := sales.NewReceiptUseCase(saleRepo, shopRepo, receiptGenerator)

	profitUC := analytics.NewProfitUseCase(shopRepo, saleRepo, reportCache, cacheTTL, log)
	dashboardUC := analytics.NewDashboardUseCase(shopRepo, saleRepo, analyticsRepo, reportCache, cacheTTL, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ShopUC:      shopUC,
		ItemUC:      itemUC,
		SaleUC:      saleUC,
		ReceiptUC:   receiptUC,
		ProfitUC:    profitUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

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

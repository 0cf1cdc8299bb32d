package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Cartuchos-api/internal/application/auth"
	applifecycle "github.com/jhoicas/Cartuchos-api/internal/application/lifecycle"
	"github.com/jhoicas/Cartuchos-api/internal/application/report"
	"github.com/jhoicas/Cartuchos-api/internal/application/usecase"
	"github.com/jhoicas/Cartuchos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Cartuchos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cartuchos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Cartuchos-api/internal/interfaces/http"
	"github.com/jhoicas/Cartuchos-api/pkg/config"
	"github.com/jhoicas/Cartuchos-api/pkg/logger"
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

	cartridgeRepo := postgres.NewCartridgeRepository(pool)
	operationRepo := postgres.NewOperationRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	lifecycleUC := applifecycle.NewUseCase(txRunner, cartridgeRepo, locationRepo, userRepo, operationRepo, m)
	cartridgeUC := usecase.NewCartridgeUseCase(txRunner, cartridgeRepo, locationRepo, userRepo, lifecycleUC)
	locationUC := usecase.NewLocationUseCase(locationRepo, cartridgeRepo)
	operationUC := usecase.NewOperationUseCase(operationRepo, locationRepo)
	userUC := usecase.NewUserUseCase(userRepo)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewReportUseCase(cartridgeRepo, operationRepo, locationRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cartuchos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CartridgeUC: cartridgeUC,
		LocationUC:  locationUC,
		OperationUC: operationUC,
		UserUC:      userUC,
		LifecycleUC: lifecycleUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
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

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"movieflix/docs"
	"movieflix/internal/config"
	"movieflix/internal/database"
	"movieflix/internal/database/schema"
	handlers "movieflix/internal/http/handler"
	"movieflix/internal/http/middleware"
	"movieflix/internal/logger"
	"movieflix/internal/otel"
	"movieflix/internal/repository/postgres"
	"movieflix/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Movieflix Catalog API
// @version 1.0
// @description Categories and streaming platforms of the Movieflix catalog.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logger.NewStdout(cfg.Location(), cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, log)
	if err != nil {
		log.Fatal("tracing_init_failed", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("database_connect_failed", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoCreateSchema {
		if err := schema.Ensure(ctx, db, log); err != nil {
			log.Fatal("database_schema_failed", zap.Error(err))
		}
	}

	categories := service.NewCategoryService(postgres.NewCategoryPostgres(db))
	streamings := service.NewStreamingService(postgres.NewStreamingPostgres(db))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "movieflix"),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("metrics_init_failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// RequestID runs first so every later middleware can read the id.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	handlers.RegisterRoutes(app, db, log, categories, streamings)
	handlers.RegisterMetrics(app, reg)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("server_shutdown")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error("server_shutdown_failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server_listen_failed", zap.Error(err))
	}
}

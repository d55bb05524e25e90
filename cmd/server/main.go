package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"staffdesk/docs"
	"staffdesk/internal/adapters/http/middleware"
	"staffdesk/internal/adapters/http/routes"
	"staffdesk/internal/adapters/persistence/memory"
	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/adapters/ratelimit"
	"staffdesk/internal/config"
	"staffdesk/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// @title staffdesk API
// @version 1.0
// @description Token-authenticated employee management API

// @contact.name API Support
// @contact.email support@company.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token returned by /login.

func main() {
	seedOnly := flag.Bool("seed", false, "run migrations and seeders, then exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.New(os.Stdout, cfg.Log.Level, cfg.LogFormat()))
	log := logger.NewSlogLogger(slog.Default())
	slog.Info("configuration loaded", "mode", cfg.AppMode, "driver", cfg.Database.Driver)

	// Storage engine
	var (
		db        *gorm.DB
		users     repositories.UserRepository
		tokens    repositories.TokenRepository
		employees repositories.EmployeeRepository
	)
	if cfg.Database.Driver == config.DriverMemory {
		store := memory.NewStore()
		users, tokens, employees = store.Users(), store.Tokens(), store.Employees()
	} else {
		db, err = config.ConnectDatabase(cfg)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer config.CloseDatabase(db)

		// Auto migrate (creates tables if not exist)
		if err := models.AutoMigrate(db); err != nil {
			slog.Error("failed to auto migrate", "error", err)
			os.Exit(1)
		}
		slog.Info("database migration completed")

		users = repositories.NewUserRepository(db)
		tokens = repositories.NewTokenRepository(db)
		employees = repositories.NewEmployeeRepository(db)
	}

	// Seed initial user and demo roster
	if cfg.Seed.Enabled || *seedOnly {
		if err := cfg.CheckSeed(); err != nil {
			slog.Error("refusing to seed", "error", err)
			os.Exit(1)
		}
		seeder := config.NewSeeder(users, employees, cfg.Seed, cfg.BcryptCost)
		if err := seeder.Run(context.Background()); err != nil {
			slog.Warn("failed to seed data", "error", err)
		}
	}
	if *seedOnly {
		return
	}

	// Limiter storage
	var storage fiber.Storage
	if cfg.Redis.Addr != "" {
		redisStorage, err := ratelimit.NewRedisStorage(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisStorage.Close()
		storage = redisStorage
		slog.Info("rate limiter using redis", "addr", cfg.Redis.Addr)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Swagger docs follow the configured prefix
	docs.SwaggerInfo.BasePath = cfg.APIPrefix

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "staffdesk API v1.0",
		ErrorHandler: middleware.CustomErrorHandler(log),
	})

	// Setup middlewares
	middleware.Setup(app, cfg, storage, metrics)

	// Setup routes
	if err := routes.Setup(app, routes.Dependencies{
		Config:         cfg,
		Users:          users,
		Tokens:         tokens,
		Employees:      employees,
		Logger:         log,
		LimiterStorage: storage,
		Metrics:        metrics,
		DBPing:         config.HealthCheck(db),
	}); err != nil {
		slog.Error("failed to set up routes", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	slog.Info("server starting", "port", cfg.Port, "mode", cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
	slog.Info("server stopped gracefully")
}

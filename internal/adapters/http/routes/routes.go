package routes

import (
	"context"
	"fmt"

	"staffdesk/internal/adapters/http/handlers"
	"staffdesk/internal/adapters/http/middleware"
	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/config"
	"staffdesk/internal/core/services"
	"staffdesk/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	Config    *config.Config
	Users     repositories.UserRepository
	Tokens    repositories.TokenRepository
	Employees repositories.EmployeeRepository
	Logger    logger.Logger

	// Optional
	LimiterStorage fiber.Storage
	Metrics        *middleware.Metrics
	DBPing         func(ctx context.Context) error
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Dependencies) error {
	cfg := deps.Config

	// Initialize services
	validator, err := services.NewValidator()
	if err != nil {
		return fmt.Errorf("init validator: %w", err)
	}
	authService := services.NewAuthService(deps.Users, deps.Tokens, validator, deps.Logger, cfg.BcryptCost)
	employeeService := services.NewEmployeeService(deps.Employees, validator, deps.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, deps.DBPing)
	authHandler := handlers.NewAuthHandler(authService, deps.Logger)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, deps.Logger)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group(cfg.APIPrefix, middleware.NoCacheHeaders())
	auth := middleware.AuthMiddleware(authService, deps.Logger)

	setupAuthRoutes(api, authHandler, auth, middleware.LoginRateLimiter(cfg.RateLimit, deps.LimiterStorage))
	setupEmployeeRoutes(api.Group("/employees", auth), employeeHandler)

	return nil
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth, loginLimiter fiber.Handler) {
	// Public route, throttled per client IP
	router.Post("/login", loginLimiter, handler.Login)

	// Protected routes
	router.Post("/logout", auth, handler.Logout)
	router.Get("/user", auth, handler.Me)
}

// setupEmployeeRoutes configures the employee resource routes
func setupEmployeeRoutes(router fiber.Router, handler *handlers.EmployeeHandler) {
	router.Get("/", handler.Index)
	router.Post("/", handler.Store)
	router.Get("/:id", handler.Show)
	router.Put("/:id", handler.Update)
	router.Patch("/:id", handler.Update)
	router.Delete("/:id", handler.Destroy)
}

package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	mode   string
	dbPing func(ctx context.Context) error
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(mode string, dbPing func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{mode: mode, dbPing: dbPing}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "staffdesk API is running",
		"mode":    h.mode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and database health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	code := fiber.StatusOK
	status := "ok"
	dbStatus := "healthy"
	if h.dbPing != nil {
		if err := h.dbPing(ctx); err != nil {
			code = fiber.StatusServiceUnavailable
			status = "degraded"
			dbStatus = "unhealthy"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"api":      "healthy",
			"database": dbStatus,
		},
	})
}

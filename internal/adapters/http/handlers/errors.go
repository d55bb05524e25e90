package handlers

import (
	"staffdesk/internal/pkg/logger"
	"staffdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// serverError logs err with the request id and sends a bare 500
func serverError(c *fiber.Ctx, log logger.Logger, msg string, err error) error {
	log.Error(c.Context(), msg,
		"error", err,
		"request_id", c.Locals("requestid"),
		"method", c.Method(),
		"path", c.Path(),
	)
	return response.InternalServerError(c)
}

package response

import (
	"staffdesk/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// DataResponse wraps a resource payload
type DataResponse struct {
	Data interface{} `json:"data"`
}

// MessageResponse carries a human readable message
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationResponse carries the per-field rule violations of a request
type ValidationResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// Data sends {"data": v} with the given status
func Data(c *fiber.Ctx, statusCode int, v interface{}) error {
	return c.Status(statusCode).JSON(DataResponse{Data: v})
}

// Success sends a 200 {"data": v} response
func Success(c *fiber.Ctx, v interface{}) error {
	return Data(c, fiber.StatusOK, v)
}

// Created sends a 201 {"data": v} response
func Created(c *fiber.Ctx, v interface{}) error {
	return Data(c, fiber.StatusCreated, v)
}

// NoContent sends an empty 204 response
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Message sends {"message": msg} with the given status
func Message(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(MessageResponse{Message: message})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return Message(c, fiber.StatusUnauthorized, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusNotFound, message)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *fiber.Ctx) error {
	return Message(c, fiber.StatusTooManyRequests, "Too Many Attempts.")
}

// InternalServerError sends a 500 response without leaking detail
func InternalServerError(c *fiber.Ctx) error {
	return Message(c, fiber.StatusInternalServerError, "Server Error")
}

// ValidationFailed sends a 422 response listing every field error
func ValidationFailed(c *fiber.Ctx, verr *domain.ValidationError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationResponse{
		Message: verr.Summary(),
		Errors:  verr.Fields,
	})
}

package handlers

import (
	"errors"

	"staffdesk/internal/adapters/http/middleware"
	"staffdesk/internal/core/domain"
	"staffdesk/internal/core/services"
	"staffdesk/internal/pkg/logger"
	"staffdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	log         logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" example:"admin@company.com"`
	Password string `json:"password" example:"password"`
}

// Login handles user login
// @Summary Login user
// @Description Check credentials and issue a new bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} response.MessageResponse
// @Failure 422 {object} response.ValidationResponse
// @Failure 429 {object} response.MessageResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			return response.ValidationFailed(c, verr)
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Message(c, fiber.StatusUnauthorized, "Invalid credentials")
		default:
			return serverError(c, h.log, "login failed", err)
		}
	}

	return c.JSON(result)
}

// Logout revokes the token used for this request
// @Summary Logout user
// @Description Revoke the current bearer token. Other tokens of the user stay valid.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.MessageResponse
// @Failure 401 {object} response.MessageResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return response.Unauthorized(c, middleware.UnauthenticatedMessage)
	}

	if err := h.authService.Logout(c.Context(), principal); err != nil {
		return serverError(c, h.log, "logout failed", err)
	}

	return response.Message(c, fiber.StatusOK, "Logged out successfully")
}

// Me returns the current user info
// @Summary Get current user
// @Description Get the user the bearer token belongs to
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} response.MessageResponse
// @Router /user [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return response.Unauthorized(c, middleware.UnauthenticatedMessage)
	}

	return c.JSON(principal.User.ToResponse())
}

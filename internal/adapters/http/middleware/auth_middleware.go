package middleware

import (
	"errors"
	"strings"

	"staffdesk/internal/core/domain"
	"staffdesk/internal/core/services"
	"staffdesk/internal/pkg/logger"
	"staffdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	// PrincipalKey is the fiber.Ctx locals key holding *services.Principal
	PrincipalKey = "principal"

	// UnauthenticatedMessage is the body message of every 401 from the gate
	UnauthenticatedMessage = "Unauthenticated."

	bearerPrefix = "bearer "
)

var (
	errMissingToken  = errors.New("missing bearer token")
	errInvalidScheme = errors.New("invalid authorization scheme")
)

// AuthMiddleware rejects requests without a valid bearer token before any handler runs
func AuthMiddleware(authService *services.AuthService, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Read token from Authorization header
		token, err := extractBearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return response.Unauthorized(c, UnauthenticatedMessage)
		}

		// 2. Resolve token
		principal, err := authService.Authenticate(c.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return response.Unauthorized(c, UnauthenticatedMessage)
			}
			log.Error(c.Context(), "token lookup failed", "error", err, "request_id", c.Locals("requestid"))
			return response.InternalServerError(c)
		}

		// 3. Set caller in context
		c.Locals(PrincipalKey, principal)

		return c.Next()
	}
}

// CurrentPrincipal returns the caller stored by AuthMiddleware
func CurrentPrincipal(c *fiber.Ctx) (*services.Principal, bool) {
	principal, ok := c.Locals(PrincipalKey).(*services.Principal)
	return principal, ok && principal != nil
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errMissingToken
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", errInvalidScheme
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

// Package middleware provides HTTP middleware components for the application.
// It guards the admin endpoints with JWT authentication and permission checks.
package middleware

import (
	"log/slog"
	"strings"

	"casacalc/internal/services/auth"
	"casacalc/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT token validation.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the admin claims to the request context.
type AuthMiddleware struct {
	authService auth.Service
	logger      *slog.Logger
}

func NewAuthMiddleware(authService auth.Service, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Handler validates JWT tokens and adds claims to the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	claims, err := m.authService.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		m.logger.Warn("token validation failed", "path", c.Path(), "error", err)
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals(utils.ClaimsKey, claims)
	return c.Next()
}

// RequirePermission returns a middleware that checks for a specific permission.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetAdminClaims(c)
		if err != nil {
			return utils.Unauthorized(c, "unauthorized")
		}

		if !claims.HasPermission(permission) {
			return utils.Forbidden(c, "insufficient permissions")
		}
		return c.Next()
	}
}

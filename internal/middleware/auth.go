// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"errors"
	"strings"

	apperrors "depositor/internal/errors"
	"depositor/internal/models"
	"depositor/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const userLocalsKey = "user"

// AuthMiddleware resolves the bearer token into an authenticated user before
// any protected handler runs.
type AuthMiddleware struct {
	authService auth.Service
	logger      *zap.Logger
}

func NewAuthMiddleware(authService auth.Service, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Handler rejects the request with 401 unless the Authorization header
// carries a valid Bearer token for an existing user.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	user, err := m.authService.Authenticate(c.UserContext(), strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		m.logger.Error("authentication lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "authentication unavailable"})
	}

	c.Locals(userLocalsKey, user)
	return c.Next()
}

// CurrentUser returns the user stored by Handler.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(userLocalsKey).(*models.User)
	if !ok || user == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return user, nil
}

// SetCurrentUser is used by tests and internal callers that authenticate by other means.
func SetCurrentUser(c *fiber.Ctx, user *models.User) {
	c.Locals(userLocalsKey, user)
}

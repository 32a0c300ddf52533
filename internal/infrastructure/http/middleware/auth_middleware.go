package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/boardroomai/meeting-analyzer/errors"
	"github.com/boardroomai/meeting-analyzer/pkg/jwt"
)

// ClaimsContextKey is the echo context key for validated token claims
const ClaimsContextKey = "claims"

// AuthMiddleware guards mutating routes with bearer-token validation
type AuthMiddleware struct {
	manager *jwt.Manager
	enabled bool
}

// NewAuthMiddleware creates a new auth middleware. When disabled all
// requests pass through unauthenticated.
func NewAuthMiddleware(manager *jwt.Manager, enabled bool) *AuthMiddleware {
	return &AuthMiddleware{
		manager: manager,
		enabled: enabled,
	}
}

// Authenticate validates the bearer token and stores claims on the context
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.enabled {
			return next(c)
		}

		token := extractToken(c)
		if token == "" {
			return apperrors.ErrUnauthenticated()
		}

		claims, err := m.manager.ValidateToken(token)
		if err != nil {
			return apperrors.ErrInvalidToken()
		}

		c.Set(ClaimsContextKey, claims)
		return next(c)
	}
}

// GetClaims returns the validated claims stored on the context, if any
func GetClaims(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
	return claims, ok
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

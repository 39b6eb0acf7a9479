package middleware

import (
	"strings"

	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// userIDContextKey is the echo.Context key holding the authenticated user ID.
const userIDContextKey = "userID"

// AuthMiddleware validates Bearer access tokens issued by the
// phone-verification flow.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the JWT access token and stores the caller's user ID
// on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrInvalidToken.WrapMessage("authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrInvalidToken.WrapMessage("token must be a Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return domainerrors.ErrInvalidToken.WrapMessage("token validation failed")
		}

		if claims.UserID == uuid.Nil {
			return domainerrors.ErrInvalidToken.WrapMessage("user ID missing from token")
		}

		c.Set(userIDContextKey, claims.UserID)

		return next(c)
	}
}

// GetUserID returns the authenticated user ID stored by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(userIDContextKey).(uuid.UUID)

	return userID, ok
}

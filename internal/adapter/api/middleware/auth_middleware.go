package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"dailyrewards/internal/infrastructure/firebase"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/response"
)

// Context keys set by Authenticate.
const (
	ContextUID    = "uid"
	ContextEmail  = "email"
	ContextName   = "name"
	ContextAvatar = "avatar"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*firebase.Identity, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// Authenticate requires a Bearer ID token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		return m.verify(c, next, parts[1])
	}
}

// AuthenticateQuery reads the token from ?token=, for websocket upgrades
// where browsers cannot set headers.
func (m *AuthMiddleware) AuthenticateQuery(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return response.Error(c, errors.Unauthorized("Token is required", nil))
		}
		return m.verify(c, next, token)
	}
}

func (m *AuthMiddleware) verify(c echo.Context, next echo.HandlerFunc, token string) error {
	identity, err := m.verifier.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	c.Set(ContextUID, identity.UID)
	c.Set(ContextEmail, identity.Email)
	c.Set(ContextName, identity.Name)
	c.Set(ContextAvatar, identity.AvatarURL)

	return next(c)
}

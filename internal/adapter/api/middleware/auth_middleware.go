package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"truthprevails/internal/domain/entity"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/response"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.Identity, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// Authenticate requires an "Authorization: Bearer <token>" header.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}
		return m.authenticate(c, token, next)
	}
}

// AuthenticateWebSocket also accepts the token as a ?token= query parameter, since browsers
// cannot set headers on websocket upgrades.
func (m *AuthMiddleware) AuthenticateWebSocket(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := c.QueryParam("token"); token != "" {
			return m.authenticate(c, token, next)
		}
		return m.Authenticate(next)(c)
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context, token string, next echo.HandlerFunc) error {
	identity, err := m.verifier.VerifyToken(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, errors.CodeUnavailable) {
			return response.Error(c, err)
		}
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	c.Set("uid", identity.UID)
	c.Set("email", identity.Email)
	c.Set("name", identity.Name)
	c.Set("provider", identity.Provider)
	return next(c)
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return strings.TrimSpace(parts[1]), nil
}

func UserID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

// IdentityFrom rebuilds the identity stored by Authenticate.
func IdentityFrom(c echo.Context) *entity.Identity {
	identity := &entity.Identity{UID: UserID(c)}
	identity.Email, _ = c.Get("email").(string)
	identity.Name, _ = c.Get("name").(string)
	identity.Provider, _ = c.Get("provider").(string)
	return identity
}

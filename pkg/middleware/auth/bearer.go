package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minhngo/storefront/pkg/tokens"
)

// BearerAuth guards state-changing endpoints. It validates the
// Authorization header against the shared HS256 secret plus the configured
// issuer and audience, and exposes the authenticated identity to handlers
// through the echo context.
type BearerAuth struct {
	Secret   []byte
	Issuer   string
	Audience string
}

func NewBearerAuth(secret []byte, issuer, audience string) *BearerAuth {
	return &BearerAuth{Secret: secret, Issuer: issuer, Audience: audience}
}

func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
		}

		claims, err := tokens.AccessClaimsFromToken(tokenStr, m.Secret, m.Issuer, m.Audience)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_name", claims.Name)
		c.Set("role", claims.Role)

		return next(c)
	}
}

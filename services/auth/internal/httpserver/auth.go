package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minhngo/storefront/pkg/logging"
	"github.com/minhngo/storefront/services/auth/internal/service"
	"github.com/minhngo/storefront/services/auth/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		default:
			l.Error("login_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Token:     res.Token,
		IssuedAt:  res.IssuedAt,
		ExpiresAt: res.ExpiresAt,
		Issuer:    h.Svc.Issuer,
		Audience:  h.Svc.Audience,
		Role:      res.Role,
	})
}

func (h *AuthHTTP) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "auth service OK"})
}

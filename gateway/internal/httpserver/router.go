package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthURL    string
	CatalogURL string
	OrderURL   string
	StaticDir  string
}

// Register serves the static browser client and fronts the three
// services. Auth is enforced by the services themselves, so the gateway
// forwards the Authorization header untouched.
func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authProxy, err := newProxy(d.AuthURL, "/auth")
	if err != nil {
		return err
	}
	catalogProxy, err := newProxy(d.CatalogURL, "")
	if err != nil {
		return err
	}
	orderProxy, err := newProxy(d.OrderURL, "")
	if err != nil {
		return err
	}

	e.Any("/auth/*", authProxy)
	e.Any("/products", catalogProxy)
	e.Any("/products/*", catalogProxy)
	e.Any("/orders", orderProxy)
	e.Any("/orders/*", orderProxy)
	e.Any("/order_items", orderProxy)
	e.Any("/order_items/*", orderProxy)

	e.Static("/", d.StaticDir)

	return nil
}

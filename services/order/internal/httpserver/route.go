package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/minhngo/storefront/pkg/middleware/auth"
)

type Deps struct {
	OrderHandler *OrderHTTP
	JWTSecret    []byte
	JWTIssuer    string
	JWTAudience  string
}

// Register wires the order surface: reads are public, every mutation
// sits behind bearer auth so unauthenticated writes are rejected before
// their bodies are even looked at.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewBearerAuth(d.JWTSecret, d.JWTIssuer, d.JWTAudience)

	orders := e.Group("/orders")
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("", d.OrderHandler.CreateOrder, authMW.RequireAuth)
	orders.PUT("/:id", d.OrderHandler.UpdateStatus, authMW.RequireAuth)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder, authMW.RequireAuth)

	items := e.Group("/order_items")
	items.GET("", d.OrderHandler.ListItems)
	items.GET("/:id", d.OrderHandler.GetItem)
	items.POST("", d.OrderHandler.CreateItem, authMW.RequireAuth)
	items.PUT("/:id", d.OrderHandler.UpdateItem, authMW.RequireAuth)
	items.DELETE("/:id", d.OrderHandler.DeleteItem, authMW.RequireAuth)
}

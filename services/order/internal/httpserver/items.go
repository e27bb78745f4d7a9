package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minhngo/storefront/pkg/logging"
	"github.com/minhngo/storefront/services/order/internal/transport"
)

func (h *OrderHTTP) ListItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_items")

	items, err := h.Svc.ListItems(ctx)
	if err != nil {
		l.Error("list_items_error", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrderHTTP) GetItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_item")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	item, err := h.Svc.GetItem(ctx, id)
	if err != nil {
		l.Warn("get_item_error", "item_id", id, "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *OrderHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_item")

	var req transport.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_error", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.CreateItem(ctx, req)
	if err != nil {
		l.Warn("create_item_error", "error", err)
		return toHTTPError(err)
	}

	l.Info("create_item_success", "item_id", item.ID, "order_id", item.OrderID)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/order_items/%d", item.ID))
	return c.JSON(http.StatusCreated, item)
}

func (h *OrderHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_item")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Svc.UpdateItem(ctx, id, req); err != nil {
		l.Warn("update_item_error", "item_id", id, "error", err)
		return toHTTPError(err)
	}

	l.Info("update_item_success", "item_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHTTP) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_item")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteItem(ctx, id); err != nil {
		l.Warn("delete_item_error", "item_id", id, "error", err)
		return toHTTPError(err)
	}

	l.Info("delete_item_success", "item_id", id)
	return c.NoContent(http.StatusNoContent)
}

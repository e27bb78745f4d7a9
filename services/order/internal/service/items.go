package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/minhngo/storefront/services/order/internal/models"
	"github.com/minhngo/storefront/services/order/internal/transport"
)

// Item-level operations deliberately keep the looser rules of the order
// surface: they bound quantity and price but do not re-check catalog
// stock and do not enforce the at-creation minimum of one item per
// order. The owning order's total is re-derived on every mutation.

func (s *OrderService) GetItem(ctx context.Context, id uint) (*models.OrderItem, error) {
	item, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order item %d", ErrNotFound, id)
		}
		return nil, err
	}
	return item, nil
}

func (s *OrderService) ListItems(ctx context.Context) ([]models.OrderItem, error) {
	return s.Repo.ListItems(ctx)
}

func (s *OrderService) CreateItem(ctx context.Context, req transport.CreateItemRequest) (*models.OrderItem, error) {
	if req.OrderID == 0 {
		return nil, fmt.Errorf("%w: orderId is required", ErrValidation)
	}
	if err := checkItemBounds(req.ProductID, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	exists, err := s.Repo.OrderExists(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: order %d not found", ErrValidation, req.OrderID)
	}

	item := &models.OrderItem{
		OrderID:     req.OrderID,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	}
	return s.Repo.CreateItem(ctx, item)
}

func (s *OrderService) UpdateItem(ctx context.Context, pathID uint, req transport.UpdateItemRequest) (*models.OrderItem, error) {
	if pathID != req.ID {
		return nil, fmt.Errorf("%w: path id %d does not match body id %d", ErrIDMismatch, pathID, req.ID)
	}
	if err := checkItemBounds(req.ProductID, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	item, err := s.Repo.UpdateItem(ctx, pathID, func(it *models.OrderItem) {
		it.ProductID = req.ProductID
		it.ProductName = req.ProductName
		it.Quantity = req.Quantity
		it.UnitPrice = req.UnitPrice
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order item %d", ErrNotFound, pathID)
		}
		return nil, err
	}
	return item, nil
}

func (s *OrderService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order item %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func checkItemBounds(productID uint, quantity int, unitPrice float64) error {
	if productID == 0 {
		return fmt.Errorf("%w: productId is required", ErrValidation)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}
	if unitPrice < 0 {
		return fmt.Errorf("%w: unitPrice must be >= 0", ErrValidation)
	}
	return nil
}

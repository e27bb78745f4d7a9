package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/minhngo/storefront/pkg/kafka"
	"github.com/minhngo/storefront/pkg/logging"
	"github.com/minhngo/storefront/services/order/internal/catalogclient"
	"github.com/minhngo/storefront/services/order/internal/models"
	"github.com/minhngo/storefront/services/order/internal/repo"
	"github.com/minhngo/storefront/services/order/internal/transport"
)

var (
	ErrValidation = errors.New("validation")          // 400
	ErrNotFound   = errors.New("not found")           // 404
	ErrIDMismatch = errors.New("id mismatch")         // 400
	ErrUpstream   = errors.New("catalog unavailable") // 502
)

// Catalog is the read-only boundary to the product service. The concrete
// implementation lives in catalogclient; tests substitute a stub.
type Catalog interface {
	FetchProduct(ctx context.Context, id uint) (*catalogclient.Product, error)
}

// OrderService validates proposed orders against live catalog snapshots,
// builds the persisted aggregate and governs status transitions.
//
// StrictStatusFlow switches the transition rules from the permissive
// default (any status reachable from any other) to a one-way flow where
// pending may move to completed or cancelled and both of those are
// terminal.
type OrderService struct {
	Repo             *repo.GormRepo
	Catalog          Catalog
	Producer         *kafka.Producer
	StrictStatusFlow bool
}

const eventsTopic = "order_events"

func (s *OrderService) publish(ctx context.Context, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, eventsTopic, fmt.Sprint(event["orderId"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "error", err)
	}
}

// CreateOrder checks every requested line against the catalog, serially
// and in input order, before anything is persisted. A failing line aborts
// the whole request; only a fully validated set of lines is committed,
// as one atomic aggregate. The window between the stock check and the
// commit is unguarded: a concurrent purchase can still oversell, and
// that is an accepted limitation rather than something masked here.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customerName is required", ErrValidation)
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return nil, fmt.Errorf("%w: customerEmail is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must have at least 1 item", ErrValidation)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.ProductID == 0 {
			return nil, fmt.Errorf("%w: productId is required", ErrValidation)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}

		p, err := s.Catalog.FetchProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, catalogclient.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: product %d not found", ErrValidation, line.ProductID)
			}
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		if p.Quantity < line.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for product %d", ErrValidation, line.ProductID)
		}

		// Snapshot name and price from the catalog unless the caller
		// supplied usable overrides.
		name := strings.TrimSpace(line.ProductName)
		if name == "" {
			name = p.Name
		}
		price := line.UnitPrice
		if price <= 0 {
			price = p.Price
		}

		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.Quantity,
			UnitPrice:   price,
		})
	}

	order := &models.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Status:        models.StatusPending,
		Items:         items,
	}

	created, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":    "order_created",
		"orderId": created.ID,
		"total":   created.TotalAmount,
	})
	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

// UpdateStatus normalizes the requested status to lowercase and applies
// it. Transitions are unrestricted unless StrictStatusFlow is on.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) error {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	norm := strings.ToLower(strings.TrimSpace(status))
	if !models.ValidStatus(norm) {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}
	if s.StrictStatusFlow && !transitionAllowed(order.Status, norm) {
		return fmt.Errorf("%w: cannot move %s order to %s", ErrValidation, order.Status, norm)
	}

	if err := s.Repo.UpdateStatus(ctx, id, norm); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return err
	}

	s.publish(ctx, map[string]any{
		"type":    "order_status_changed",
		"orderId": id,
		"status":  norm,
	})
	return nil
}

func transitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	return from == models.StatusPending
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return err
	}

	s.publish(ctx, map[string]any{
		"type":    "order_deleted",
		"orderId": id,
	})
	return nil
}

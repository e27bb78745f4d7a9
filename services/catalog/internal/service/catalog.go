package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/minhngo/storefront/pkg/kafka"
	"github.com/minhngo/storefront/pkg/logging"
	"github.com/minhngo/storefront/services/catalog/internal/models"
	"github.com/minhngo/storefront/services/catalog/internal/repo"
	"github.com/minhngo/storefront/services/catalog/internal/search"
)

var (
	ErrValidation = errors.New("validation")  // 400
	ErrIDMismatch = errors.New("id mismatch") // 400
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *kafka.Producer
	Indexer  *search.Indexer
}

const eventsTopic = "product_events"

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, eventsTopic, fmt.Sprint(event["productId"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "error", err)
	}
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := checkProduct(product); err != nil {
		return nil, err
	}

	created, err := s.Repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	s.Indexer.IndexProduct(ctx, created)
	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productId": created.ID,
		"name":      created.Name,
	})
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, pathID uint, product *models.Product) (*models.Product, error) {
	if pathID != product.ID {
		return nil, fmt.Errorf("%w: path id %d does not match body id %d", ErrIDMismatch, pathID, product.ID)
	}
	if err := checkProduct(product); err != nil {
		return nil, err
	}

	updated, err := s.Repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	s.Indexer.IndexProduct(ctx, updated)
	s.publish(ctx, map[string]any{
		"type":      "product_updated",
		"productId": updated.ID,
		"name":      updated.Name,
	})
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.Indexer.DeleteProduct(ctx, id)
	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productId": id,
	})
	return nil
}

func checkProduct(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}
	return nil
}

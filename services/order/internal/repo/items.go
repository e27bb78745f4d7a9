package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/minhngo/storefront/services/order/internal/models"
)

func (r *GormRepo) GetItem(ctx context.Context, id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) ListItems(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem inserts the item and refreshes the owning order's total in
// the same transaction.
func (r *GormRepo) CreateItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item.TotalPrice = lineTotal(item)
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return refreshOrderTotal(tx, item.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *GormRepo) UpdateItem(ctx context.Context, id uint, apply func(*models.OrderItem)) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		apply(&item)
		item.TotalPrice = lineTotal(&item)
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		return refreshOrderTotal(tx, item.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) DeleteItem(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		return refreshOrderTotal(tx, item.OrderID)
	})
}

// refreshOrderTotal re-derives TotalAmount from the surviving items and
// bumps the order's UpdatedAt.
func refreshOrderTotal(tx *gorm.DB, orderID uint) error {
	var total float64
	if err := tx.Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	return tx.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total_amount", total).Error
}

package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dentalmart/shop/internal/models"
)

func (r *GormRepo) AddOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UserHasOrders reports whether any order row exists for the user,
// regardless of status. Drives the first-order flag on checkout events.
func (r *GormRepo) UserHasOrders(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus performs the guarded transition as a conditional update
// against the persisted status, so racing callers cannot lose updates.
func (r *GormRepo) UpdateStatus(ctx context.Context, id uint, expected, next models.OrderStatus) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type ShippingFields struct {
	ShippingAddress *string
	Phone           *string
	Notes           *string
}

// UpdateShippingFields edits the mutable order fields, but only while the
// order is still pending. Returns false when the status guard rejected it.
func (r *GormRepo) UpdateShippingFields(ctx context.Context, id uint, fields ShippingFields) (bool, error) {
	updates := map[string]any{}
	if fields.ShippingAddress != nil {
		updates["shipping_address"] = *fields.ShippingAddress
	}
	if fields.Phone != nil {
		updates["phone"] = *fields.Phone
	}
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}
	if len(updates) == 0 {
		return true, nil
	}

	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteOrder removes an order unless it has been confirmed. Confirmed
// orders are retained for audit and may only be cancelled.
func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND status <> ?", id, models.StatusConfirmed).
		Delete(&models.Order{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HasConfirmedPurchase only counts confirmed orders: pending and cancelled
// ones are not completed purchases.
func (r *GormRepo) HasConfirmedPurchase(ctx context.Context, userID uint, ref models.ItemRef) (bool, error) {
	q := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ?", userID, models.StatusConfirmed)

	switch ref.Kind {
	case models.RefProduct:
		q = q.Where("order_items.product_id = ?", ref.ID)
	case models.RefPackage:
		q = q.Where("order_items.package_id = ?", ref.ID)
	default:
		return false, nil
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dentalmart/shop/internal/models"
)

// GetCartWithItems returns the user's cart with its lines, or nil when the
// user has no cart yet.
func (r *GormRepo) GetCartWithItems(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) EnsureCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Where(models.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// BumpVersion is the optimistic concurrency stamp: it succeeds only when the
// cart still carries the version the caller observed.
func (r *GormRepo) BumpVersion(ctx context.Context, cartID, expectedVersion uint) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ? AND version = ?", cartID, expectedVersion).
		Update("version", gorm.Expr("version + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) touchCart(tx *gorm.DB, cartID uint) error {
	return tx.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("version", gorm.Expr("version + 1")).Error
}

// AddItem merges quantity into an existing line with the same catalog
// reference, or creates a new line. Any mutation bumps the cart version.
func (r *GormRepo) AddItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("cart_id = ?", item.CartID)
		switch ref := item.Ref(); ref.Kind {
		case models.RefProduct:
			q = q.Where("product_id = ?", ref.ID)
		case models.RefPackage:
			q = q.Where("package_id = ?", ref.ID)
		}

		var existing models.CartItem
		err := q.First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).
				Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error; err != nil {
				return err
			}
			existing.Quantity += item.Quantity
			*item = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return r.touchCart(tx, item.CartID)
	})
}

func (r *GormRepo) UpdateItemQuantity(ctx context.Context, cartID, itemID, quantity uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error; err != nil {
			return err
		}
		if err := tx.Model(&item).Update("quantity", quantity).Error; err != nil {
			return err
		}
		item.Quantity = quantity
		return r.touchCart(tx, cartID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) RemoveItem(ctx context.Context, cartID, itemID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return r.touchCart(tx, cartID)
	})
}

// ClearItems removes every line of the cart. Callers that need the
// optimistic check pair it with BumpVersion in the same transaction.
func (r *GormRepo) ClearItems(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// ClearCart removes every line and always advances the version stamp, so a
// checkout racing the clear fails its optimistic check.
func (r *GormRepo) ClearCart(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return r.touchCart(tx, cartID)
	})
}

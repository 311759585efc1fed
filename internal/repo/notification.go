package repo

import (
	"context"

	"github.com/dentalmart/shop/internal/models"
)

func (r *GormRepo) AddNotification(ctx context.Context, n *models.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *GormRepo) ListNotifications(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, error) {
	var items []models.Notification
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

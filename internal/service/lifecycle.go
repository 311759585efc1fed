package service

import (
	"context"
	"fmt"

	"github.com/dentalmart/shop/internal/events"
	"github.com/dentalmart/shop/internal/models"
	"github.com/dentalmart/shop/internal/repo"
	"github.com/dentalmart/shop/pkg/logging"
)

// LifecycleService enforces the order state machine:
// pending -> confirmed | cancelled, both terminal.
type LifecycleService struct {
	Repo       *repo.GormRepo
	Dispatcher events.Dispatcher
}

func (s *LifecycleService) GetOrder(ctx context.Context, orderID, callerID uint, isAdmin bool) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if !isAdmin && order.UserID != callerID {
		return nil, ErrUnauthorized
	}
	return order, nil
}

func (s *LifecycleService) ListOrders(ctx context.Context, userID uint, offset, limit int) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, offset, limit)
}

// ConfirmOrder moves a pending order to confirmed. Admin-only at the edge.
func (s *LifecycleService) ConfirmOrder(ctx context.Context, orderID uint) error {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}

	ok, err := s.Repo.UpdateStatus(ctx, orderID, models.StatusPending, models.StatusConfirmed)
	if err != nil {
		return err
	}
	if !ok {
		return s.transitionRejected(ctx, orderID)
	}

	s.Dispatcher.NotifyOrderConfirmed(ctx, orderID, order.UserID)
	logging.FromContext(ctx).Info("order confirmed", "order_id", orderID, "user_id", order.UserID)
	return nil
}

// CancelOrder is a status change, never a deletion: the row is retained for
// audit regardless of outcome.
func (s *LifecycleService) CancelOrder(ctx context.Context, orderID, callerID uint, isAdmin bool) error {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if !isAdmin && order.UserID != callerID {
		return ErrUnauthorized
	}

	ok, err := s.Repo.UpdateStatus(ctx, orderID, models.StatusPending, models.StatusCancelled)
	if err != nil {
		return err
	}
	if !ok {
		return s.transitionRejected(ctx, orderID)
	}

	logging.FromContext(ctx).Info("order cancelled", "order_id", orderID, "by", callerID, "admin", isAdmin)
	return nil
}

// UpdateOrderDetails edits shipping address, phone or notes. Allowed only
// while the order is still pending; the status guard sits in the UPDATE
// itself so a racing confirm cannot be lost.
func (s *LifecycleService) UpdateOrderDetails(ctx context.Context, orderID, callerID uint, isAdmin bool, fields repo.ShippingFields) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if !isAdmin && order.UserID != callerID {
		return nil, ErrUnauthorized
	}
	if order.Status != models.StatusPending {
		return nil, fmt.Errorf("order %d is %s: %w", orderID, order.Status, ErrInvalidOperation)
	}

	ok, err := s.Repo.UpdateShippingFields(ctx, orderID, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("order %d left pending: %w", orderID, ErrInvalidOperation)
	}

	return s.Repo.GetOrder(ctx, orderID)
}

// DeleteOrder is administrative cleanup, distinct from cancellation.
// Confirmed orders cannot be deleted.
func (s *LifecycleService) DeleteOrder(ctx context.Context, orderID uint) error {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}

	ok, err := s.Repo.DeleteOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("order %d is confirmed: %w", orderID, ErrInvalidOperation)
	}
	return nil
}

// transitionRejected re-reads the row so the error reports the status that
// actually blocked the guard, not the one observed before a lost race.
func (s *LifecycleService) transitionRejected(ctx context.Context, orderID uint) error {
	current, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil || current == nil {
		return fmt.Errorf("order %d: %w", orderID, ErrInvalidTransition)
	}
	return fmt.Errorf("order %d is %s: %w", orderID, current.Status, ErrInvalidTransition)
}

// HasConfirmedPurchase gates verified-purchase reviews: only confirmed
// orders count.
func (s *LifecycleService) HasConfirmedPurchase(ctx context.Context, userID uint, ref models.ItemRef) (bool, error) {
	return s.Repo.HasConfirmedPurchase(ctx, userID, ref)
}

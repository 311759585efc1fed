package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentalmart/shop/internal/events"
	"github.com/dentalmart/shop/internal/models"
	"github.com/dentalmart/shop/internal/repo"
	"github.com/dentalmart/shop/pkg/logging"
)

type ShippingInfo struct {
	Address string
	Phone   string
	Notes   string
}

// CheckoutService converts a cart into an order atomically: order, order
// items and cart clear commit as one transaction or not at all.
type CheckoutService struct {
	Repo       *repo.GormRepo
	Dispatcher events.Dispatcher
}

func (s *CheckoutService) Checkout(ctx context.Context, userID uint, info ShippingInfo) (*models.Order, error) {
	l := logging.FromContext(ctx)

	var (
		order      *models.Order
		firstOrder bool
	)

	err := s.Repo.Transact(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.GetCartWithItems(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		pricing := &PricingEngine{Repo: tx}

		o := &models.Order{
			UserID:          userID,
			Status:          models.StatusPending,
			ShippingAddress: info.Address,
			Phone:           info.Phone,
			Notes:           info.Notes,
			CreatedAt:       time.Now().UTC(),
		}

		total := decimal.Zero
		for _, it := range cart.Items {
			line, err := pricing.PriceLine(ctx, it)
			if err != nil {
				return err
			}
			if line == nil {
				// Line references neither product nor package. The check
				// constraint keeps such rows out, so this is pre-existing
				// corruption: skip the line, keep the rest of the checkout.
				l.Warn("cart line without catalog reference skipped", "cart_item_id", it.ID, "cart_id", cart.ID)
				continue
			}

			productID, packageID := it.Ref().Columns()
			o.Items = append(o.Items, models.OrderItem{
				ProductID:  productID,
				PackageID:  packageID,
				Quantity:   it.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.Total,
				Color:      it.Color,
				Size:       it.Size,
				Material:   it.Material,
				Note:       it.Note,
			})
			total = total.Add(line.Total)
		}
		if len(o.Items) == 0 {
			return ErrEmptyCart
		}
		o.TotalPrice = total

		hasOrders, err := tx.UserHasOrders(ctx, userID)
		if err != nil {
			return err
		}
		firstOrder = !hasOrders

		if err := tx.AddOrder(ctx, o); err != nil {
			return err
		}

		// Optimistic check: fails when a cart mutation slipped in between
		// loading the cart and committing the order.
		ok, err := tx.BumpVersion(ctx, cart.ID, cart.Version)
		if err != nil {
			return err
		}
		if !ok {
			return ErrConflict
		}
		if err := tx.ClearItems(ctx, cart.ID); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Emitted strictly after commit: a notification must never reference an
	// order that did not durably exist.
	s.Dispatcher.NotifyNewOrder(ctx, order.ID, userID, firstOrder)

	l.Info("order created", "order_id", order.ID, "user_id", userID, "total", order.TotalPrice, "first_order", firstOrder)
	return order, nil
}

package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dentalmart/shop/internal/models"
)

func TestCheckoutHappyPath(t *testing.T) {
	r := newTestRepo(t)
	rec := &recorderDispatcher{}
	svc := &CheckoutService{Repo: r, Dispatcher: rec}
	ctx := context.Background()

	p := seedProduct(t, r, models.Product{Price: price("100.00"), IsActive: true})
	seedCart(t, r, 1, models.CartItem{ProductID: ptr(p.ID), Quantity: 2, Note: "fragile"})

	order, err := svc.Checkout(ctx, 1, ShippingInfo{Address: "12 Molar St", Phone: "555-0100"})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, order.Status)
	require.True(t, order.TotalPrice.Equal(price("200.00")))
	require.Len(t, order.Items, 1)
	require.True(t, order.Items[0].UnitPrice.Equal(price("100.00")))
	require.True(t, order.Items[0].TotalPrice.Equal(price("200.00")))
	require.Equal(t, "fragile", order.Items[0].Note)
	require.Equal(t, "12 Molar St", order.ShippingAddress)

	// cart must be empty afterwards
	cart, err := r.GetCartWithItems(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	ev := rec.last(t)
	require.Equal(t, "order_created", ev.Type)
	require.Equal(t, order.ID, ev.OrderID)
	require.True(t, ev.IsFirstOrder)
}

func TestCheckoutEmptyCart(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r, Dispatcher: &recorderDispatcher{}}
	ctx := context.Background()

	_, err := svc.Checkout(ctx, 1, ShippingInfo{})
	require.ErrorIs(t, err, ErrEmptyCart)

	seedCart(t, r, 2)
	_, err = svc.Checkout(ctx, 2, ShippingInfo{})
	require.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCheckoutInactiveProductAbortsEverything(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r, Dispatcher: &recorderDispatcher{}}
	ctx := context.Background()

	active := seedProduct(t, r, models.Product{Price: price("10.00"), IsActive: true})
	inactive := seedProduct(t, r, models.Product{Price: price("10.00"), IsActive: false})
	seedCart(t, r, 1,
		models.CartItem{ProductID: ptr(active.ID), Quantity: 1},
		models.CartItem{ProductID: ptr(inactive.ID), Quantity: 1},
	)

	_, err := svc.Checkout(ctx, 1, ShippingInfo{})
	require.ErrorIs(t, err, ErrItemUnavailable)

	// all-or-nothing: no order, cart untouched
	var orders int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)

	cart, err := r.GetCartWithItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestCheckoutMissingPackage(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r, Dispatcher: &recorderDispatcher{}}

	seedCart(t, r, 1, models.CartItem{PackageID: ptr(999), Quantity: 1})

	_, err := svc.Checkout(context.Background(), 1, ShippingInfo{})
	require.ErrorIs(t, err, ErrItemUnavailable)
}

func TestCheckoutAppliesDiscountAndPackagePrice(t *testing.T) {
	r := newTestRepo(t)
	rec := &recorderDispatcher{}
	svc := &CheckoutService{Repo: r, Dispatcher: rec}

	p := seedProduct(t, r, models.Product{Price: price("80.00"), DiscountPercent: 25, IsActive: true})
	pkg := seedPackage(t, r, models.Package{Price: price("149.90"), IsAvailable: true})
	seedCart(t, r, 1,
		models.CartItem{ProductID: ptr(p.ID), Quantity: 2},  // 60.00 each
		models.CartItem{PackageID: ptr(pkg.ID), Quantity: 1}, // flat price
	)

	order, err := svc.Checkout(context.Background(), 1, ShippingInfo{})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	require.True(t, order.Items[0].UnitPrice.Equal(price("60.00")))
	require.True(t, order.Items[1].UnitPrice.Equal(price("149.90")))
	require.True(t, order.TotalPrice.Equal(price("269.90")))
}

func TestPriceFrozenAfterCatalogChange(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r, Dispatcher: &recorderDispatcher{}}
	ctx := context.Background()

	p := seedProduct(t, r, models.Product{Price: price("100.00"), IsActive: true})
	seedCart(t, r, 1, models.CartItem{ProductID: ptr(p.ID), Quantity: 1})

	order, err := svc.Checkout(ctx, 1, ShippingInfo{})
	require.NoError(t, err)

	require.NoError(t, r.DB.Model(&models.Product{}).Where("id = ?", p.ID).
		Updates(map[string]any{"price": "250.00", "discount_percent": 50}).Error)

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, got.TotalPrice.Equal(price("100.00")))
	require.True(t, got.Items[0].UnitPrice.Equal(price("100.00")))
}

func TestOrderTotalMatchesLineTotals(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r, Dispatcher: &recorderDispatcher{}}

	a := seedProduct(t, r, models.Product{Price: price("12.34"), IsActive: true})
	b := seedProduct(t, r, models.Product{Price: price("0.99"), DiscountPercent: 10, IsActive: true})
	seedCart(t, r, 1,
		models.CartItem{ProductID: ptr(a.ID), Quantity: 3},
		models.CartItem{ProductID: ptr(b.ID), Quantity: 7},
	)

	order, err := svc.Checkout(context.Background(), 1, ShippingInfo{})
	require.NoError(t, err)

	sum := price("0")
	for _, it := range order.Items {
		require.True(t, it.TotalPrice.Equal(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))))
		sum = sum.Add(it.TotalPrice)
	}
	require.True(t, order.TotalPrice.Equal(sum))
}

func TestFirstOrderFlag(t *testing.T) {
	r := newTestRepo(t)
	rec := &recorderDispatcher{}
	checkout := &CheckoutService{Repo: r, Dispatcher: rec}
	lifecycle := &LifecycleService{Repo: r, Dispatcher: rec}
	ctx := context.Background()

	p := seedProduct(t, r, models.Product{Price: price("10.00"), IsActive: true})

	seedCart(t, r, 1, models.CartItem{ProductID: ptr(p.ID), Quantity: 1})
	first, err := checkout.Checkout(ctx, 1, ShippingInfo{})
	require.NoError(t, err)
	require.True(t, rec.last(t).IsFirstOrder)

	require.NoError(t, lifecycle.ConfirmOrder(ctx, first.ID))

	// second checkout by the same user
	cart, err := r.EnsureCart(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, r.AddItem(ctx, &models.CartItem{CartID: cart.ID, ProductID: ptr(p.ID), Quantity: 1}))

	_, err = checkout.Checkout(ctx, 1, ShippingInfo{})
	require.NoError(t, err)
	last := rec.last(t)
	require.Equal(t, "order_created", last.Type)
	require.False(t, last.IsFirstOrder)
}

func TestCartVersionGuard(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cart := seedCart(t, r, 1)

	ok, err := r.BumpVersion(ctx, cart.ID, 0)
	require.NoError(t, err)
	require.True(t, ok)

	// stale stamp is rejected
	ok, err = r.BumpVersion(ctx, cart.ID, 0)
	require.NoError(t, err)
	require.False(t, ok)
}

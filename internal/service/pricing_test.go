package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dentalmart/shop/internal/models"
)

func TestPriceLineProductDiscount(t *testing.T) {
	r := newTestRepo(t)
	engine := &PricingEngine{Repo: r}
	ctx := context.Background()

	p := seedProduct(t, r, models.Product{Price: price("199.99"), DiscountPercent: 15, IsActive: true})

	line, err := engine.PriceLine(ctx, models.CartItem{ProductID: ptr(p.ID), Quantity: 3})
	require.NoError(t, err)
	require.NotNil(t, line)
	// 199.99 * 0.85 = 169.9915 -> 169.99
	require.True(t, line.UnitPrice.Equal(price("169.99")), "got %s", line.UnitPrice)
	require.True(t, line.Total.Equal(price("509.97")), "got %s", line.Total)
}

func TestPriceLinePackageFlatPrice(t *testing.T) {
	r := newTestRepo(t)
	engine := &PricingEngine{Repo: r}

	pkg := seedPackage(t, r, models.Package{Price: price("89.50"), IsAvailable: true})

	line, err := engine.PriceLine(context.Background(), models.CartItem{PackageID: ptr(pkg.ID), Quantity: 2})
	require.NoError(t, err)
	require.True(t, line.UnitPrice.Equal(price("89.50")))
	require.True(t, line.Total.Equal(price("179.00")))
}

func TestPriceLineUnavailable(t *testing.T) {
	r := newTestRepo(t)
	engine := &PricingEngine{Repo: r}
	ctx := context.Background()

	inactive := seedProduct(t, r, models.Product{Price: price("10.00"), IsActive: false})
	unavailable := seedPackage(t, r, models.Package{Price: price("10.00"), IsAvailable: false})

	_, err := engine.PriceLine(ctx, models.CartItem{ProductID: ptr(inactive.ID), Quantity: 1})
	require.ErrorIs(t, err, ErrItemUnavailable)

	_, err = engine.PriceLine(ctx, models.CartItem{PackageID: ptr(unavailable.ID), Quantity: 1})
	require.ErrorIs(t, err, ErrItemUnavailable)

	_, err = engine.PriceLine(ctx, models.CartItem{ProductID: ptr(404), Quantity: 1})
	require.ErrorIs(t, err, ErrItemUnavailable)
}

func TestPriceLineEmptyReferenceIsSkipped(t *testing.T) {
	r := newTestRepo(t)
	engine := &PricingEngine{Repo: r}

	line, err := engine.PriceLine(context.Background(), models.CartItem{Quantity: 1})
	require.NoError(t, err)
	require.Nil(t, line)
}

func TestZeroDiscountKeepsPrice(t *testing.T) {
	r := newTestRepo(t)
	engine := &PricingEngine{Repo: r}

	p := seedProduct(t, r, models.Product{Price: price("49.90"), IsActive: true})

	line, err := engine.PriceLine(context.Background(), models.CartItem{ProductID: ptr(p.ID), Quantity: 1})
	require.NoError(t, err)
	require.True(t, line.UnitPrice.Equal(price("49.90")))
}

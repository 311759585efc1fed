package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dentalmart/shop/internal/models"
	"github.com/dentalmart/shop/internal/repo"
)

var hundred = decimal.NewFromInt(100)

// PricedLine is the frozen snapshot for one cart line: the unit price the
// order will carry forever, independent of later catalog changes.
type PricedLine struct {
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// PricingEngine resolves the authoritative unit price and availability for a
// cart line at checkout time. Pure read, no side effects.
type PricingEngine struct {
	Repo *repo.GormRepo
}

// PriceLine returns the snapshot for the line, or (nil, nil) when the line
// references neither a product nor a package and is skipped.
func (e *PricingEngine) PriceLine(ctx context.Context, item models.CartItem) (*PricedLine, error) {
	ref := item.Ref()

	var unit decimal.Decimal
	switch ref.Kind {
	case models.RefProduct:
		p, err := e.Repo.GetProduct(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.IsActive {
			return nil, fmt.Errorf("product %d: %w", ref.ID, ErrItemUnavailable)
		}
		unit = discounted(p.Price, p.DiscountPercent)
	case models.RefPackage:
		pkg, err := e.Repo.GetPackage(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if pkg == nil || !pkg.IsAvailable {
			return nil, fmt.Errorf("package %d: %w", ref.ID, ErrItemUnavailable)
		}
		unit = pkg.Price.Round(2)
	default:
		return nil, nil
	}

	total := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return &PricedLine{UnitPrice: unit, Total: total}, nil
}

func discounted(price decimal.Decimal, discountPercent uint) decimal.Decimal {
	if discountPercent == 0 {
		return price.Round(2)
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(discountPercent)))
	return price.Mul(factor).Div(hundred).Round(2)
}

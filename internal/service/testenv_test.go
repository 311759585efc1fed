package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dentalmart/shop/internal/config"
	"github.com/dentalmart/shop/internal/models"
	"github.com/dentalmart/shop/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	// FK constraints are skipped so fixtures don't need full user/catalog rows
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	// in-memory sqlite lives per connection
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(gdb))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return &repo.GormRepo{DB: gdb}
}

type recordedEvent struct {
	Type         string
	OrderID      uint
	UserID       uint
	IsFirstOrder bool
}

// recorderDispatcher captures lifecycle events instead of touching Kafka.
type recorderDispatcher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (d *recorderDispatcher) NotifyNewOrder(_ context.Context, orderID, userID uint, isFirstOrder bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, recordedEvent{Type: "order_created", OrderID: orderID, UserID: userID, IsFirstOrder: isFirstOrder})
}

func (d *recorderDispatcher) NotifyOrderConfirmed(_ context.Context, orderID, userID uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, recordedEvent{Type: "order_confirmed", OrderID: orderID, UserID: userID})
}

func (d *recorderDispatcher) last(t *testing.T) recordedEvent {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	require.NotEmpty(t, d.events)
	return d.events[len(d.events)-1]
}

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("bad test price %q: %v", s, err))
	}
	return d
}

func seedProduct(t *testing.T, r *repo.GormRepo, p models.Product) models.Product {
	t.Helper()
	if p.Name == "" {
		p.Name = fmt.Sprintf("product-%d", p.ID)
	}
	require.NoError(t, r.DB.Create(&p).Error)
	return p
}

func seedPackage(t *testing.T, r *repo.GormRepo, p models.Package) models.Package {
	t.Helper()
	if p.Name == "" {
		p.Name = fmt.Sprintf("package-%d", p.ID)
	}
	require.NoError(t, r.DB.Create(&p).Error)
	return p
}

func seedCart(t *testing.T, r *repo.GormRepo, userID uint, items ...models.CartItem) models.Cart {
	t.Helper()
	cart := models.Cart{UserID: userID}
	require.NoError(t, r.DB.Create(&cart).Error)
	for i := range items {
		items[i].CartID = cart.ID
		require.NoError(t, r.DB.Create(&items[i]).Error)
	}
	cart.Items = items
	return cart
}

func ptr(v uint) *uint { return &v }

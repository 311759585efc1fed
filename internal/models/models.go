package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"unique;not null"          json:"username"`
	Role     string `gorm:"not null;default:user"    json:"role"`
}

type Product struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name            string          `gorm:"not null"                    json:"name"`
	Description     string          `gorm:"not null"                    json:"description"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	DiscountPercent uint            `gorm:"default:0;check:discount_percent<=100" json:"discount_percent"`
	IsActive        bool            `gorm:"default:true"                json:"is_active"`
}

type Package struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string          `gorm:"not null"                    json:"name"`
	Description string          `gorm:"not null"                    json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	IsAvailable bool            `gorm:"default:true"                json:"is_available"`
}

// Cart is created lazily on the first add. Version is bumped by every
// mutation so a checkout racing a cart edit fails its optimistic check.
type Cart struct {
	ID      uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint       `gorm:"uniqueIndex;not null"     json:"user_id"`
	Version uint       `gorm:"not null;default:0"       json:"-"`
	Items   []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"   json:"id"`
	CartID    uint   `gorm:"index;not null"             json:"cart_id"`
	ProductID *uint  `gorm:"index;check:chk_cart_item_ref,product_id IS NULL OR package_id IS NULL" json:"product_id,omitempty"`
	PackageID *uint  `gorm:"index"                      json:"package_id,omitempty"`
	Quantity  uint   `gorm:"default:1;check:quantity>0" json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Material  string `json:"material,omitempty"`
	Note      string `json:"note,omitempty"`
}

func (ci CartItem) Ref() ItemRef { return refOf(ci.ProductID, ci.PackageID) }

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"        json:"id"`
	UserID          uint            `gorm:"index;not null"                  json:"user_id"`
	User            *User           `gorm:"constraint:OnDelete:RESTRICT"    json:"-"`
	Status          OrderStatus     `gorm:"type:varchar(16);not null;index" json:"status"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"     json:"total_price"`
	ShippingAddress string          `json:"shipping_address,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `gorm:"not null"                        json:"created_at"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is the historical price record: UnitPrice is frozen at checkout
// and never re-derived from the catalog. Catalog FKs are set-null on delete
// so old orders survive catalog changes.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderID    uint            `gorm:"index;not null"               json:"order_id"`
	ProductID  *uint           `gorm:"index;check:chk_order_item_ref,product_id IS NULL OR package_id IS NULL" json:"product_id,omitempty"`
	Product    *Product        `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	PackageID  *uint           `gorm:"index"                        json:"package_id,omitempty"`
	Package    *Package        `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Quantity   uint            `gorm:"check:quantity>0;not null"    json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"  json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"  json:"total_price"`
	Color      string          `json:"color,omitempty"`
	Size       string          `json:"size,omitempty"`
	Material   string          `json:"material,omitempty"`
	Note       string          `json:"note,omitempty"`
}

func (oi OrderItem) Ref() ItemRef { return refOf(oi.ProductID, oi.PackageID) }

type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	Type      string    `gorm:"not null"                 json:"type"`
	Payload   string    `gorm:"type:text"                json:"payload"`
	CreatedAt time.Time `gorm:"not null"                 json:"created_at"`
}

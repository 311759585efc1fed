package models

// OrderStatus is a closed set. The store serializes it as text for
// readability but application code must never treat it as a free string.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

type RefKind int

const (
	RefNone RefKind = iota
	RefProduct
	RefPackage
)

// ItemRef is the tagged form of a cart/order line's catalog reference:
// a product, a package, or neither. The both-set state is unrepresentable.
type ItemRef struct {
	Kind RefKind
	ID   uint
}

func ProductRef(id uint) ItemRef { return ItemRef{Kind: RefProduct, ID: id} }
func PackageRef(id uint) ItemRef { return ItemRef{Kind: RefPackage, ID: id} }

func (r ItemRef) IsZero() bool { return r.Kind == RefNone }

// Columns returns the nullable FK pair the ref maps to in storage.
func (r ItemRef) Columns() (productID, packageID *uint) {
	switch r.Kind {
	case RefProduct:
		id := r.ID
		return &id, nil
	case RefPackage:
		id := r.ID
		return nil, &id
	default:
		return nil, nil
	}
}

func refOf(productID, packageID *uint) ItemRef {
	switch {
	case productID != nil:
		return ProductRef(*productID)
	case packageID != nil:
		return PackageRef(*packageID)
	default:
		return ItemRef{}
	}
}

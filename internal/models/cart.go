package models

import "github.com/google/uuid"

// CartLine is one in-progress purchase entry, keyed by variant identity.
// Product and Variant are snapshots taken when the line was added.
type CartLine struct {
	Product  Product        `json:"product"`
	Variant  ProductVariant `json:"variant"`
	Quantity int            `json:"quantity"`
}

// LineTotal is the product price times quantity.
func (l CartLine) LineTotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// CartView is the cart as presented to the POS screen.
type CartView struct {
	SessionID        uuid.UUID      `json:"sessionId"`
	Lines            []CartViewLine `json:"lines"`
	TotalItems       int            `json:"totalItems"`
	TotalAmount      float64        `json:"totalAmount"`
	SelectedCustomer *Customer      `json:"selectedCustomer,omitempty"`
	CheckoutState    string         `json:"checkoutState"`
}

type CartViewLine struct {
	CartLine
	LineTotal float64 `json:"lineTotal"`
}

type AddCartItemRequest struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	VariantID int64 `json:"variantId" validate:"gt=0"`
	Quantity  int   `json:"quantity" validate:"gte=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// POSProduct is a catalog entry for the POS product grid.
type POSProduct struct {
	Product
	TotalStock int  `json:"totalStock"`
	OutOfStock bool `json:"outOfStock"`
}

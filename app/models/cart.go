package models

import "math"

// CartItem is one (product, quantity) pair in a cart or order.
type CartItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Quantity  float64 `bson:"quantity" json:"quantity"`
}

// Valid reports whether the quantity satisfies the cart invariant:
// a positive, finite number. Entries violating it are dropped on read.
func (i CartItem) Valid() bool {
	return i.Quantity > 0 && !math.IsInf(i.Quantity, 0) && !math.IsNaN(i.Quantity)
}

// Cart is a user's pending selection, keyed by the user's uid.
type Cart struct {
	ID    string     `bson:"_id,omitempty" json:"-"`
	Items []CartItem `bson:"items" json:"items"`
}

// CartView is the enriched read shape: each item carries the product's
// current attributes merged with the cart quantity.
type CartView struct {
	Items []Attrs `json:"items"`
}

package models

import "time"

// OrderStatusPending is the status every order is created with. Further
// transitions are free-form strings set via the update-status operation.
const OrderStatusPending = "Pending"

// Order is an immutable record created from a cart at checkout time.
// Only Status may change afterwards. Items hold productId+quantity verbatim
// from the cart with no price or stock snapshot, so displayed prices can drift.
type Order struct {
	ID            string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        string     `bson:"userId" json:"userId"`
	Items         []CartItem `bson:"items" json:"items"`
	Address       string     `bson:"address" json:"address"`
	PaymentMethod string     `bson:"paymentMethod" json:"paymentMethod"`
	Status        string     `bson:"status" json:"status"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
}

// OrderView is the enriched read shape: items resolved against current
// product attributes; items whose product no longer exists are dropped.
type OrderView struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Items         []Attrs   `json:"items"`
	Address       string    `json:"address"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

package models

import (
	"time"

	"github.com/dmitrijs2005/shopcart/internal/common"
)

// Item is a catalog product. Read-only on the client.
type Item struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// CartItem is one line of a cart.
type CartItem struct {
	ID       uint64 `json:"id,omitempty"`
	ItemID   uint64 `json:"item_id,omitempty"`
	Item     Item   `json:"item"`
	Quantity int    `json:"quantity"`
}

// Cart is owned by the server; the client only ever reads it.
type Cart struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id,omitempty"`
	Status    string     `json:"status"`
	CartItems []CartItem `json:"cart_items"`
}

// IsActive reports whether c is the user's current, uncommitted cart.
func (c Cart) IsActive() bool {
	return c.Status == common.CartStatusActive
}

// ActiveCart returns the first cart with status "active", or nil.
func ActiveCart(carts []Cart) *Cart {
	for i := range carts {
		if carts[i].IsActive() {
			c := carts[i]
			return &c
		}
	}
	return nil
}

// Order is created by checkout and never modified afterwards.
type Order struct {
	ID         uint64    `json:"id"`
	CartID     uint64    `json:"cart_id,omitempty"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AddToCartRequest is the body of POST /carts.
type AddToCartRequest struct {
	ItemID   uint64 `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CartID uint64 `json:"cart_id"`
}

// CredentialsRequest is the body of POST /users and POST /users/login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

package models

import "time"

type Item struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price" binding:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
}

type Cart struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id"`
	Status    string     `json:"status"`
	CartItems []CartItem `json:"cart_items"`
	CreatedAt time.Time  `json:"created_at"`
}

type CartItem struct {
	ID       uint64 `json:"id"`
	CartID   uint64 `json:"cart_id"`
	ItemID   uint64 `json:"item_id"`
	Item     Item   `json:"item"`
	Quantity int    `json:"quantity"`
}

// Total is Σ price × quantity over the cart lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, ci := range c.CartItems {
		total += ci.Item.Price * float64(ci.Quantity)
	}
	return total
}

type Order struct {
	ID         uint64      `json:"id"`
	UserID     uint64      `json:"user_id"`
	CartID     uint64      `json:"cart_id"`
	OrderItems []OrderItem `json:"order_items"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderItem records the price at the time of ordering.
type OrderItem struct {
	ID       uint64  `json:"id"`
	OrderID  uint64  `json:"order_id"`
	ItemID   uint64  `json:"item_id"`
	Item     Item    `json:"item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

const OrderStatusCompleted = "completed"

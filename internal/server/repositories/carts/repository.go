package carts

import (
	"context"

	"github.com/dmitrijs2005/shopcart/internal/server/models"
)

// Repository reads and writes carts. Returned carts never have CartItems
// loaded; use ListItems. FindActive and Get lock the row for the rest of
// the enclosing transaction.
type Repository interface {
	FindActive(ctx context.Context, userID uint64) (*models.Cart, error)
	Get(ctx context.Context, cartID, userID uint64) (*models.Cart, error)
	Create(ctx context.Context, userID uint64) (*models.Cart, error)
	ListByUser(ctx context.Context, userID uint64) ([]models.Cart, error)
	AddItem(ctx context.Context, cartID, itemID uint64, quantity int) error
	ListItems(ctx context.Context, cartID uint64) ([]models.CartItem, error)
	SetStatus(ctx context.Context, cartID uint64, from, to string) error
}

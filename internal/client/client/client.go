package client

import (
	"context"

	"github.com/dmitrijs2005/shopcart/internal/client/models"
)

// Client is the backend REST surface used by the session manager and the
// shop controller.
type Client interface {
	SetToken(token string)
	ClearToken()
	Token() string

	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)

	ListItems(ctx context.Context) ([]models.Item, error)
	AddToCart(ctx context.Context, itemID uint64, quantity int) (*models.Cart, error)
	ListCarts(ctx context.Context) ([]models.Cart, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	// CreateOrder also returns the HTTP status of a successful (2xx) response.
	CreateOrder(ctx context.Context, cartID uint64) (*models.Order, int, error)

	Close() error
}

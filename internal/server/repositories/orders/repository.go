package orders

import (
	"context"

	"github.com/dmitrijs2005/shopcart/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	AddItem(ctx context.Context, item *models.OrderItem) error
	ListByUser(ctx context.Context, userID uint64) ([]models.Order, error)
	ListItems(ctx context.Context, orderID uint64) ([]models.OrderItem, error)
}

package items

import (
	"context"

	"github.com/dmitrijs2005/shopcart/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Item, error)
	Get(ctx context.Context, id uint64) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	Count(ctx context.Context) (int64, error)
}

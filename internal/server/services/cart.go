package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopcart/internal/common"
	"github.com/dmitrijs2005/shopcart/internal/dbx"
	"github.com/dmitrijs2005/shopcart/internal/server/models"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/carts"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/repomanager"
)

// CartService manages a user's carts. Each user has at most one active cart.
type CartService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCartService(db *sql.DB, m repomanager.RepositoryManager) *CartService {
	return &CartService{db: db, repomanager: m}
}

// AddToCart puts quantity units of itemID into the user's active cart,
// creating the cart if needed, and returns the cart with its lines.
// A non-positive quantity counts as 1. Unknown items yield common.ErrorNotFound.
func (s *CartService) AddToCart(ctx context.Context, userID, itemID uint64, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}

	return dbx.WithTxValue(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Cart, error) {
		if _, err := s.repomanager.Items(tx).Get(ctx, itemID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorNotFound
			}
			return nil, fmt.Errorf("error loading item: %w", err)
		}

		carts := s.repomanager.Carts(tx)

		cart, err := s.activeCart(ctx, carts, userID)
		if err != nil {
			return nil, err
		}

		if err := carts.AddItem(ctx, cart.ID, itemID, quantity); err != nil {
			return nil, fmt.Errorf("error adding item to cart: %w", err)
		}

		cart.CartItems, err = carts.ListItems(ctx, cart.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading cart items: %w", err)
		}
		return cart, nil
	})
}

// activeCart returns the user's active cart, creating it if needed. When a
// concurrent request creates it first, that cart is used.
func (s *CartService) activeCart(ctx context.Context, repo carts.Repository, userID uint64) (*models.Cart, error) {
	cart, err := repo.FindActive(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error loading cart: %w", err)
	}

	cart, err = repo.Create(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, common.ErrorAlreadyExists) {
		return nil, fmt.Errorf("error creating cart: %w", err)
	}

	cart, err = repo.FindActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading cart: %w", err)
	}
	return cart, nil
}

// ListCarts returns all of the user's carts, active and ordered, with items.
func (s *CartService) ListCarts(ctx context.Context, userID uint64) ([]models.Cart, error) {
	carts := s.repomanager.Carts(s.db)

	list, err := carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing carts: %w", err)
	}

	for i := range list {
		list[i].CartItems, err = carts.ListItems(ctx, list[i].ID)
		if err != nil {
			return nil, fmt.Errorf("error loading cart items: %w", err)
		}
	}
	return list, nil
}

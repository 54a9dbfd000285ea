package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopcart/internal/common"
	"github.com/dmitrijs2005/shopcart/internal/dbx"
	"github.com/dmitrijs2005/shopcart/internal/server/models"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/repomanager"
)

type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager) *OrderService {
	return &OrderService{db: db, repomanager: m}
}

// Checkout turns the user's active cart into an order. It fails with
// common.ErrorNotFound when the cart is missing, foreign or already ordered,
// and with common.ErrorCartEmpty when it has no lines. The cart row stays
// locked until commit, so concurrent checkouts of one cart yield one order.
// Order lines keep the item price at the time of checkout.
func (s *OrderService) Checkout(ctx context.Context, userID, cartID uint64) (*models.Order, error) {
	return dbx.WithTxValue(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Order, error) {
		carts := s.repomanager.Carts(tx)
		orders := s.repomanager.Orders(tx)

		cart, err := carts.Get(ctx, cartID, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorNotFound
			}
			return nil, fmt.Errorf("error loading cart: %w", err)
		}
		if cart.Status != common.CartStatusActive {
			return nil, common.ErrorNotFound
		}

		cart.CartItems, err = carts.ListItems(ctx, cart.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading cart items: %w", err)
		}
		if len(cart.CartItems) == 0 {
			return nil, common.ErrorCartEmpty
		}

		order, err := orders.Create(ctx, &models.Order{
			UserID:     userID,
			CartID:     cart.ID,
			TotalPrice: cart.Total(),
			Status:     models.OrderStatusCompleted,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating order: %w", err)
		}

		order.OrderItems = make([]models.OrderItem, 0, len(cart.CartItems))
		for _, ci := range cart.CartItems {
			oi := models.OrderItem{
				OrderID:  order.ID,
				ItemID:   ci.ItemID,
				Item:     ci.Item,
				Quantity: ci.Quantity,
				Price:    ci.Item.Price,
			}
			if err := orders.AddItem(ctx, &oi); err != nil {
				return nil, fmt.Errorf("error creating order item: %w", err)
			}
			order.OrderItems = append(order.OrderItems, oi)
		}

		if err := carts.SetStatus(ctx, cart.ID, common.CartStatusActive, common.CartStatusOrdered); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorNotFound
			}
			return nil, fmt.Errorf("error closing cart: %w", err)
		}
		return order, nil
	})
}

// ListOrders returns the user's orders with their lines, oldest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uint64) ([]models.Order, error) {
	orders := s.repomanager.Orders(s.db)

	list, err := orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}

	for i := range list {
		list[i].OrderItems, err = orders.ListItems(ctx, list[i].ID)
		if err != nil {
			return nil, fmt.Errorf("error loading order items: %w", err)
		}
	}
	return list, nil
}

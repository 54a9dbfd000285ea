package orders

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopcart/internal/dbx"
	"github.com/dmitrijs2005/shopcart/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	query :=
		`INSERT INTO orders (user_id, cart_id, total_price, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, o.UserID, o.CartID, o.TotalPrice, o.Status).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) AddItem(ctx context.Context, oi *models.OrderItem) error {
	query :=
		`INSERT INTO order_items (order_id, item_id, quantity, price)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, oi.OrderID, oi.ItemID, oi.Quantity, oi.Price).Scan(&oi.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Order, error) {
	query :=
		`SELECT id, user_id, cart_id, total_price, status, created_at FROM orders
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CartID, &o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) ListItems(ctx context.Context, orderID uint64) ([]models.OrderItem, error) {
	query :=
		`SELECT oi.id, oi.order_id, oi.item_id, oi.quantity, oi.price,
		        i.id, i.name, i.description, i.price, i.created_at
		 FROM order_items oi
		 JOIN items i ON i.id = oi.item_id
		 WHERE oi.order_id = $1
		 ORDER BY oi.id
		 `

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.OrderItem, 0)
	for rows.Next() {
		var oi models.OrderItem
		if err := rows.Scan(&oi.ID, &oi.OrderID, &oi.ItemID, &oi.Quantity, &oi.Price,
			&oi.Item.ID, &oi.Item.Name, &oi.Item.Description, &oi.Item.Price, &oi.Item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, oi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

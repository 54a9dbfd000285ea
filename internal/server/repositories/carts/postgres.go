package carts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopcart/internal/common"
	"github.com/dmitrijs2005/shopcart/internal/dbx"
	"github.com/dmitrijs2005/shopcart/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Cart, error) {
	c := &models.Cart{}
	if err := row.Scan(&c.ID, &c.UserID, &c.Status, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) FindActive(ctx context.Context, userID uint64) (*models.Cart, error) {
	query :=
		`SELECT id, user_id, status, created_at FROM carts
		 WHERE user_id = $1 AND status = $2
		 FOR UPDATE
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, common.CartStatusActive))
}

func (r *PostgresRepository) Get(ctx context.Context, cartID, userID uint64) (*models.Cart, error) {
	query :=
		`SELECT id, user_id, status, created_at FROM carts
		 WHERE id = $1 AND user_id = $2
		 FOR UPDATE
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, cartID, userID))
}

// Create opens a new active cart. If the user already has one (possibly
// committed by a concurrent transaction) it returns common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, userID uint64) (*models.Cart, error) {
	query :=
		`INSERT INTO carts (user_id, status)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING
		 RETURNING id, user_id, status, created_at
		 `
	c, err := r.scanOne(r.db.QueryRowContext(ctx, query, userID, common.CartStatusActive))
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorAlreadyExists
	}
	return c, err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Cart, error) {
	query :=
		`SELECT id, user_id, status, created_at FROM carts
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	carts := make([]models.Cart, 0)
	for rows.Next() {
		var c models.Cart
		if err := rows.Scan(&c.ID, &c.UserID, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		carts = append(carts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return carts, nil
}

// AddItem inserts a cart line or, if the item is already in the cart,
// increases its quantity.
func (r *PostgresRepository) AddItem(ctx context.Context, cartID, itemID uint64, quantity int) error {
	query :=
		`INSERT INTO cart_items (cart_id, item_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (cart_id, item_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		 `

	if _, err := r.db.ExecContext(ctx, query, cartID, itemID, quantity); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListItems(ctx context.Context, cartID uint64) ([]models.CartItem, error) {
	query :=
		`SELECT ci.id, ci.cart_id, ci.item_id, ci.quantity,
		        i.id, i.name, i.description, i.price, i.created_at
		 FROM cart_items ci
		 JOIN items i ON i.id = ci.item_id
		 WHERE ci.cart_id = $1
		 ORDER BY ci.id
		 `

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	lines := make([]models.CartItem, 0)
	for rows.Next() {
		var ci models.CartItem
		if err := rows.Scan(&ci.ID, &ci.CartID, &ci.ItemID, &ci.Quantity,
			&ci.Item.ID, &ci.Item.Name, &ci.Item.Description, &ci.Item.Price, &ci.Item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		lines = append(lines, ci)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return lines, nil
}

// SetStatus moves the cart from one status to another. It returns
// common.ErrorNotFound when the cart does not exist or is no longer in from.
func (r *PostgresRepository) SetStatus(ctx context.Context, cartID uint64, from, to string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE carts SET status = $1 WHERE id = $2 AND status = $3`, to, cartID, from)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

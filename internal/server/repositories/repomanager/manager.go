package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopcart/internal/dbx"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/carts"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/items"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/orders"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services can compose them inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
	Carts(db dbx.DBTX) carts.Repository
	Orders(db dbx.DBTX) orders.Repository
}

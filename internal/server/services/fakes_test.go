package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shopcart/internal/common"
	"github.com/dmitrijs2005/shopcart/internal/dbx"
	"github.com/dmitrijs2005/shopcart/internal/server/models"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/carts"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/items"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/orders"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var errBoom = errors.New("boom")

// fakeDB is an in-memory stand-in for every repository. Errors can be
// injected per operation by name.
type fakeDB struct {
	mu sync.Mutex

	nextID    uint64
	users     map[string]*models.User
	items     []models.Item
	carts     []*models.Cart
	cartItems []models.CartItem
	orders    []*models.Order
	orderIt   []models.OrderItem

	fail map[string]error

	// missActive makes that many FindActive calls miss, as if another
	// transaction's cart were not yet visible.
	missActive int
	// staleGet makes Get report carts as active, as if read before another
	// checkout committed.
	staleGet bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: map[string]*models.User{}, fail: map[string]error{}}
}

func (f *fakeDB) id() uint64 { f.nextID++; return f.nextID }

func (f *fakeDB) err(op string) error { return f.fail[op] }

type fakeRepoManager struct{ f *fakeDB }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository           { return (*fakeUsers)(m.f) }
func (m *fakeRepoManager) Items(dbx.DBTX) items.Repository           { return (*fakeItems)(m.f) }
func (m *fakeRepoManager) Carts(dbx.DBTX) carts.Repository           { return (*fakeCarts)(m.f) }
func (m *fakeRepoManager) Orders(dbx.DBTX) orders.Repository         { return (*fakeOrders)(m.f) }

type fakeUsers fakeDB

func (r *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err("users.Create"); err != nil {
		return nil, err
	}
	if _, ok := f.users[u.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = f.id()
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.Username] = &cp
	return u, nil
}

func (r *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err("users.GetByUsername"); err != nil {
		return nil, err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeItems fakeDB

func (r *fakeItems) List(context.Context) ([]models.Item, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err("items.List"); err != nil {
		return nil, err
	}
	return append([]models.Item{}, f.items...), nil
}

func (r *fakeItems) Get(_ context.Context, id uint64) (*models.Item, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ID == id {
			cp := it
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeItems) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err("items.Create"); err != nil {
		return nil, err
	}
	item.ID = f.id()
	f.items = append(f.items, *item)
	return item, nil
}

func (r *fakeItems) Count(context.Context) (int64, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err("items.Count"); err != nil {
		return 0, err
	}
	return int64(len(f.items)), nil
}

type fakeCarts fakeDB

func (r *fakeCarts) FindActive(_ context.Context, userID uint64) (*models.Cart, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missActive > 0 {
		f.missActive--
		return nil, common.ErrorNotFound
	}
	for _, c := range f.carts {
		if c.UserID == userID && c.Status == common.CartStatusActive {
			cp := *c
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeCarts) Get(_ context.Context, cartID, userID uint64) (*models.Cart, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.ID == cartID && c.UserID == userID {
			cp := *c
			if f.staleGet {
				cp.Status = common.CartStatusActive
			}
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeCarts) Create(_ context.Context, userID uint64) (*models.Cart, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.UserID == userID && c.Status == common.CartStatusActive {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := &models.Cart{ID: f.id(), UserID: userID, Status: common.CartStatusActive, CreatedAt: time.Now()}
	f.carts = append(f.carts, c)
	cp := *c
	return &cp, nil
}

func (r *fakeCarts) ListByUser(_ context.Context, userID uint64) ([]models.Cart, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Cart, 0)
	for _, c := range f.carts {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCarts) AddItem(_ context.Context, cartID, itemID uint64, quantity int) error {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err("carts.AddItem"); err != nil {
		return err
	}
	for i := range f.cartItems {
		if f.cartItems[i].CartID == cartID && f.cartItems[i].ItemID == itemID {
			f.cartItems[i].Quantity += quantity
			return nil
		}
	}
	f.cartItems = append(f.cartItems, models.CartItem{ID: f.id(), CartID: cartID, ItemID: itemID, Quantity: quantity})
	return nil
}

func (r *fakeCarts) ListItems(_ context.Context, cartID uint64) ([]models.CartItem, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.CartItem, 0)
	for _, ci := range f.cartItems {
		if ci.CartID != cartID {
			continue
		}
		for _, it := range f.items {
			if it.ID == ci.ItemID {
				ci.Item = it
			}
		}
		out = append(out, ci)
	}
	return out, nil
}

func (r *fakeCarts) SetStatus(_ context.Context, cartID uint64, from, to string) error {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err("carts.SetStatus"); err != nil {
		return err
	}
	for _, c := range f.carts {
		if c.ID == cartID && c.Status == from {
			c.Status = to
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeOrders fakeDB

func (r *fakeOrders) Create(_ context.Context, o *models.Order) (*models.Order, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err("orders.Create"); err != nil {
		return nil, err
	}
	o.ID = f.id()
	o.CreatedAt = time.Now()
	cp := *o
	f.orders = append(f.orders, &cp)
	return o, nil
}

func (r *fakeOrders) AddItem(_ context.Context, oi *models.OrderItem) error {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	oi.ID = f.id()
	f.orderIt = append(f.orderIt, *oi)
	return nil
}

func (r *fakeOrders) ListByUser(_ context.Context, userID uint64) ([]models.Order, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err("orders.ListByUser"); err != nil {
		return nil, err
	}
	out := make([]models.Order, 0)
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrders) ListItems(_ context.Context, orderID uint64) ([]models.OrderItem, error) {
	f := (*fakeDB)(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.OrderItem, 0)
	for _, oi := range f.orderIt {
		if oi.OrderID == orderID {
			out = append(out, oi)
		}
	}
	return out, nil
}

// seedItem adds an item directly to the fake catalog.
func (f *fakeDB) seedItem(name string, price float64) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.items = append(f.items, models.Item{ID: id, Name: name, Price: price})
	return id
}

package rest

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/shopcart/internal/common"
	"github.com/dmitrijs2005/shopcart/internal/logging"
	"github.com/dmitrijs2005/shopcart/internal/server/auth"
	"github.com/dmitrijs2005/shopcart/internal/server/models"
)

const testSecret = "test-secret"

type fakeUsers struct {
	registerOut *models.User
	registerErr error
	loginToken  string
	loginUser   *models.User
	loginErr    error

	gotUsername, gotPassword string
}

func (f *fakeUsers) Register(_ context.Context, username, password string) (*models.User, error) {
	f.gotUsername, f.gotPassword = username, password
	return f.registerOut, f.registerErr
}

func (f *fakeUsers) Login(_ context.Context, username, password string) (string, *models.User, error) {
	f.gotUsername, f.gotPassword = username, password
	return f.loginToken, f.loginUser, f.loginErr
}

type fakeCatalog struct {
	items     []models.Item
	listErr   error
	created   *models.Item
	createErr error
}

func (f *fakeCatalog) List(context.Context) ([]models.Item, error) {
	return f.items, f.listErr
}

func (f *fakeCatalog) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	item.ID = 100
	f.created = item
	return item, nil
}

type fakeCarts struct {
	cart    *models.Cart
	carts   []models.Cart
	err     error
	gotUser uint64
	gotItem uint64
	gotQty  int
}

func (f *fakeCarts) AddToCart(_ context.Context, userID, itemID uint64, qty int) (*models.Cart, error) {
	f.gotUser, f.gotItem, f.gotQty = userID, itemID, qty
	return f.cart, f.err
}

func (f *fakeCarts) ListCarts(_ context.Context, userID uint64) ([]models.Cart, error) {
	f.gotUser = userID
	return f.carts, f.err
}

type fakeOrders struct {
	order   *models.Order
	orders  []models.Order
	err     error
	gotUser uint64
	gotCart uint64
}

func (f *fakeOrders) Checkout(_ context.Context, userID, cartID uint64) (*models.Order, error) {
	f.gotUser, f.gotCart = userID, cartID
	return f.order, f.err
}

func (f *fakeOrders) ListOrders(_ context.Context, userID uint64) ([]models.Order, error) {
	f.gotUser = userID
	return f.orders, f.err
}

type fixture struct {
	srv     *Server
	users   *fakeUsers
	catalog *fakeCatalog
	carts   *fakeCarts
	orders  *fakeOrders
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		users:   &fakeUsers{},
		catalog: &fakeCatalog{},
		carts:   &fakeCarts{},
		orders:  &fakeOrders{},
	}
	fx.srv = NewServer("127.0.0.1:0", logging.Discard(), Services{
		Users:   fx.users,
		Catalog: fx.catalog,
		Carts:   fx.carts,
		Orders:  fx.orders,
	}, testSecret, time.Second)
	return fx
}

func bearer(t *testing.T, userID uint64) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return common.BearerPrefix + tok
}

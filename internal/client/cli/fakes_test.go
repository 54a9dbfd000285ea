package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/shopcart/internal/client/config"
	"github.com/dmitrijs2005/shopcart/internal/client/models"
	"github.com/dmitrijs2005/shopcart/internal/client/session"
	"github.com/dmitrijs2005/shopcart/internal/client/store"
	"github.com/dmitrijs2005/shopcart/internal/logging"
)

type fakeSession struct {
	loggedIn bool
	username string

	restoreErr  error
	loginErr    error
	registerErr error
	logoutErr   error

	restored   int
	loggedOut  int
	lastUser   string
	lastPass   string
	registered []string
}

func (f *fakeSession) Restore(context.Context) error {
	f.restored++
	return f.restoreErr
}

func (f *fakeSession) Login(_ context.Context, c *session.Credentials) error {
	f.lastUser, f.lastPass = c.Username, string(c.Password)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn, f.username = true, c.Username
	return nil
}

func (f *fakeSession) Register(_ context.Context, c *session.Credentials) error {
	f.registered = append(f.registered, c.Username)
	f.lastPass = string(c.Password)
	return f.registerErr
}

func (f *fakeSession) Logout(context.Context) error {
	f.loggedOut++
	f.loggedIn, f.username = false, ""
	return f.logoutErr
}

func (f *fakeSession) IsLoggedIn() bool { return f.loggedIn }
func (f *fakeSession) Username() string { return f.username }

type fakeShop struct {
	items []models.Item
	calls []string
	added []uint64
	err   error
}

func (f *fakeShop) FetchItems(context.Context) error {
	f.calls = append(f.calls, "fetch")
	return f.err
}

func (f *fakeShop) AddToCart(_ context.Context, id uint64) error {
	f.calls = append(f.calls, "add")
	f.added = append(f.added, id)
	return f.err
}

func (f *fakeShop) ShowCart(context.Context) error {
	f.calls = append(f.calls, "cart")
	return f.err
}

func (f *fakeShop) ShowOrderHistory(context.Context) error {
	f.calls = append(f.calls, "orders")
	return f.err
}

func (f *fakeShop) Checkout(context.Context) error {
	f.calls = append(f.calls, "checkout")
	return f.err
}

func (f *fakeShop) Items() []models.Item { return f.items }

type nopClient struct{ closed bool }

func (c *nopClient) SetToken(string) {}
func (c *nopClient) ClearToken()     {}
func (c *nopClient) Token() string   { return "" }
func (c *nopClient) Close() error    { c.closed = true; return nil }
func (c *nopClient) Register(context.Context, string, string) error {
	return nil
}
func (c *nopClient) Login(context.Context, string, string) (*models.LoginResult, error) {
	return nil, nil
}
func (c *nopClient) ListItems(context.Context) ([]models.Item, error)   { return nil, nil }
func (c *nopClient) ListCarts(context.Context) ([]models.Cart, error)   { return nil, nil }
func (c *nopClient) ListOrders(context.Context) ([]models.Order, error) { return nil, nil }
func (c *nopClient) AddToCart(context.Context, uint64, int) (*models.Cart, error) {
	return nil, nil
}
func (c *nopClient) CreateOrder(context.Context, uint64) (*models.Order, int, error) {
	return nil, 0, nil
}

func newTestApp(t *testing.T, sess *fakeSession, sh *fakeShop, input string) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:  cfg,
		store:   store.NewMemoryStore(),
		api:     &nopClient{},
		session: sess,
		shop:    sh,
		log:     logging.Discard(),
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     io.Discard,
	}
}

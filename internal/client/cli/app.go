package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/shopcart/internal/client/client"
	"github.com/dmitrijs2005/shopcart/internal/client/config"
	"github.com/dmitrijs2005/shopcart/internal/client/models"
	"github.com/dmitrijs2005/shopcart/internal/client/notice"
	"github.com/dmitrijs2005/shopcart/internal/client/session"
	"github.com/dmitrijs2005/shopcart/internal/client/shop"
	"github.com/dmitrijs2005/shopcart/internal/client/store"
	"github.com/dmitrijs2005/shopcart/internal/logging"
)

type sessionManager interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, creds *session.Credentials) error
	Register(ctx context.Context, creds *session.Credentials) error
	Logout(ctx context.Context) error
	IsLoggedIn() bool
	Username() string
}

type shopController interface {
	FetchItems(ctx context.Context) error
	AddToCart(ctx context.Context, itemID uint64) error
	ShowCart(ctx context.Context) error
	ShowOrderHistory(ctx context.Context) error
	Checkout(ctx context.Context) error
	Items() []models.Item
}

type App struct {
	config  *config.Config
	store   store.Store
	api     client.Client
	session sessionManager
	shop    shopController
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session store and wires the client components.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, store.Options{
		Kind:        c.StoreKind,
		Path:        c.StorePath,
		RedisURL:    c.RedisURL,
		RedisPrefix: c.RedisPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening session store: %w", err)
	}

	api := client.NewHTTPClient(c.ServerURL)
	sink := notice.SinkFunc(printNotice)

	ctl := shop.NewController(api, sink, log, shop.WithDateFormat(c.DateLayout, time.Local))
	mgr := session.NewManager(st, api, ctl, sink, log)

	return &App{
		config:  c,
		store:   st,
		api:     api,
		session: mgr,
		shop:    ctl,
		log:     log.With("module", "cli"),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores any saved session and then serves the REPL until the user
// exits. A corrupt stored session aborts startup.
func (a *App) Run(ctx context.Context) error {
	defer a.close(ctx)

	if err := a.session.Restore(ctx); err != nil {
		if errors.Is(err, session.ErrCorruptSession) {
			return fmt.Errorf("cannot start: %w (remove %s to reset)", err, a.config.StorePath)
		}
		return err
	}

	printlnFn("Welcome to shopcart (type 'help' for commands)")
	if a.isLoggedIn() {
		_ = a.Items(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) close(ctx context.Context) {
	if err := a.api.Close(); err != nil {
		a.log.Warn(ctx, "closing api client", "error", err)
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn(ctx, "closing session store", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

func (a *App) getStatus() string {
	if u := a.session.Username(); u != "" {
		return fmt.Sprintf("(%s)", u)
	}
	return ""
}

func printNotice(n notice.Notice) {
	msg := strings.TrimRight(n.Message, "\n")
	if n.Kind == notice.Error {
		msg = "Error: " + msg
	}
	printlnFn(msg)
}

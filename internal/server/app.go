// Package server wires the shopcart backend: database, migrations, demo
// data, services and the REST endpoint, with graceful shutdown on signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/shopcart/internal/logging"
	"github.com/dmitrijs2005/shopcart/internal/server/config"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shopcart/internal/server/rest"
	"github.com/dmitrijs2005/shopcart/internal/server/services"
)

// Demo credentials created when seeding is enabled.
const (
	DemoUsername = "admin"
	DemoPassword = "admin123"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	userService    *services.UserService
	catalogService *services.CatalogService
	cartService    *services.CartService
	orderService   *services.OrderService
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, "json")

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return newApp(c, logger, db, repomanager.NewPostgresRepositoryManager()), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		repomanager:    rm,
		userService:    services.NewUserService(db, rm, c),
		catalogService: services.NewCatalogService(db, rm),
		cartService:    services.NewCartService(db, rm),
		orderService:   services.NewOrderService(db, rm),
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// prepare migrates the schema and, if enabled, seeds the demo user and catalog.
func (app *App) prepare(ctx context.Context) error {
	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if !app.config.Seed {
		return nil
	}

	created, err := app.userService.EnsureUser(ctx, DemoUsername, DemoPassword)
	if err != nil {
		return fmt.Errorf("seed user error: %w", err)
	}
	if created {
		app.logger.Info(ctx, "Sample user created", "username", DemoUsername)
	}

	n, err := app.catalogService.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed catalog error: %w", err)
	}
	if n > 0 {
		app.logger.Info(ctx, "Sample items created", "count", n)
	}

	return nil
}

func (app *App) newServer() *rest.Server {
	return rest.NewServer(app.config.EndpointAddr, app.logger, rest.Services{
		Users:   app.userService,
		Catalog: app.catalogService,
		Carts:   app.cartService,
		Orders:  app.orderService,
	}, app.config.SecretKey, app.config.ShutdownTimeout)
}

// Run blocks until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	if err := app.prepare(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	if err := app.newServer().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

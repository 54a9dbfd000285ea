// Package rest exposes the shop services over HTTP/JSON using gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shopcart/internal/logging"
	"github.com/dmitrijs2005/shopcart/internal/server/models"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type userService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

type catalogService interface {
	List(ctx context.Context) ([]models.Item, error)
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
}

type cartService interface {
	AddToCart(ctx context.Context, userID, itemID uint64, quantity int) (*models.Cart, error)
	ListCarts(ctx context.Context, userID uint64) ([]models.Cart, error)
}

type orderService interface {
	Checkout(ctx context.Context, userID, cartID uint64) (*models.Order, error)
	ListOrders(ctx context.Context, userID uint64) ([]models.Order, error)
}

// Services bundles the business logic the handlers delegate to.
type Services struct {
	Users   userService
	Catalog catalogService
	Carts   cartService
	Orders  orderService
}

type Server struct {
	address         string
	svc             Services
	logger          logging.Logger
	jwtSecret       []byte
	shutdownTimeout time.Duration
	handler         http.Handler
}

func NewServer(address string, l logging.Logger, svc Services, secretKey string, shutdownTimeout time.Duration) *Server {
	s := &Server{
		address:         address,
		svc:             svc,
		logger:          l.With("module", "rest_server"),
		jwtSecret:       []byte(secretKey),
		shutdownTimeout: shutdownTimeout,
	}
	s.handler = otelhttp.NewHandler(s.routes(), "shopcart")
	return s
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog())

	r.GET("/ping", s.ping)

	r.POST("/users", s.register)
	r.POST("/users/login", s.login)
	r.GET("/items", s.listItems)

	authed := r.Group("/")
	authed.Use(s.bearerAuth())
	{
		authed.POST("/items", s.createItem)
		authed.POST("/carts", s.addToCart)
		authed.GET("/carts", s.listCarts)
		authed.POST("/orders", s.createOrder)
		authed.GET("/orders", s.listOrders)
	}

	return r
}

// Handler returns the instrumented router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")
		sctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting REST server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}

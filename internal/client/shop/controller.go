package shop

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/shopcart/internal/client/client"
	"github.com/dmitrijs2005/shopcart/internal/client/models"
	"github.com/dmitrijs2005/shopcart/internal/client/notice"
	"github.com/dmitrijs2005/shopcart/internal/logging"
)

const DefaultDateLayout = "1/2/2006"

const (
	msgFetchItemsFailed = "Failed to fetch items"
	msgAdded            = "Item added to cart successfully!"
	msgAddFailed        = "Failed to add item to cart"
	msgCartEmpty        = "Your cart is empty"
	msgCartHeader       = "Your Cart Items:\n\n"
	msgFetchCartFailed  = "Failed to fetch cart"
	msgNoOrders         = "You have no order history"
	msgOrdersHeader     = "Your Order History:\n\n"
	msgFetchOrdersFail  = "Failed to fetch order history"
	msgCheckoutEmpty    = "Your cart is empty. Add some items before checkout."
	msgCheckoutOK       = "Order successful! Thank you for your purchase."
	msgCheckoutFailed   = "Checkout failed. Please try again."
)

type Option func(*Controller)

// WithDateFormat sets how order dates are rendered. A nil location keeps
// the current one.
func WithDateFormat(layout string, loc *time.Location) Option {
	return func(c *Controller) {
		if layout != "" {
			c.dateLayout = layout
		}
		if loc != nil {
			c.location = loc
		}
	}
}

type Controller struct {
	mu    sync.Mutex
	items []models.Item
	cart  *models.Cart

	client     client.Client
	sink       notice.Sink
	log        logging.Logger
	dateLayout string
	location   *time.Location
}

func NewController(c client.Client, sink notice.Sink, log logging.Logger, opts ...Option) *Controller {
	if sink == nil {
		sink = notice.Discard
	}
	if log == nil {
		log = logging.Discard()
	}
	ctl := &Controller{
		client:     c,
		sink:       sink,
		log:        log.With("module", "shop"),
		dateLayout: DefaultDateLayout,
		location:   time.Local,
	}
	for _, o := range opts {
		o(ctl)
	}
	return ctl
}

// SessionStarted loads the catalog for the new session.
func (c *Controller) SessionStarted(ctx context.Context) {
	_ = c.FetchItems(ctx)
}

// SessionEnded forgets everything tied to the previous user.
func (c *Controller) SessionEnded() {
	c.Reset()
}

// FetchItems replaces the catalog with the server's list. On failure the
// current list is kept.
func (c *Controller) FetchItems(ctx context.Context) error {
	items, err := c.client.ListItems(ctx)
	if err != nil {
		c.log.Error(ctx, "fetch items failed", "error", err)
		c.notify(notice.Error, msgFetchItemsFailed)
		return err
	}
	if items == nil {
		items = []models.Item{}
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.log.Debug(ctx, "items fetched", "count", len(items))
	return nil
}

// AddToCart adds one unit of itemID to the user's active cart.
func (c *Controller) AddToCart(ctx context.Context, itemID uint64) error {
	cart, err := c.client.AddToCart(ctx, itemID, 1)
	if err != nil {
		c.log.Error(ctx, "add to cart failed", "item_id", itemID, "error", err)
		c.notify(notice.Error, msgAddFailed)
		return err
	}
	c.mu.Lock()
	c.cart = cart
	c.mu.Unlock()
	c.notify(notice.Success, msgAdded)
	return nil
}

// ShowCart fetches the carts and reports the contents of the active one.
func (c *Controller) ShowCart(ctx context.Context) error {
	carts, err := c.client.ListCarts(ctx)
	if err != nil {
		c.log.Error(ctx, "fetch cart failed", "error", err)
		c.notify(notice.Error, msgFetchCartFailed)
		return err
	}

	active := models.ActiveCart(carts)
	if active == nil || len(active.CartItems) == 0 {
		c.notify(notice.Info, msgCartEmpty)
		return nil
	}
	c.notify(notice.Info, FormatCart(active))
	return nil
}

// ShowOrderHistory reports the user's past orders.
func (c *Controller) ShowOrderHistory(ctx context.Context) error {
	orders, err := c.client.ListOrders(ctx)
	if err != nil {
		c.log.Error(ctx, "fetch orders failed", "error", err)
		c.notify(notice.Error, msgFetchOrdersFail)
		return err
	}
	if len(orders) == 0 {
		c.notify(notice.Info, msgNoOrders)
		return nil
	}
	c.notify(notice.Info, FormatOrders(orders, c.dateLayout, c.location))
	return nil
}

// Checkout turns the active cart into an order. Only a 201 Created counts
// as success; any other 2xx is silently ignored.
func (c *Controller) Checkout(ctx context.Context) error {
	carts, err := c.client.ListCarts(ctx)
	if err != nil {
		c.log.Error(ctx, "checkout: fetch cart failed", "error", err)
		c.notify(notice.Error, msgCheckoutFailed)
		return err
	}

	active := models.ActiveCart(carts)
	if active == nil || len(active.CartItems) == 0 {
		c.notify(notice.Info, msgCheckoutEmpty)
		return nil
	}

	order, status, err := c.client.CreateOrder(ctx, active.ID)
	if err != nil {
		c.log.Error(ctx, "checkout failed", "cart_id", active.ID, "error", err)
		c.notify(notice.Error, msgCheckoutFailed)
		return err
	}
	if status != http.StatusCreated {
		c.log.Warn(ctx, "checkout returned unexpected status", "status", status)
		return nil
	}

	c.mu.Lock()
	c.cart = nil
	c.mu.Unlock()
	if order != nil {
		c.log.Info(ctx, "order created", "order_id", order.ID)
	}
	c.notify(notice.Success, msgCheckoutOK)
	return nil
}

// Items returns a copy of the catalog.
func (c *Controller) Items() []models.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		return nil
	}
	out := make([]models.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Cart returns a copy of the last cart returned by AddToCart, or nil.
func (c *Controller) Cart() *models.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cart == nil {
		return nil
	}
	cp := *c.cart
	cp.CartItems = append([]models.CartItem(nil), c.cart.CartItems...)
	return &cp
}

func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.cart = nil
}

func (c *Controller) notify(kind notice.Kind, msg string) {
	c.sink.Notify(notice.Notice{Kind: kind, Message: msg})
}

// FormatPrice renders p with the fewest digits that round-trip (1.5, 999.99).
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// FormatCart renders one line per cart item, each newline-terminated.
func FormatCart(cart *models.Cart) string {
	var b strings.Builder
	b.WriteString(msgCartHeader)
	for _, ci := range cart.CartItems {
		fmt.Fprintf(&b, "• %s - Quantity: %d - $%s\n", ci.Item.Name, ci.Quantity, FormatPrice(ci.Item.Price))
	}
	return b.String()
}

func FormatOrders(orders []models.Order, layout string, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(msgOrdersHeader)
	for _, o := range orders {
		fmt.Fprintf(&b, "Order ID: %d - Total: $%.2f - Date: %s\n", o.ID, o.TotalPrice, o.CreatedAt.In(loc).Format(layout))
	}
	return b.String()
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/shopcart/internal/client/models"
	"github.com/dmitrijs2005/shopcart/internal/common"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	headers map[string]string
}

// NewHTTPClient returns a client for the backend at baseURL
// (e.g. http://localhost:8080). No request timeout is set; callers cancel
// through the context.
func NewHTTPClient(baseURL string) *HTTPClient {
	return NewHTTPClientWith(baseURL, &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

// NewHTTPClientWith is NewHTTPClient with a caller-supplied http.Client.
func NewHTTPClientWith(baseURL string, hc *http.Client) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		headers: map[string]string{"Content-Type": "application/json"},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[common.AuthorizationHeaderName] = common.BearerPrefix + token
}

func (c *HTTPClient) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.headers, common.AuthorizationHeaderName)
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.TrimPrefix(c.headers[common.AuthorizationHeaderName], common.BearerPrefix)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	req := models.CredentialsRequest{Username: username, Password: password}
	_, err := c.do(ctx, http.MethodPost, "/users", req, nil)
	return err
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	req := models.CredentialsRequest{Username: username, Password: password}
	var res models.LoginResult
	if _, err := c.do(ctx, http.MethodPost, "/users/login", req, &res); err != nil {
		return nil, err
	}
	if res.Token == "" || res.User == nil || res.User.Username == "" {
		return nil, errors.New("incomplete login response")
	}
	return &res, nil
}

func (c *HTTPClient) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if _, err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) AddToCart(ctx context.Context, itemID uint64, quantity int) (*models.Cart, error) {
	req := models.AddToCartRequest{ItemID: itemID, Quantity: quantity}
	var cart models.Cart
	if _, err := c.do(ctx, http.MethodPost, "/carts", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *HTTPClient) ListCarts(ctx context.Context) ([]models.Cart, error) {
	var carts []models.Cart
	if _, err := c.do(ctx, http.MethodGet, "/carts", nil, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

func (c *HTTPClient) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if _, err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, cartID uint64) (*models.Order, int, error) {
	req := models.CreateOrderRequest{CartID: cartID}
	var order models.Order
	status, err := c.do(ctx, http.MethodPost, "/orders", req, &order)
	if err != nil {
		return nil, status, err
	}
	return &order, status, nil
}

// do sends one JSON request and decodes a 2xx body into out (if non-nil and
// the body is not empty). It returns the response status when one was
// received.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	c.mu.RLock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	c.mu.RUnlock()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if err := mapStatus(resp.StatusCode, data); err != nil {
		return resp.StatusCode, err
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}

type errorBody struct {
	Error string `json:"error"`
}

// mapStatus turns a non-2xx response into a client error.
func mapStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	if status == http.StatusUnauthorized {
		if eb.Error != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, eb.Error)
		}
		return ErrUnauthorized
	}
	return &APIError{Status: status, Message: eb.Error}
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

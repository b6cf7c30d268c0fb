// Package ordersapi talks to the console's REST backend for customers,
// products and order creation.
package ordersapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordercraft/ordercraft/internal/domain"
)

// ErrNotConfigured is returned by every call when no base URL is set.
var ErrNotConfigured = errors.New("orders API base_url is not configured")

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client implements domain.CustomerSource, domain.ProductSource and
// domain.OrderCreator over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

var (
	_ domain.CustomerSource = (*Client)(nil)
	_ domain.ProductSource  = (*Client)(nil)
	_ domain.OrderCreator   = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a request timeout. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for baseURL. token is sent as a bearer token when set.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListCustomers fetches up to pageSize customers.
func (c *Client) ListCustomers(ctx context.Context, pageSize int) ([]domain.Customer, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageSize))

	var customers []domain.Customer
	if err := c.getList(ctx, "/customers", q, &customers); err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return customers, nil
}

// ListProducts fetches up to pageSize products with the given status.
func (c *Client) ListProducts(ctx context.Context, pageSize int, status string) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageSize))
	if status != "" {
		q.Set("status", status)
	}

	var products []domain.Product
	if err := c.getList(ctx, "/products", q, &products); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// CreateOrder posts the order. Non-2xx answers come back as *domain.BackendError;
// any 2xx is treated as created.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderConfirmation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("encoding order: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/orders", nil, bytes.NewReader(body))
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("creating order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return domain.OrderConfirmation{}, fmt.Errorf("creating order: %w", decodeError(resp))
	}

	// The order exists once the backend answers 2xx, so an unreadable body
	// degrades the confirmation instead of failing the submission.
	var wire confirmationWire
	if err := decodeEnvelope(resp.Body, &wire); err != nil {
		c.logger.Warn("order created but confirmation could not be decoded",
			zap.Int("status", resp.StatusCode), zap.Error(err))
		return domain.OrderConfirmation{}, nil
	}
	return wire.confirmation(c.logger), nil
}

// confirmationWire keeps created_at as text so odd timestamp formats do not
// reject an otherwise valid confirmation.
type confirmationWire struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   string          `json:"created_at"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func (w confirmationWire) confirmation(logger *zap.Logger) domain.OrderConfirmation {
	conf := domain.OrderConfirmation{
		ID:          w.ID,
		OrderNumber: w.OrderNumber,
		Status:      w.Status,
		Total:       w.Total,
	}
	if w.CreatedAt == "" {
		return conf
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, w.CreatedAt); err == nil {
			conf.CreatedAt = t
			return conf
		}
	}
	logger.Warn("unrecognised created_at in order confirmation",
		zap.String("order_id", w.ID), zap.String("created_at", w.CreatedAt))
	return conf
}

func (c *Client) getList(ctx context.Context, path string, q url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeError(resp)
	}
	return decodeEnvelope(resp.Body, out)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body io.Reader) (*http.Response, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("orders API request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, err
	}
	c.logger.Debug("orders API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

// decodeEnvelope accepts either a bare JSON value or {"data": value}.
func decodeEnvelope(r io.Reader, out any) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 {
			trimmed = env.Data
		}
	}
	return json.Unmarshal(trimmed, out)
}

// decodeError reads {"message": "..."} or {"error": "..."} from a failed response.
func decodeError(resp *http.Response) error {
	be := &domain.BackendError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return be
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return be
	}
	be.Message = body.Message
	if be.Message == "" {
		be.Message = body.Error
	}
	return be
}

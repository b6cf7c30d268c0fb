package ordersapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ordercraft/ordercraft/internal/adapters/outbound/ordersapi"
	"github.com/ordercraft/ordercraft/internal/domain"
)

func TestListCustomers_BareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"c1","name":"Ada","email":"ada@example.com","phone":"1"}]`))
	}))
	defer srv.Close()

	c := ordersapi.New(srv.URL+"/", "secret")
	customers, err := c.ListCustomers(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Ada", customers[0].Name)
}

func TestListProducts_DataEnvelopeAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"id":"p1","name":"Mug","sku":"MUG","price":"12.99","stock":3},{"id":"p2","name":"Tea","sku":"TEA","price":4.5}]}`))
	}))
	defer srv.Close()

	c := ordersapi.New(srv.URL, "")
	products, err := c.ListProducts(context.Background(), 100, domain.ProductStatusActive)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "12.99", products[0].Price.String())
	require.NotNil(t, products[0].Stock)
	assert.Equal(t, 3, *products[0].Stock)
	assert.Equal(t, "4.5", products[1].Price.String())
}

func TestListCustomers_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := ordersapi.New(srv.URL, "").ListCustomers(context.Background(), 10)
	require.Error(t, err)
	var be *domain.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusServiceUnavailable, be.StatusCode)
	assert.Contains(t, err.Error(), "listing customers")
}

func TestCreateOrder_PostsPayload(t *testing.T) {
	var got domain.OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"o-1","order_number":"ORD-7","status":"pending","total":"32.00","created_at":"2026-10-17T10:00:00Z"}}`))
	}))
	defer srv.Close()

	req := domain.OrderRequest{
		Reference:  "ref-1",
		CustomerID: "c1",
		Items: []domain.OrderItem{
			{ProductID: "p1", UnitPrice: decimal.RequireFromString("12.00"), Quantity: 2},
		},
		ShippingCost: decimal.NewFromInt(8),
		Total:        decimal.NewFromInt(32),
	}
	conf, err := ordersapi.New(srv.URL, "").CreateOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "o-1", conf.ID)
	assert.Equal(t, "ORD-7", conf.OrderNumber)
	assert.Equal(t, "32", conf.Total.String())
	assert.Equal(t, "ref-1", got.Reference)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "12", got.Items[0].UnitPrice.String())
}

func TestCreateOrder_EmptyCreatedBodyIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	c := ordersapi.New(srv.URL, "", ordersapi.WithLogger(zap.New(core)))

	conf, err := c.CreateOrder(context.Background(), domain.OrderRequest{Reference: "ref-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmation{}, conf)
	assert.Equal(t, 1, logs.FilterMessage("order created but confirmation could not be decoded").Len())
}

func TestCreateOrder_LooseTimestamp(t *testing.T) {
	cases := map[string]time.Time{
		"2024-05-01 10:00:00":       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		"2024-05-01T10:00:00":       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		"2024-05-01T10:00:00.5Z":    time.Date(2024, 5, 1, 10, 0, 0, 500000000, time.UTC),
		"2024-05-01 10:00:00+00:00": time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"data":{"id":"o1","created_at":"` + raw + `"}}`))
			}))
			defer srv.Close()

			conf, err := ordersapi.New(srv.URL, "").CreateOrder(context.Background(), domain.OrderRequest{})
			require.NoError(t, err)
			assert.Equal(t, "o1", conf.ID)
			assert.True(t, want.Equal(conf.CreatedAt), "got %s", conf.CreatedAt)
		})
	}
}

func TestCreateOrder_UnknownTimestampKeepsConfirmation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"o1","order_number":"ORD-9","created_at":"yesterday"}`))
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	c := ordersapi.New(srv.URL, "", ordersapi.WithLogger(zap.New(core)))

	conf, err := c.CreateOrder(context.Background(), domain.OrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ORD-9", conf.OrderNumber)
	assert.True(t, conf.CreatedAt.IsZero())
	assert.Equal(t, 1, logs.FilterMessage("unrecognised created_at in order confirmation").Len())
}

func TestCreateOrder_BackendMessage(t *testing.T) {
	cases := map[string]string{
		`{"message":"insufficient stock"}`: "insufficient stock",
		`{"error":"customer is blocked"}`:  "customer is blocked",
	}
	for body, want := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(body))
		}))

		_, err := ordersapi.New(srv.URL, "").CreateOrder(context.Background(), domain.OrderRequest{})
		srv.Close()

		require.Error(t, err)
		sub := domain.NewSubmissionError(err)
		assert.Equal(t, want, sub.Message)
	}
}

func TestCreateOrder_UnparseableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	_, err := ordersapi.New(srv.URL, "").CreateOrder(context.Background(), domain.OrderRequest{})
	require.Error(t, err)
	assert.Equal(t, domain.GenericSubmissionMessage, domain.NewSubmissionError(err).Message)
}

func TestClient_NotConfigured(t *testing.T) {
	c := ordersapi.New("", "")
	_, err := c.ListCustomers(context.Background(), 10)
	assert.ErrorIs(t, err, ordersapi.ErrNotConfigured)
	_, err = c.CreateOrder(context.Background(), domain.OrderRequest{})
	assert.ErrorIs(t, err, ordersapi.ErrNotConfigured)
}

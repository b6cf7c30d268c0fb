package staticcatalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordercraft/ordercraft/internal/adapters/outbound/staticcatalog"
	"github.com/ordercraft/ordercraft/internal/domain"
)

const sample = `
customers:
  - id: c1
    name: Ada Lovelace
    email: ada@example.com
    phone: "555-0100"
    address:
      city: London
  - id: c2
    name: Grace Hopper
    email: grace@example.com
products:
  - id: p1
    name: Mug
    sku: MUG-1
    price: "12.50"
    stock: 4
  - id: p2
    name: Retired Mug
    sku: MUG-0
    price: "9.99"
    status: archived
  - id: p3
    variant_id: v3
    name: Tea
    sku: TEA-1
    price: "4"
`

func TestParse_CustomersAndProducts(t *testing.T) {
	c, err := staticcatalog.Parse([]byte(sample))
	require.NoError(t, err)

	customers, err := c.ListCustomers(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Ada Lovelace", customers[0].Name)
	require.NotNil(t, customers[0].Address)
	assert.Equal(t, "London", customers[0].Address.City)

	products, err := c.ListProducts(context.Background(), 100, domain.ProductStatusActive)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "12.5", products[0].Price.String())
	require.NotNil(t, products[1].VariantID)
	assert.Equal(t, "v3", *products[1].VariantID)
}

func TestListProducts_NoStatusFilter(t *testing.T) {
	c, err := staticcatalog.Parse([]byte(sample))
	require.NoError(t, err)

	products, err := c.ListProducts(context.Background(), 100, "")
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestList_PageSize(t *testing.T) {
	c, err := staticcatalog.Parse([]byte(sample))
	require.NoError(t, err)

	customers, err := c.ListCustomers(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, customers, 1)

	products, err := c.ListProducts(context.Background(), 1, domain.ProductStatusActive)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestParse_InvalidPrice(t *testing.T) {
	_, err := staticcatalog.Parse([]byte("products:\n  - id: p1\n    price: cheap\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid price")
}

func TestParse_NegativePrice(t *testing.T) {
	_, err := staticcatalog.Parse([]byte("products:\n  - id: p1\n    price: \"-0.01\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid price")

	_, err = staticcatalog.Parse([]byte("products:\n  - id: p1\n    price: \"0\"\n"))
	assert.NoError(t, err)
}

func TestParse_MissingID(t *testing.T) {
	_, err := staticcatalog.Parse([]byte("customers:\n  - name: Nobody\n"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	c, err := staticcatalog.Load(path)
	require.NoError(t, err)
	customers, err := c.ListCustomers(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := staticcatalog.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestList_CancelledContext(t *testing.T) {
	c, err := staticcatalog.Parse([]byte(sample))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.ListCustomers(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

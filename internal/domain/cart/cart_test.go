package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordercraft/ordercraft/internal/domain"
	"github.com/ordercraft/ordercraft/internal/domain/cart"
)

func product(id, price string) domain.Product {
	return domain.Product{
		ID:    id,
		Name:  "Product " + id,
		SKU:   "SKU-" + id,
		Price: decimal.RequireFromString(price),
	}
}

func TestAddLine_MergesDuplicates(t *testing.T) {
	c := cart.New()
	p := product("1", "100")

	require.NoError(t, c.AddLine(p, 1))
	require.NoError(t, c.AddLine(p, 1))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(200).Equal(c.Subtotal()))
}

func TestAddLine_MergeInvariantSumsDeltas(t *testing.T) {
	c := cart.New()
	p := product("7", "3.30")
	deltas := []int{1, 4, 2, 9, 1}

	sum := 0
	for _, d := range deltas {
		require.NoError(t, c.AddLine(p, d))
		sum += d
	}

	require.Equal(t, 1, c.Len())
	line, ok := c.Line("7")
	require.True(t, ok)
	assert.Equal(t, sum, line.Quantity)
}

func TestAddLine_AppendsInOrder(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddLine(product("b", "1"), 1))
	require.NoError(t, c.AddLine(product("a", "1"), 1))
	require.NoError(t, c.AddLine(product("b", "1"), 1))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "b", lines[0].ProductID)
	assert.Equal(t, "a", lines[1].ProductID)
}

func TestAddLine_RejectsNonPositiveDelta(t *testing.T) {
	c := cart.New()
	assert.ErrorIs(t, c.AddLine(product("1", "10"), 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddLine(product("1", "10"), -3), domain.ErrInvalidQuantity)
	assert.Equal(t, 0, c.Len())
}

func TestAddLine_SnapshotsPrice(t *testing.T) {
	c := cart.New()
	p := product("1", "10.00")
	p.ImageURL = "https://cdn.example.com/1.png"
	require.NoError(t, c.AddLine(p, 1))

	p.Price = decimal.RequireFromString("99.00")
	require.NoError(t, c.AddLine(p, 1))

	line, ok := c.Line("1")
	require.True(t, ok)
	assert.Equal(t, "10", line.UnitPrice.String())
	require.NotNil(t, line.ImageURL)
	assert.Equal(t, "https://cdn.example.com/1.png", *line.ImageURL)
	assert.Nil(t, line.VariantID)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	c := cart.New()
	p := product("1", "100")
	require.NoError(t, c.AddLine(p, 1))
	require.NoError(t, c.AddLine(p, 1))

	c.SetQuantity("1", 0)

	assert.Empty(t, c.Lines())
	assert.True(t, c.Subtotal().IsZero())
}

func TestSetQuantity_NegativeRemovesLine(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddLine(product("1", "5"), 3))
	c.SetQuantity("1", -1)
	assert.Equal(t, 0, c.Len())
}

func TestSetQuantity_SetsExactValue(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddLine(product("1", "2.50"), 3))

	c.SetQuantity("1", 8)

	line, _ := c.Line("1")
	assert.Equal(t, 8, line.Quantity)
	assert.Equal(t, "20", c.Subtotal().String())
}

func TestSetQuantity_UnknownIsNoop(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddLine(product("1", "1"), 1))
	c.SetQuantity("missing", 5)
	c.SetQuantity("missing", 0)
	assert.Equal(t, 1, c.Len())
}

func TestSetQuantity_NeverLeavesNonPositiveLines(t *testing.T) {
	c := cart.New()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, c.AddLine(product(id, "1"), 2))
	}
	ops := []struct {
		id  string
		qty int
	}{
		{"a", 5}, {"b", 0}, {"c", -2}, {"a", 1}, {"b", 3}, {"a", -10}, {"c", 0},
	}
	for _, op := range ops {
		c.SetQuantity(op.id, op.qty)
		for _, l := range c.Lines() {
			assert.GreaterOrEqual(t, l.Quantity, 1)
		}
	}
	assert.Equal(t, 0, c.Len())
}

func TestRemoveLine(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddLine(product("1", "1"), 1))
	require.NoError(t, c.AddLine(product("2", "1"), 1))

	c.RemoveLine("1")
	c.RemoveLine("missing")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "2", lines[0].ProductID)
}

func TestSubtotal_NoDriftAfterCycles(t *testing.T) {
	c := cart.New()
	p := product("1", "0.10")
	q := product("2", "0.20")

	for i := 0; i < 1000; i++ {
		require.NoError(t, c.AddLine(p, 1))
		require.NoError(t, c.AddLine(q, 1))
		c.RemoveLine("2")
	}

	assert.Equal(t, "100", c.Subtotal().String())
	assert.Equal(t, 1000, c.ItemCount())
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddLine(product("1", "1"), 1))

	lines := c.Lines()
	lines[0].Quantity = 42

	line, _ := c.Line("1")
	assert.Equal(t, 1, line.Quantity)
}

// Package cart holds the line items of an order draft.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/ordercraft/ordercraft/internal/domain"
)

// Cart is an ordered list of lines with at most one line per product.
// Every line has Quantity >= 1.
type Cart struct {
	lines []domain.CartLine
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddLine adds delta units of p. An existing line for p.ID is incremented;
// otherwise a new line is appended with name, SKU, price and image copied
// from p as they are now.
func (c *Cart) AddLine(p domain.Product, delta int) error {
	if delta < 1 {
		return domain.ErrInvalidQuantity
	}

	if idx := c.indexOf(p.ID); idx >= 0 {
		c.lines[idx].Quantity += delta
		return nil
	}

	line := domain.CartLine{
		ProductID: p.ID,
		VariantID: cloneString(p.VariantID),
		Name:      p.Name,
		SKU:       p.SKU,
		UnitPrice: p.Price,
		Quantity:  delta,
	}
	if p.ImageURL != "" {
		img := p.ImageURL
		line.ImageURL = &img
	}
	c.lines = append(c.lines, line)
	return nil
}

// SetQuantity sets the quantity of a line. A quantity below 1 removes the
// line. Unknown product ids are ignored.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.RemoveLine(productID)
		return
	}
	if idx := c.indexOf(productID); idx >= 0 {
		c.lines[idx].Quantity = quantity
	}
}

// RemoveLine drops the line for productID if present.
func (c *Cart) RemoveLine(productID string) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx:idx], c.lines[idx+1:]...)
}

// Subtotal returns the exact sum of unit price x quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	for i, l := range c.lines {
		l.VariantID = cloneString(l.VariantID)
		l.ImageURL = cloneString(l.ImageURL)
		out[i] = l
	}
	return out
}

// Line looks up the line for productID.
func (c *Cart) Line(productID string) (domain.CartLine, bool) {
	if idx := c.indexOf(productID); idx >= 0 {
		return c.lines[idx], true
	}
	return domain.CartLine{}, false
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int { return len(c.lines) }

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

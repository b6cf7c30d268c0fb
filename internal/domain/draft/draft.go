// Package draft aggregates the customer, cart and order-level adjustments of
// an order that has not been submitted yet.
package draft

import (
	"github.com/shopspring/decimal"

	"github.com/ordercraft/ordercraft/internal/domain"
	"github.com/ordercraft/ordercraft/internal/domain/cart"
)

// Draft is owned by a single wizard and mutated only through its methods.
type Draft struct {
	customer    *domain.Customer
	cart        *cart.Cart
	adjustments domain.Adjustments
}

// New returns an empty draft seeded with default adjustments.
func New(defaults domain.Adjustments) *Draft {
	return &Draft{
		cart:        cart.New(),
		adjustments: defaults,
	}
}

// SetCustomer replaces the selected customer. Cart and adjustments are untouched.
func (d *Draft) SetCustomer(c domain.Customer) {
	d.customer = &c
}

// Customer returns the selected customer, if any.
func (d *Draft) Customer() (domain.Customer, bool) {
	if d.customer == nil {
		return domain.Customer{}, false
	}
	return *d.customer, true
}

// HasCustomer reports whether a customer is selected.
func (d *Draft) HasCustomer() bool { return d.customer != nil }

// AddLine adds delta units of p to the cart.
func (d *Draft) AddLine(p domain.Product, delta int) error { return d.cart.AddLine(p, delta) }

// SetQuantity sets a line's quantity, removing it at zero or less.
func (d *Draft) SetQuantity(productID string, quantity int) { d.cart.SetQuantity(productID, quantity) }

// RemoveLine drops the line for productID if present.
func (d *Draft) RemoveLine(productID string) { d.cart.RemoveLine(productID) }

// Lines returns the cart lines in insertion order.
func (d *Draft) Lines() []domain.CartLine { return d.cart.Lines() }

// SetAdjustment updates one order-level field. Amounts go through
// domain.ParseAmount, so malformed input becomes zero instead of an error.
func (d *Draft) SetAdjustment(field domain.AdjustmentField, value string) error {
	switch field {
	case domain.FieldPaymentMethod:
		d.adjustments.PaymentMethod = value
	case domain.FieldPaymentStatus:
		d.adjustments.PaymentStatus = value
	case domain.FieldShippingCost:
		d.adjustments.ShippingCost = domain.ParseAmount(value)
	case domain.FieldDiscount:
		d.adjustments.Discount = domain.ParseAmount(value)
	case domain.FieldNotes:
		d.adjustments.Notes = value
	default:
		return domain.ErrUnknownField
	}
	return nil
}

// Adjustments returns the current order-level fields.
func (d *Draft) Adjustments() domain.Adjustments { return d.adjustments }

// Subtotal is the exact sum of the cart lines.
func (d *Draft) Subtotal() decimal.Decimal { return d.cart.Subtotal() }

// Total is subtotal + shipping - discount. It is not clamped at zero.
func (d *Draft) Total() decimal.Decimal {
	return d.Subtotal().Add(d.adjustments.ShippingCost).Sub(d.adjustments.Discount)
}

// Totals derives the money summary shown on the review step.
func (d *Draft) Totals() domain.Totals {
	total := d.Total()
	return domain.Totals{
		ItemCount:    d.cart.ItemCount(),
		Subtotal:     d.Subtotal(),
		ShippingCost: d.adjustments.ShippingCost,
		Discount:     d.adjustments.Discount,
		Total:        total,
		Negative:     total.IsNegative(),
	}
}

// Validate reports the first condition blocking submission, customer first.
func (d *Draft) Validate() error {
	if d.customer == nil {
		return domain.ErrMissingCustomer
	}
	if d.cart.Len() == 0 {
		return domain.ErrEmptyCart
	}
	return nil
}

// SubmissionPayload builds the order request for the orders API.
func (d *Draft) SubmissionPayload(reference string) (domain.OrderRequest, error) {
	if err := d.Validate(); err != nil {
		return domain.OrderRequest{}, err
	}

	lines := d.cart.Lines()
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Name:      l.Name,
			SKU:       l.SKU,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			ImageURL:  l.ImageURL,
		})
	}

	return domain.OrderRequest{
		Reference:     reference,
		CustomerID:    d.customer.ID,
		CustomerName:  d.customer.Name,
		CustomerEmail: d.customer.Email,
		CustomerPhone: d.customer.Phone,
		Items:         items,
		PaymentMethod: d.adjustments.PaymentMethod,
		PaymentStatus: d.adjustments.PaymentStatus,
		ShippingCost:  d.adjustments.ShippingCost,
		Discount:      d.adjustments.Discount,
		Notes:         d.adjustments.Notes,
		Subtotal:      d.Subtotal(),
		Total:         d.Total(),
	}, nil
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is a customer's postal address as returned by the customers API.
type Address struct {
	Line1      string `json:"line1,omitempty"      yaml:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"      yaml:"line2,omitempty"`
	City       string `json:"city,omitempty"       yaml:"city,omitempty"`
	State      string `json:"state,omitempty"      yaml:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"    yaml:"country,omitempty"`
}

// Customer is a read-only reference fetched once per wizard session.
type Customer struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address *Address `json:"address,omitempty"`
}

// Product is a read-only catalog entry. Stock is display-only.
type Product struct {
	ID        string          `json:"id"`
	VariantID *string         `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Stock     *int            `json:"stock,omitempty"`
	Status    string          `json:"status,omitempty"`
}

// ProductStatusActive is the status filter used when loading the catalog.
const ProductStatusActive = "active"

// CartLine is one product entry in a draft. UnitPrice is snapshotted when
// the line is first added and never follows later catalog changes.
type CartLine struct {
	ProductID string          `json:"product_id"`
	VariantID *string         `json:"variant_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  *string         `json:"image_url"`
}

// LineTotal returns UnitPrice x Quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Payment methods offered by the console's create-order form.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCOD          = "cod"
)

// ValidPaymentMethods enumerates the payment methods the console offers.
var ValidPaymentMethods = []string{
	PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCOD,
}

// Payment statuses offered by the console's create-order form.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// ValidPaymentStatuses enumerates the payment statuses the console offers.
var ValidPaymentStatuses = []string{PaymentStatusPending, PaymentStatusPaid}

// Adjustments holds the order-level fields edited on the review step.
type Adjustments struct {
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	Discount      decimal.Decimal `json:"discount"`
	Notes         string          `json:"notes"`
}

// Totals is the derived money summary of a draft. Total may be negative
// when the discount exceeds subtotal plus shipping; Negative flags that.
type Totals struct {
	ItemCount    int             `json:"item_count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	Negative     bool            `json:"negative"`
}

// OrderItem is one line of the order request sent to the orders API.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	VariantID *string         `json:"variant_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  *string         `json:"image_url,omitempty"`
}

// OrderRequest is the externally-shaped payload handed to the orders API.
// Reference is stable for one wizard session so a retried submission can be
// deduplicated by the backend.
type OrderRequest struct {
	Reference     string          `json:"reference"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	Items         []OrderItem     `json:"items"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	Discount      decimal.Decimal `json:"discount"`
	Notes         string          `json:"notes"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
}

// OrderConfirmation is what the orders API returns for a created order.
type OrderConfirmation struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number,omitempty"`
	Status      string          `json:"status,omitempty"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// JournalEntry records one successfully submitted order on the local machine.
type JournalEntry struct {
	Timestamp    string          `json:"timestamp"`
	Reference    string          `json:"reference"`
	OrderID      string          `json:"order_id"`
	OrderNumber  string          `json:"order_number,omitempty"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Lines        int             `json:"lines"`
	Total        decimal.Decimal `json:"total"`
}

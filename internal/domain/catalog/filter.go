// Package catalog implements the free-text search used by the customer and
// product pickers.
package catalog

import (
	"strings"

	"github.com/ordercraft/ordercraft/internal/domain"
)

// Filter returns the items for which at least one extracted field contains
// query, ignoring case. An empty query returns items unchanged. Matching
// items keep their input order.
func Filter[T any](items []T, query string, fields ...func(T) string) []T {
	if query == "" {
		return items
	}
	needle := strings.ToLower(query)

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// CustomerFields are the fields matched by the customer search box.
var CustomerFields = []func(domain.Customer) string{
	func(c domain.Customer) string { return c.Name },
	func(c domain.Customer) string { return c.Email },
	func(c domain.Customer) string { return c.Phone },
}

// ProductFields are the fields matched by the product search box.
var ProductFields = []func(domain.Product) string{
	func(p domain.Product) string { return p.Name },
	func(p domain.Product) string { return p.SKU },
}

// SearchCustomers filters customers by name, email or phone.
func SearchCustomers(customers []domain.Customer, query string) []domain.Customer {
	return Filter(customers, query, CustomerFields...)
}

// SearchProducts filters products by name or SKU.
func SearchProducts(products []domain.Product, query string) []domain.Product {
	return Filter(products, query, ProductFields...)
}

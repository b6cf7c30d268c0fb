// Package staticcatalog serves customers and products from a YAML file.
// It backs offline demos and tests where no orders API is reachable.
package staticcatalog

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ordercraft/ordercraft/internal/domain"
)

type fileProduct struct {
	ID        string `yaml:"id"`
	VariantID string `yaml:"variant_id"`
	Name      string `yaml:"name"`
	SKU       string `yaml:"sku"`
	Price     string `yaml:"price"`
	ImageURL  string `yaml:"image_url"`
	Stock     *int   `yaml:"stock"`
	Status    string `yaml:"status"`
}

type fileCustomer struct {
	ID      string          `yaml:"id"`
	Name    string          `yaml:"name"`
	Email   string          `yaml:"email"`
	Phone   string          `yaml:"phone"`
	Address *domain.Address `yaml:"address"`
}

type file struct {
	Customers []fileCustomer `yaml:"customers"`
	Products  []fileProduct  `yaml:"products"`
}

// Catalog implements domain.CustomerSource and domain.ProductSource.
type Catalog struct {
	customers []domain.Customer
	products  []domain.Product
}

var (
	_ domain.CustomerSource = (*Catalog)(nil)
	_ domain.ProductSource  = (*Catalog)(nil)
)

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML. Prices are strings so they stay exact.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	c := &Catalog{}
	for _, fc := range f.Customers {
		if fc.ID == "" {
			return nil, fmt.Errorf("customer %q has no id", fc.Name)
		}
		c.customers = append(c.customers, domain.Customer{
			ID: fc.ID, Name: fc.Name, Email: fc.Email, Phone: fc.Phone, Address: fc.Address,
		})
	}
	for _, fp := range f.Products {
		if fp.ID == "" {
			return nil, fmt.Errorf("product %q has no id", fp.Name)
		}
		price, err := decimal.NewFromString(fp.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("product %s: invalid price %q", fp.ID, fp.Price)
		}
		p := domain.Product{
			ID: fp.ID, Name: fp.Name, SKU: fp.SKU, Price: price,
			ImageURL: fp.ImageURL, Stock: fp.Stock, Status: fp.Status,
		}
		if p.Status == "" {
			p.Status = domain.ProductStatusActive
		}
		if fp.VariantID != "" {
			v := fp.VariantID
			p.VariantID = &v
		}
		c.products = append(c.products, p)
	}
	return c, nil
}

func (c *Catalog) ListCustomers(ctx context.Context, pageSize int) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := c.customers
	if pageSize > 0 && len(out) > pageSize {
		out = out[:pageSize]
	}
	return append([]domain.Customer(nil), out...), nil
}

func (c *Catalog) ListProducts(ctx context.Context, pageSize int, status string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []domain.Product
	for _, p := range c.products {
		if status != "" && p.Status != status {
			continue
		}
		if pageSize > 0 && len(out) == pageSize {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

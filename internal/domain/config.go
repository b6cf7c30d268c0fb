package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default catalog page sizes used when loading customers and products.
const (
	DefaultCustomerPageSize = 100
	DefaultProductPageSize  = 100
	maxPageSize             = 1000
)

// ValidLogLevels enumerates accepted log.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ConsoleConfig holds configuration loaded from .ordercraft.yaml.
type ConsoleConfig struct {
	API      APIConfig      `yaml:"api"      json:"api"`
	Catalog  CatalogConfig  `yaml:"catalog"  json:"catalog"`
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`
	Currency string         `yaml:"currency" json:"currency,omitempty"`
	Log      LogConfig      `yaml:"log"      json:"log"`
	Journal  JournalConfig  `yaml:"journal"  json:"journal"`
	HTTP     HTTPConfig     `yaml:"http"     json:"http"`
}

// APIConfig points at the orders REST backend.
// A zero Timeout means the client never gives up on its own.
type APIConfig struct {
	BaseURL  string        `yaml:"base_url"  json:"base_url,omitempty"`
	TokenEnv string        `yaml:"token_env" json:"token_env,omitempty"`
	Timeout  time.Duration `yaml:"timeout"   json:"timeout,omitempty"`
}

// CatalogConfig controls how customers and products are loaded.
// File, when set, replaces the API with a static YAML catalog.
type CatalogConfig struct {
	CustomerPageSize int    `yaml:"customer_page_size" json:"customer_page_size"`
	ProductPageSize  int    `yaml:"product_page_size"  json:"product_page_size"`
	File             string `yaml:"file"               json:"file,omitempty"`
}

// DefaultsConfig seeds the adjustments of every new draft.
type DefaultsConfig struct {
	PaymentMethod string `yaml:"payment_method" json:"payment_method"`
	PaymentStatus string `yaml:"payment_status" json:"payment_status"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

type JournalConfig struct {
	Path string `yaml:"path" json:"path,omitempty"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"            json:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() ConsoleConfig {
	return ConsoleConfig{
		API: APIConfig{TokenEnv: "ORDERCRAFT_API_TOKEN"},
		Catalog: CatalogConfig{
			CustomerPageSize: DefaultCustomerPageSize,
			ProductPageSize:  DefaultProductPageSize,
		},
		Defaults: DefaultsConfig{
			PaymentMethod: PaymentMethodCash,
			PaymentStatus: PaymentStatusPending,
		},
		Log:     LogConfig{Level: "info"},
		Journal: JournalConfig{Path: ".ordercraft/journal/orders.json"},
		HTTP:    HTTPConfig{Addr: ":8080"},
	}
}

// DefaultAdjustments returns the adjustments a new draft starts with.
func (c ConsoleConfig) DefaultAdjustments() Adjustments {
	return Adjustments{
		PaymentMethod: c.Defaults.PaymentMethod,
		PaymentStatus: c.Defaults.PaymentStatus,
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ConsoleConfig) Validate() error {
	// 1. api.base_url must be an absolute http(s) URL when set
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("api.base_url %q must be an absolute http(s) URL", c.API.BaseURL)
		}
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative (got %s)", c.API.Timeout)
	}

	// 2. page sizes
	if c.Catalog.CustomerPageSize <= 0 || c.Catalog.CustomerPageSize > maxPageSize {
		return fmt.Errorf("catalog.customer_page_size must be between 1 and %d (got %d)", maxPageSize, c.Catalog.CustomerPageSize)
	}
	if c.Catalog.ProductPageSize <= 0 || c.Catalog.ProductPageSize > maxPageSize {
		return fmt.Errorf("catalog.product_page_size must be between 1 and %d (got %d)", maxPageSize, c.Catalog.ProductPageSize)
	}

	// 3. defaults must be values the console offers
	if !contains(ValidPaymentMethods, c.Defaults.PaymentMethod) {
		return fmt.Errorf("unknown defaults.payment_method %q (valid: cash, card, bank_transfer, cod)", c.Defaults.PaymentMethod)
	}
	if !contains(ValidPaymentStatuses, c.Defaults.PaymentStatus) {
		return fmt.Errorf("unknown defaults.payment_status %q (valid: pending, paid)", c.Defaults.PaymentStatus)
	}

	// 4. log level
	if !contains(ValidLogLevels, c.Log.Level) {
		return fmt.Errorf("unknown log.level %q (valid: debug, info, warn, error)", c.Log.Level)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

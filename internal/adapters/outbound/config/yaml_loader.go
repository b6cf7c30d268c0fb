package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ordercraft/ordercraft/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the project directory.
const FileName = ".ordercraft.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .ordercraft.yaml.
type YAMLLoader struct{}

var _ domain.ConfigLoader = (*YAMLLoader)(nil)

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .ordercraft.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ConsoleConfig, error) {
	return l.LoadFile(filepath.Join(projectPath, FileName))
}

// LoadFile reads configuration from an explicit path. Keys absent from the
// file keep their default values. A missing file yields the defaults.
func (l *YAMLLoader) LoadFile(path string) (domain.ConsoleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ConsoleConfig{}, err
	}

	name := filepath.Base(path)
	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ConsoleConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ConsoleConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return cfg, nil
}

// Template returns the commented configuration written by `ordercraft init`.
func Template(baseURL string) string {
	if baseURL == "" {
		baseURL = "https://api.example.com/v1"
	}
	return fmt.Sprintf(`# ordercraft configuration
api:
  base_url: %s
  # environment variable holding the bearer token
  token_env: ORDERCRAFT_API_TOKEN
  # 0 waits for the backend indefinitely
  timeout: 0s

catalog:
  customer_page_size: %d
  product_page_size: %d
  # file: catalog.yaml

defaults:
  payment_method: %s
  payment_status: %s

currency: USD

log:
  level: info

journal:
  path: .ordercraft/journal/orders.json

http:
  addr: ":8080"
  allowed_origins:
    - http://localhost:5173
`, baseURL, domain.DefaultCustomerPageSize, domain.DefaultProductPageSize,
		domain.PaymentMethodCash, domain.PaymentStatusPending)
}

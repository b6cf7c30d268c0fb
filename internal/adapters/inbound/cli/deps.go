package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ordercraft/ordercraft/internal/adapters/outbound/config"
	"github.com/ordercraft/ordercraft/internal/adapters/outbound/journal"
	"github.com/ordercraft/ordercraft/internal/adapters/outbound/logging"
	"github.com/ordercraft/ordercraft/internal/adapters/outbound/ordersapi"
	"github.com/ordercraft/ordercraft/internal/adapters/outbound/staticcatalog"
	"github.com/ordercraft/ordercraft/internal/application"
	"github.com/ordercraft/ordercraft/internal/domain"
)

const configFileDefault = config.FileName

type globalFlags struct {
	configPath string
	apiURL     string
	catalog    string
}

// env is everything a command needs, built once from flags and config.
type env struct {
	cfg     domain.ConsoleConfig
	logger  *zap.Logger
	deps    application.WizardDeps
	journal *journal.FileJournal
}

// loadEnv reads the config file and builds the outbound adapters. Relative
// paths in the config resolve against the config file's directory.
func loadEnv(flags *globalFlags) (*env, error) {
	cfg, err := config.New().LoadFile(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.apiURL != "" {
		cfg.API.BaseURL = flags.apiURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if flags.catalog != "" {
		cfg.Catalog.File = flags.catalog
	} else if cfg.Catalog.File != "" {
		cfg.Catalog.File = resolve(flags.configPath, cfg.Catalog.File)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	api := ordersapi.New(cfg.API.BaseURL, os.Getenv(cfg.API.TokenEnv),
		ordersapi.WithTimeout(cfg.API.Timeout),
		ordersapi.WithLogger(logger.Named("ordersapi")),
	)
	e := &env{
		cfg:     cfg,
		logger:  logger,
		journal: journal.New(resolve(flags.configPath, cfg.Journal.Path)),
		deps: application.WizardDeps{
			Customers: api,
			Products:  api,
			Orders:    api,
		},
	}
	e.deps.Journal = e.journal

	if cfg.Catalog.File != "" {
		cat, err := staticcatalog.Load(cfg.Catalog.File)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		e.deps.Customers = cat
		e.deps.Products = cat
	}
	return e, nil
}

// wizardOptions turns config into wizard options.
func (e *env) wizardOptions() []application.WizardOption {
	return []application.WizardOption{
		application.WithLogger(e.logger),
		application.WithPageSizes(e.cfg.Catalog.CustomerPageSize, e.cfg.Catalog.ProductPageSize),
		application.WithDefaults(e.cfg.DefaultAdjustments()),
	}
}

func resolve(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

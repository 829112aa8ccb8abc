package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/tillworks/till/internal/catalog"
	"github.com/tillworks/till/internal/config"
	"github.com/tillworks/till/internal/insight"
	"github.com/tillworks/till/internal/ledger"
	"github.com/tillworks/till/internal/model"
	"github.com/tillworks/till/internal/storage"
)

// initStore builds the configured ledger store. The driver defaults to
// sqlite; "json" keeps the ledger as a plain JSON array on disk.
func initStore() (storage.Store, error) {
	driver := viper.GetString("storage.driver")
	path := viper.GetString("storage.path")

	switch driver {
	case "", "sqlite":
		if path == "" {
			path = "$HOME/.local/share/till/till.db"
		}
		return storage.NewSQLiteStore(config.ExpandPath(path))
	case "json":
		if path == "" {
			path = "$HOME/.local/share/till/ledger.json"
		}
		return storage.NewJSONStore(config.ExpandPath(path))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// openLedger loads the persisted ledger behind the configured store.
// The caller must Close the returned store.
func openLedger(ctx context.Context) (*ledger.Ledger, storage.Store, error) {
	store, err := initStore()
	if err != nil {
		return nil, nil, err
	}
	l, err := ledger.Open(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return l, store, nil
}

// loadCatalog returns the configured product catalog.
func loadCatalog() ([]model.Product, error) {
	return catalog.Load(config.ExpandPath(viper.GetString("catalog.path")))
}

// insightService builds the advisory service from configuration. A
// missing API key is a valid state: the service answers with its fixed
// fallback instead of calling out.
func insightService() *insight.Service {
	return insight.NewService(insight.Config{
		APIKey: viper.GetString("insight.api_key"),
		Model:  viper.GetString("insight.model"),
	})
}

// parseMethodFlag validates an optional --method value. Empty means no
// filter.
func parseMethodFlag(value string) (model.PaymentMethod, error) {
	if value == "" {
		return "", nil
	}
	m := model.PaymentMethod(value)
	if !m.Valid() {
		return "", fmt.Errorf("invalid payment method %q (expected cash, leke, or mobile)", value)
	}
	return m, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bitpanda_watcher/internal/domain/entity"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
bitpanda:
  apiKey: "secret"
`))
	require.NoError(t, err)

	require.Equal(t, "https://api.bitpanda.com/v1", cfg.Bitpanda.BaseURL)
	require.Equal(t, ":8080", cfg.Server.Port)
	require.Equal(t, "EUR", cfg.Poller.Currency)
	require.Equal(t, 5*time.Minute, cfg.Interval())
	require.Equal(t, 60*time.Second, cfg.TickerCacheTTL())
	require.Len(t, cfg.Poller.Categories, len(entity.AllCategories()))
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfigCurrencyUppercased(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
bitpanda:
  apiKey: "secret"
poller:
  currency: "usd"
`))
	require.NoError(t, err)
	require.Equal(t, "USD", cfg.Poller.Currency)
}

func TestValidateUnsupportedCurrency(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
bitpanda:
  apiKey: "secret"
poller:
  currency: "JPY"
`))
	require.NoError(t, err)
	require.Error(t, cfg.Validate())
}

func TestValidateMissingAPIKey(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
poller:
  currency: "EUR"
`))
	require.NoError(t, err)
	require.Error(t, cfg.Validate())
}

func TestSelectedCategoriesExplicitEmpty(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
bitpanda:
  apiKey: "secret"
poller:
  categories: []
`))
	require.NoError(t, err)

	_, err = cfg.SelectedCategories()
	require.ErrorIs(t, err, entity.ErrNoCategories)
	require.Error(t, cfg.Validate())
}

func TestSelectedCategoriesUnknown(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
bitpanda:
  apiKey: "secret"
poller:
  categories: ["CRYPTOCOIN", "BONDS"]
`))
	require.NoError(t, err)

	_, err = cfg.SelectedCategories()
	require.Error(t, err)
	require.Contains(t, err.Error(), "BONDS")
}

func TestSelectedCategoriesCaseInsensitive(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
bitpanda:
  apiKey: "secret"
poller:
  categories: ["cryptocoin", "Metal"]
`))
	require.NoError(t, err)

	cats, err := cfg.SelectedCategories()
	require.NoError(t, err)
	require.Equal(t, []entity.Category{entity.CategoryCryptocoin, entity.CategoryMetal}, cats)
}

func TestDefaultCategoryPaths(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
bitpanda:
  apiKey: "secret"
`))
	require.NoError(t, err)

	require.Equal(t, []string{"cryptocoin"}, cfg.PathsFor(entity.CategoryCryptocoin))
	require.Equal(t, []string{"cryptocoin"}, cfg.PathsFor(entity.CategoryLeverage))
	require.Equal(t, []string{"stock", "security.stock", "commodity.stock", "index.stock"}, cfg.PathsFor(entity.CategoryStock))
	require.Empty(t, cfg.PathsFor(entity.CategoryFiat))
}

func TestCategoryPathsOverride(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
bitpanda:
  apiKey: "secret"
poller:
  categoryPaths:
    STOCK: ["security.stock"]
`))
	require.NoError(t, err)

	require.Equal(t, []string{"security.stock"}, cfg.PathsFor(entity.CategoryStock))
	require.Equal(t, []string{"cryptocoin"}, cfg.PathsFor(entity.CategoryCryptocoin))
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"bitpanda_watcher/internal/domain/entity"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Bitpanda BitpandaConfig `yaml:"bitpanda"`
	Poller   PollerConfig   `yaml:"poller"`
	Ticker   TickerConfig   `yaml:"ticker"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// BitpandaConfig holds the Bitpanda API client configuration.
type BitpandaConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	RateLimit            int    `yaml:"rateLimit"`
	BurstLimit           int    `yaml:"burstLimit"`
}

// PollerConfig holds the polling coordinator configuration. CategoryPaths
// maps a wallet category to the ordered list of dot-paths probed inside the
// /asset-wallets response; it is configuration rather than code so future
// Bitpanda categories only need a config change.
type PollerConfig struct {
	IntervalMinutes int                 `yaml:"intervalMinutes"`
	Currency        string              `yaml:"currency"`
	Categories      []string            `yaml:"categories"`
	CategoryPaths   map[string][]string `yaml:"categoryPaths"`
}

// TickerConfig holds the ticker cache configuration.
type TickerConfig struct {
	CacheTTLSeconds int `yaml:"cacheTTLSeconds"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// LoadConfig loads configuration from a YAML file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Bitpanda.BaseURL == "" {
		cfg.Bitpanda.BaseURL = "https://api.bitpanda.com/v1"
		logrus.Infof("Bitpanda.BaseURL not set, defaulting to %s", cfg.Bitpanda.BaseURL)
	}
	if cfg.Bitpanda.RequestTimeoutMillis == 0 {
		cfg.Bitpanda.RequestTimeoutMillis = 10000
		logrus.Infof("Bitpanda.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Bitpanda.RequestTimeoutMillis)
	}
	if cfg.Bitpanda.RateLimit <= 0 {
		cfg.Bitpanda.RateLimit = 5
	}
	if cfg.Bitpanda.BurstLimit <= 0 {
		cfg.Bitpanda.BurstLimit = 10
	}

	if cfg.Poller.IntervalMinutes <= 0 {
		cfg.Poller.IntervalMinutes = 5
		logrus.Infof("Poller.IntervalMinutes not set, defaulting to %d minutes", cfg.Poller.IntervalMinutes)
	}
	if cfg.Poller.Currency == "" {
		cfg.Poller.Currency = entity.DefaultCurrency
		logrus.Infof("Poller.Currency not set, defaulting to %s", cfg.Poller.Currency)
	}
	cfg.Poller.Currency = strings.ToUpper(cfg.Poller.Currency)

	// A nil slice means the key was absent, so every category is watched. An
	// explicit empty list stays empty and fails validation.
	if cfg.Poller.Categories == nil {
		for _, cat := range entity.AllCategories() {
			cfg.Poller.Categories = append(cfg.Poller.Categories, string(cat))
		}
		logrus.Infof("Poller.Categories not set, defaulting to all %d categories", len(cfg.Poller.Categories))
	}

	if cfg.Poller.CategoryPaths == nil {
		cfg.Poller.CategoryPaths = make(map[string][]string)
	}
	for cat, paths := range defaultCategoryPaths() {
		if _, ok := cfg.Poller.CategoryPaths[cat]; !ok {
			cfg.Poller.CategoryPaths[cat] = paths
		}
	}

	if cfg.Ticker.CacheTTLSeconds <= 0 {
		cfg.Ticker.CacheTTLSeconds = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return &cfg, nil
}

// defaultCategoryPaths reproduces the Bitpanda nesting of the combined
// /asset-wallets response: cryptocoin (shared by CRYPTOCOIN and LEVERAGE)
// sits flat, while securities, commodities and indices may sit either flat or
// under their grouping key. The first path that resolves wins.
func defaultCategoryPaths() map[string][]string {
	paths := map[string][]string{
		string(entity.CategoryCryptocoin): {"cryptocoin"},
		string(entity.CategoryLeverage):   {"cryptocoin"},
	}
	for _, cat := range entity.AllCategories() {
		if !cat.IsAsset() {
			continue
		}
		if _, ok := paths[string(cat)]; ok {
			continue
		}
		key := strings.ToLower(string(cat))
		paths[string(cat)] = []string{
			key,
			"security." + key,
			"commodity." + key,
			"index." + key,
		}
	}
	return paths
}

// SelectedCategories parses and validates the configured category selection.
func (c *Config) SelectedCategories() ([]entity.Category, error) {
	if len(c.Poller.Categories) == 0 {
		return nil, entity.ErrNoCategories
	}

	cats := make([]entity.Category, 0, len(c.Poller.Categories))
	for _, raw := range c.Poller.Categories {
		cat, ok := entity.ParseCategory(raw)
		if !ok {
			return nil, fmt.Errorf("unknown wallet category %q", raw)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// PathsFor returns the asset-wallets lookup paths for a category.
func (c *Config) PathsFor(cat entity.Category) []string {
	return c.Poller.CategoryPaths[string(cat)]
}

// Interval returns the poll interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Poller.IntervalMinutes) * time.Minute
}

// TickerCacheTTL returns the ticker cache TTL as a duration.
func (c *Config) TickerCacheTTL() time.Duration {
	return time.Duration(c.Ticker.CacheTTLSeconds) * time.Second
}

// Validate checks the parts of the configuration that have no sane default.
func (c *Config) Validate() error {
	if c.Bitpanda.APIKey == "" {
		return fmt.Errorf("bitpanda.apiKey is required (or set BITPANDA_API_KEY)")
	}
	if !entity.IsSupportedCurrency(c.Poller.Currency) {
		return fmt.Errorf("unsupported display currency %q", c.Poller.Currency)
	}
	if _, err := c.SelectedCategories(); err != nil {
		return err
	}
	return nil
}

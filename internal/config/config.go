// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	CJ         CJConfig         `yaml:"cj"`
	Shipping   ShippingConfig   `yaml:"shipping"`
	TokenStore TokenStoreConfig `yaml:"token_store"`
	Keepalive  KeepaliveConfig  `yaml:"keepalive"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// CJConfig defines CJDropshipping account and API settings. Email and
// APIKey are the only secrets in the system and normally arrive via
// ${CJ_EMAIL} / ${CJ_API_KEY} expansion.
type CJConfig struct {
	Email          string          `yaml:"email"`
	APIKey         string          `yaml:"api_key"`
	BaseURL        string          `yaml:"base_url"`
	AuthTimeout    time.Duration   `yaml:"auth_timeout"`
	RequestTimeout time.Duration   `yaml:"request_timeout"`
	VariantCountry string          `yaml:"variant_country"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines CJ API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// ShippingConfig is the centralized delivery address stamped onto every
// created order. The final customer's own details travel in the order
// remark instead.
type ShippingConfig struct {
	CustomerName    string `yaml:"customer_name"`
	Phone           string `yaml:"phone"`
	Address         string `yaml:"address"`
	City            string `yaml:"city"`
	Province        string `yaml:"province"`
	Country         string `yaml:"country"`
	CountryCode     string `yaml:"country_code"`
	Zip             string `yaml:"zip"`
	FromCountryCode string `yaml:"from_country_code"`
}

// TokenStoreConfig selects where the token record is persisted.
type TokenStoreConfig struct {
	Backend string `yaml:"backend"` // file, postgres
	Path    string `yaml:"path"`    // file backend
	DSN     string `yaml:"dsn"`     // postgres backend
}

// KeepaliveConfig defines the proactive token refresh job.
type KeepaliveConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyCJDefaults(&cfg.CJ)
	applyShippingDefaults(&cfg.Shipping)
	applyTokenStoreDefaults(&cfg.TokenStore)
	applyKeepaliveDefaults(&cfg.Keepalive)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyCJDefaults(c *CJConfig) {
	if c.BaseURL == "" {
		c.BaseURL = "https://developers.cjdropshipping.com/api2.0/v1"
	}
	if c.AuthTimeout == 0 {
		c.AuthTimeout = 15 * time.Second
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.VariantCountry == "" {
		c.VariantCountry = "CN"
	}
	applyRateLimitDefaults(&c.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 2.0
	}
	if r.Burst == 0 {
		r.Burst = 5
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyShippingDefaults(s *ShippingConfig) {
	// CJ warehouses ship from China unless told otherwise.
	if s.FromCountryCode == "" {
		s.FromCountryCode = "CN"
	}
}

func applyTokenStoreDefaults(t *TokenStoreConfig) {
	if t.Backend == "" {
		t.Backend = "file"
	}
	if t.Path == "" {
		t.Path = "cj_token.json"
	}
}

func applyKeepaliveDefaults(k *KeepaliveConfig) {
	if k.Interval == 0 {
		k.Interval = 6 * time.Hour
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.CJ.Email == "" {
		errs = append(errs, fmt.Errorf("cj.email is required"))
	}
	if cfg.CJ.APIKey == "" {
		errs = append(errs, fmt.Errorf("cj.api_key is required"))
	}

	switch cfg.TokenStore.Backend {
	case "file":
		// Path has a default; nothing further to check.
	case "postgres":
		if cfg.TokenStore.DSN == "" {
			errs = append(
				errs,
				fmt.Errorf("token_store.dsn is required when backend is postgres"),
			)
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"token_store.backend must be one of: file, postgres (got %q)",
				cfg.TokenStore.Backend,
			),
		)
	}

	errs = append(errs, validateShipping(&cfg.Shipping)...)

	return errors.Join(errs...)
}

// validateShipping requires the full centralized address: a partially
// configured one would silently create undeliverable orders.
func validateShipping(s *ShippingConfig) []error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"shipping.customer_name", s.CustomerName},
		{"shipping.phone", s.Phone},
		{"shipping.address", s.Address},
		{"shipping.city", s.City},
		{"shipping.country", s.Country},
		{"shipping.country_code", s.CountryCode},
	}

	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}

	return errs
}

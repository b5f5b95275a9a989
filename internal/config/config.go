// Package config reads the storefront settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "HALFKG"

const (
	EnvAppEnv         = "HALFKG_APP_ENV"
	EnvLogLevel       = "HALFKG_LOG_LEVEL"
	EnvLogFile        = "HALFKG_LOG_FILE"
	EnvCurrencySymbol = "HALFKG_CURRENCY_SYMBOL"
	EnvDeliveryFee    = "HALFKG_DELIVERY_FEE"
	EnvCheckoutKeyTTL = "HALFKG_CHECKOUT_KEY_TTL"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Checkout CheckoutConfig
}

type AppConfig struct {
	Env      string `envconfig:"HALFKG_APP_ENV" default:"development"`
	LogLevel string `envconfig:"HALFKG_LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"HALFKG_LOG_FILE"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StoreConfig struct {
	CurrencySymbol string `envconfig:"HALFKG_CURRENCY_SYMBOL" default:"₹"`
}

type CheckoutConfig struct {
	DeliveryFee int64         `envconfig:"HALFKG_DELIVERY_FEE" default:"50"`
	KeyTTL      time.Duration `envconfig:"HALFKG_CHECKOUT_KEY_TTL" default:"48h"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// named) without overriding ones already set. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func (c Config) validate() error {
	if !c.App.IsDev() && !c.App.IsProd() {
		return fmt.Errorf("%s must be %q or %q, got %q", EnvAppEnv, AppEnvDev, AppEnvProd, c.App.Env)
	}
	if c.Store.CurrencySymbol == "" {
		return fmt.Errorf("%s must not be empty", EnvCurrencySymbol)
	}
	if c.Checkout.DeliveryFee < 0 {
		return fmt.Errorf("%s must not be negative", EnvDeliveryFee)
	}
	if c.Checkout.KeyTTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvCheckoutKeyTTL)
	}
	return nil
}

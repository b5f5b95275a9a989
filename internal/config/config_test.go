package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAppEnv, EnvLogLevel, EnvLogFile, EnvCurrencySymbol, EnvDeliveryFee, EnvCheckoutKeyTTL} {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("failed to unset %s: %v", k, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected development env, got %q", cfg.App.Env)
	}
	if cfg.App.LogLevel != "info" {
		t.Fatalf("expected log level info, got %q", cfg.App.LogLevel)
	}
	if cfg.App.LogFile != "" {
		t.Fatalf("expected no log file, got %q", cfg.App.LogFile)
	}
	if cfg.Store.CurrencySymbol != "₹" {
		t.Fatalf("unexpected currency symbol %q", cfg.Store.CurrencySymbol)
	}
	if cfg.Checkout.DeliveryFee != 50 {
		t.Fatalf("expected delivery fee 50, got %d", cfg.Checkout.DeliveryFee)
	}
	if cfg.Checkout.KeyTTL != 48*time.Hour {
		t.Fatalf("expected key ttl 48h, got %v", cfg.Checkout.KeyTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvCurrencySymbol, "Rs")
	t.Setenv(EnvDeliveryFee, "0")
	t.Setenv(EnvCheckoutKeyTTL, "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.App.IsProd() {
		t.Fatalf("expected production env, got %q", cfg.App.Env)
	}
	if cfg.App.LogLevel != "debug" {
		t.Fatalf("unexpected log level %q", cfg.App.LogLevel)
	}
	if cfg.Store.CurrencySymbol != "Rs" {
		t.Fatalf("unexpected currency symbol %q", cfg.Store.CurrencySymbol)
	}
	if cfg.Checkout.DeliveryFee != 0 {
		t.Fatalf("expected free delivery, got %d", cfg.Checkout.DeliveryFee)
	}
	if cfg.Checkout.KeyTTL != 30*time.Minute {
		t.Fatalf("unexpected key ttl %v", cfg.Checkout.KeyTTL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown env", EnvAppEnv, "staging"},
		{"negative fee", EnvDeliveryFee, "-5"},
		{"fee not a number", EnvDeliveryFee, "fifty"},
		{"zero ttl", EnvCheckoutKeyTTL, "0s"},
		{"bad ttl", EnvCheckoutKeyTTL, "two days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("HALFKG_DELIVERY_FEE=75\nHALFKG_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv(EnvLogLevel, "error")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() returned unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv(EnvDeliveryFee) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Checkout.DeliveryFee != 75 {
		t.Fatalf("expected fee from .env, got %d", cfg.Checkout.DeliveryFee)
	}
	if cfg.App.LogLevel != "error" {
		t.Fatalf("expected existing env to win, got %q", cfg.App.LogLevel)
	}
}

package storefront_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-storefront"
)

func TestConfigDefaultsValidate(t *testing.T) {
	if err := storefront.DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidateStorageProviderUnknown(t *testing.T) {
	cfg := storefront.DefaultConfig()
	cfg.Storage.Provider = "floppy"
	if err := cfg.Validate(); !errors.Is(err, storefront.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigValidateListingWindow(t *testing.T) {
	cfg := storefront.DefaultConfig()
	cfg.Listing.LoadMoreIncrement = 0
	if err := cfg.Validate(); !errors.Is(err, storefront.ErrListingWindowInvalid) {
		t.Fatalf("expected ErrListingWindowInvalid, got %v", err)
	}
}

func TestConfigValidateLoggingWhenEnabled(t *testing.T) {
	cfg := storefront.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, storefront.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	raw := []byte("storage:\n  provider: memory\nlisting:\n  items_per_page: 6\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := storefront.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Provider != "memory" || cfg.Listing.ItemsPerPage != 6 {
		t.Fatalf("expected overlay applied, got %+v", cfg)
	}
	if cfg.Listing.InitialCount != 5 {
		t.Fatalf("expected defaults kept, got %d", cfg.Listing.InitialCount)
	}
}

package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-storefront/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RejectsUnknownStorageProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "localstorage"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RequiresDSNForSQLite(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageSQLite
	cfg.Storage.DSN = " "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresPathForBadger(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageAuto
	cfg.Storage.Persistent = runtimeconfig.StorageBadger
	cfg.Storage.Path = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStoragePathRequired) {
		t.Fatalf("expected ErrStoragePathRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsEmptyListingWindow(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Listing.LoadMoreIncrement = 0

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrListingWindowInvalid) {
		t.Fatalf("expected ErrListingWindowInvalid, got %v", err)
	}
}

func TestConfigValidate_LoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	data := []byte(`
storage:
  provider: memory
listing:
  items_per_page: 10
logging:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Provider != runtimeconfig.StorageMemory {
		t.Fatalf("expected memory provider, got %q", cfg.Storage.Provider)
	}
	if cfg.Listing.ItemsPerPage != 10 {
		t.Fatalf("expected 10 items per page, got %d", cfg.Listing.ItemsPerPage)
	}
	if cfg.Listing.InitialCount != 5 {
		t.Fatalf("expected default initial count to survive, got %d", cfg.Listing.InitialCount)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Logging.Level)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := runtimeconfig.Parse([]byte("storage:\n  engine: sqlite\n")); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

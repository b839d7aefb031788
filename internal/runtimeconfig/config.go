package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStorageProviderUnknown   = errors.New("storefront config: storage provider is invalid")
	ErrStorageDSNRequired       = errors.New("storefront config: storage dsn is required for sql providers")
	ErrStoragePathRequired      = errors.New("storefront config: storage path is required for the badger provider")
	ErrListingWindowInvalid     = errors.New("storefront config: listing window sizes must be positive")
	ErrLinksBaseURLInvalid      = errors.New("storefront config: links base url must be absolute")
	ErrLoggingProviderRequired  = errors.New("storefront config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("storefront config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("storefront config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("storefront config: logging format is invalid")
	ErrMarkdownExtensionUnknown = errors.New("storefront config: markdown extension is not supported")
)

// Storage providers understood by storage.Open.
const (
	StorageAuto     = "auto"
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageBadger   = "badger"
)

// Config aggregates every knob the storefront module reads at start.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Listing  ListingConfig  `yaml:"listing"`
	Links    LinksConfig    `yaml:"links"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Logging  LoggingConfig  `yaml:"logging"`
	Features Features       `yaml:"features"`
}

// StorageConfig selects the key-value backend behind the catalog.
// Provider "auto" tries Persistent first and falls back to memory.
type StorageConfig struct {
	Provider   string `yaml:"provider"`
	Persistent string `yaml:"persistent"`
	DSN        string `yaml:"dsn"`
	Path       string `yaml:"path"`
	Table      string `yaml:"table"`
}

// ListingConfig sizes the catalog pager and the dispatch load-more window.
type ListingConfig struct {
	ItemsPerPage      int `yaml:"items_per_page"`
	InitialCount      int `yaml:"initial_count"`
	LoadMoreIncrement int `yaml:"load_more_increment"`
}

// LinksConfig feeds the go-urlkit route manager.
type LinksConfig struct {
	BaseURL       string `yaml:"base_url"`
	ProductPath   string `yaml:"product_path"`
	PatchNotePath string `yaml:"patch_note_path"`
	DispatchPath  string `yaml:"dispatch_path"`
	CategoryPath  string `yaml:"category_path"`
}

// MarkdownConfig configures goldmark for previews and imports.
type MarkdownConfig struct {
	BasePath   string   `yaml:"base_path"`
	Pattern    string   `yaml:"pattern"`
	Recursive  bool     `yaml:"recursive"`
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// Features toggles optional behaviour.
type Features struct {
	Logger bool `yaml:"logger"`
	Seed   bool `yaml:"seed"`
}

// DefaultConfig returns settings matching the storefront pages: 12 products
// per catalog page, dispatch feed showing 5 posts and 5 more per click.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider:   StorageAuto,
			Persistent: StorageSQLite,
			DSN:        "file:storefront.db?cache=shared",
			Path:       "data/storefront",
			Table:      "storefront_kv",
		},
		Listing: ListingConfig{
			ItemsPerPage:      12,
			InitialCount:      5,
			LoadMoreIncrement: 5,
		},
		Links: LinksConfig{
			BaseURL:       "https://example.com",
			ProductPath:   "/products/:slug",
			PatchNotePath: "/patch-notes/:slug",
			DispatchPath:  "/dispatch/:slug",
			CategoryPath:  "/products/category/:category",
		},
		Markdown: MarkdownConfig{
			BasePath:   "content/patch-notes",
			Pattern:    "*.md",
			Extensions: []string{"gfm"},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	if err := cfg.Storage.validate(); err != nil {
		return err
	}
	if cfg.Listing.ItemsPerPage <= 0 || cfg.Listing.InitialCount <= 0 || cfg.Listing.LoadMoreIncrement <= 0 {
		return ErrListingWindowInvalid
	}
	if base := strings.TrimSpace(cfg.Links.BaseURL); base != "" &&
		!strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("%w: %s", ErrLinksBaseURLInvalid, base)
	}
	for _, ext := range cfg.Markdown.Extensions {
		if !isSupportedExtension(ext) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
		}
	}
	if cfg.Features.Logger {
		return cfg.Logging.validate()
	}
	return nil
}

func (s StorageConfig) validate() error {
	provider := normalize(s.Provider)
	switch provider {
	case StorageMemory:
		return nil
	case StorageAuto:
		persistent := normalize(s.Persistent)
		if persistent == "" || persistent == StorageMemory {
			return nil
		}
		return StorageConfig{Provider: persistent, DSN: s.DSN, Path: s.Path}.validate()
	case StorageSQLite, StoragePostgres:
		if strings.TrimSpace(s.DSN) == "" {
			return ErrStorageDSNRequired
		}
		return nil
	case StorageBadger:
		if strings.TrimSpace(s.Path) == "" {
			return ErrStoragePathRequired
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, s.Provider)
	}
}

func (l LoggingConfig) validate() error {
	provider := normalize(l.Provider)
	switch provider {
	case "":
		return ErrLoggingProviderRequired
	case "console", "gologger":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	switch normalize(l.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, l.Level)
	}
	if provider == "gologger" {
		switch normalize(l.Format) {
		case "", "json", "console", "pretty":
		default:
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, l.Format)
		}
	}
	return nil
}

func isSupportedExtension(name string) bool {
	switch normalize(name) {
	case "gfm", "table", "tables", "strikethrough", "linkify", "tasklist", "footnote", "definition":
		return true
	}
	return false
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/runtimeconfig"
	"github.com/goliatone/go-storefront/pkg/interfaces"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Backend names reported by Open and used in logs.
const (
	StorageMemoryName = "memory"
	StorageBunName    = "bun"
	StorageBadgerName = "badger"
)

// Opened is the adapter selected at start together with the provider that
// actually served it.
type Opened struct {
	Adapter  interfaces.ClosableStorage
	Provider string
	Fallback bool
}

// Open selects the storage adapter once, at process start. The "auto"
// provider tries the configured persistent provider and falls back to memory
// when it cannot be opened; explicit providers fail instead.
func Open(ctx context.Context, cfg runtimeconfig.StorageConfig, logger interfaces.Logger) (Opened, error) {
	logger = logging.Ensure(logger)
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = runtimeconfig.StorageAuto
	}

	if provider != runtimeconfig.StorageAuto {
		adapter, err := openProvider(ctx, provider, cfg, logger)
		if err != nil {
			return Opened{}, err
		}
		logger.Info("storage.opened", "provider", provider)
		return Opened{Adapter: adapter, Provider: provider}, nil
	}

	persistent := strings.ToLower(strings.TrimSpace(cfg.Persistent))
	if persistent != "" && persistent != runtimeconfig.StorageMemory {
		adapter, err := openProvider(ctx, persistent, cfg, logger)
		if err == nil {
			logger.Info("storage.opened", "provider", persistent)
			return Opened{Adapter: adapter, Provider: persistent}, nil
		}
		logger.Warn("storage.persistent.unavailable", "provider", persistent, "error", err)
	}
	logger.Info("storage.opened", "provider", runtimeconfig.StorageMemory, "fallback", true)
	return Opened{
		Adapter:  NewMemory(logger),
		Provider: runtimeconfig.StorageMemory,
		Fallback: persistent != "" && persistent != runtimeconfig.StorageMemory,
	}, nil
}

func openProvider(ctx context.Context, provider string, cfg runtimeconfig.StorageConfig, logger interfaces.Logger) (interfaces.ClosableStorage, error) {
	switch provider {
	case runtimeconfig.StorageMemory:
		return NewMemory(logger), nil
	case runtimeconfig.StorageSQLite:
		return OpenSQL(ctx, "sqlite3", cfg.DSN, cfg.Table, logger)
	case runtimeconfig.StoragePostgres:
		return OpenSQL(ctx, "postgres", cfg.DSN, cfg.Table, logger)
	case runtimeconfig.StorageBadger:
		return OpenBadger(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageProviderUnknown, provider)
	}
}

// OpenSQL opens a database with driver ("sqlite3" or "postgres"), wraps it
// with the matching bun dialect and creates the key/value table.
func OpenSQL(ctx context.Context, driver, dsn, table string, logger interfaces.Logger) (*Bun, error) {
	logger = logging.Ensure(logger)
	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fail(logger, StorageBunName, opOpen, "", err)
	}
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fail(logger, StorageBunName, opOpen, "", err)
	}

	var db *bun.DB
	switch driver {
	case "postgres":
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	adapter := NewBun(db, WithTable(table), WithBunLogger(logger), withOwnedDB())
	if err := adapter.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return adapter, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
	"github.com/uptrace/bun"
)

// DefaultTable stores every key-value pair.
const DefaultTable = "storefront_kv"

// Bun persists values in a single key/value table through a Bun database.
// Both the sqlite and postgres dialects are supported.
type Bun struct {
	db     *bun.DB
	table  string
	logger interfaces.Logger
	owned  bool
}

// BunOption configures the Bun adapter.
type BunOption func(*Bun)

// WithTable overrides the table name.
func WithTable(table string) BunOption {
	return func(b *Bun) {
		if trimmed := strings.TrimSpace(table); trimmed != "" {
			b.table = trimmed
		}
	}
}

// WithBunLogger sets the adapter logger.
func WithBunLogger(logger interfaces.Logger) BunOption {
	return func(b *Bun) {
		b.logger = logger
	}
}

// withOwnedDB makes Close shut the database down as well.
func withOwnedDB() BunOption {
	return func(b *Bun) {
		b.owned = true
	}
}

// NewBun wraps db. Call Migrate before first use.
func NewBun(db *bun.DB, opts ...BunOption) *Bun {
	b := &Bun{db: db, table: DefaultTable}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	b.logger = logging.Ensure(b.logger)
	return b
}

// Migrate creates the key/value table when missing.
func (b *Bun) Migrate(ctx context.Context) error {
	if b.db == nil {
		return fail(b.logger, StorageBunName, opOpen, "", ErrDatabaseRequired)
	}
	_, err := b.db.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS ? (key VARCHAR(255) PRIMARY KEY, value TEXT NOT NULL, updated_at TIMESTAMP NOT NULL)",
		bun.Ident(b.table),
	)
	if err != nil {
		return fail(b.logger, StorageBunName, opOpen, "", err)
	}
	return nil
}

func (b *Bun) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := b.check(opGet, key); err != nil {
		return nil, false, err
	}
	var value string
	err := b.db.NewSelect().
		Table(b.table).
		Column("value").
		Where("key = ?", key).
		Limit(1).
		Scan(ctx, &value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fail(b.logger, StorageBunName, opGet, key, err)
	}
	return []byte(value), true, nil
}

func (b *Bun) Set(ctx context.Context, key string, value []byte) error {
	if err := b.check(opSet, key); err != nil {
		return err
	}
	row := map[string]any{
		"key":        key,
		"value":      string(value),
		"updated_at": time.Now().UTC(),
	}
	_, err := b.db.NewInsert().
		Model(&row).
		TableExpr("?", bun.Ident(b.table)).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fail(b.logger, StorageBunName, opSet, key, err)
	}
	return nil
}

func (b *Bun) Remove(ctx context.Context, key string) error {
	if err := b.check(opRemove, key); err != nil {
		return err
	}
	_, err := b.db.NewDelete().
		TableExpr("?", bun.Ident(b.table)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return fail(b.logger, StorageBunName, opRemove, key, err)
	}
	return nil
}

// Close releases the database when the adapter opened it.
func (b *Bun) Close() error {
	if b.db == nil || !b.owned {
		return nil
	}
	return b.db.Close()
}

func (b *Bun) check(op, key string) error {
	if b.db == nil {
		return fail(b.logger, StorageBunName, op, key, ErrDatabaseRequired)
	}
	if !validKey(key) {
		return fail(b.logger, StorageBunName, op, key, ErrKeyRequired)
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
	"github.com/timshannon/badgerhold/v4"
)

type badgerRecord struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Badger persists values in an embedded badgerhold store.
type Badger struct {
	store  *badgerhold.Store
	logger interfaces.Logger
}

// OpenBadger opens (or creates) a badger database under dir.
func OpenBadger(dir string, logger interfaces.Logger) (*Badger, error) {
	logger = logging.Ensure(logger)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fail(logger, StorageBadgerName, opOpen, "", fmt.Errorf("create badger directory: %w", err))
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fail(logger, StorageBadgerName, opOpen, "", err)
	}
	logger.Debug("storage.badger.opened", "path", dir)
	return NewBadger(store, logger), nil
}

// NewBadger wraps an open store.
func NewBadger(store *badgerhold.Store, logger interfaces.Logger) *Badger {
	return &Badger{store: store, logger: logging.Ensure(logger)}
}

func (b *Badger) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := b.check(ctx, opGet, key); err != nil {
		return nil, false, err
	}
	var record badgerRecord
	if err := b.store.Get(key, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fail(b.logger, StorageBadgerName, opGet, key, err)
	}
	return record.Value, true, nil
}

func (b *Badger) Set(ctx context.Context, key string, value []byte) error {
	if err := b.check(ctx, opSet, key); err != nil {
		return err
	}
	record := badgerRecord{Key: key, Value: cloneBytes(value), UpdatedAt: time.Now().UTC()}
	if err := b.store.Upsert(key, &record); err != nil {
		return fail(b.logger, StorageBadgerName, opSet, key, err)
	}
	return nil
}

func (b *Badger) Remove(ctx context.Context, key string) error {
	if err := b.check(ctx, opRemove, key); err != nil {
		return err
	}
	if err := b.store.Delete(key, &badgerRecord{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return fail(b.logger, StorageBadgerName, opRemove, key, err)
	}
	return nil
}

// Close closes the underlying store.
func (b *Badger) Close() error {
	if b.store == nil {
		return nil
	}
	return b.store.Close()
}

func (b *Badger) check(ctx context.Context, op, key string) error {
	if b.store == nil {
		return fail(b.logger, StorageBadgerName, op, key, ErrStoreRequired)
	}
	if !validKey(key) {
		return fail(b.logger, StorageBadgerName, op, key, ErrKeyRequired)
	}
	if err := ctx.Err(); err != nil {
		return fail(b.logger, StorageBadgerName, op, key, err)
	}
	return nil
}

package catalog

import (
	"context"
	"time"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Resource names used in errors, logs and events.
const (
	ProductResource   = "product"
	PatchNoteResource = "patch_note"
)

// Store holds both collections over a single storage adapter.
type Store struct {
	Products   *Collection[Product]
	PatchNotes *Collection[PatchNote]
	events     *changeBroadcaster
}

type storeConfig struct {
	logger interfaces.Logger
	now    func() time.Time
	id     func() string
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

// WithStoreClock overrides the clock used to stamp records.
func WithStoreClock(clock func() time.Time) StoreOption {
	return func(cfg *storeConfig) {
		if clock != nil {
			cfg.now = clock
		}
	}
}

// WithStoreIDGenerator overrides record id generation.
func WithStoreIDGenerator(generator func() string) StoreOption {
	return func(cfg *storeConfig) {
		if generator != nil {
			cfg.id = generator
		}
	}
}

// WithStoreLogger sets the logger used by both collections.
func WithStoreLogger(logger interfaces.Logger) StoreOption {
	return func(cfg *storeConfig) {
		cfg.logger = logger
	}
}

// NewStore builds the product and patch note collections on storage.
func NewStore(storage interfaces.StorageAdapter, opts ...StoreOption) *Store {
	cfg := storeConfig{
		now: func() time.Time { return time.Now().UTC() },
		id:  newID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.logger = logging.Ensure(cfg.logger)

	events := newChangeBroadcaster()
	return &Store{
		Products:   newCollection[Product](ProductsKey, ProductResource, storage, cfg, events),
		PatchNotes: newCollection[PatchNote](PatchNotesKey, PatchNoteResource, storage, cfg, events),
		events:     events,
	}
}

// Subscribe delivers change events for both collections until ctx ends.
func (s *Store) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return s.events.Subscribe(ctx)
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
	"github.com/google/uuid"
)

// Entity is implemented by catalog record values. WithID and Stamped return
// modified copies.
type Entity[T any] interface {
	EntityID() string
	EntitySlug() string
	CreatedTime() time.Time
	WithID(id string) T
	Stamped(created, updated time.Time) T
	Clone() T
}

// Collection is a CRUD view over one storage key holding a JSON array of
// records. Writes replace the whole array; the in-memory copy only changes
// after the storage call succeeded.
type Collection[T Entity[T]] struct {
	key      string
	resource string
	storage  interfaces.StorageAdapter
	logger   interfaces.Logger
	now      func() time.Time
	id       func() string
	events   *changeBroadcaster

	mu     sync.RWMutex
	items  []T
	loaded bool
}

func newCollection[T Entity[T]](key, resource string, storage interfaces.StorageAdapter, cfg storeConfig, events *changeBroadcaster) *Collection[T] {
	return &Collection[T]{
		key:      key,
		resource: resource,
		storage:  storage,
		logger:   logging.WithFields(cfg.logger, map[string]any{"collection": key}),
		now:      cfg.now,
		id:       cfg.id,
		events:   events,
	}
}

// Key returns the storage key of the collection.
func (c *Collection[T]) Key() string { return c.key }

// Reload discards the in-memory copy and reads the collection again.
func (c *Collection[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	return c.loadLocked(ctx)
}

// List returns every record in stored order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	for i := range c.items {
		out[i] = c.items[i].Clone()
	}
	return out, nil
}

// GetByID returns the record with id, or nil when absent.
func (c *Collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return c.find(ctx, func(item T) bool { return item.EntityID() == id })
}

// GetBySlug returns the record with slug (case-insensitive), or nil when
// absent.
func (c *Collection[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	want := normalizeSlug(slug)
	if want == "" {
		return nil, nil
	}
	return c.find(ctx, func(item T) bool { return normalizeSlug(item.EntitySlug()) == want })
}

// Create assigns an id when missing, stamps both timestamps and appends the
// record. Duplicate ids and slugs are rejected.
func (c *Collection[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	if err := c.ensureLoaded(ctx); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	created := record.Clone()
	if strings.TrimSpace(created.EntityID()) == "" {
		created = created.WithID(c.id())
	}
	if c.indexLocked(created.EntityID()) >= 0 {
		return zero, conflict(ErrIDExists, c.resource, "id", created.EntityID())
	}
	if err := c.checkSlugLocked(created.EntitySlug(), ""); err != nil {
		return zero, err
	}
	now := c.now()
	created = created.Stamped(now, now)

	next := append(c.snapshotLocked(), created)
	if err := c.persistLocked(ctx, next); err != nil {
		return zero, err
	}
	c.publish(ChangeCreated, created)
	return created.Clone(), nil
}

// Update replaces the record with the same id, keeping CreatedAt and
// refreshing UpdatedAt.
func (c *Collection[T]) Update(ctx context.Context, record T) (T, error) {
	var zero T
	if err := c.ensureLoaded(ctx); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	updated := record.Clone()
	id := strings.TrimSpace(updated.EntityID())
	if id == "" {
		return zero, goerrors.Wrap(ErrIDRequired, goerrors.CategoryBadInput, c.resource+" id required").
			WithTextCode("ID_REQUIRED")
	}
	index := c.indexLocked(id)
	if index < 0 {
		return zero, notFound(c.resource, id)
	}
	if err := c.checkSlugLocked(updated.EntitySlug(), id); err != nil {
		return zero, err
	}
	updated = updated.Stamped(c.items[index].CreatedTime(), c.now())

	next := c.snapshotLocked()
	next[index] = updated
	if err := c.persistLocked(ctx, next); err != nil {
		return zero, err
	}
	c.publish(ChangeUpdated, updated)
	return updated.Clone(), nil
}

// Delete removes the record with id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.indexLocked(id)
	if index < 0 {
		return notFound(c.resource, id)
	}
	removed := c.items[index].Clone()

	current := c.snapshotLocked()
	next := append(current[:index:index], current[index+1:]...)
	if err := c.persistLocked(ctx, next); err != nil {
		return err
	}
	c.publish(ChangeDeleted, removed)
	return nil
}

func (c *Collection[T]) find(ctx context.Context, match func(T) bool) (*T, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if match(c.items[i]) {
			found := c.items[i].Clone()
			return &found, nil
		}
	}
	return nil, nil
}

func (c *Collection[T]) ensureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

func (c *Collection[T]) loadLocked(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	raw, found, err := c.storage.Get(ctx, c.key)
	if err != nil {
		return err
	}
	items := []T{}
	if found && len(strings.TrimSpace(string(raw))) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			c.logger.Error("catalog.collection.decode_failed", "error", err)
			return goerrors.Wrap(errors.Join(ErrDecodeFailed, err), goerrors.CategoryInternal, c.resource+" collection unreadable").
				WithTextCode("CATALOG_DECODE_FAILED")
		}
	}
	c.items = items
	c.loaded = true
	c.logger.Debug("catalog.collection.loaded", "count", len(items))
	return nil
}

func (c *Collection[T]) persistLocked(ctx context.Context, next []T) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return goerrors.Wrap(errors.Join(ErrEncodeFailed, err), goerrors.CategoryInternal, c.resource+" collection not encodable").
			WithTextCode("CATALOG_ENCODE_FAILED")
	}
	if err := c.storage.Set(ctx, c.key, raw); err != nil {
		return err
	}
	c.items = next
	return nil
}

func (c *Collection[T]) snapshotLocked() []T {
	out := make([]T, len(c.items), len(c.items)+1)
	copy(out, c.items)
	return out
}

func (c *Collection[T]) indexLocked(id string) int {
	for i := range c.items {
		if c.items[i].EntityID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) checkSlugLocked(slug, selfID string) error {
	want := normalizeSlug(slug)
	if want == "" {
		return nil
	}
	for i := range c.items {
		item := c.items[i]
		if item.EntityID() == selfID {
			continue
		}
		if normalizeSlug(item.EntitySlug()) == want {
			return conflict(ErrSlugExists, c.resource, "slug", slug)
		}
	}
	return nil
}

func (c *Collection[T]) publish(kind ChangeType, entity T) {
	c.logger.Info("catalog."+c.resource+"."+string(kind), "id", entity.EntityID(), "slug", entity.EntitySlug())
	if c.events == nil {
		return
	}
	c.events.Broadcast(ChangeEvent{
		Type:       kind,
		Resource:   c.resource,
		ID:         entity.EntityID(),
		Slug:       entity.EntitySlug(),
		OccurredAt: c.now(),
	})
}

func normalizeSlug(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func newID() string {
	return uuid.NewString()
}

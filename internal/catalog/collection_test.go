package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/storage"
)

var errDiskFull = errors.New("disk full")

// flakyStorage fails writes while failing is set.
type flakyStorage struct {
	*storage.Memory
	failing bool
}

func (f *flakyStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.failing {
		return errDiskFull
	}
	return f.Memory.Set(ctx, key, value)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs() func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("id-%d", next)
	}
}

func newTestStore(t *testing.T) (*Store, *flakyStorage, *fixedClock) {
	t.Helper()
	backend := &flakyStorage{Memory: storage.NewMemory(nil)}
	clock := &fixedClock{now: time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)}
	store := NewStore(backend, WithStoreClock(clock.Now), WithStoreIDGenerator(sequentialIDs()))
	return store, backend, clock
}

func sampleProduct() Product {
	return Product{
		Slug:       "a320-neo",
		Title:      "A320 Neo",
		Excerpt:    "Study level airliner",
		Category:   "airliner",
		Tags:       []string{"msfs", "airbus"},
		PriceCents: 5999,
		Currency:   "USD",
		Description: blocks.Document{
			blocks.Heading{Level: 2, Content: "Overview"},
			blocks.List{Items: []string{"FMS", "EFB"}},
		},
		Status: domain.StatusPublished,
	}
}

func TestCollectionCreateThenGet(t *testing.T) {
	ctx := context.Background()
	store, _, clock := newTestStore(t)

	input := sampleProduct()
	created, err := store.Products.Create(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "id-1" {
		t.Fatalf("expected generated id, got %q", created.ID)
	}
	if !created.CreatedAt.Equal(clock.now) || !created.UpdatedAt.Equal(clock.now) {
		t.Fatalf("expected timestamps from clock, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	fetched, err := store.Products.GetByID(ctx, created.ID)
	if err != nil || fetched == nil {
		t.Fatalf("get: %v %v", fetched, err)
	}
	want := input
	want.ID = created.ID
	want.CreatedAt = clock.now
	want.UpdatedAt = clock.now
	if !reflect.DeepEqual(*fetched, want) {
		t.Fatalf("expected input plus id and timestamps\nwant %#v\ngot  %#v", want, *fetched)
	}
}

func TestCollectionKeepsEmptySlices(t *testing.T) {
	ctx := context.Background()
	store, _, clock := newTestStore(t)

	input := sampleProduct()
	input.Tags = []string{}
	input.Simulators = []string{}
	input.Description = blocks.Document{blocks.List{Items: []string{}}}
	created, err := store.Products.Create(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := store.Products.GetByID(ctx, created.ID)
	if err != nil || fetched == nil {
		t.Fatalf("get: %v %v", fetched, err)
	}
	want := input
	want.ID = created.ID
	want.CreatedAt = clock.now
	want.UpdatedAt = clock.now
	if !reflect.DeepEqual(*fetched, want) {
		t.Fatalf("expected empty slices to survive\nwant %#v\ngot  %#v", want, *fetched)
	}
	if fetched.Tags == nil || fetched.Description[0].(blocks.List).Items == nil {
		t.Fatalf("expected non-nil empty slices, got %#v", fetched)
	}
}

func TestRecordCopiesLeaveOriginalUntouched(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	product := sampleProduct()
	stamped := product.WithID("p-1").Stamped(at, at)
	if product.ID != "" || !product.CreatedAt.IsZero() {
		t.Fatalf("expected original product unchanged, got %+v", product)
	}
	if stamped.EntityID() != "p-1" || !stamped.CreatedTime().Equal(at) || !stamped.UpdatedAt.Equal(at) {
		t.Fatalf("expected id and timestamps on the copy, got %+v", stamped)
	}

	note := PatchNote{Slug: "1-2-0", Version: "1.2.0", Title: "Spring", ReleasedAt: &at}
	copied := note.WithID("n-1").Clone()
	*copied.ReleasedAt = at.Add(time.Hour)
	if note.ID != "" || !note.ReleasedAt.Equal(at) {
		t.Fatalf("expected original note unchanged, got %+v", note)
	}
}

func TestCollectionMissesAreNil(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	byID, err := store.Products.GetByID(ctx, "nope")
	if err != nil || byID != nil {
		t.Fatalf("expected nil miss, got %v %v", byID, err)
	}
	bySlug, err := store.Products.GetBySlug(ctx, "nope")
	if err != nil || bySlug != nil {
		t.Fatalf("expected nil miss, got %v %v", bySlug, err)
	}
}

func TestCollectionDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	created, _ := store.Products.Create(ctx, sampleProduct())
	if err := store.Products.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	fetched, err := store.Products.GetByID(ctx, created.ID)
	if err != nil || fetched != nil {
		t.Fatalf("expected deleted record to be absent, got %v %v", fetched, err)
	}

	err = store.Products.Delete(ctx, created.ID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) || !goerrors.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCollectionUpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store, _, clock := newTestStore(t)

	created, _ := store.Products.Create(ctx, sampleProduct())
	clock.Advance(time.Hour)

	changed := created
	changed.Title = "A320 Neo v2"
	changed.CreatedAt = time.Time{}
	updated, err := store.Products.Update(ctx, changed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected CreatedAt to be kept, got %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(clock.now) {
		t.Fatalf("expected UpdatedAt refreshed, got %v", updated.UpdatedAt)
	}

	missing := changed
	missing.ID = "ghost"
	if _, err := store.Products.Update(ctx, missing); !goerrors.IsNotFound(err) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func TestCollectionRejectsDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	first, _ := store.Products.Create(ctx, sampleProduct())
	duplicate := sampleProduct()
	duplicate.Slug = "A320-NEO"
	_, err := store.Products.Create(ctx, duplicate)
	if !errors.Is(err, ErrSlugExists) || !goerrors.IsCategory(err, goerrors.CategoryConflict) {
		t.Fatalf("expected slug conflict, got %v", err)
	}

	second := sampleProduct()
	second.Slug = "a330"
	created, err := store.Products.Create(ctx, second)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	created.Slug = first.Slug
	if _, err := store.Products.Update(ctx, created); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected slug conflict on update, got %v", err)
	}

	first.Title = "Renamed"
	if _, err := store.Products.Update(ctx, first); err != nil {
		t.Fatalf("expected a record to keep its own slug, got %v", err)
	}
}

func TestCollectionRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	record := sampleProduct()
	record.ID = "fixed"
	if _, err := store.Products.Create(ctx, record); err != nil {
		t.Fatalf("create: %v", err)
	}
	record.Slug = "other"
	if _, err := store.Products.Create(ctx, record); !errors.Is(err, ErrIDExists) {
		t.Fatalf("expected id conflict, got %v", err)
	}
}

func TestCollectionStorageFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store, backend, _ := newTestStore(t)

	created, _ := store.Products.Create(ctx, sampleProduct())
	backend.failing = true

	second := sampleProduct()
	second.Slug = "a330"
	if _, err := store.Products.Create(ctx, second); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected storage error, got %v", err)
	}
	changed := created
	changed.Title = "Changed"
	if _, err := store.Products.Update(ctx, changed); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if err := store.Products.Delete(ctx, created.ID); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected storage error, got %v", err)
	}

	items, err := store.Products.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Title != created.Title {
		t.Fatalf("expected untouched state, got %+v", items)
	}
}

func TestCollectionStoresJSONArrayUnderKey(t *testing.T) {
	ctx := context.Background()
	store, backend, _ := newTestStore(t)

	if _, err := store.Products.Create(ctx, sampleProduct()); err != nil {
		t.Fatalf("create: %v", err)
	}
	raw, found, err := backend.Get(ctx, ProductsKey)
	if err != nil || !found {
		t.Fatalf("expected products key, got found=%v err=%v", found, err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("expected JSON array, got %s", raw)
	}
	if len(decoded) != 1 || decoded[0]["slug"] != "a320-neo" {
		t.Fatalf("unexpected stored payload %s", raw)
	}

	reloaded := NewStore(backend)
	items, err := reloaded.Products.List(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected a fresh store to read the persisted array, got %v %v", items, err)
	}
	if heading, ok := items[0].Description[0].(blocks.Heading); !ok || heading.Content != "Overview" {
		t.Fatalf("expected description blocks to survive storage, got %#v", items[0].Description)
	}
}

func TestCollectionReportsUnreadableStorage(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory(nil)
	if err := backend.Set(ctx, PatchNotesKey, []byte(`{"not":"an array"}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := NewStore(backend).PatchNotes.List(ctx)
	if !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("expected decode failure, got %v", err)
	}
}

func TestCollectionListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	if _, err := store.Products.Create(ctx, sampleProduct()); err != nil {
		t.Fatalf("create: %v", err)
	}
	items, _ := store.Products.List(ctx)
	items[0].Tags[0] = "mutated"

	again, _ := store.Products.List(ctx)
	if again[0].Tags[0] != "msfs" {
		t.Fatal("expected list to hand out copies")
	}
}

package editor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/notify"
	"github.com/goliatone/go-storefront/internal/storage"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

var errQuota = errors.New("quota exceeded")

type quotaStorage struct {
	*storage.Memory
	full bool
}

func (q *quotaStorage) Set(ctx context.Context, key string, value []byte) error {
	if q.full {
		return errQuota
	}
	return q.Memory.Set(ctx, key, value)
}

func newProducts(t *testing.T) (*Products, *quotaStorage, *notify.Queue) {
	t.Helper()
	backend := &quotaStorage{Memory: storage.NewMemory(nil)}
	svc := catalog.NewService(catalog.NewStore(backend))
	queue := notify.NewQueue()
	return NewProducts(svc, WithNotifier(queue)), backend, queue
}

func validInput(title string) catalog.ProductInput {
	return catalog.ProductInput{Title: title, Category: "helicopter", Status: "draft"}
}

func lastNotification(t *testing.T, queue *notify.Queue) notify.Notification {
	t.Helper()
	items := queue.List()
	if len(items) == 0 {
		t.Fatal("expected a notification")
	}
	return items[len(items)-1]
}

func TestWorkspaceAppliesSuccessfulChanges(t *testing.T) {
	ctx := context.Background()
	ws, _, queue := newProducts(t)

	created, err := ws.Create(ctx, validInput("H125"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if items := ws.Items(); len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("expected created product in working copy, got %+v", items)
	}
	if n := lastNotification(t, queue); n.Level != interfaces.NotificationSuccess {
		t.Fatalf("expected success notification, got %+v", n)
	}

	input := validInput("H125 Ecureuil")
	input.Slug = created.Slug
	if _, err := ws.Update(ctx, created.ID, input); err != nil {
		t.Fatalf("update: %v", err)
	}
	if found, ok := ws.Find(created.ID); !ok || found.Title != "H125 Ecureuil" {
		t.Fatalf("expected updated title, got %+v", found)
	}

	if err := ws.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(ws.Items()) != 0 {
		t.Fatal("expected working copy to be empty after delete")
	}
}

func TestWorkspaceLeavesStateOnStorageFailure(t *testing.T) {
	ctx := context.Background()
	ws, backend, queue := newProducts(t)

	created, err := ws.Create(ctx, validInput("R44"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	backend.full = true

	if _, err := ws.Create(ctx, validInput("R66")); !errors.Is(err, errQuota) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if err := ws.Delete(ctx, created.ID); !errors.Is(err, errQuota) {
		t.Fatalf("expected quota error, got %v", err)
	}

	items := ws.Items()
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("expected working copy untouched, got %+v", items)
	}
	n := lastNotification(t, queue)
	if n.Level != interfaces.NotificationError || n.Title != "Could not delete product" {
		t.Fatalf("unexpected notification %+v", n)
	}

	if !queue.Dismiss(n.ID) {
		t.Fatal("expected failure notification to be dismissible")
	}
}

func TestWorkspaceReportsValidationFields(t *testing.T) {
	ws, _, queue := newProducts(t)

	if _, err := ws.Create(context.Background(), catalog.ProductInput{Title: "No category"}); err == nil {
		t.Fatal("expected validation error")
	}
	n := lastNotification(t, queue)
	if !strings.HasPrefix(n.Message, "Please fix: ") || !strings.Contains(n.Message, "category") {
		t.Fatalf("expected field level message, got %q", n.Message)
	}
	if len(ws.Items()) != 0 {
		t.Fatal("expected nothing added to the working copy")
	}
}

func TestWorkspaceLoad(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory(nil)
	svc := catalog.NewService(catalog.NewStore(backend))
	if _, err := svc.CreatePatchNote(ctx, catalog.PatchNoteInput{Title: "Initial", Version: "1.0"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ws := NewPatchNotes(svc)
	if err := ws.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if items := ws.Items(); len(items) != 1 || items[0].Title != "Initial" {
		t.Fatalf("expected loaded notes, got %+v", items)
	}
}

func TestDescribe(t *testing.T) {
	notFound := &catalog.NotFoundError{Resource: "patch_note", Key: "x"}
	if got := Describe(notFound); got != "The patch note no longer exists. Reload and try again." {
		t.Fatalf("unexpected not found message %q", got)
	}
	if got := Describe(catalog.ErrSlugExists); got != "Another entry already uses this slug." {
		t.Fatalf("unexpected conflict message %q", got)
	}
	if Describe(nil) != "" {
		t.Fatal("expected empty description for nil")
	}
}

package catalogcmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/storage"
)

type recordingRegistry struct {
	Handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

func newService() catalog.Service {
	return catalog.NewService(catalog.NewStore(storage.NewMemory(nil)))
}

func TestCreateProductHandlerStoresResult(t *testing.T) {
	ctx := context.Background()
	service := newService()
	handler := NewCreateProductHandler(service, nil)

	var created catalog.Product
	err := handler.Execute(ctx, CreateProductCommand{
		ProductFields: ProductFields{Title: "DC-3 Legacy", Category: "vintage", PriceCents: 1999},
		Result:        &created,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if created.ID == "" || created.Slug != "dc-3-legacy" {
		t.Fatalf("expected stored product in result, got %+v", created)
	}

	stored, _ := service.GetProduct(ctx, created.ID)
	if stored == nil || stored.Title != "DC-3 Legacy" {
		t.Fatalf("expected product persisted, got %+v", stored)
	}
}

func TestCreateProductHandlerRejectsBlankMessage(t *testing.T) {
	err := NewCreateProductHandler(newService(), nil).Execute(context.Background(), CreateProductCommand{
		ProductFields: ProductFields{Title: "  "},
	})
	if !goerrors.IsValidation(err) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestUpdateAndDeleteProductHandlers(t *testing.T) {
	ctx := context.Background()
	service := newService()
	created, err := service.CreateProduct(ctx, catalog.ProductInput{Title: "Bonanza", Category: "ga"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	var updated catalog.Product
	err = NewUpdateProductHandler(service, nil).Execute(ctx, UpdateProductCommand{
		ID:            created.ID,
		ProductFields: ProductFields{Slug: created.Slug, Title: "Bonanza G36", Category: "ga", Status: "published"},
		Result:        &updated,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Bonanza G36" || !updated.Published() {
		t.Fatalf("unexpected update result %+v", updated)
	}

	deleteHandler := NewDeleteProductHandler(service, nil)
	if err := deleteHandler.Execute(ctx, DeleteProductCommand{ID: created.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = deleteHandler.Execute(ctx, DeleteProductCommand{ID: created.ID})
	if !goerrors.IsNotFound(err) {
		t.Fatalf("expected not found category to pass through, got %v", err)
	}
	var notFound *catalog.NotFoundError
	if !errors.As(err, &notFound) || notFound.Key != created.ID {
		t.Fatalf("expected NotFoundError for %s, got %v", created.ID, err)
	}
}

func TestPatchNoteHandlers(t *testing.T) {
	ctx := context.Background()
	service := newService()

	var note catalog.PatchNote
	err := NewCreatePatchNoteHandler(service, nil).Execute(ctx, CreatePatchNoteCommand{
		PatchNoteFields: PatchNoteFields{Title: "Spring update", Version: "2.0", Status: "published"},
		Result:          &note,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.ReleasedAt == nil {
		t.Fatal("expected published note to receive a release date")
	}

	err = NewUpdatePatchNoteHandler(service, nil).Execute(ctx, UpdatePatchNoteCommand{
		ID:              note.ID,
		PatchNoteFields: PatchNoteFields{Slug: note.Slug, Title: "Spring update", Version: "2.0.1", Status: "published"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	err = NewCreatePatchNoteHandler(service, nil).Execute(ctx, CreatePatchNoteCommand{
		PatchNoteFields: PatchNoteFields{Slug: note.Slug, Title: "Duplicate", Version: "1"},
	})
	if !goerrors.IsCategory(err, goerrors.CategoryConflict) || !errors.Is(err, catalog.ErrSlugExists) {
		t.Fatalf("expected slug conflict, got %v", err)
	}

	if err := NewDeletePatchNoteHandler(service, nil).Execute(ctx, DeletePatchNoteCommand{ID: note.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := NewDeletePatchNoteHandler(service, nil).Execute(ctx, DeletePatchNoteCommand{}); !goerrors.IsValidation(err) {
		t.Fatalf("expected validation error for blank id, got %v", err)
	}
}

func TestRegisterCatalogCommands(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterCatalogCommands(reg, newService(), nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.Handlers) != 6 {
		t.Fatalf("expected six handlers registered, got %d", len(reg.Handlers))
	}
	if reg.Handlers[0] != any(set.CreateProduct) {
		t.Fatalf("expected create product handler first, got %#v", reg.Handlers[0])
	}

	if _, err := RegisterCatalogCommands(nil, nil, nil); !errors.Is(err, ErrServiceRequired) {
		t.Fatalf("expected ErrServiceRequired, got %v", err)
	}

	failing := &recordingRegistry{err: errors.New("registry closed")}
	if _, err := RegisterCatalogCommands(failing, newService(), nil); err == nil {
		t.Fatal("expected registry error to propagate")
	}
}

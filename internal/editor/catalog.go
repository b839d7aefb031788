package editor

import (
	"context"

	"github.com/goliatone/go-storefront/internal/catalog"
)

// Products is the product editing workspace.
type Products = Workspace[catalog.Product, catalog.ProductInput]

// PatchNotes is the patch note editing workspace.
type PatchNotes = Workspace[catalog.PatchNote, catalog.PatchNoteInput]

// NewProducts edits products through svc.
func NewProducts(svc catalog.Service, opts ...Option) *Products {
	return New[catalog.Product, catalog.ProductInput]("product", productBackend{svc}, func(p catalog.Product) string { return p.ID }, opts...)
}

// NewPatchNotes edits patch notes through svc.
func NewPatchNotes(svc catalog.Service, opts ...Option) *PatchNotes {
	return New[catalog.PatchNote, catalog.PatchNoteInput]("patch note", patchNoteBackend{svc}, func(n catalog.PatchNote) string { return n.ID }, opts...)
}

type productBackend struct{ svc catalog.Service }

func (b productBackend) List(ctx context.Context) ([]catalog.Product, error) {
	return b.svc.ListProducts(ctx)
}

func (b productBackend) Create(ctx context.Context, input catalog.ProductInput) (catalog.Product, error) {
	return b.svc.CreateProduct(ctx, input)
}

func (b productBackend) Update(ctx context.Context, id string, input catalog.ProductInput) (catalog.Product, error) {
	return b.svc.UpdateProduct(ctx, id, input)
}

func (b productBackend) Delete(ctx context.Context, id string) error {
	return b.svc.DeleteProduct(ctx, id)
}

type patchNoteBackend struct{ svc catalog.Service }

func (b patchNoteBackend) List(ctx context.Context) ([]catalog.PatchNote, error) {
	return b.svc.ListPatchNotes(ctx)
}

func (b patchNoteBackend) Create(ctx context.Context, input catalog.PatchNoteInput) (catalog.PatchNote, error) {
	return b.svc.CreatePatchNote(ctx, input)
}

func (b patchNoteBackend) Update(ctx context.Context, id string, input catalog.PatchNoteInput) (catalog.PatchNote, error) {
	return b.svc.UpdatePatchNote(ctx, id, input)
}

func (b patchNoteBackend) Delete(ctx context.Context, id string) error {
	return b.svc.DeletePatchNote(ctx, id)
}

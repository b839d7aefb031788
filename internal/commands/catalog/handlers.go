package catalogcmd

import (
	"context"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/commands"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

var (
	_ command.Commander[CreateProductCommand]   = (*Handler[CreateProductCommand])(nil)
	_ command.Commander[DeletePatchNoteCommand] = (*Handler[DeletePatchNoteCommand])(nil)
)

// Handler adapts a catalog service call to go-command.
type Handler[T command.Message] struct {
	inner *commands.Handler[T]
}

// Execute satisfies command.Commander[T].
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	return h.inner.Execute(ctx, msg)
}

func newHandler[T command.Message](exec command.CommandFunc[T], logger interfaces.Logger, operation string, fields func(T) map[string]any, opts []commands.HandlerOption[T]) *Handler[T] {
	handlerOpts := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithMessageFields(fields),
		commands.WithTelemetry(commands.DefaultTelemetry[T](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	return &Handler[T]{inner: commands.NewHandler(exec, handlerOpts...)}
}

// NewCreateProductHandler creates products through service.
func NewCreateProductHandler(service catalog.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateProductCommand]) *Handler[CreateProductCommand] {
	exec := func(ctx context.Context, msg CreateProductCommand) error {
		created, err := service.CreateProduct(ctx, msg.input())
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = created
		}
		return nil
	}
	fields := func(msg CreateProductCommand) map[string]any {
		return map[string]any{"title": msg.Title, "slug": msg.Slug}
	}
	return newHandler[CreateProductCommand](exec, logger, "catalog.product.create", fields, opts)
}

// NewUpdateProductHandler updates products through service.
func NewUpdateProductHandler(service catalog.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateProductCommand]) *Handler[UpdateProductCommand] {
	exec := func(ctx context.Context, msg UpdateProductCommand) error {
		updated, err := service.UpdateProduct(ctx, msg.ID, msg.input())
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = updated
		}
		return nil
	}
	fields := func(msg UpdateProductCommand) map[string]any {
		return map[string]any{"id": msg.ID, "slug": msg.Slug}
	}
	return newHandler[UpdateProductCommand](exec, logger, "catalog.product.update", fields, opts)
}

// NewDeleteProductHandler deletes products through service.
func NewDeleteProductHandler(service catalog.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteProductCommand]) *Handler[DeleteProductCommand] {
	exec := func(ctx context.Context, msg DeleteProductCommand) error {
		return service.DeleteProduct(ctx, msg.ID)
	}
	fields := func(msg DeleteProductCommand) map[string]any {
		return map[string]any{"id": msg.ID}
	}
	return newHandler[DeleteProductCommand](exec, logger, "catalog.product.delete", fields, opts)
}

// NewCreatePatchNoteHandler creates patch notes through service.
func NewCreatePatchNoteHandler(service catalog.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreatePatchNoteCommand]) *Handler[CreatePatchNoteCommand] {
	exec := func(ctx context.Context, msg CreatePatchNoteCommand) error {
		created, err := service.CreatePatchNote(ctx, msg.input())
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = created
		}
		return nil
	}
	fields := func(msg CreatePatchNoteCommand) map[string]any {
		return map[string]any{"title": msg.Title, "version": msg.Version, "product_id": msg.ProductID}
	}
	return newHandler[CreatePatchNoteCommand](exec, logger, "catalog.patch_note.create", fields, opts)
}

// NewUpdatePatchNoteHandler updates patch notes through service.
func NewUpdatePatchNoteHandler(service catalog.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdatePatchNoteCommand]) *Handler[UpdatePatchNoteCommand] {
	exec := func(ctx context.Context, msg UpdatePatchNoteCommand) error {
		updated, err := service.UpdatePatchNote(ctx, msg.ID, msg.input())
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = updated
		}
		return nil
	}
	fields := func(msg UpdatePatchNoteCommand) map[string]any {
		return map[string]any{"id": msg.ID, "version": msg.Version}
	}
	return newHandler[UpdatePatchNoteCommand](exec, logger, "catalog.patch_note.update", fields, opts)
}

// NewDeletePatchNoteHandler deletes patch notes through service.
func NewDeletePatchNoteHandler(service catalog.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeletePatchNoteCommand]) *Handler[DeletePatchNoteCommand] {
	exec := func(ctx context.Context, msg DeletePatchNoteCommand) error {
		return service.DeletePatchNote(ctx, msg.ID)
	}
	fields := func(msg DeletePatchNoteCommand) map[string]any {
		return map[string]any{"id": msg.ID}
	}
	return newHandler[DeletePatchNoteCommand](exec, logger, "catalog.patch_note.delete", fields, opts)
}

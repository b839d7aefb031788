package catalogcmd

import (
	"errors"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/commands"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// ErrServiceRequired is returned when registration is attempted without a
// catalog service.
var ErrServiceRequired = errors.New("catalog command registration: service is nil")

// CommandRegistry is the registration contract expected when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the catalog command handlers.
type HandlerSet struct {
	CreateProduct   *Handler[CreateProductCommand]
	UpdateProduct   *Handler[UpdateProductCommand]
	DeleteProduct   *Handler[DeleteProductCommand]
	CreatePatchNote *Handler[CreatePatchNoteCommand]
	UpdatePatchNote *Handler[UpdatePatchNoteCommand]
	DeletePatchNote *Handler[DeletePatchNoteCommand]
}

// All returns the handlers in registration order.
func (s *HandlerSet) All() []any {
	return []any{
		s.CreateProduct,
		s.UpdateProduct,
		s.DeleteProduct,
		s.CreatePatchNote,
		s.UpdatePatchNote,
		s.DeletePatchNote,
	}
}

// RegisterCatalogCommands builds every catalog handler and registers them with
// reg when it is non-nil.
func RegisterCatalogCommands(reg CommandRegistry, service catalog.Service, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	if service == nil {
		return nil, ErrServiceRequired
	}
	logger := commands.CommandLogger(provider, "catalog")

	set := &HandlerSet{
		CreateProduct:   NewCreateProductHandler(service, logger),
		UpdateProduct:   NewUpdateProductHandler(service, logger),
		DeleteProduct:   NewDeleteProductHandler(service, logger),
		CreatePatchNote: NewCreatePatchNoteHandler(service, logger),
		UpdatePatchNote: NewUpdatePatchNoteHandler(service, logger),
		DeletePatchNote: NewDeletePatchNoteHandler(service, logger),
	}
	if reg != nil {
		for _, handler := range set.All() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

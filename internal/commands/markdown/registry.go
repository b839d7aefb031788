package markdowncmd

import (
	"errors"

	"github.com/goliatone/go-storefront/internal/commands"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// RegisterMarkdownCommands builds the import handler and registers it with
// reg when it is non-nil.
func RegisterMarkdownCommands(reg CommandRegistry, service DirectoryImporter, provider interfaces.LoggerProvider, opts ...commands.HandlerOption[ImportNotesCommand]) (*ImportNotesHandler, error) {
	if service == nil {
		return nil, errors.New("markdown command registration: service is nil")
	}
	handler := NewImportNotesHandler(service, commands.CommandLogger(provider, "markdown"), opts...)
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}

package markdowncmd

import (
	"context"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-storefront/internal/commands"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/markdown"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

const importOperation = "markdown.import_notes"

var _ command.Commander[ImportNotesCommand] = (*ImportNotesHandler)(nil)

// DirectoryImporter is the markdown service slice the handler needs.
type DirectoryImporter interface {
	ImportDirectory(ctx context.Context, dir string, opts markdown.ImportOptions) (*markdown.ImportResult, error)
}

// ImportNotesHandler runs patch note imports through the shared command handler.
type ImportNotesHandler struct {
	inner *commands.Handler[ImportNotesCommand]
}

// NewImportNotesHandler creates a handler bound to service.
func NewImportNotesHandler(service DirectoryImporter, logger interfaces.Logger, opts ...commands.HandlerOption[ImportNotesCommand]) *ImportNotesHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg ImportNotesCommand) error {
		result, err := service.ImportDirectory(ctx, msg.Directory, markdown.ImportOptions{DryRun: msg.DryRun})
		if msg.Result != nil && result != nil {
			*msg.Result = *result
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count":   len(result.Created),
				"updated_count":   len(result.Updated),
				"unchanged_count": len(result.Unchanged),
				"failed_count":    len(result.Failed),
				"dry_run":         msg.DryRun,
			}).Info("markdown.command.import_notes.completed")
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportNotesCommand]{
		commands.WithLogger[ImportNotesCommand](baseLogger),
		commands.WithOperation[ImportNotesCommand](importOperation),
		commands.WithMessageFields(func(msg ImportNotesCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportNotesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportNotesHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportNotesCommand].
func (h *ImportNotesHandler) Execute(ctx context.Context, msg ImportNotesCommand) error {
	return h.inner.Execute(ctx, msg)
}

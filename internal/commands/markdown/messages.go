package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-storefront/internal/markdown"
)

const importNotesMessageType = "storefront.markdown.import_notes"

// ImportNotesCommand imports every Markdown patch note found under Directory.
type ImportNotesCommand struct {
	// Directory is relative to the markdown service base path.
	Directory string `json:"directory"`
	// DryRun reports planned changes without writing.
	DryRun bool `json:"dry_run,omitempty"`
	// Result, when set, receives the import outcome.
	Result *markdown.ImportResult `json:"-"`
}

// Type implements command.Message.
func (ImportNotesCommand) Type() string { return importNotesMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportNotesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("storefront.markdown.import_notes.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

package interfaces

import "context"

// Clipboard receives serialized content for "copy as HTML/Markdown" actions.
// Writes may fail (permission denied, closed writer); callers are expected to
// report the failure rather than abort.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

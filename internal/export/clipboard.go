package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

var (
	ErrClipboardUnavailable = errors.New("export: clipboard unavailable")
	ErrClipboardWrite       = errors.New("export: clipboard write failed")
)

// Format selects a serialiser.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Serialize runs the serialiser for format.
func Serialize(format Format, doc blocks.Document) (string, error) {
	switch format {
	case FormatHTML:
		return HTML(doc), nil
	case FormatMarkdown, "md":
		return Markdown(doc), nil
	default:
		return "", fmt.Errorf("export: unknown format %q", format)
	}
}

// Copier hands serialised documents to a clipboard and reports the outcome
// through a notifier. A failing clipboard never panics the caller.
type Copier struct {
	clipboard interfaces.Clipboard
	notifier  interfaces.Notifier
	logger    interfaces.Logger
}

// CopierOption configures a Copier.
type CopierOption func(*Copier)

// WithNotifier surfaces copy results to the operator.
func WithNotifier(notifier interfaces.Notifier) CopierOption {
	return func(c *Copier) {
		c.notifier = notifier
	}
}

// WithCopierLogger records clipboard failures.
func WithCopierLogger(logger interfaces.Logger) CopierOption {
	return func(c *Copier) {
		c.logger = logger
	}
}

// NewCopier constructs a copier writing to clipboard.
func NewCopier(clipboard interfaces.Clipboard, opts ...CopierOption) *Copier {
	c := &Copier{clipboard: clipboard}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.logger = logging.Ensure(c.logger)
	return c
}

// CopyHTML copies the HTML serialisation of doc.
func (c *Copier) CopyHTML(ctx context.Context, doc blocks.Document) error {
	return c.Copy(ctx, FormatHTML, doc)
}

// CopyMarkdown copies the Markdown serialisation of doc.
func (c *Copier) CopyMarkdown(ctx context.Context, doc blocks.Document) error {
	return c.Copy(ctx, FormatMarkdown, doc)
}

// Copy serialises doc in format and writes it to the clipboard.
func (c *Copier) Copy(ctx context.Context, format Format, doc blocks.Document) error {
	text, err := Serialize(format, doc)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "unsupported export format").
			WithTextCode("EXPORT_FORMAT_UNKNOWN")
	}
	if err := c.write(ctx, text); err != nil {
		c.logger.Error("export.clipboard.failed", "format", format, "error", err)
		c.notify(interfaces.NotificationError, "Copy failed", fmt.Sprintf("Could not copy %s to the clipboard: %v", label(format), err))
		return goerrors.Wrap(err, goerrors.CategoryExternal, "clipboard write failed").
			WithTextCode("CLIPBOARD_WRITE_FAILED")
	}
	c.logger.Debug("export.clipboard.copied", "format", format, "bytes", len(text))
	c.notify(interfaces.NotificationSuccess, "Copied", fmt.Sprintf("%s copied to the clipboard", label(format)))
	return nil
}

func (c *Copier) write(ctx context.Context, text string) (err error) {
	if c == nil || c.clipboard == nil {
		return ErrClipboardUnavailable
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", ErrClipboardWrite, recovered)
		}
	}()
	return c.clipboard.WriteText(ctx, text)
}

func (c *Copier) notify(level interfaces.NotificationLevel, title, message string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(level, title, message)
}

func label(format Format) string {
	if format == FormatHTML {
		return "HTML"
	}
	return "Markdown"
}

// MemoryClipboard keeps the last written text. Setting Err makes writes fail.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
	Err  error
}

func (m *MemoryClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	return nil
}

// Text returns the last successfully written text.
func (m *MemoryClipboard) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// WriterClipboard writes copied text to an io.Writer such as stdout.
type WriterClipboard struct {
	w io.Writer
}

// NewWriterClipboard wraps w.
func NewWriterClipboard(w io.Writer) *WriterClipboard {
	return &WriterClipboard{w: w}
}

func (c *WriterClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil || c.w == nil {
		return ErrClipboardUnavailable
	}
	if _, err := io.WriteString(c.w, text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardWrite, err)
	}
	if text != "" && text[len(text)-1] != '\n' {
		if _, err := io.WriteString(c.w, "\n"); err != nil {
			return fmt.Errorf("%w: %v", ErrClipboardWrite, err)
		}
	}
	return nil
}

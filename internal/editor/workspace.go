package editor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Backend is the service slice a workspace edits through.
type Backend[T any, I any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, input I) (T, error)
	Update(ctx context.Context, id string, input I) (T, error)
	Delete(ctx context.Context, id string) error
}

// Workspace is the operator's working copy of one collection. Local state only
// changes after the backend call returned successfully; failures are reported
// through the notifier and leave the working copy untouched.
type Workspace[T any, I any] struct {
	label    string
	backend  Backend[T, I]
	idOf     func(T) string
	notifier interfaces.Notifier
	logger   interfaces.Logger

	mu    sync.RWMutex
	items []T
}

// Option configures a Workspace.
type Option func(*options)

type options struct {
	notifier interfaces.Notifier
	logger   interfaces.Logger
}

// WithNotifier sets where success and failure messages go.
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(o *options) {
		o.notifier = notifier
	}
}

// WithLogger sets the workspace logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New builds a workspace. label is the singular record name used in messages,
// for example "product".
func New[T any, I any](label string, backend Backend[T, I], idOf func(T) string, opts ...Option) *Workspace[T, I] {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Workspace[T, I]{
		label:    label,
		backend:  backend,
		idOf:     idOf,
		notifier: cfg.notifier,
		logger:   logging.WithFields(logging.Ensure(cfg.logger), map[string]any{"workspace": label}),
	}
}

// Items returns the working copy.
func (w *Workspace[T, I]) Items() []T {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]T(nil), w.items...)
}

// Find returns the working copy entry with id.
func (w *Workspace[T, I]) Find(id string) (T, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if index := w.indexLocked(id); index >= 0 {
		return w.items[index], true
	}
	var zero T
	return zero, false
}

// Load replaces the working copy with the backend list.
func (w *Workspace[T, I]) Load(ctx context.Context) error {
	items, err := w.backend.List(ctx)
	if err != nil {
		return w.fail("load", err)
	}
	w.mu.Lock()
	w.items = items
	w.mu.Unlock()
	w.logger.Debug("editor.loaded", "count", len(items))
	return nil
}

// Create persists input and appends the stored record.
func (w *Workspace[T, I]) Create(ctx context.Context, input I) (T, error) {
	created, err := w.backend.Create(ctx, input)
	if err != nil {
		var zero T
		return zero, w.fail("create", err)
	}
	w.mu.Lock()
	w.items = append(w.items, created)
	w.mu.Unlock()
	w.succeed(capitalize(w.label) + " created")
	return created, nil
}

// Update persists input for id and replaces the working copy entry.
func (w *Workspace[T, I]) Update(ctx context.Context, id string, input I) (T, error) {
	updated, err := w.backend.Update(ctx, id, input)
	if err != nil {
		var zero T
		return zero, w.fail("update", err)
	}
	w.mu.Lock()
	if index := w.indexLocked(w.idOf(updated)); index >= 0 {
		w.items[index] = updated
	} else {
		w.items = append(w.items, updated)
	}
	w.mu.Unlock()
	w.succeed(capitalize(w.label) + " saved")
	return updated, nil
}

// Delete removes id from the backend, then from the working copy.
func (w *Workspace[T, I]) Delete(ctx context.Context, id string) error {
	if err := w.backend.Delete(ctx, id); err != nil {
		return w.fail("delete", err)
	}
	w.mu.Lock()
	if index := w.indexLocked(id); index >= 0 {
		w.items = append(w.items[:index:index], w.items[index+1:]...)
	}
	w.mu.Unlock()
	w.succeed(capitalize(w.label) + " deleted")
	return nil
}

func (w *Workspace[T, I]) indexLocked(id string) int {
	for i := range w.items {
		if w.idOf(w.items[i]) == id {
			return i
		}
	}
	return -1
}

func (w *Workspace[T, I]) succeed(title string) {
	if w.notifier != nil {
		w.notifier.Notify(interfaces.NotificationSuccess, title, "")
	}
}

func (w *Workspace[T, I]) fail(action string, err error) error {
	w.logger.Error("editor."+action+".failed", "error", err)
	if w.notifier != nil {
		w.notifier.Notify(interfaces.NotificationError, fmt.Sprintf("Could not %s %s", action, w.label), Describe(err))
	}
	return err
}

// Describe turns a service error into an operator-readable sentence.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var notFound *catalog.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("The %s no longer exists. Reload and try again.", strings.ReplaceAll(notFound.Resource, "_", " "))
	case errors.Is(err, catalog.ErrSlugExists):
		return "Another entry already uses this slug."
	case errors.Is(err, catalog.ErrProductRequired):
		return "The selected product does not exist."
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out."
	}

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		if rich.Category == goerrors.CategoryValidation && len(rich.ValidationErrors) > 0 {
			fields := append(goerrors.ValidationErrors(nil), rich.ValidationErrors...)
			sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
			parts := make([]string, 0, len(fields))
			for _, field := range fields {
				parts = append(parts, field.Field+" "+field.Message)
			}
			return "Please fix: " + strings.Join(parts, "; ") + "."
		}
		if rich.Category == goerrors.CategoryInternal {
			return "Changes could not be saved to local storage."
		}
	}
	return err.Error()
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

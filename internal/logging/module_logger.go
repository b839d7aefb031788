package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Module names used to scope loggers. Hosts can focus or filter on them.
const (
	RootModule     = "storefront"
	BlocksModule   = "storefront.blocks"
	RenderModule   = "storefront.render"
	ExportModule   = "storefront.export"
	StorageModule  = "storefront.storage"
	CatalogModule  = "storefront.catalog"
	EditorModule   = "storefront.editor"
	MarkdownModule = "storefront.markdown"
	SiteModule     = "storefront.site"
)

// ModuleLogger resolves a logger for module from provider and tags every entry
// with a "module" field. A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = RootModule
	}

	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if resolved := provider.GetLogger(module); resolved != nil {
			logger = resolved
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// WithFields attaches fields when logger supports interfaces.FieldsLogger and
// returns logger untouched otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return fl.WithFields(copied)
}

// Ensure returns logger, or a no-op logger when nil.
func Ensure(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return noopLogger{}
	}
	return logger
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }
func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

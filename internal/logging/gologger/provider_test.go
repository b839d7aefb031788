package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-storefront/pkg/interfaces"
)

func TestNewProviderBuildsModuleLoggers(t *testing.T) {
	p, err := NewProvider(Config{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	logger := p.GetLogger("storefront.catalog")
	if logger == nil {
		t.Fatal("expected logger")
	}
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		t.Fatal("expected logger to implement interfaces.FieldsLogger")
	}
	fl.WithFields(map[string]any{"module": "storefront.catalog"}).Debug("provider.ready")
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestAdapterForwardsCalls(t *testing.T) {
	stub := &stubLogger{}
	adapted := adapt(stub)

	adapted.Info("info")
	adapted.Error("error", "key", "value")

	fields := map[string]any{"slug": "a320"}
	fl, ok := adapted.(interfaces.FieldsLogger)
	if !ok {
		t.Fatal("expected adapter to implement interfaces.FieldsLogger")
	}
	fl.WithFields(fields)
	fields["slug"] = "changed"
	if len(stub.fields) != 1 || stub.fields[0]["slug"] != "a320" {
		t.Fatalf("expected cloned fields, got %v", stub.fields)
	}

	ctx := context.Background()
	adapted.WithContext(ctx)
	if len(stub.contexts) != 1 {
		t.Fatalf("expected context to be forwarded, got %d", len(stub.contexts))
	}
	if len(stub.calls) != 2 || stub.calls[0] != "info" || stub.calls[1] != "error" {
		t.Fatalf("unexpected calls %v", stub.calls)
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var (
	_ glog.Logger       = (*stubLogger)(nil)
	_ glog.FieldsLogger = (*stubLogger)(nil)
)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	s.fields = append(s.fields, fields)
	return s
}

package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	entries *[]logEntry
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{entries: &[]logEntry{}}
}

func (l recordingLogger) record(level, msg string, args []any) {
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l recordingLogger) Trace(msg string, args ...any) { l.record("trace", msg, args) }
func (l recordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l recordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l recordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l recordingLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args) }

func (l recordingLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l recordingLogger) last(t *testing.T) logEntry {
	t.Helper()
	if len(*l.entries) == 0 {
		t.Fatal("expected a log entry")
	}
	return (*l.entries)[len(*l.entries)-1]
}

func argValue(args []any, key string) (any, bool) {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == key {
			return args[i+1], true
		}
	}
	return nil, false
}

func TestTelemetryOutcomeCarriesErrorCategory(t *testing.T) {
	err := goerrors.Wrap(errors.New("slug taken"), goerrors.CategoryConflict, "product slug exists").
		WithTextCode("SLUG_EXISTS")
	args := TelemetryInfo{Status: TelemetryStatusFailed, Error: err}.Outcome()

	if category, _ := argValue(args, "error_category"); category != "conflict" {
		t.Fatalf("expected conflict category, got %v in %v", category, args)
	}
	if code, _ := argValue(args, "error_code"); code != "SLUG_EXISTS" {
		t.Fatalf("expected text code, got %v in %v", code, args)
	}

	plain := TelemetryInfo{Status: TelemetryStatusFailed, Error: errors.New("boom")}.Outcome()
	if _, ok := argValue(plain, "error_category"); ok {
		t.Fatalf("expected no category for plain errors, got %v", plain)
	}
}

func TestDefaultTelemetryLevels(t *testing.T) {
	logger := newRecordingLogger()
	telemetry := DefaultTelemetry[testMessage](logger)
	ctx := context.Background()

	conflict := goerrors.Wrap(errors.New("slug taken"), goerrors.CategoryConflict, "product slug exists")
	internal := goerrors.Wrap(errors.New("disk full"), goerrors.CategoryInternal, "storage write failed")

	cases := []struct {
		name  string
		info  TelemetryInfo
		level string
		msg   string
	}{
		{"success", TelemetryInfo{Status: TelemetryStatusSuccess, Duration: time.Millisecond}, "info", "command.execute.success"},
		{"slow", TelemetryInfo{Status: TelemetryStatusSuccess, Duration: SlowCommandThreshold + time.Second}, "warn", "command.execute.slow"},
		{"rejected", TelemetryInfo{Status: TelemetryStatusFailed, Error: conflict}, "warn", "command.execute.rejected"},
		{"failed", TelemetryInfo{Status: TelemetryStatusFailed, Error: internal}, "error", "command.execute.failed"},
		{"context", TelemetryInfo{Status: TelemetryStatusContextError, Error: context.Canceled}, "error", "command.execute.context_error"},
	}
	for _, tc := range cases {
		telemetry(ctx, testMessage{}, tc.info)
		entry := logger.last(t)
		if entry.level != tc.level || entry.msg != tc.msg {
			t.Fatalf("%s: expected %s %s, got %s %s", tc.name, tc.level, tc.msg, entry.level, entry.msg)
		}
	}
}

func TestModuleOf(t *testing.T) {
	cases := map[string]string{
		"storefront.catalog.create_product":   "catalog",
		"storefront.markdown.import_notes":    "markdown",
		" storefront.Catalog.delete_product ": "catalog",
		"storefront.test.message":             "test",
		"billing.charge":                      "core",
		"":                                    "core",
	}
	for input, want := range cases {
		if got := ModuleOf(input); got != want {
			t.Fatalf("ModuleOf(%q): expected %q, got %q", input, want, got)
		}
	}
}

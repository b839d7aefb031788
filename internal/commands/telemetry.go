package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// SlowCommandThreshold is the duration above which a successful command is
// logged as slow. Catalog writes rewrite a whole collection, so this is the
// first signal that a collection has grown too large for its storage.
const SlowCommandThreshold = 2 * time.Second

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a command execution outcome.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Outcome returns log fields describing the result: status, and for
// categorised failures the go-errors category and text code, so a rejected
// slug ("conflict") reads differently from a failed disk write ("internal").
func (i TelemetryInfo) Outcome() []any {
	out := []any{"status", string(i.Status), "duration_ms", i.Duration.Milliseconds()}
	if i.Error == nil {
		return out
	}
	out = append(out, "error", i.Error)
	var rich *goerrors.Error
	if goerrors.As(i.Error, &rich) {
		out = append(out, "error_category", string(rich.Category))
		if rich.TextCode != "" {
			out = append(out, "error_code", rich.TextCode)
		}
		if len(rich.ValidationErrors) > 0 {
			out = append(out, "invalid_fields", len(rich.ValidationErrors))
		}
	}
	return out
}

// Telemetry is invoked after every command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs command outcomes to logger. Validation failures and
// conflicts are operator mistakes and log at warn; other failures log at
// error. Successful commands slower than SlowCommandThreshold log at warn.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = logging.Ensure(logger)
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := info.Outcome()
		switch {
		case info.Status == TelemetryStatusSuccess && info.Duration > SlowCommandThreshold:
			entry.Warn("command.execute.slow", args...)
		case info.Status == TelemetryStatusSuccess:
			entry.Info("command.execute.success", args...)
		case info.Status == TelemetryStatusContextError:
			entry.Error("command.execute.context_error", args...)
		case operatorError(info.Error):
			entry.Warn("command.execute.rejected", args...)
		default:
			entry.Error("command.execute.failed", args...)
		}
	}
}

func operatorError(err error) bool {
	return goerrors.IsValidation(err) ||
		goerrors.IsCategory(err, goerrors.CategoryConflict) ||
		goerrors.IsNotFound(err) ||
		goerrors.IsCategory(err, goerrors.CategoryBadInput)
}

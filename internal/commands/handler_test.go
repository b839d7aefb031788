package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/internal/logging"
)

type testMessage struct{}

func (testMessage) Type() string { return "storefront.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "storefront.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

type telemetryMessage struct {
	Slug string
}

func (telemetryMessage) Type() string { return "storefront.test.telemetry" }

func TestHandlerReportsTelemetry(t *testing.T) {
	var got TelemetryInfo
	h := NewHandler[telemetryMessage](func(ctx context.Context, msg telemetryMessage) error {
		return nil
	},
		WithOperation[telemetryMessage]("catalog.test"),
		WithMessageFields(func(msg telemetryMessage) map[string]any {
			return map[string]any{"slug": msg.Slug}
		}),
		WithTelemetry(func(ctx context.Context, msg telemetryMessage, info TelemetryInfo) {
			got = info
		}),
	)

	if err := h.Execute(context.Background(), telemetryMessage{Slug: "a320"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Status != TelemetryStatusSuccess || got.Operation != "catalog.test" {
		t.Fatalf("unexpected telemetry %+v", got)
	}
	if got.Command != "storefront.test.telemetry" || got.Fields["slug"] != "a320" {
		t.Fatalf("expected message fields in telemetry, got %+v", got.Fields)
	}
}

func TestHandlerKeepsServiceCategories(t *testing.T) {
	conflict := goerrors.New("slug taken", goerrors.CategoryConflict)
	var status TelemetryStatus
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return conflict
	}, WithTelemetry(func(ctx context.Context, msg testMessage, info TelemetryInfo) {
		status = info.Status
	}))

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryConflict) {
		t.Fatalf("expected conflict category to pass through, got %v", err)
	}
	if status != TelemetryStatusFailed {
		t.Fatalf("expected failed telemetry status, got %q", status)
	}
}

func TestHandlerCarriesFieldsOnContext(t *testing.T) {
	var fields map[string]any
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		fields = logging.ContextFields(ctx)
		return nil
	}, WithOperation[testMessage]("catalog.create_product"))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if fields["command"] != "storefront.test.message" || fields["operation"] != "catalog.create_product" || fields["command_module"] != "test" {
		t.Fatalf("expected command fields on context, got %+v", fields)
	}
}

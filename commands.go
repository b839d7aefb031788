package storefront

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	catalogcmd "github.com/goliatone/go-storefront/internal/commands/catalog"
	markdowncmd "github.com/goliatone/go-storefront/internal/commands/markdown"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed handlers and any dispatcher
// subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe tears down every dispatcher subscription.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// RegisterCommands builds the catalog and markdown command handlers and
// registers them with the registry and dispatcher from opts.
func (m *Module) RegisterCommands(opts RegistrationOptions) (*RegistrationResult, error) {
	provider := opts.LoggerProvider
	if provider == nil {
		provider = m.provider
	}

	result := &RegistrationResult{}
	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	set, err := catalogcmd.RegisterCatalogCommands(nil, m.catalog, provider)
	if err != nil {
		return result, err
	}
	for _, handler := range set.All() {
		register(handler)
	}

	if svc, err := m.Markdown(); err != nil {
		m.logger.Debug("storefront.commands.markdown.skipped", "error", err)
	} else {
		handler, err := markdowncmd.RegisterMarkdownCommands(nil, svc, provider)
		if err != nil {
			errs = errors.Join(errs, err)
		} else {
			register(handler)
		}
	}

	return result, errs
}

// GlobalDispatcher subscribes storefront handlers to the go-command package
// dispatcher, retrying failed executions MaxRetries times.
type GlobalDispatcher struct {
	MaxRetries int
}

// RegisterCommand implements CommandDispatcher.
func (d GlobalDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	retries := runner.WithMaxRetries(d.MaxRetries)
	switch h := handler.(type) {
	case *catalogcmd.Handler[catalogcmd.CreateProductCommand]:
		return dispatcher.SubscribeCommand(h, retries), nil
	case *catalogcmd.Handler[catalogcmd.UpdateProductCommand]:
		return dispatcher.SubscribeCommand(h, retries), nil
	case *catalogcmd.Handler[catalogcmd.DeleteProductCommand]:
		return dispatcher.SubscribeCommand(h, retries), nil
	case *catalogcmd.Handler[catalogcmd.CreatePatchNoteCommand]:
		return dispatcher.SubscribeCommand(h, retries), nil
	case *catalogcmd.Handler[catalogcmd.UpdatePatchNoteCommand]:
		return dispatcher.SubscribeCommand(h, retries), nil
	case *catalogcmd.Handler[catalogcmd.DeletePatchNoteCommand]:
		return dispatcher.SubscribeCommand(h, retries), nil
	case *markdowncmd.ImportNotesHandler:
		return dispatcher.SubscribeCommand(h, retries), nil
	default:
		return nil, fmt.Errorf("storefront: unsupported command handler %T", handler)
	}
}

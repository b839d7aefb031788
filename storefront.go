// Package storefront wires the flight-sim add-on storefront: a content block
// model with renderer and exporters, listing windows, and a small CMS over a
// pluggable key/value store.
package storefront

import (
	"context"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/editor"
	"github.com/goliatone/go-storefront/internal/export"
	"github.com/goliatone/go-storefront/internal/links"
	"github.com/goliatone/go-storefront/internal/listing"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/logging/console"
	"github.com/goliatone/go-storefront/internal/logging/gologger"
	"github.com/goliatone/go-storefront/internal/markdown"
	"github.com/goliatone/go-storefront/internal/notify"
	"github.com/goliatone/go-storefront/internal/render"
	"github.com/goliatone/go-storefront/internal/site"
	"github.com/goliatone/go-storefront/internal/storage"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// CatalogService exports the catalog service contract.
type CatalogService = catalog.Service

// Product exports the product record.
type Product = catalog.Product

// PatchNote exports the patch note record.
type PatchNote = catalog.PatchNote

// ProductInput exports the product form input.
type ProductInput = catalog.ProductInput

// PatchNoteInput exports the patch note form input.
type PatchNoteInput = catalog.PatchNoteInput

// Document exports the content block document.
type Document = blocks.Document

// Criteria exports the listing filter state.
type Criteria = listing.Criteria

// Option configures a Module.
type Option func(*Module)

// WithLoggerProvider replaces the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// WithStorage skips storage.Open and uses adapter for both collections.
func WithStorage(adapter interfaces.StorageAdapter) Option {
	return func(m *Module) {
		m.adapter = adapter
	}
}

// WithClock overrides the clock used to stamp records and notifications.
func WithClock(clock func() time.Time) Option {
	return func(m *Module) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(generator func() string) Option {
	return func(m *Module) {
		m.newID = generator
	}
}

// Module is the top level storefront runtime façade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
	now      func() time.Time
	newID    func() string

	adapter         interfaces.StorageAdapter
	closer          interfaces.ClosableStorage
	storageProvider string

	store         *catalog.Store
	catalog       catalog.Service
	notifications *notify.Queue
	renderer      *render.Renderer
	preview       *markdown.GoldmarkParser
	links         *links.Resolver
	catalogView   *site.Catalog
	dispatch      *site.Dispatch
	products      *editor.Products
	patchNotes    *editor.PatchNotes

	markdownOnce sync.Once
	markdown     *markdown.Service
	markdownErr  error
}

// New validates cfg, selects the storage adapter and builds every service.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Module{
		cfg: cfg,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.provider == nil {
		provider, err := newLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}
	m.logger = logging.ModuleLogger(m.provider, "storefront")

	if m.adapter == nil {
		opened, err := storage.Open(ctx, cfg.Storage, logging.ModuleLogger(m.provider, "storefront.storage"))
		if err != nil {
			return nil, err
		}
		m.adapter = opened.Adapter
		m.closer = opened.Adapter
		m.storageProvider = opened.Provider
	} else {
		m.storageProvider = "custom"
	}

	if err := m.build(); err != nil {
		_ = m.Close()
		return nil, err
	}

	if cfg.Features.Seed {
		if _, err := m.Seed(ctx); err != nil {
			_ = m.Close()
			return nil, err
		}
	}
	m.logger.Info("storefront.module.ready", "storage", m.storageProvider)
	return m, nil
}

func (m *Module) build() error {
	storeOpts := []catalog.StoreOption{
		catalog.WithStoreClock(m.now),
		catalog.WithStoreLogger(logging.ModuleLogger(m.provider, "storefront.catalog")),
	}
	if m.newID != nil {
		storeOpts = append(storeOpts, catalog.WithStoreIDGenerator(m.newID))
	}
	m.store = catalog.NewStore(m.adapter, storeOpts...)
	m.catalog = catalog.NewService(m.store,
		catalog.WithClock(m.now),
		catalog.WithLogger(logging.ModuleLogger(m.provider, "storefront.catalog")),
	)

	m.notifications = notify.NewQueue(
		notify.WithClock(m.now),
		notify.WithLogger(logging.ModuleLogger(m.provider, "storefront.notify")),
	)
	m.renderer = render.New(render.WithLogger(logging.ModuleLogger(m.provider, "storefront.render")))
	m.preview = markdown.NewGoldmarkParser(m.parseOptions())

	resolver, err := links.NewResolver(m.cfg.Links)
	if err != nil {
		return err
	}
	m.links = resolver

	siteOpts := []site.Option{
		site.WithRenderer(m.renderer),
		site.WithLogger(logging.ModuleLogger(m.provider, "storefront.site")),
	}
	m.catalogView = site.NewCatalog(m.catalog, m.links, m.cfg.Listing.ItemsPerPage, siteOpts...)
	m.dispatch = site.NewDispatch(m.catalog, m.links, m.cfg.Listing.InitialCount, m.cfg.Listing.LoadMoreIncrement, siteOpts...)

	editorOpts := []editor.Option{
		editor.WithNotifier(m.notifications),
		editor.WithLogger(logging.ModuleLogger(m.provider, "storefront.editor")),
	}
	m.products = editor.NewProducts(m.catalog, editorOpts...)
	m.patchNotes = editor.NewPatchNotes(m.catalog, editorOpts...)
	return nil
}

func newLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
	default:
		level, _ := console.ParseLevel(cfg.Logging.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	}
}

// Config returns the validated configuration.
func (m *Module) Config() Config { return m.cfg }

// Logger returns a module logger named storefront.<name>.
func (m *Module) Logger(name string) interfaces.Logger {
	name = strings.TrimSpace(name)
	if name == "" {
		return m.logger
	}
	return logging.ModuleLogger(m.provider, "storefront."+name)
}

// StorageProvider reports which storage backend served the module.
func (m *Module) StorageProvider() string { return m.storageProvider }

// Catalog returns the product and patch note service.
func (m *Module) Catalog() CatalogService { return m.catalog }

// Notifications returns the operator notification queue.
func (m *Module) Notifications() *notify.Queue { return m.notifications }

// Preview renders the Markdown export of doc to HTML with the configured
// Markdown options.
func (m *Module) Preview(doc blocks.Document) (template.HTML, error) {
	return m.preview.Preview(doc)
}

func (m *Module) parseOptions() markdown.ParseOptions {
	return markdown.ParseOptions{
		Extensions: m.cfg.Markdown.Extensions,
		HardWraps:  m.cfg.Markdown.HardWraps,
		SafeMode:   m.cfg.Markdown.SafeMode,
	}
}

// Renderer returns the content block renderer.
func (m *Module) Renderer() *render.Renderer { return m.renderer }

// Links returns the canonical URL resolver.
func (m *Module) Links() *links.Resolver { return m.links }

// CatalogView returns the paged product listing.
func (m *Module) CatalogView() *site.Catalog { return m.catalogView }

// Dispatch returns the patch note feed.
func (m *Module) Dispatch() *site.Dispatch { return m.dispatch }

// Products returns the product editor workspace.
func (m *Module) Products() *editor.Products { return m.products }

// PatchNotes returns the patch note editor workspace.
func (m *Module) PatchNotes() *editor.PatchNotes { return m.patchNotes }

// Copier returns a clipboard copier that reports failures on the
// notification queue.
func (m *Module) Copier(clipboard interfaces.Clipboard) *export.Copier {
	return export.NewCopier(clipboard,
		export.WithNotifier(m.notifications),
		export.WithCopierLogger(logging.ModuleLogger(m.provider, "storefront.export")),
	)
}

// Markdown returns the patch note import service rooted at
// Config.Markdown.BasePath. The directory must exist on first use.
func (m *Module) Markdown() (*markdown.Service, error) {
	m.markdownOnce.Do(func() {
		m.markdown, m.markdownErr = markdown.NewService(markdown.Config{
			BasePath:  m.cfg.Markdown.BasePath,
			Pattern:   m.cfg.Markdown.Pattern,
			Recursive: m.cfg.Markdown.Recursive,
			Parser:    m.parseOptions(),
		}, m.catalog, logging.ModuleLogger(m.provider, "storefront.markdown"))
	})
	return m.markdown, m.markdownErr
}

// Close releases the storage adapter when the module opened it.
func (m *Module) Close() error {
	if m == nil || m.closer == nil {
		return nil
	}
	err := m.closer.Close()
	m.closer = nil
	if err != nil {
		m.logger.Warn("storefront.module.close.failed", "error", err)
	}
	return err
}

// Package site composes the public storefront views: the product catalog with
// a paged listing and the dispatch feed with a load-more window.
package site

import (
	"context"
	"html/template"
	"strings"
	"sync"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/links"
	"github.com/goliatone/go-storefront/internal/listing"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/render"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Option configures the site views.
type Option func(*options)

type options struct {
	renderer *render.Renderer
	logger   interfaces.Logger
}

// WithRenderer overrides the block renderer used by detail views.
func WithRenderer(renderer *render.Renderer) Option {
	return func(o *options) {
		if renderer != nil {
			o.renderer = renderer
		}
	}
}

// WithLogger sets the logger used for view failures.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.logger = logging.Ensure(o.logger)
	if o.renderer == nil {
		o.renderer = render.New(render.WithLogger(o.logger))
	}
	return o
}

// ProductCard is a catalog listing entry.
type ProductCard struct {
	catalog.Product
	URL         string
	CategoryURL string
}

// CatalogPage is one read of the catalog listing.
type CatalogPage struct {
	Criteria   listing.Criteria
	Items      []ProductCard
	Total      int
	Page       int
	Pages      int
	HasNext    bool
	HasPrev    bool
	Categories []string
	Tags       []string
}

// ProductDetail is the product page model.
type ProductDetail struct {
	Product     catalog.Product
	URL         string
	Units       []render.Unit
	Description template.HTML
	PatchNotes  []DispatchEntry
}

// Catalog lists published products through a filter-bound pager. Changing
// the criteria returns the listing to page 1.
type Catalog struct {
	mu       sync.Mutex
	service  catalog.Service
	links    *links.Resolver
	pager    *listing.BoundPager
	criteria listing.Criteria
	opts     options
}

// NewCatalog constructs the catalog view with perPage products per page.
func NewCatalog(service catalog.Service, resolver *links.Resolver, perPage int, opts ...Option) *Catalog {
	criteria := listing.Criteria{}
	return &Catalog{
		service:  service,
		links:    resolver,
		pager:    listing.NewBoundPager(perPage, criteria.Key()),
		criteria: criteria,
		opts:     buildOptions(opts),
	}
}

// Criteria returns the active filter.
func (c *Catalog) Criteria() listing.Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// View returns the current page under the active filter.
func (c *Catalog) View(ctx context.Context) (CatalogPage, error) {
	return c.read(ctx, nil)
}

// Filter replaces the active criteria and returns the resulting page.
func (c *Catalog) Filter(ctx context.Context, criteria listing.Criteria) (CatalogPage, error) {
	c.mu.Lock()
	c.criteria = criteria
	c.mu.Unlock()
	return c.read(ctx, nil)
}

// GoTo moves to page n, clamped to the available pages.
func (c *Catalog) GoTo(ctx context.Context, n int) (CatalogPage, error) {
	return c.read(ctx, func(p *listing.Pager) { p.GoTo(n) })
}

// Next moves one page forward.
func (c *Catalog) Next(ctx context.Context) (CatalogPage, error) {
	return c.read(ctx, func(p *listing.Pager) { p.Next() })
}

// Prev moves one page back.
func (c *Catalog) Prev(ctx context.Context) (CatalogPage, error) {
	return c.read(ctx, func(p *listing.Pager) { p.Prev() })
}

func (c *Catalog) read(ctx context.Context, move func(*listing.Pager)) (CatalogPage, error) {
	products, err := c.service.PublishedProducts(ctx)
	if err != nil {
		c.opts.logger.Error("site.catalog.load.failed", "error", err)
		return CatalogPage{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if move != nil {
		filtered := listing.Apply(products, listing.Predicates[catalog.Product](c.criteria)...)
		c.pager.Sync(c.criteria.Key())
		c.pager.Pager().Observe(len(filtered))
		move(c.pager.Pager())
	}

	slice := listing.PageView(c.pager, c.criteria, products)
	page := CatalogPage{
		Criteria:   c.criteria,
		Items:      make([]ProductCard, 0, len(slice.Items)),
		Total:      slice.Total,
		Page:       slice.Page,
		Pages:      slice.Pages,
		HasNext:    slice.HasMore,
		HasPrev:    c.pager.Pager().HasPrev(),
		Categories: listing.Categories(products),
		Tags:       listing.Tags(products),
	}
	for _, product := range slice.Items {
		page.Items = append(page.Items, c.card(product))
	}
	return page, nil
}

func (c *Catalog) card(product catalog.Product) ProductCard {
	card := ProductCard{Product: product}
	if c.links == nil {
		return card
	}
	var err error
	if card.URL, err = c.links.Product(product); err != nil {
		c.opts.logger.Warn("site.catalog.link.failed", "slug", product.Slug, "error", err)
	}
	if strings.TrimSpace(product.Category) != "" {
		if card.CategoryURL, err = c.links.Category(product.Category); err != nil {
			c.opts.logger.Warn("site.catalog.category_link.failed", "category", product.Category, "error", err)
		}
	}
	return card
}

// Detail returns the published product with slug, its rendered description
// and its published patch notes. Drafts are reported as not found.
func (c *Catalog) Detail(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := c.service.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Published() {
		return nil, catalog.NewNotFound("product", slug)
	}

	notes, err := c.service.PatchNotesForProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetail{
		Product:     *product,
		URL:         c.card(*product).URL,
		Units:       c.opts.renderer.Render(product.Description),
		Description: c.opts.renderer.RenderHTML(product.Description),
		PatchNotes:  make([]DispatchEntry, 0, len(notes)),
	}
	for _, note := range notes {
		detail.PatchNotes = append(detail.PatchNotes, entryFor(c.links, c.opts.logger, note, product.Title))
	}
	return detail, nil
}

package site

import (
	"context"
	"html/template"
	"sync"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/links"
	"github.com/goliatone/go-storefront/internal/listing"
	"github.com/goliatone/go-storefront/internal/render"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// DispatchEntry is a dispatch feed entry.
type DispatchEntry struct {
	catalog.PatchNote
	URL          string
	ProductTitle string
}

// DispatchFeed is one read of the dispatch listing.
type DispatchFeed struct {
	Criteria   listing.Criteria
	Items      []DispatchEntry
	Total      int
	Loaded     int
	HasMore    bool
	Categories []string
	Tags       []string
}

// DispatchPost is the dispatch detail page model.
type DispatchPost struct {
	Entry DispatchEntry
	Units []render.Unit
	Body  template.HTML
}

// Dispatch lists published patch notes newest first through a filter-bound
// load-more window. Changing the criteria collapses the window.
type Dispatch struct {
	mu       sync.Mutex
	service  catalog.Service
	links    *links.Resolver
	window   *listing.BoundLoadMore
	criteria listing.Criteria
	opts     options
}

// NewDispatch constructs the dispatch feed showing initial entries and
// growing by increment.
func NewDispatch(service catalog.Service, resolver *links.Resolver, initial, increment int, opts ...Option) *Dispatch {
	criteria := listing.Criteria{}
	return &Dispatch{
		service:  service,
		links:    resolver,
		window:   listing.NewBoundLoadMore(initial, increment, criteria.Key()),
		criteria: criteria,
		opts:     buildOptions(opts),
	}
}

// View returns the feed under the active filter.
func (d *Dispatch) View(ctx context.Context) (DispatchFeed, error) {
	return d.read(ctx, nil)
}

// Filter replaces the active criteria and returns the collapsed feed.
func (d *Dispatch) Filter(ctx context.Context, criteria listing.Criteria) (DispatchFeed, error) {
	d.mu.Lock()
	d.criteria = criteria
	d.mu.Unlock()
	return d.read(ctx, nil)
}

// LoadMore grows the window by one increment.
func (d *Dispatch) LoadMore(ctx context.Context) (DispatchFeed, error) {
	return d.read(ctx, func(w *listing.LoadMore) { w.LoadMore() })
}

// Reset collapses the window to its initial size.
func (d *Dispatch) Reset(ctx context.Context) (DispatchFeed, error) {
	return d.read(ctx, func(w *listing.LoadMore) { w.Reset() })
}

func (d *Dispatch) read(ctx context.Context, move func(*listing.LoadMore)) (DispatchFeed, error) {
	notes, err := d.service.PublishedPatchNotes(ctx)
	if err != nil {
		d.opts.logger.Error("site.dispatch.load.failed", "error", err)
		return DispatchFeed{}, err
	}
	titles, err := d.productTitles(ctx)
	if err != nil {
		return DispatchFeed{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if move != nil {
		filtered := listing.Apply(notes, listing.Predicates[catalog.PatchNote](d.criteria)...)
		d.window.Sync(d.criteria.Key())
		d.window.Window().Observe(len(filtered))
		move(d.window.Window())
	}

	slice := listing.LoadMoreView(d.window, d.criteria, notes)
	feed := DispatchFeed{
		Criteria:   d.criteria,
		Items:      make([]DispatchEntry, 0, len(slice.Items)),
		Total:      slice.Total,
		Loaded:     slice.Loaded,
		HasMore:    slice.HasMore,
		Categories: listing.Categories(notes),
		Tags:       listing.Tags(notes),
	}
	for _, note := range slice.Items {
		feed.Items = append(feed.Items, entryFor(d.links, d.opts.logger, note, titles[note.ProductID]))
	}
	return feed, nil
}

// Post returns the published patch note with slug and its rendered body.
func (d *Dispatch) Post(ctx context.Context, slug string) (*DispatchPost, error) {
	note, err := d.service.GetPatchNoteBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if note == nil || !note.Published() {
		return nil, catalog.NewNotFound("patch note", slug)
	}
	var title string
	if note.ProductID != "" {
		product, err := d.service.GetProduct(ctx, note.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			title = product.Title
		}
	}
	return &DispatchPost{
		Entry: entryFor(d.links, d.opts.logger, *note, title),
		Units: d.opts.renderer.Render(note.Body),
		Body:  d.opts.renderer.RenderHTML(note.Body),
	}, nil
}

func (d *Dispatch) productTitles(ctx context.Context) (map[string]string, error) {
	products, err := d.service.ListProducts(ctx)
	if err != nil {
		d.opts.logger.Error("site.dispatch.products.failed", "error", err)
		return nil, err
	}
	titles := make(map[string]string, len(products))
	for _, product := range products {
		titles[product.ID] = product.Title
	}
	return titles, nil
}

func entryFor(resolver *links.Resolver, logger interfaces.Logger, note catalog.PatchNote, productTitle string) DispatchEntry {
	entry := DispatchEntry{PatchNote: note, ProductTitle: productTitle}
	if resolver == nil {
		return entry
	}
	url, err := resolver.Dispatch(note)
	if err != nil {
		logger.Warn("site.dispatch.link.failed", "slug", note.Slug, "error", err)
		return entry
	}
	entry.URL = url
	return entry
}

// Package links builds canonical storefront URLs through a go-urlkit route
// manager.
package links

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/runtimeconfig"
	urlkit "github.com/goliatone/go-urlkit"
)

// GroupName is the urlkit group holding every storefront route.
const GroupName = "storefront"

// Route names registered in the storefront group.
const (
	RouteProduct   = "product"
	RoutePatchNote = "patch_note"
	RouteDispatch  = "dispatch"
	RouteCategory  = "category"
)

// ErrSlugRequired is returned when a record has no slug to link to.
var ErrSlugRequired = errors.New("links: slug is required")

// Resolver builds absolute URLs for products, patch notes and dispatch posts.
type Resolver struct {
	manager *urlkit.RouteManager
	group   *urlkit.Group
}

// NewResolver registers the configured paths with a fresh route manager.
// Empty paths fall back to the runtime defaults.
func NewResolver(cfg runtimeconfig.LinksConfig) (*Resolver, error) {
	defaults := runtimeconfig.DefaultConfig().Links
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    GroupName,
				BaseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
				Paths: map[string]string{
					RouteProduct:   pathOr(cfg.ProductPath, defaults.ProductPath),
					RoutePatchNote: pathOr(cfg.PatchNotePath, defaults.PatchNotePath),
					RouteDispatch:  pathOr(cfg.DispatchPath, defaults.DispatchPath),
					RouteCategory:  pathOr(cfg.CategoryPath, defaults.CategoryPath),
				},
			},
		},
	})
	group, err := lookupGroup(manager, GroupName)
	if err != nil {
		return nil, err
	}
	return &Resolver{manager: manager, group: group}, nil
}

// Manager exposes the underlying route manager for hosts that mount the
// same routes on a router.
func (r *Resolver) Manager() *urlkit.RouteManager { return r.manager }

// Product returns the product detail URL.
func (r *Resolver) Product(p catalog.Product) (string, error) {
	return r.build(RouteProduct, map[string]any{"slug": p.Slug}, p.Slug)
}

// PatchNote returns the patch note detail URL.
func (r *Resolver) PatchNote(n catalog.PatchNote) (string, error) {
	return r.build(RoutePatchNote, map[string]any{"slug": n.Slug}, n.Slug)
}

// Dispatch returns the dispatch post URL for a published patch note.
func (r *Resolver) Dispatch(n catalog.PatchNote) (string, error) {
	return r.build(RouteDispatch, map[string]any{"slug": n.Slug}, n.Slug)
}

// Category returns the catalog URL filtered to category.
func (r *Resolver) Category(category string) (string, error) {
	value := catalog.SlugFor(category, category)
	return r.build(RouteCategory, map[string]any{"category": value}, value)
}

func (r *Resolver) build(route string, params map[string]any, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: %s", ErrSlugRequired, route)
	}
	builder, err := safeBuilder(r.group, route)
	if err != nil {
		return "", err
	}
	for name, value := range params {
		builder.WithParam(name, value)
	}
	return builder.Build()
}

func pathOr(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("links: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("links: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

package catalog

import (
	"time"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
)

// Storage keys. Each collection is stored as one JSON array.
const (
	ProductsKey   = "products"
	PatchNotesKey = "patch_notes"
)

// Product is a sellable add-on.
type Product struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Tagline     string          `json:"tagline,omitempty"`
	Excerpt     string          `json:"excerpt,omitempty"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags,omitempty"`
	PriceCents  int             `json:"priceCents"`
	Currency    string          `json:"currency"`
	Simulators  []string        `json:"simulators,omitempty"`
	Version     string          `json:"version,omitempty"`
	HeroImage   string          `json:"heroImage,omitempty"`
	Description blocks.Document `json:"description,omitempty"`
	Status      domain.Status   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PatchNote is a release note for a product, also listed as a dispatch post.
type PatchNote struct {
	ID         string          `json:"id"`
	Slug       string          `json:"slug"`
	ProductID  string          `json:"productId,omitempty"`
	Version    string          `json:"version"`
	Title      string          `json:"title"`
	Summary    string          `json:"summary,omitempty"`
	Category   string          `json:"category,omitempty"`
	Tags       []string        `json:"tags,omitempty"`
	Body       blocks.Document `json:"body,omitempty"`
	Status     domain.Status   `json:"status"`
	ReleasedAt *time.Time      `json:"releasedAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (p Product) EntityID() string       { return p.ID }
func (p Product) EntitySlug() string     { return p.Slug }
func (p Product) CreatedTime() time.Time { return p.CreatedAt }

// WithID returns a copy carrying id.
func (p Product) WithID(id string) Product {
	p.ID = id
	return p
}

// Stamped returns a copy with both timestamps set.
func (p Product) Stamped(created, updated time.Time) Product {
	p.CreatedAt = created
	p.UpdatedAt = updated
	return p
}

// Clone returns a deep copy.
func (p Product) Clone() Product {
	p.Tags = cloneStrings(p.Tags)
	p.Simulators = cloneStrings(p.Simulators)
	p.Description = p.Description.Clone()
	return p
}

func (p Product) FilterTitle() string    { return p.Title }
func (p Product) FilterExcerpt() string  { return p.Excerpt }
func (p Product) FilterCategory() string { return p.Category }
func (p Product) FilterTags() []string   { return p.Tags }

// Published reports whether the product is visible on the storefront.
func (p Product) Published() bool { return p.Status == domain.StatusPublished }

func (n PatchNote) EntityID() string       { return n.ID }
func (n PatchNote) EntitySlug() string     { return n.Slug }
func (n PatchNote) CreatedTime() time.Time { return n.CreatedAt }

// WithID returns a copy carrying id.
func (n PatchNote) WithID(id string) PatchNote {
	n.ID = id
	return n
}

// Stamped returns a copy with both timestamps set.
func (n PatchNote) Stamped(created, updated time.Time) PatchNote {
	n.CreatedAt = created
	n.UpdatedAt = updated
	return n
}

// Clone returns a deep copy.
func (n PatchNote) Clone() PatchNote {
	n.Tags = cloneStrings(n.Tags)
	n.Body = n.Body.Clone()
	if n.ReleasedAt != nil {
		released := *n.ReleasedAt
		n.ReleasedAt = &released
	}
	return n
}

func (n PatchNote) FilterTitle() string    { return n.Title }
func (n PatchNote) FilterExcerpt() string  { return n.Summary }
func (n PatchNote) FilterCategory() string { return n.Category }
func (n PatchNote) FilterTags() []string   { return n.Tags }

// Published reports whether the note is visible in the dispatch feed.
func (n PatchNote) Published() bool { return n.Status == domain.StatusPublished }

// SortTime is the release time, falling back to creation time.
func (n PatchNote) SortTime() time.Time {
	if n.ReleasedAt != nil {
		return *n.ReleasedAt
	}
	return n.CreatedAt
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append(make([]string, 0, len(values)), values...)
}

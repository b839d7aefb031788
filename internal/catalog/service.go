package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Service exposes the CMS use-cases for products and patch notes.
type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	PublishedProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListPatchNotes(ctx context.Context) ([]PatchNote, error)
	PublishedPatchNotes(ctx context.Context) ([]PatchNote, error)
	PatchNotesForProduct(ctx context.Context, productID string) ([]PatchNote, error)
	GetPatchNote(ctx context.Context, id string) (*PatchNote, error)
	GetPatchNoteBySlug(ctx context.Context, slug string) (*PatchNote, error)
	CreatePatchNote(ctx context.Context, input PatchNoteInput) (PatchNote, error)
	UpdatePatchNote(ctx context.Context, id string, input PatchNoteInput) (PatchNote, error)
	DeletePatchNote(ctx context.Context, id string) error

	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ProductInput carries the operator-editable product fields.
type ProductInput struct {
	Slug        string
	Title       string
	Tagline     string
	Excerpt     string
	Category    string
	Tags        []string
	PriceCents  int
	Currency    string
	Simulators  []string
	Version     string
	HeroImage   string
	Description blocks.Document
	Status      string
}

// PatchNoteInput carries the operator-editable patch note fields.
type PatchNoteInput struct {
	Slug       string
	ProductID  string
	Version    string
	Title      string
	Summary    string
	Category   string
	Tags       []string
	Body       blocks.Document
	Status     string
	ReleasedAt *time.Time
}

// DefaultCurrency applies when a product form leaves currency empty.
const DefaultCurrency = "USD"

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used for release dates.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		s.logger = logger
	}
}

type service struct {
	store  *Store
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs the catalog service over store.
func NewService(store *Store, opts ...ServiceOption) Service {
	s := &service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.Ensure(s.logger)
	return s
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.store.Products.List(ctx)
}

func (s *service) PublishedProducts(ctx context.Context) ([]Product, error) {
	items, err := s.store.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(items))
	for _, item := range items {
		if item.Published() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.store.Products.GetByID(ctx, strings.TrimSpace(id))
}

func (s *service) GetProductBySlug(ctx context.Context, value string) (*Product, error) {
	return s.store.Products.GetBySlug(ctx, value)
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	record := productFromInput(input)
	if err := ValidateProduct(record); err != nil {
		s.logger.WithContext(ctx).Debug("catalog.product.invalid", "slug", record.Slug, "error", err)
		return Product{}, err
	}
	return s.store.Products.Create(ctx, record)
}

func (s *service) UpdateProduct(ctx context.Context, id string, input ProductInput) (Product, error) {
	record := productFromInput(input)
	record.ID = strings.TrimSpace(id)
	if err := ValidateProduct(record); err != nil {
		s.logger.WithContext(ctx).Debug("catalog.product.invalid", "id", record.ID, "error", err)
		return Product{}, err
	}
	return s.store.Products.Update(ctx, record)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.store.Products.Delete(ctx, strings.TrimSpace(id))
}

func (s *service) ListPatchNotes(ctx context.Context) ([]PatchNote, error) {
	return s.store.PatchNotes.List(ctx)
}

// PublishedPatchNotes returns published notes, newest release first.
func (s *service) PublishedPatchNotes(ctx context.Context) ([]PatchNote, error) {
	items, err := s.store.PatchNotes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PatchNote, 0, len(items))
	for _, item := range items {
		if item.Published() {
			out = append(out, item)
		}
	}
	SortNewestFirst(out)
	return out, nil
}

func (s *service) PatchNotesForProduct(ctx context.Context, productID string) ([]PatchNote, error) {
	items, err := s.PublishedPatchNotes(ctx)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, item := range items {
		if item.ProductID == productID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *service) GetPatchNote(ctx context.Context, id string) (*PatchNote, error) {
	return s.store.PatchNotes.GetByID(ctx, strings.TrimSpace(id))
}

func (s *service) GetPatchNoteBySlug(ctx context.Context, value string) (*PatchNote, error) {
	return s.store.PatchNotes.GetBySlug(ctx, value)
}

func (s *service) CreatePatchNote(ctx context.Context, input PatchNoteInput) (PatchNote, error) {
	record := s.patchNoteFromInput(input)
	if err := s.checkPatchNote(ctx, record); err != nil {
		return PatchNote{}, err
	}
	return s.store.PatchNotes.Create(ctx, record)
}

func (s *service) UpdatePatchNote(ctx context.Context, id string, input PatchNoteInput) (PatchNote, error) {
	record := s.patchNoteFromInput(input)
	record.ID = strings.TrimSpace(id)
	if input.ReleasedAt == nil && record.ReleasedAt != nil {
		existing, err := s.store.PatchNotes.GetByID(ctx, record.ID)
		if err != nil {
			return PatchNote{}, err
		}
		if existing != nil && existing.ReleasedAt != nil {
			record.ReleasedAt = existing.ReleasedAt
		}
	}
	if err := s.checkPatchNote(ctx, record); err != nil {
		return PatchNote{}, err
	}
	return s.store.PatchNotes.Update(ctx, record)
}

func (s *service) DeletePatchNote(ctx context.Context, id string) error {
	return s.store.PatchNotes.Delete(ctx, strings.TrimSpace(id))
}

func (s *service) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return s.store.Subscribe(ctx)
}

func (s *service) checkPatchNote(ctx context.Context, record PatchNote) error {
	if err := ValidatePatchNote(record); err != nil {
		s.logger.WithContext(ctx).Debug("catalog.patch_note.invalid", "slug", record.Slug, "error", err)
		return err
	}
	if record.ProductID == "" {
		return nil
	}
	product, err := s.store.Products.GetByID(ctx, record.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return goerrors.Wrap(ErrProductRequired, goerrors.CategoryBadInput, "patch note references an unknown product").
			WithTextCode("PRODUCT_REFERENCE_INVALID").
			WithMetadata(map[string]any{"product_id": record.ProductID})
	}
	return nil
}

func productFromInput(input ProductInput) Product {
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	return Product{
		Slug:        SlugFor(input.Slug, input.Title),
		Title:       strings.TrimSpace(input.Title),
		Tagline:     strings.TrimSpace(input.Tagline),
		Excerpt:     strings.TrimSpace(input.Excerpt),
		Category:    strings.TrimSpace(input.Category),
		Tags:        NormalizeTags(input.Tags),
		PriceCents:  input.PriceCents,
		Currency:    currency,
		Simulators:  NormalizeTags(input.Simulators),
		Version:     strings.TrimSpace(input.Version),
		HeroImage:   strings.TrimSpace(input.HeroImage),
		Description: input.Description.Clone(),
		Status:      domain.NormalizeStatus(input.Status),
	}
}

func (s *service) patchNoteFromInput(input PatchNoteInput) PatchNote {
	note := PatchNote{
		Slug:      SlugFor(input.Slug, input.Title),
		ProductID: strings.TrimSpace(input.ProductID),
		Version:   strings.TrimSpace(input.Version),
		Title:     strings.TrimSpace(input.Title),
		Summary:   strings.TrimSpace(input.Summary),
		Category:  strings.TrimSpace(input.Category),
		Tags:      NormalizeTags(input.Tags),
		Body:      input.Body.Clone(),
		Status:    domain.NormalizeStatus(input.Status),
	}
	if input.ReleasedAt != nil {
		released := input.ReleasedAt.UTC()
		note.ReleasedAt = &released
	} else if note.Status == domain.StatusPublished {
		released := s.now()
		note.ReleasedAt = &released
	}
	return note
}

// SlugFor normalises an explicit slug, or derives one from title.
func SlugFor(explicit, title string) string {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = strings.TrimSpace(title)
	}
	if source == "" {
		return ""
	}
	normalized, err := slug.Normalize(source)
	if err != nil || normalized == "" {
		return strings.ToLower(source)
	}
	return normalized
}

// NormalizeTags trims values and drops blanks and case-insensitive duplicates.
func NormalizeTags(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// SortNewestFirst orders notes by release time, newest first, then by title.
func SortNewestFirst(notes []PatchNote) {
	sort.SliceStable(notes, func(i, j int) bool {
		ti, tj := notes[i].SortTime(), notes[j].SortTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return notes[i].Title < notes[j].Title
	})
}

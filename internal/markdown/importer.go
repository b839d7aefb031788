package markdown

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

var (
	ErrCatalogRequired = errors.New("markdown importer: catalog service is required")
	ErrSlugMissing     = errors.New("markdown importer: slug could not be determined")
	ErrProductUnknown  = errors.New("markdown importer: frontmatter product does not exist")
)

// ImportOptions controls a single import run.
type ImportOptions struct {
	// DryRun reports what would change without writing.
	DryRun bool
}

// ImportResult lists patch note slugs by outcome.
type ImportResult struct {
	Created   []string
	Updated   []string
	Unchanged []string
	Failed    map[string]error
}

// ImporterConfig carries the importer dependencies.
type ImporterConfig struct {
	Catalog   catalog.Service
	Converter *Converter
	Logger    interfaces.Logger
}

// Importer turns Markdown documents into patch notes.
type Importer struct {
	catalog   catalog.Service
	converter *Converter
	logger    interfaces.Logger
}

// NewImporter builds an Importer from cfg.
func NewImporter(cfg ImporterConfig) *Importer {
	converter := cfg.Converter
	if converter == nil {
		converter = defaultConverter
	}
	return &Importer{
		catalog:   cfg.Catalog,
		converter: converter,
		logger:    logging.Ensure(cfg.Logger),
	}
}

// Import creates or updates one patch note per document, matched by slug.
// A failing document is recorded in the result and does not stop the run.
func (i *Importer) Import(ctx context.Context, docs []*Document, opts ImportOptions) (*ImportResult, error) {
	if i.catalog == nil {
		return nil, ErrCatalogRequired
	}
	result := &ImportResult{Failed: map[string]error{}}
	var errs []error
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		key, err := i.importDocument(ctx, doc, opts, result)
		if err != nil {
			if key == "" {
				key = doc.Path
			}
			result.Failed[key] = err
			errs = append(errs, fmt.Errorf("%s: %w", doc.Path, err))
			i.logger.Warn("markdown.import.failed", "path", doc.Path, "error", err)
		}
	}
	i.logger.Info("markdown.import.completed",
		"created", len(result.Created),
		"updated", len(result.Updated),
		"unchanged", len(result.Unchanged),
		"failed", len(result.Failed),
		"dry_run", opts.DryRun,
	)
	return result, errors.Join(errs...)
}

func (i *Importer) importDocument(ctx context.Context, doc *Document, opts ImportOptions, result *ImportResult) (string, error) {
	input, err := i.noteInput(ctx, doc)
	if err != nil {
		return input.Slug, err
	}
	if input.Slug == "" {
		return "", ErrSlugMissing
	}

	existing, err := i.catalog.GetPatchNoteBySlug(ctx, input.Slug)
	if err != nil {
		return input.Slug, fmt.Errorf("markdown importer: lookup %s: %w", input.Slug, err)
	}

	if existing == nil {
		if !opts.DryRun {
			if _, err := i.catalog.CreatePatchNote(ctx, input); err != nil {
				return input.Slug, fmt.Errorf("markdown importer: create %s: %w", input.Slug, err)
			}
		}
		result.Created = append(result.Created, input.Slug)
		return input.Slug, nil
	}

	if unchanged(*existing, input) {
		result.Unchanged = append(result.Unchanged, input.Slug)
		return input.Slug, nil
	}
	if !opts.DryRun {
		if _, err := i.catalog.UpdatePatchNote(ctx, existing.ID, input); err != nil {
			return input.Slug, fmt.Errorf("markdown importer: update %s: %w", input.Slug, err)
		}
	}
	result.Updated = append(result.Updated, input.Slug)
	return input.Slug, nil
}

func (i *Importer) noteInput(ctx context.Context, doc *Document) (catalog.PatchNoteInput, error) {
	fm := doc.FrontMatter
	slugSource := fm.Slug
	if slugSource == "" && fm.Title == "" {
		slugSource = doc.BaseName()
	}
	input := catalog.PatchNoteInput{
		Slug:       catalog.SlugFor(slugSource, fm.Title),
		Version:    fm.Version,
		Title:      fm.Title,
		Summary:    fm.Summary,
		Category:   fm.Category,
		Tags:       catalog.NormalizeTags(fm.Tags),
		Status:     fm.Status,
		ReleasedAt: fm.Released,
	}

	body, err := i.converter.Convert(doc.Body)
	if err != nil {
		return input, err
	}
	input.Body = body

	if fm.Product != "" {
		product, err := i.catalog.GetProductBySlug(ctx, fm.Product)
		if err != nil {
			return input, err
		}
		if product == nil {
			return input, fmt.Errorf("%w: %s", ErrProductUnknown, fm.Product)
		}
		input.ProductID = product.ID
	}
	return input, nil
}

func unchanged(existing catalog.PatchNote, input catalog.PatchNoteInput) bool {
	if existing.Title != strings.TrimSpace(input.Title) ||
		existing.Version != strings.TrimSpace(input.Version) ||
		existing.Summary != strings.TrimSpace(input.Summary) ||
		existing.Category != strings.TrimSpace(input.Category) ||
		existing.ProductID != input.ProductID ||
		existing.Status != domain.NormalizeStatus(input.Status) ||
		!slices.Equal(existing.Tags, input.Tags) {
		return false
	}
	if input.ReleasedAt != nil && (existing.ReleasedAt == nil || !existing.ReleasedAt.Equal(*input.ReleasedAt)) {
		return false
	}
	current, err := json.Marshal(existing.Body)
	if err != nil {
		return false
	}
	next, err := json.Marshal(input.Body)
	if err != nil {
		return false
	}
	return string(current) == string(next)
}

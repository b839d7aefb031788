package storefront

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/identity"
	"github.com/goliatone/go-storefront/internal/markdown"
	"gopkg.in/yaml.v3"
)

//go:embed seed_catalog.yaml
var seedCatalog []byte

type seedFile struct {
	Products   []seedProduct   `yaml:"products"`
	PatchNotes []seedPatchNote `yaml:"patch_notes"`
}

type seedProduct struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Tagline     string   `yaml:"tagline"`
	Excerpt     string   `yaml:"excerpt"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	PriceCents  int      `yaml:"price_cents"`
	Currency    string   `yaml:"currency"`
	Simulators  []string `yaml:"simulators"`
	Version     string   `yaml:"version"`
	HeroImage   string   `yaml:"hero_image"`
	Status      string   `yaml:"status"`
	Description string   `yaml:"description"`
}

type seedPatchNote struct {
	Slug     string     `yaml:"slug"`
	Product  string     `yaml:"product"`
	Version  string     `yaml:"version"`
	Title    string     `yaml:"title"`
	Summary  string     `yaml:"summary"`
	Category string     `yaml:"category"`
	Tags     []string   `yaml:"tags"`
	Status   string     `yaml:"status"`
	Released *time.Time `yaml:"released"`
	Body     string     `yaml:"body"`
}

// SeedResult counts the records written by Seed.
type SeedResult struct {
	Products   int
	PatchNotes int
	Skipped    int
}

// Seed writes the bundled sample catalog under deterministic ids. Records
// that already exist are left untouched, so Seed is safe to run repeatedly.
func (m *Module) Seed(ctx context.Context) (SeedResult, error) {
	var data seedFile
	if err := yaml.Unmarshal(seedCatalog, &data); err != nil {
		return SeedResult{}, fmt.Errorf("storefront seed: decode: %w", err)
	}
	logger := m.Logger("seed")
	var result SeedResult

	for _, item := range data.Products {
		description, err := markdown.ToBlocks([]byte(item.Description))
		if err != nil {
			return result, fmt.Errorf("storefront seed: product %s: %w", item.Slug, err)
		}
		created, err := m.store.SeedProduct(ctx, identity.ProductID(item.Slug), catalog.ProductInput{
			Slug:        item.Slug,
			Title:       item.Title,
			Tagline:     item.Tagline,
			Excerpt:     item.Excerpt,
			Category:    item.Category,
			Tags:        item.Tags,
			PriceCents:  item.PriceCents,
			Currency:    item.Currency,
			Simulators:  item.Simulators,
			Version:     item.Version,
			HeroImage:   item.HeroImage,
			Description: description,
			Status:      item.Status,
		})
		if err != nil {
			return result, fmt.Errorf("storefront seed: product %s: %w", item.Slug, err)
		}
		if created {
			result.Products++
		} else {
			result.Skipped++
		}
	}

	for _, item := range data.PatchNotes {
		body, err := markdown.ToBlocks([]byte(item.Body))
		if err != nil {
			return result, fmt.Errorf("storefront seed: patch note %s: %w", item.Slug, err)
		}
		input := catalog.PatchNoteInput{
			Slug:       item.Slug,
			Version:    item.Version,
			Title:      item.Title,
			Summary:    item.Summary,
			Category:   item.Category,
			Tags:       item.Tags,
			Body:       body,
			Status:     item.Status,
			ReleasedAt: item.Released,
		}
		if item.Product != "" {
			input.ProductID = identity.ProductID(item.Product)
		}
		created, err := m.store.SeedPatchNote(ctx, identity.PatchNoteID(item.Slug), input)
		if err != nil {
			return result, fmt.Errorf("storefront seed: patch note %s: %w", item.Slug, err)
		}
		if created {
			result.PatchNotes++
		} else {
			result.Skipped++
		}
	}

	logger.Info("storefront.seed.completed",
		"products", result.Products,
		"patch_notes", result.PatchNotes,
		"skipped", result.Skipped,
	)
	return result, nil
}

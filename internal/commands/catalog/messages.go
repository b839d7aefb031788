package catalogcmd

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/catalog"
)

const (
	createProductMessageType   = "storefront.catalog.product.create"
	updateProductMessageType   = "storefront.catalog.product.update"
	deleteProductMessageType   = "storefront.catalog.product.delete"
	createPatchNoteMessageType = "storefront.catalog.patch_note.create"
	updatePatchNoteMessageType = "storefront.catalog.patch_note.update"
	deletePatchNoteMessageType = "storefront.catalog.patch_note.delete"
)

var errBlank = validation.NewError("storefront.catalog.blank", "must not be blank")

// ProductFields is the payload shared by product create and update.
type ProductFields struct {
	Slug        string          `json:"slug,omitempty"`
	Title       string          `json:"title"`
	Tagline     string          `json:"tagline,omitempty"`
	Excerpt     string          `json:"excerpt,omitempty"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags,omitempty"`
	PriceCents  int             `json:"price_cents"`
	Currency    string          `json:"currency,omitempty"`
	Simulators  []string        `json:"simulators,omitempty"`
	Version     string          `json:"version,omitempty"`
	HeroImage   string          `json:"hero_image,omitempty"`
	Description blocks.Document `json:"description,omitempty"`
	Status      string          `json:"status,omitempty"`
}

func (f ProductFields) input() catalog.ProductInput {
	return catalog.ProductInput{
		Slug:        f.Slug,
		Title:       f.Title,
		Tagline:     f.Tagline,
		Excerpt:     f.Excerpt,
		Category:    f.Category,
		Tags:        f.Tags,
		PriceCents:  f.PriceCents,
		Currency:    f.Currency,
		Simulators:  f.Simulators,
		Version:     f.Version,
		HeroImage:   f.HeroImage,
		Description: f.Description,
		Status:      f.Status,
	}
}

// CreateProductCommand adds a product. Result, when set, receives the stored
// record.
type CreateProductCommand struct {
	ProductFields
	Result *catalog.Product `json:"-"`
}

// Type implements command.Message.
func (CreateProductCommand) Type() string { return createProductMessageType }

// Validate checks the fields a message must carry before reaching the service.
func (m CreateProductCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.By(notBlank)),
		validation.Field(&m.Category, validation.By(notBlank)),
	)
}

// UpdateProductCommand replaces the editable fields of product ID.
type UpdateProductCommand struct {
	ID string `json:"id"`
	ProductFields
	Result *catalog.Product `json:"-"`
}

// Type implements command.Message.
func (UpdateProductCommand) Type() string { return updateProductMessageType }

// Validate checks the fields a message must carry before reaching the service.
func (m UpdateProductCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.By(notBlank)),
		validation.Field(&m.Title, validation.By(notBlank)),
	)
}

// DeleteProductCommand removes product ID.
type DeleteProductCommand struct {
	ID string `json:"id"`
}

// Type implements command.Message.
func (DeleteProductCommand) Type() string { return deleteProductMessageType }

// Validate checks the fields a message must carry before reaching the service.
func (m DeleteProductCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.By(notBlank)),
	)
}

// PatchNoteFields is the payload shared by patch note create and update.
type PatchNoteFields struct {
	Slug       string          `json:"slug,omitempty"`
	ProductID  string          `json:"product_id,omitempty"`
	Version    string          `json:"version"`
	Title      string          `json:"title"`
	Summary    string          `json:"summary,omitempty"`
	Category   string          `json:"category,omitempty"`
	Tags       []string        `json:"tags,omitempty"`
	Body       blocks.Document `json:"body,omitempty"`
	Status     string          `json:"status,omitempty"`
	ReleasedAt *time.Time      `json:"released_at,omitempty"`
}

func (f PatchNoteFields) input() catalog.PatchNoteInput {
	return catalog.PatchNoteInput{
		Slug:       f.Slug,
		ProductID:  f.ProductID,
		Version:    f.Version,
		Title:      f.Title,
		Summary:    f.Summary,
		Category:   f.Category,
		Tags:       f.Tags,
		Body:       f.Body,
		Status:     f.Status,
		ReleasedAt: f.ReleasedAt,
	}
}

// CreatePatchNoteCommand adds a patch note.
type CreatePatchNoteCommand struct {
	PatchNoteFields
	Result *catalog.PatchNote `json:"-"`
}

// Type implements command.Message.
func (CreatePatchNoteCommand) Type() string { return createPatchNoteMessageType }

// Validate checks the fields a message must carry before reaching the service.
func (m CreatePatchNoteCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.By(notBlank)),
		validation.Field(&m.Version, validation.By(notBlank)),
	)
}

// UpdatePatchNoteCommand replaces the editable fields of patch note ID.
type UpdatePatchNoteCommand struct {
	ID string `json:"id"`
	PatchNoteFields
	Result *catalog.PatchNote `json:"-"`
}

// Type implements command.Message.
func (UpdatePatchNoteCommand) Type() string { return updatePatchNoteMessageType }

// Validate checks the fields a message must carry before reaching the service.
func (m UpdatePatchNoteCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.By(notBlank)),
		validation.Field(&m.Title, validation.By(notBlank)),
		validation.Field(&m.Version, validation.By(notBlank)),
	)
}

// DeletePatchNoteCommand removes patch note ID.
type DeletePatchNoteCommand struct {
	ID string `json:"id"`
}

// Type implements command.Message.
func (DeletePatchNoteCommand) Type() string { return deletePatchNoteMessageType }

// Validate checks the fields a message must carry before reaching the service.
func (m DeletePatchNoteCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.By(notBlank)),
	)
}

func notBlank(value any) error {
	str, _ := value.(string)
	if strings.TrimSpace(str) == "" {
		return errBlank
	}
	return nil
}

package catalog

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

	errSlugInvalid = validation.NewError("validation_slug_invalid", "must be lowercase letters, digits and dashes")
)

// ValidateProduct checks a product the way the CMS form does before any
// persistence call.
func ValidateProduct(p Product) error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&p.Slug, validation.Required, validation.Length(1, 120), validation.By(validSlug)),
		validation.Field(&p.Category, validation.Required),
		validation.Field(&p.Tags, validation.Each(validation.Required)),
		validation.Field(&p.PriceCents, validation.Min(0)),
		validation.Field(&p.Currency, validation.Required, validation.Match(currencyPattern)),
		validation.Field(&p.Simulators, validation.Each(validation.Required)),
		validation.Field(&p.Status, validation.Required, validation.In(domain.StatusValues(domain.ProductStatuses)...)),
		validation.Field(&p.Description, validation.By(validDocument)),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "product validation failed").WithTextCode("PRODUCT_INVALID")
	}
	return nil
}

// ValidatePatchNote checks a patch note before any persistence call.
func ValidatePatchNote(n PatchNote) error {
	err := validation.ValidateStruct(&n,
		validation.Field(&n.Title, validation.Required, validation.Length(1, 160)),
		validation.Field(&n.Slug, validation.Required, validation.Length(1, 160), validation.By(validSlug)),
		validation.Field(&n.Version, validation.Required, validation.Length(1, 40)),
		validation.Field(&n.Tags, validation.Each(validation.Required)),
		validation.Field(&n.Status, validation.Required, validation.In(domain.StatusValues(domain.PatchNoteStatuses)...)),
		validation.Field(&n.Body, validation.By(validDocument)),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "patch note validation failed").WithTextCode("PATCH_NOTE_INVALID")
	}
	return nil
}

func validSlug(value any) error {
	str, _ := value.(string)
	if str == "" {
		return nil
	}
	if !slug.IsValid(str) {
		return errSlugInvalid
	}
	return nil
}

func validDocument(value any) error {
	doc, _ := value.(blocks.Document)
	return blocks.Validate(doc)
}

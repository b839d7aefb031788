package domain

// Status represents lifecycle states for catalog records.
type Status string

const (
	// StatusDraft marks a record still being prepared by an operator.
	StatusDraft Status = "draft"
	// StatusPublished marks a record visible on the storefront.
	StatusPublished Status = "published"
	// StatusArchived marks a product kept for history but hidden from listings.
	StatusArchived Status = "archived"
)

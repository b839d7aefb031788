package catalog

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrSlugExists      = errors.New("catalog: slug already exists")
	ErrIDExists        = errors.New("catalog: id already exists")
	ErrIDRequired      = errors.New("catalog: id is required")
	ErrProductRequired = errors.New("catalog: referenced product does not exist")
	ErrDecodeFailed    = errors.New("catalog: stored collection could not be decoded")
	ErrEncodeFailed    = errors.New("catalog: collection could not be encoded")
)

// NotFoundError represents missing records from update and delete calls.
// Lookups report misses as a nil record instead.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// NewNotFound returns a NotFoundError categorised as CategoryNotFound.
func NewNotFound(resource, key string) error {
	return notFound(resource, key)
}

func notFound(resource, key string) error {
	return goerrors.Wrap(&NotFoundError{Resource: resource, Key: key}, goerrors.CategoryNotFound, resource+" not found").
		WithTextCode("NOT_FOUND").
		WithMetadata(map[string]any{"resource": resource, "id": key})
}

func conflict(err error, resource, field, value string) error {
	return goerrors.Wrap(err, goerrors.CategoryConflict, resource+" "+field+" already in use").
		WithTextCode(conflictCode(field)).
		WithMetadata(map[string]any{"resource": resource, field: value})
}

func conflictCode(field string) string {
	switch field {
	case "slug":
		return "SLUG_EXISTS"
	case "id":
		return "ID_EXISTS"
	default:
		return "CONFLICT"
	}
}

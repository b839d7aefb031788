package listing

import (
	"strings"

	"github.com/goliatone/go-storefront/internal/identity"
)

// Item exposes the fields the filter predicates look at.
type Item interface {
	FilterTitle() string
	FilterExcerpt() string
	FilterCategory() string
	FilterTags() []string
}

// Predicate reports whether an item stays in the filtered set.
type Predicate[T any] func(T) bool

// Criteria is the operator-facing filter state of a listing page.
type Criteria struct {
	Search   string
	Category string
	Tag      string
}

// Empty reports whether no criterion is set.
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.Search) == "" &&
		strings.TrimSpace(c.Category) == "" &&
		strings.TrimSpace(c.Tag) == ""
}

// Key fingerprints the criteria. Equal criteria (ignoring case and
// surrounding space) share a key.
func (c Criteria) Key() string {
	return identity.Fingerprint(normalize(c.Search), normalize(c.Category), normalize(c.Tag))
}

// Predicates converts the criteria to predicates; unset criteria match all.
func Predicates[T Item](c Criteria) []Predicate[T] {
	var out []Predicate[T]
	if strings.TrimSpace(c.Search) != "" {
		out = append(out, MatchSearch[T](c.Search))
	}
	if strings.TrimSpace(c.Category) != "" {
		out = append(out, MatchCategory[T](c.Category))
	}
	if strings.TrimSpace(c.Tag) != "" {
		out = append(out, MatchTag[T](c.Tag))
	}
	return out
}

// MatchSearch matches a case-insensitive substring of title or excerpt. An
// empty query matches everything.
func MatchSearch[T Item](query string) Predicate[T] {
	needle := normalize(query)
	return func(item T) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(item.FilterTitle()), needle) ||
			strings.Contains(strings.ToLower(item.FilterExcerpt()), needle)
	}
}

// MatchCategory matches the category case-insensitively. "" and "all" match
// everything.
func MatchCategory[T Item](category string) Predicate[T] {
	want := normalize(category)
	return func(item T) bool {
		if want == "" || want == "all" {
			return true
		}
		return normalize(item.FilterCategory()) == want
	}
}

// MatchTag matches items carrying tag, compared case-insensitively.
func MatchTag[T Item](tag string) Predicate[T] {
	want := normalize(tag)
	return func(item T) bool {
		if want == "" {
			return true
		}
		for _, candidate := range item.FilterTags() {
			if normalize(candidate) == want {
				return true
			}
		}
		return false
	}
}

// Apply keeps items matching every predicate, preserving order. The input is
// never modified.
func Apply[T any](items []T, predicates ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, predicate := range predicates {
			if predicate != nil && !predicate(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns the distinct categories of items in first-seen order.
func Categories[T Item](items []T) []string {
	return distinct(items, func(item T) []string { return []string{item.FilterCategory()} })
}

// Tags returns the distinct tags of items in first-seen order.
func Tags[T Item](items []T) []string {
	return distinct(items, func(item T) []string { return item.FilterTags() })
}

func distinct[T any](items []T, values func(T) []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, item := range items {
		for _, value := range values(item) {
			key := normalize(value)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, strings.TrimSpace(value))
		}
	}
	return out
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

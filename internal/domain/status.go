package domain

import "strings"

// ProductStatuses lists the states a product may be in.
var ProductStatuses = []Status{StatusDraft, StatusPublished, StatusArchived}

// PatchNoteStatuses lists the states a patch note may be in. Patch notes are
// never archived.
var PatchNoteStatuses = []Status{StatusDraft, StatusPublished}

// NormalizeStatus lower-cases and trims input, defaulting to draft when empty.
func NormalizeStatus(input string) Status {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return StatusDraft
	}
	return Status(trimmed)
}

// Allowed reports whether status is one of allowed.
func (s Status) Allowed(allowed []Status) bool {
	for _, candidate := range allowed {
		if s == candidate {
			return true
		}
	}
	return false
}

// StatusValues converts statuses to []any for ozzo-validation's In rule.
func StatusValues(statuses []Status) []any {
	out := make([]any, len(statuses))
	for i, status := range statuses {
		out[i] = status
	}
	return out
}

package catalog

import (
	"context"
	"strings"
)

// SeedProduct creates the product under a caller-chosen id unless a record
// with that id already exists. It reports whether a record was written.
func (s *Store) SeedProduct(ctx context.Context, id string, input ProductInput) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrIDRequired
	}
	existing, err := s.Products.GetByID(ctx, id)
	if err != nil || existing != nil {
		return false, err
	}
	record := productFromInput(input)
	record.ID = id
	if err := ValidateProduct(record); err != nil {
		return false, err
	}
	if _, err := s.Products.Create(ctx, record); err != nil {
		return false, err
	}
	return true, nil
}

// SeedPatchNote creates the note under a caller-chosen id unless a record
// with that id already exists. The referenced product must exist.
func (s *Store) SeedPatchNote(ctx context.Context, id string, input PatchNoteInput) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrIDRequired
	}
	existing, err := s.PatchNotes.GetByID(ctx, id)
	if err != nil || existing != nil {
		return false, err
	}
	svc := &service{store: s, now: s.PatchNotes.now, logger: s.PatchNotes.logger}
	record := svc.patchNoteFromInput(input)
	record.ID = id
	if err := svc.checkPatchNote(ctx, record); err != nil {
		return false, err
	}
	if _, err := s.PatchNotes.Create(ctx, record); err != nil {
		return false, err
	}
	return true, nil
}

package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from key using go-hashid. Keys should be
// namespaced by record kind so different kinds never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ProductID is the stable id of a seeded product.
func ProductID(slug string) string {
	return UUID("storefront:product:" + strings.ToLower(strings.TrimSpace(slug))).String()
}

// PatchNoteID is the stable id of a seeded or imported patch note.
func PatchNoteID(slug string) string {
	return UUID("storefront:patch_note:" + strings.ToLower(strings.TrimSpace(slug))).String()
}

// Fingerprint hashes the parts of a filter into a short stable key. Empty
// parts still contribute their position so ("a","") and ("","a") differ.
func Fingerprint(parts ...string) string {
	return UUID("storefront:filter:" + strings.Join(parts, "\x1f")).String()
}

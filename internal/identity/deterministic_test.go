package identity

import "testing"

func TestProductIDIsStable(t *testing.T) {
	first := ProductID("A320 Neo")
	second := ProductID(" a320 neo ")
	if first == "" || first != second {
		t.Fatalf("expected stable id, got %q and %q", first, second)
	}
	if first == PatchNoteID("a320 neo") {
		t.Fatal("product and patch note ids must not collide")
	}
}

func TestFingerprintSeparatesPositions(t *testing.T) {
	if Fingerprint("airliner", "") == Fingerprint("", "airliner") {
		t.Fatal("expected fingerprints to depend on position")
	}
	if Fingerprint("x", "y") != Fingerprint("x", "y") {
		t.Fatal("expected fingerprint to be deterministic")
	}
}

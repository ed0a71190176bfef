package credential

import (
	"testing"

	"github.com/daybook/journal-api/internal/core/domain"
)

func TestHasher_FreshSaltPerCall(t *testing.T) {
	h := NewHasher(4) // minimum cost keeps the test fast

	first, err := h.Hash("ValidPass123!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := h.Hash("ValidPass123!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct digests for the same input")
	}
	if !h.Compare("ValidPass123!", first) || !h.Compare("ValidPass123!", second) {
		t.Fatalf("expected both digests to verify")
	}
}

func TestHasher_RejectsPolicyViolation(t *testing.T) {
	h := NewHasher(4)

	_, err := h.Hash("weak")
	if err == nil {
		t.Fatalf("expected policy violation")
	}
	if _, ok := err.(*domain.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestHasher_CompareMismatch(t *testing.T) {
	h := NewHasher(4)

	digest, err := h.Hash("ValidPass123!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if h.Compare("WrongPass123!", digest) {
		t.Fatalf("expected mismatch")
	}
}

func TestHasher_CompareMalformedDigest(t *testing.T) {
	h := NewHasher(4)

	if h.Compare("ValidPass123!", "not-a-bcrypt-digest") {
		t.Fatalf("expected false for malformed digest")
	}
	if h.Compare("ValidPass123!", "") {
		t.Fatalf("expected false for empty digest")
	}
}

func TestLooksLikeValidDigest(t *testing.T) {
	h := NewHasher(4)

	digest, err := h.Hash("ValidPass123!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !LooksLikeValidDigest(digest) {
		t.Fatalf("expected real digest to pass the format check")
	}
	if LooksLikeValidDigest("plaintext") {
		t.Fatalf("expected plaintext to fail the format check")
	}
}

func TestNewHasher_CostFallback(t *testing.T) {
	if h := NewHasher(0); h.cost != DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
	if h := NewHasher(99); h.cost != DefaultCost {
		t.Fatalf("expected default cost for out-of-range value, got %d", h.cost)
	}
}

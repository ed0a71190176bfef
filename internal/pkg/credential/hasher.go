// Package credential provides one-way password hashing backed by bcrypt.
package credential

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/daybook/journal-api/internal/core/domain"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// Hasher hashes and verifies passwords. Each Hash call salts independently,
// so hashing the same input twice yields different digests.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// range bcrypt accepts fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash validates the plaintext against the password policy and produces a
// salted digest. A policy violation is returned verbatim so callers can echo
// the first failed rule.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if err := domain.ValidatePassword(plaintext); err != nil {
		return "", err
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare reports whether plaintext matches digest. Malformed digests return
// false rather than an error.
func (h *Hasher) Compare(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// LooksLikeValidDigest reports whether digest has a parseable bcrypt shape.
// It never hashes anything; storage-layer invariants use it as a cheap check.
func LooksLikeValidDigest(digest string) bool {
	_, err := bcrypt.Cost([]byte(digest))
	return err == nil
}

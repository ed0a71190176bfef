package token

import (
	"errors"
	"testing"
	"time"

	"github.com/daybook/journal-api/internal/core/domain"
)

func testIssuer(t *testing.T, now func() time.Time) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Now:           now,
	})
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	return issuer
}

func TestIssuer_PairRoundTrip(t *testing.T) {
	issuer := testIssuer(t, nil)

	pair, err := issuer.IssuePair("user-1")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	access, err := issuer.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess failed: %v", err)
	}
	if access.Subject != "user-1" {
		t.Fatalf("unexpected subject: %s", access.Subject)
	}

	refresh, err := issuer.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefresh failed: %v", err)
	}
	if refresh.Subject != "user-1" {
		t.Fatalf("unexpected subject: %s", refresh.Subject)
	}
}

func TestIssuer_KindsAreDisjoint(t *testing.T) {
	issuer := testIssuer(t, nil)

	pair, err := issuer.IssuePair("user-1")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	if _, err := issuer.VerifyAccess(pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("refresh token accepted on the access path: %v", err)
	}
	if _, err := issuer.VerifyRefresh(pair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("access token accepted on the refresh path: %v", err)
	}
}

func TestIssuer_Expiry(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := issued
	issuer := testIssuer(t, func() time.Time { return current })

	pair, err := issuer.IssuePair("user-1")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	current = issued.Add(16 * time.Minute)
	if _, err := issuer.VerifyAccess(pair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected expired access token to fail, got %v", err)
	}
	if _, err := issuer.VerifyRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("refresh token should outlive the access token: %v", err)
	}

	current = issued.Add(8 * 24 * time.Hour)
	if _, err := issuer.VerifyRefresh(pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected expired refresh token to fail, got %v", err)
	}
}

func TestIssuer_RejectsForeignSignature(t *testing.T) {
	issuer := testIssuer(t, nil)

	other, err := NewIssuer(Config{AccessSecret: "someone-elses", RefreshSecret: "keys"})
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	pair, err := other.IssuePair("user-1")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	if _, err := issuer.VerifyAccess(pair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected foreign signature to fail, got %v", err)
	}
	if _, err := issuer.VerifyAccess("garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected garbage token to fail, got %v", err)
	}
}

func TestNewIssuer_RequiresSecrets(t *testing.T) {
	if _, err := NewIssuer(Config{AccessSecret: "only-one"}); err == nil {
		t.Fatalf("expected error with missing refresh secret")
	}
	if _, err := NewIssuer(Config{}); err == nil {
		t.Fatalf("expected error with no secrets")
	}
}

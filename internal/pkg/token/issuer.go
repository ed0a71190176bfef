// Package token issues and verifies the two signed token kinds: short-lived
// access tokens and long-lived refresh tokens. The kinds are kept disjoint by
// a "kind" claim and separate signing secrets, so a refresh token can never
// pass where an access token is expected.
//
// Tokens are stateless. A rotated-out refresh token stays verifiable until
// its expiry; there is no server-side revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/daybook/journal-api/internal/core/domain"
)

const (
	kindAccess  = "access"
	kindRefresh = "refresh"

	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims are the payload carried by both token kinds.
type Claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// Config controls signing secrets, lifetimes, and the time source.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	// Now overrides the time source for issuing and expiry checks. Defaults
	// to time.Now.
	Now func() time.Time
}

// Issuer signs and verifies token pairs with HS256.
type Issuer struct {
	cfg Config
}

// Pair is a freshly issued access/refresh token pair.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// NewIssuer validates the config and returns an Issuer, applying the default
// lifetimes when none are given.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token: both signing secrets are required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Issuer{cfg: cfg}, nil
}

// IssuePair signs a new access/refresh pair for the given user id.
func (i *Issuer) IssuePair(userID string) (Pair, error) {
	access, err := i.sign(userID, kindAccess, i.cfg.AccessSecret, i.cfg.AccessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.sign(userID, kindRefresh, i.cfg.RefreshSecret, i.cfg.RefreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess parses tok as an access token. Any failure — bad signature,
// expiry, or wrong kind — collapses into domain.ErrInvalidToken.
func (i *Issuer) VerifyAccess(tok string) (*Claims, error) {
	return i.verify(tok, kindAccess, i.cfg.AccessSecret)
}

// VerifyRefresh parses tok as a refresh token.
func (i *Issuer) VerifyRefresh(tok string) (*Claims, error) {
	return i.verify(tok, kindRefresh, i.cfg.RefreshSecret)
}

func (i *Issuer) sign(userID, kind, secret string, ttl time.Duration) (string, error) {
	now := i.cfg.Now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (i *Issuer) verify(tok, kind, secret string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(i.cfg.Now))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Kind != kind || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

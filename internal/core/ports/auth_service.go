package ports

import (
	"context"

	"github.com/daybook/journal-api/internal/core/domain"
)

// TokenPair carries the short-lived access token and the long-lived refresh
// token returned by registration, login, and rotation.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	Tokens TokenPair
	User   *domain.User
}

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Refresh rotates a valid refresh token into a brand-new pair. The old
	// refresh token remains verifiable until it expires — there is no
	// revocation store.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

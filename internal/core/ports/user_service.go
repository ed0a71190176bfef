package ports

import (
	"context"

	"github.com/daybook/journal-api/internal/core/domain"
)

// UserPage is one page of the admin user listing.
type UserPage struct {
	Users  []domain.User `json:"users"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) (*UserPage, error)
	ChangeRole(ctx context.Context, userID, role string) (*domain.User, error)
}

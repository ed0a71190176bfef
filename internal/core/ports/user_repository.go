package ports

import (
	"context"
	"time"

	"github.com/daybook/journal-api/internal/core/domain"
)

// UserRepository defines the durable identity store. Email uniqueness and the
// atomicity of lockout-counter updates are enforced at this layer.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateLockout persists the failure counter and lockout expiry as a
	// single write. A nil until clears the lockout.
	UpdateLockout(ctx context.Context, id string, attempts int, until *time.Time) error
	UpdateRole(ctx context.Context, id, role string) error
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
}

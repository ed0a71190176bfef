package ports

import (
	"context"

	"github.com/daybook/journal-api/internal/core/domain"
)

// EntryRepository defines persistence for journal entries. Reads and writes
// are always scoped by the owning user id.
type EntryRepository interface {
	Insert(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Entry, error)
	Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Entry, int64, error)
	CountByMood(ctx context.Context, userID string) (map[domain.Mood]int64, error)
}

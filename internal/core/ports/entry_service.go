package ports

import (
	"context"

	"github.com/daybook/journal-api/internal/core/domain"
)

type CreateEntryInput struct {
	UserID  string
	Title   string
	Content string
	Mood    string
	Tags    []string
}

// UpdateEntryInput carries a partial update; empty fields are left unchanged.
type UpdateEntryInput struct {
	EntryID string
	UserID  string
	Title   string
	Content string
	Mood    string
	Tags    []string
}

type ListEntriesInput struct {
	UserID string
	Limit  int
	Offset int
}

// EntryPage is one page of a user's entries, newest first.
type EntryPage struct {
	Entries []domain.Entry `json:"entries"`
	Total   int64          `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

// InsightsResult summarizes a user's journaling activity.
type InsightsResult struct {
	TotalEntries int64                 `json:"totalEntries"`
	MoodCounts   map[domain.Mood]int64 `json:"moodCounts"`
}

type EntryService interface {
	Create(ctx context.Context, input CreateEntryInput) (*domain.Entry, error)
	Get(ctx context.Context, id, userID string) (*domain.Entry, error)
	Update(ctx context.Context, input UpdateEntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, id, userID string) error
	List(ctx context.Context, input ListEntriesInput) (*EntryPage, error)
	Insights(ctx context.Context, userID string) (*InsightsResult, error)
}

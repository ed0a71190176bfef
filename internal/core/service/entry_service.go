package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/ports"
)

type entryService struct {
	repo ports.EntryRepository
	log  zerolog.Logger
}

// NewEntryService returns an EntryService implementation.
func NewEntryService(repo ports.EntryRepository, log zerolog.Logger) ports.EntryService {
	return &entryService{repo: repo, log: log}
}

func (s *entryService) Create(ctx context.Context, input ports.CreateEntryInput) (*domain.Entry, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	mood := domain.Mood(input.Mood)
	if !domain.ValidMood(mood) {
		return nil, domain.NewValidationError("mood must be one of: great, good, neutral, low, rough")
	}

	now := time.Now().UTC()
	entry := &domain.Entry{
		UserID:    input.UserID,
		Title:     title,
		Content:   input.Content,
		Mood:      mood,
		Tags:      input.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.log.Debug().Str("entry_id", created.ID).Str("user_id", created.UserID).Msg("entry created")
	return created, nil
}

func (s *entryService) Get(ctx context.Context, id, userID string) (*domain.Entry, error) {
	return s.repo.FindByID(ctx, id, userID)
}

func (s *entryService) Update(ctx context.Context, input ports.UpdateEntryInput) (*domain.Entry, error) {
	entry, err := s.repo.FindByID(ctx, input.EntryID, input.UserID)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		entry.Title = title
	}
	if input.Content != "" {
		entry.Content = input.Content
	}
	if input.Mood != "" {
		mood := domain.Mood(input.Mood)
		if !domain.ValidMood(mood) {
			return nil, domain.NewValidationError("mood must be one of: great, good, neutral, low, rough")
		}
		entry.Mood = mood
	}
	if input.Tags != nil {
		entry.Tags = input.Tags
	}
	entry.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, entry)
}

func (s *entryService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *entryService) List(ctx context.Context, input ports.ListEntriesInput) (*ports.EntryPage, error) {
	limit, offset := clampPage(input.Limit, input.Offset)
	entries, total, err := s.repo.ListByUser(ctx, input.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return &ports.EntryPage{Entries: entries, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *entryService) Insights(ctx context.Context, userID string) (*ports.InsightsResult, error) {
	counts, err := s.repo.CountByMood(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("insights: %w", err)
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	// Entries without a mood land in the empty bucket; they count toward the
	// total but not the breakdown.
	delete(counts, "")
	return &ports.InsightsResult{TotalEntries: total, MoodCounts: counts}, nil
}

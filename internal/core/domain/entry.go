package domain

import "time"

// Mood is an optional self-reported mood attached to an entry.
type Mood string

const (
	MoodGreat   Mood = "great"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodLow     Mood = "low"
	MoodRough   Mood = "rough"
)

// ValidMood reports whether m is one of the known moods. The empty mood is
// valid — mood is optional.
func ValidMood(m Mood) bool {
	switch m {
	case "", MoodGreat, MoodGood, MoodNeutral, MoodLow, MoodRough:
		return true
	}
	return false
}

// Entry is a single journal entry, always owned by exactly one user.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"mood,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

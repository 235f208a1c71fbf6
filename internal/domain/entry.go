package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mood level bounds. Levels read 1=很差 through 5=很好.
const (
	MinMoodLevel = 1
	MaxMoodLevel = 5
)

// MoodEntry is one timestamped mood record. Entries are immutable by
// convention: the journal store replaces them wholesale on update rather
// than mutating them in place.
//
// OccurredAt is the user-chosen timestamp the entry represents and may
// differ from CreatedAt. AudioRef and ImageRef are opaque handles to media
// assets managed by the media service; nil means no attachment, an empty
// string is never valid.
type MoodEntry struct {
	ID         uuid.UUID  `json:"id"`
	OccurredAt time.Time  `json:"date"`
	MoodLevel  int        `json:"moodLevel"`
	Activities []Activity `json:"activities"`
	Note       *string    `json:"note"`
	AudioRef   *string    `json:"audioURL"`
	ImageRef   *string    `json:"imageURL"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// EntryDraft carries the caller-supplied fields for creating or updating a
// mood entry. Identity and system timestamps are assigned by the store.
type EntryDraft struct {
	OccurredAt time.Time
	MoodLevel  int
	Activities []Activity
	Note       *string
	AudioRef   *string
	ImageRef   *string
}

// NewMoodEntry creates a MoodEntry from a draft, assigning a fresh ID and
// system timestamps. A zero OccurredAt defaults to now.
// Returns an error if validation fails.
func NewMoodEntry(draft EntryDraft, now time.Time) (*MoodEntry, error) {
	occurredAt := draft.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	entry := &MoodEntry{
		ID:         uuid.New(),
		OccurredAt: occurredAt,
		MoodLevel:  draft.MoodLevel,
		Activities: append([]Activity(nil), draft.Activities...),
		Note:       draft.Note,
		AudioRef:   draft.AudioRef,
		ImageRef:   draft.ImageRef,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the MoodEntry has valid data.
// Returns an error if any field fails validation.
func (e *MoodEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrInvalidID
	}

	if e.MoodLevel < MinMoodLevel || e.MoodLevel > MaxMoodLevel {
		return ErrInvalidMoodLevel
	}

	seen := make(map[uuid.UUID]struct{}, len(e.Activities))
	for _, activity := range e.Activities {
		if _, dup := seen[activity.ID]; dup {
			return ErrDuplicateActivity
		}
		seen[activity.ID] = struct{}{}
	}

	if e.AudioRef != nil && *e.AudioRef == "" {
		return ErrEmptyMediaRef
	}
	if e.ImageRef != nil && *e.ImageRef == "" {
		return ErrEmptyMediaRef
	}

	return nil
}

// MoodDescription returns the display label for the entry's mood level.
func (e *MoodEntry) MoodDescription() string {
	return MoodDescription(e.MoodLevel)
}

// MoodColor returns the color key for the entry's mood level.
func (e *MoodEntry) MoodColor() string {
	switch e.MoodLevel {
	case 1:
		return "mood_very_bad"
	case 2:
		return "mood_bad"
	case 3:
		return "mood_neutral"
	case 4:
		return "mood_good"
	case 5:
		return "mood_very_good"
	default:
		return "mood_neutral"
	}
}

// MoodDescription returns the display label for a mood level.
func MoodDescription(level int) string {
	switch level {
	case 1:
		return "很差"
	case 2:
		return "不好"
	case 3:
		return "一般"
	case 4:
		return "不错"
	case 5:
		return "很好"
	default:
		return "未知"
	}
}

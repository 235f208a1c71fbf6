package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the user's self-reported gender.
type Gender string

// Possible gender values.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// MoodStyle is the user's preferred mood rendering style.
type MoodStyle string

// Possible mood style values.
const (
	MoodStyleEmoji    MoodStyle = "emoji"
	MoodStyleSimple   MoodStyle = "simple"
	MoodStyleColorful MoodStyle = "colorful"
	MoodStyleClassic  MoodStyle = "classic"
)

// SubscriptionType describes a premium subscription, when present.
type SubscriptionType string

// Possible subscription types.
const (
	SubscriptionMonthly  SubscriptionType = "monthly"
	SubscriptionYearly   SubscriptionType = "yearly"
	SubscriptionLifetime SubscriptionType = "lifetime"
)

// UserProfile is the single per-user settings record. It is persisted as one
// document and replaced wholesale on every change.
type UserProfile struct {
	ID                   uuid.UUID         `json:"id"`
	Gender               *Gender           `json:"gender"`
	Birthday             *time.Time        `json:"birthday"`
	PreferredMoodStyle   MoodStyle         `json:"preferredMoodStyle"`
	PreferredColorScheme string            `json:"preferredColorScheme"`
	SelectedMoodSkinPack *string           `json:"selectedMoodSkinPack"`
	InterestedCategories []string          `json:"interestedCategories"`
	IsPremium            bool              `json:"isPremium"`
	SubscriptionType     *SubscriptionType `json:"subscriptionType"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`

	EnableDailyReminder bool      `json:"enableDailyReminder"`
	DailyReminderTime   time.Time `json:"dailyReminderTime"`
	EnableWeeklyReview  bool      `json:"enableWeeklyReview"`
	EnableHealthTips    bool      `json:"enableHealthTips"`

	EnableHapticFeedback bool    `json:"enableHapticFeedback"`
	HapticIntensity      float64 `json:"hapticIntensity"`
}

// NewUserProfile creates a profile with default settings: emoji mood style,
// system color scheme, reminders on with an 8pm daily reminder.
func NewUserProfile(now time.Time) *UserProfile {
	reminderAt := time.Date(now.Year(), now.Month(), now.Day(), 20, 0, 0, 0, now.Location())

	return &UserProfile{
		ID:                   uuid.New(),
		PreferredMoodStyle:   MoodStyleEmoji,
		PreferredColorScheme: "system",
		InterestedCategories: []string{},
		CreatedAt:            now,
		UpdatedAt:            now,

		EnableDailyReminder: true,
		DailyReminderTime:   reminderAt,
		EnableWeeklyReview:  true,
		EnableHealthTips:    true,

		EnableHapticFeedback: true,
		HapticIntensity:      0.5,
	}
}

// Age returns the user's age in whole years, or nil when no birthday is set.
func (p *UserProfile) Age(now time.Time) *int {
	if p.Birthday == nil {
		return nil
	}

	years := now.Year() - p.Birthday.Year()
	anniversary := p.Birthday.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return &years
}

// OnboardingCompleted reports whether the user finished initial setup.
func (p *UserProfile) OnboardingCompleted() bool {
	return p.Gender != nil && len(p.InterestedCategories) > 0 && p.SelectedMoodSkinPack != nil
}

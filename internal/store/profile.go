package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/moodlog/internal/domain"
)

// ProfileStore owns the single user profile record, persisted as one
// document and replaced wholesale on every change.
type ProfileStore struct {
	provider Provider
	logger   *slog.Logger
	now      func() time.Time

	profile domain.UserProfile
}

// NewProfileStore creates a profile store backed by the given provider.
// If logger is nil, the default logger is used. Call Load before first use.
func NewProfileStore(provider Provider, logger *slog.Logger) *ProfileStore {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileStore{
		provider: provider,
		logger:   logger.With(slog.String("component", "profile_store")),
		now:      time.Now,
	}
}

// Load restores the profile, creating a default one when none is persisted
// or the document is corrupt. The default is not persisted until the first
// update.
func (s *ProfileStore) Load() error {
	data, err := s.provider.Get(KeyUserProfile)
	if err != nil {
		if IsNotFoundError(err) {
			s.profile = *domain.NewUserProfile(s.now())
			s.logger.Info("no persisted profile, created default")
			return nil
		}
		return fmt.Errorf("%w: loading user profile: %v", ErrPersistence, err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		s.profile = *domain.NewUserProfile(s.now())
		s.logger.Warn("user profile document is corrupt, created default",
			slog.String("error", err.Error()))
		return nil
	}

	s.profile = profile
	return nil
}

// Profile returns a copy of the current profile.
func (s *ProfileStore) Profile() domain.UserProfile {
	return s.profile
}

// Update replaces the profile, refreshing updatedAt, and persists. On
// persistence failure the previous profile is restored.
func (s *ProfileStore) Update(profile domain.UserProfile) error {
	previous := s.profile

	profile.ID = previous.ID
	profile.CreatedAt = previous.CreatedAt
	profile.UpdatedAt = s.now()
	s.profile = profile

	if err := s.save(); err != nil {
		s.profile = previous
		return err
	}

	s.logger.Info("user profile updated")
	return nil
}

// UpdateNotificationSettings changes the reminder settings and persists.
func (s *ProfileStore) UpdateNotificationSettings(dailyReminder bool, reminderTime time.Time, weeklyReview, healthTips bool) error {
	profile := s.profile
	profile.EnableDailyReminder = dailyReminder
	profile.DailyReminderTime = reminderTime
	profile.EnableWeeklyReview = weeklyReview
	profile.EnableHealthTips = healthTips
	return s.Update(profile)
}

// UpdateHapticSettings changes the haptic feedback settings and persists.
func (s *ProfileStore) UpdateHapticSettings(enabled bool, intensity float64) error {
	profile := s.profile
	profile.EnableHapticFeedback = enabled
	profile.HapticIntensity = intensity
	return s.Update(profile)
}

func (s *ProfileStore) save() error {
	data, err := json.Marshal(s.profile)
	if err != nil {
		return fmt.Errorf("%w: encoding user profile: %v", ErrPersistence, err)
	}
	if err := s.provider.Set(KeyUserProfile, data); err != nil {
		return fmt.Errorf("%w: saving user profile: %v", ErrPersistence, err)
	}
	return nil
}

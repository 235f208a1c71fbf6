package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/moodlog/internal/domain"
)

// ActivityStore owns the user-created activity tags. Predefined activities
// are process-wide constants in the domain package; only the custom subset
// is persisted, under its own document.
type ActivityStore struct {
	provider Provider
	logger   *slog.Logger

	custom []domain.Activity
}

// NewActivityStore creates an activity store backed by the given provider.
// If logger is nil, the default logger is used. Call Load before first use.
func NewActivityStore(provider Provider, logger *slog.Logger) *ActivityStore {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ActivityStore{
		provider: provider,
		logger:   logger.With(slog.String("component", "activity_store")),
	}
}

// Load deserializes custom activities. Missing or corrupt data yields an
// empty collection, never a failure.
func (s *ActivityStore) Load() error {
	data, err := s.provider.Get(KeyCustomActivities)
	if err != nil {
		if IsNotFoundError(err) {
			s.custom = nil
			return nil
		}
		return fmt.Errorf("%w: loading custom activities: %v", ErrPersistence, err)
	}

	var activities []domain.Activity
	if err := json.Unmarshal(data, &activities); err != nil {
		s.custom = nil
		s.logger.Warn("custom activities document is corrupt, starting empty",
			slog.String("error", err.Error()))
		return nil
	}

	s.custom = activities
	s.logger.Info("loaded custom activities", slog.Int("count", len(activities)))
	return nil
}

// Add appends a custom activity and persists. On persistence failure the
// in-memory append is rolled back.
func (s *ActivityStore) Add(activity domain.Activity) error {
	if err := activity.Validate(); err != nil {
		return err
	}

	s.custom = append(s.custom, activity)

	if err := s.save(); err != nil {
		s.custom = s.custom[:len(s.custom)-1]
		return err
	}

	s.logger.Info("custom activity added",
		slog.String("activity_id", activity.ID.String()),
		slog.String("name", activity.Name))
	return nil
}

// Delete removes a custom activity by ID.
// Returns ErrActivityNotFound if the ID is absent.
func (s *ActivityStore) Delete(id uuid.UUID) error {
	index := -1
	for i, activity := range s.custom {
		if activity.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrActivityNotFound
	}

	removed := s.custom[index]
	s.custom = append(s.custom[:index], s.custom[index+1:]...)

	if err := s.save(); err != nil {
		s.custom = append(s.custom, domain.Activity{})
		copy(s.custom[index+1:], s.custom[index:])
		s.custom[index] = removed
		return err
	}

	s.logger.Info("custom activity deleted", slog.String("activity_id", id.String()))
	return nil
}

// Custom returns a snapshot of the user-created activities.
func (s *ActivityStore) Custom() []domain.Activity {
	return append([]domain.Activity(nil), s.custom...)
}

// All returns the predefined catalog followed by the custom activities.
func (s *ActivityStore) All() []domain.Activity {
	all := make([]domain.Activity, 0, len(domain.PredefinedActivities)+len(s.custom))
	all = append(all, domain.PredefinedActivities...)
	all = append(all, s.custom...)
	return all
}

func (s *ActivityStore) save() error {
	custom := s.custom
	if custom == nil {
		custom = []domain.Activity{}
	}

	data, err := json.Marshal(custom)
	if err != nil {
		return fmt.Errorf("%w: encoding custom activities: %v", ErrPersistence, err)
	}
	if err := s.provider.Set(KeyCustomActivities, data); err != nil {
		return fmt.Errorf("%w: saving custom activities: %v", ErrPersistence, err)
	}
	return nil
}

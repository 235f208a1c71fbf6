package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/moodlog/internal/api/shared"
	"github.com/phrazzld/moodlog/internal/domain"
	"github.com/phrazzld/moodlog/internal/platform/logger"
	"github.com/phrazzld/moodlog/internal/store"
)

// ProfileResponse represents the response data for the user profile,
// including the derived age and onboarding state.
type ProfileResponse struct {
	domain.UserProfile
	Age                 *int `json:"age"`
	OnboardingCompleted bool `json:"onboardingCompleted"`
}

// NotificationSettingsRequest represents the request body for updating
// reminder settings.
type NotificationSettingsRequest struct {
	EnableDailyReminder bool      `json:"enableDailyReminder"`
	DailyReminderTime   time.Time `json:"dailyReminderTime"`
	EnableWeeklyReview  bool      `json:"enableWeeklyReview"`
	EnableHealthTips    bool      `json:"enableHealthTips"`
}

// HapticSettingsRequest represents the request body for updating haptic
// feedback settings.
type HapticSettingsRequest struct {
	Enabled   bool    `json:"enabled"`
	Intensity float64 `json:"intensity" validate:"min=0,max=1"`
}

// ProfileHandler handles user profile HTTP requests.
type ProfileHandler struct {
	profiles *store.ProfileStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *store.ProfileStore, logger *slog.Logger) *ProfileHandler {
	if profiles == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("profile store cannot be nil for ProfileHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProfileHandler")
	}

	return &ProfileHandler{
		profiles: profiles,
		logger:   logger.With(slog.String("component", "profile_handler")),
		now:      time.Now,
	}
}

// Get handles GET /profile requests.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := h.profiles.Profile()

	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		UserProfile:         profile,
		Age:                 profile.Age(h.now()),
		OnboardingCompleted: profile.OnboardingCompleted(),
	})
}

// Update handles PUT /profile requests, replacing the profile wholesale.
// Identity and creation time are preserved by the store.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var profile domain.UserProfile
	if err := shared.DecodeJSON(r, &profile); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.profiles.Update(profile); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.Get(w, r)
}

// UpdateNotifications handles PUT /profile/notifications requests.
func (h *ProfileHandler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req NotificationSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := h.profiles.UpdateNotificationSettings(
		req.EnableDailyReminder,
		req.DailyReminderTime,
		req.EnableWeeklyReview,
		req.EnableHealthTips,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.Get(w, r)
}

// UpdateHaptics handles PUT /profile/haptics requests.
func (h *ProfileHandler) UpdateHaptics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req HapticSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("invalid haptic settings", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Intensity must be between 0 and 1")
		return
	}

	if err := h.profiles.UpdateHapticSettings(req.Enabled, req.Intensity); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.Get(w, r)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/moodlog/internal/api/shared"
	"github.com/phrazzld/moodlog/internal/domain"
	"github.com/phrazzld/moodlog/internal/platform/logger"
	"github.com/phrazzld/moodlog/internal/store"
)

// CreateActivityRequest represents the request body for creating a custom
// activity. Category defaults to custom when omitted.
type CreateActivityRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// ActivityHandler handles activity HTTP requests.
type ActivityHandler struct {
	activities *store.ActivityStore
	logger     *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activities *store.ActivityStore, logger *slog.Logger) *ActivityHandler {
	if activities == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("activity store cannot be nil for ActivityHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ActivityHandler")
	}

	return &ActivityHandler{
		activities: activities,
		logger:     logger.With(slog.String("component", "activity_handler")),
	}
}

// List handles GET /activities requests, returning the predefined catalog
// followed by the user's custom activities.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.activities.All())
}

// Create handles POST /activities requests.
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateActivityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	category := domain.ActivityCategory(req.Category)
	if req.Category == "" {
		category = domain.CategoryCustom
	}

	activity, err := domain.NewCustomActivity(req.Name, category, req.Icon)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.activities.Add(*activity); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("custom activity created", slog.String("activity_id", activity.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, activity)
}

// Delete handles DELETE /activities/{id} requests. Only custom activities
// can be deleted; predefined IDs report not found.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	if err := h.activities.Delete(id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

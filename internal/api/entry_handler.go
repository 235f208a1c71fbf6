// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/moodlog/internal/api/shared"
	"github.com/phrazzld/moodlog/internal/domain"
	"github.com/phrazzld/moodlog/internal/platform/logger"
	"github.com/phrazzld/moodlog/internal/store"
)

// EntryRequest represents the request body for creating or updating a mood
// entry. Date is optional on create and defaults to the current time.
type EntryRequest struct {
	Date       time.Time         `json:"date"`
	MoodLevel  int               `json:"moodLevel" validate:"required,min=1,max=5"`
	Activities []domain.Activity `json:"activities"`
	Note       *string           `json:"note"`
	AudioURL   *string           `json:"audioURL"`
	ImageURL   *string           `json:"imageURL"`
}

// EntryHandler handles mood entry HTTP requests.
type EntryHandler struct {
	journal *store.JournalStore
	logger  *slog.Logger
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(journal *store.JournalStore, logger *slog.Logger) *EntryHandler {
	if journal == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("journal store cannot be nil for EntryHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EntryHandler")
	}

	return &EntryHandler{
		journal: journal,
		logger:  logger.With(slog.String("component", "entry_handler")),
	}
}

// Create handles POST /entries requests.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req EntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := h.journal.Create(req.toDraft())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("entry created", slog.String("entry_id", entry.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, entry)
}

// List handles GET /entries requests, returning all entries date-descending.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.journal.List())
}

// Get handles GET /entries/{id} requests.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.journal.GetByID(id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// Update handles PUT /entries/{id} requests.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.entryID(w, r)
	if !ok {
		return
	}

	var req EntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("entry_id", id.String()),
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := h.journal.Update(id, req.toDraft())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("entry updated", slog.String("entry_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// Delete handles DELETE /entries/{id} requests.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.entryID(w, r)
	if !ok {
		return
	}

	if err := h.journal.Delete(id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("entry deleted", slog.String("entry_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// entryID extracts and parses the {id} path parameter, writing the error
// response itself when the parameter is missing or malformed.
func (h *EntryHandler) entryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Entry ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid entry ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (req EntryRequest) toDraft() domain.EntryDraft {
	return domain.EntryDraft{
		OccurredAt: req.Date,
		MoodLevel:  req.MoodLevel,
		Activities: req.Activities,
		Note:       req.Note,
		AudioRef:   req.AudioURL,
		ImageRef:   req.ImageURL,
	}
}

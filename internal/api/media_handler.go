package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/moodlog/internal/api/shared"
	"github.com/phrazzld/moodlog/internal/platform/logger"
	"github.com/phrazzld/moodlog/internal/service/media"
	"github.com/phrazzld/moodlog/internal/store"
)

// maxMediaBytes caps uploaded media bodies at 20 MiB.
const maxMediaBytes = 20 << 20

// MediaResponse represents the response data for a saved media asset.
type MediaResponse struct {
	Handle string `json:"handle"`
	Size   string `json:"size"`
}

// ReclaimResponse represents the response data for an orphan reclaim run.
type ReclaimResponse struct {
	Reclaimed int `json:"reclaimed"`
}

// MediaHandler handles media asset HTTP requests. Uploads take the raw
// bytes as the request body and return an opaque handle the caller attaches
// to a mood entry.
type MediaHandler struct {
	manager *media.Manager
	journal *store.JournalStore
	logger  *slog.Logger
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(manager *media.Manager, journal *store.JournalStore, logger *slog.Logger) *MediaHandler {
	if manager == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("media manager cannot be nil for MediaHandler")
	}
	if journal == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("journal store cannot be nil for MediaHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MediaHandler")
	}

	return &MediaHandler{
		manager: manager,
		journal: journal,
		logger:  logger.With(slog.String("component", "media_handler")),
	}
}

// SaveImage handles POST /media/images requests.
func (h *MediaHandler) SaveImage(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, h.manager.SaveImage)
}

// SaveAudio handles POST /media/audio requests.
func (h *MediaHandler) SaveAudio(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, h.manager.SaveAudio)
}

func (h *MediaHandler) save(w http.ResponseWriter, r *http.Request, saveFn func([]byte) (string, error)) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMediaBytes))
	if err != nil {
		log.Warn("failed to read media body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if len(data) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Media body cannot be empty")
		return
	}

	handle, err := saveFn(data)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to save media asset", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, MediaResponse{
		Handle: handle,
		Size:   h.manager.SizeOf(handle),
	})
}

// Reclaim handles POST /media/reclaim requests, deleting every stored asset
// no journal entry references.
func (h *MediaHandler) Reclaim(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	reclaimed, err := h.manager.ReclaimOrphans(h.journal.LiveMediaRefs())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to reclaim orphaned media", err)
		return
	}

	log.Info("orphan reclaim finished", slog.Int("reclaimed", reclaimed))
	shared.RespondWithJSON(w, r, http.StatusOK, ReclaimResponse{Reclaimed: reclaimed})
}

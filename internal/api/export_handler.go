package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/moodlog/internal/api/shared"
	"github.com/phrazzld/moodlog/internal/export"
	"github.com/phrazzld/moodlog/internal/store"
)

// ExportHandler handles data export HTTP requests.
type ExportHandler struct {
	journal    *store.JournalStore
	activities *store.ActivityStore
	profiles   *store.ProfileStore
	logger     *slog.Logger
	now        func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(
	journal *store.JournalStore,
	activities *store.ActivityStore,
	profiles *store.ProfileStore,
	logger *slog.Logger,
) *ExportHandler {
	if journal == nil || activities == nil || profiles == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("stores cannot be nil for ExportHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ExportHandler")
	}

	return &ExportHandler{
		journal:    journal,
		activities: activities,
		profiles:   profiles,
		logger:     logger.With(slog.String("component", "export_handler")),
		now:        time.Now,
	}
}

// CSV handles GET /export/csv requests.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	data, err := export.CSV(h.journal.List())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to export CSV", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="mood_entries.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write CSV export", slog.String("error", err.Error()))
	}
}

// JSON handles GET /export/json requests, returning the whole-data dump.
func (h *ExportHandler) JSON(w http.ResponseWriter, r *http.Request) {
	data, err := export.JSON(h.profiles.Profile(), h.journal.List(), h.activities.Custom(), h.now())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to export JSON", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="moodlog_backup.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write JSON export", slog.String("error", err.Error()))
	}
}

// Report handles GET /export/report requests, returning the human-readable
// backup report.
func (h *ExportHandler) Report(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	summary := export.Summarize(h.profiles.Profile(), h.journal.List(), h.activities.Custom())
	report := export.Report(summary, now)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(report)); err != nil {
		h.logger.Error("failed to write report export", slog.String("error", err.Error()))
	}
}

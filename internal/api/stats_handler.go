package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/moodlog/internal/api/shared"
	"github.com/phrazzld/moodlog/internal/domain/stats"
	"github.com/phrazzld/moodlog/internal/store"
)

// StatisticsResponse represents the response data for period statistics.
type StatisticsResponse struct {
	Period       stats.Period `json:"period"`
	AverageMood  float64      `json:"averageMood"`
	TotalEntries int          `json:"totalEntries"`
	MoodCounts   map[int]int  `json:"moodCounts"`
	Stability    float64      `json:"stability"`
}

// StatsHandler handles statistics HTTP requests. The statistics engine is
// pure; this handler supplies it with a journal snapshot and the clock.
type StatsHandler struct {
	journal *store.JournalStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(journal *store.JournalStore, logger *slog.Logger) *StatsHandler {
	if journal == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("journal store cannot be nil for StatsHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StatsHandler")
	}

	return &StatsHandler{
		journal: journal,
		logger:  logger.With(slog.String("component", "stats_handler")),
		now:     time.Now,
	}
}

// Statistics handles GET /stats?period=week|month|year requests.
func (h *StatsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	statistics := stats.ForPeriod(h.journal.List(), period, h.now())

	shared.RespondWithJSON(w, r, http.StatusOK, StatisticsResponse{
		Period:       statistics.Period,
		AverageMood:  statistics.AverageMood,
		TotalEntries: statistics.TotalEntries,
		MoodCounts:   statistics.MoodCounts,
		Stability:    statistics.Stability(),
	})
}

// Trend handles GET /stats/trend?period=... requests, returning the charted
// trend points for the period.
func (h *StatsHandler) Trend(w http.ResponseWriter, r *http.Request) {
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	points := stats.TrendPoints(h.journal.List(), period, h.now())
	if points == nil {
		points = []stats.TrendPoint{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, points)
}

// period parses the period query parameter, writing the error response
// itself on failure. A missing parameter defaults to week.
func (h *StatsHandler) period(w http.ResponseWriter, r *http.Request) (stats.Period, bool) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return stats.PeriodWeek, true
	}

	period, err := stats.ParsePeriod(raw)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return "", false
	}
	return period, true
}

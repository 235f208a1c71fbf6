// Package stats is the statistics engine: pure functions over mood entries
// for a given time window. It holds no state and performs no I/O; callers
// pass a snapshot of entries and a reference "now".
package stats

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/phrazzld/moodlog/internal/domain"
)

// Period selects the retrospective window.
type Period string

// Possible period values.
const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ErrInvalidPeriod is returned when a period string is not week, month or year.
var ErrInvalidPeriod = errors.New("invalid statistics period")

// ParsePeriod converts a wire-level period string into a Period.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s), nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Start returns the inclusive lower bound of the period ending at now.
// Week is a fixed 7 days; month and year subtract a calendar unit, so their
// length varies with the calendar rather than being a fixed day count.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now
	}
}

// anchorCount is the number of trend anchors per period.
func (p Period) anchorCount() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodYear:
		return 12
	default:
		return 0
	}
}

// Statistics is the aggregate over one period's entries.
type Statistics struct {
	Period       Period             `json:"period"`
	AverageMood  float64            `json:"averageMood"`
	TotalEntries int                `json:"totalEntries"`
	MoodCounts   map[int]int        `json:"moodCounts"`
	Entries      []domain.MoodEntry `json:"-"`
}

// FilterByPeriod keeps entries with occurredAt >= now - period. The input
// order is preserved; the result is a fresh slice.
func FilterByPeriod(entries []domain.MoodEntry, period Period, now time.Time) []domain.MoodEntry {
	start := period.Start(now)

	filtered := make([]domain.MoodEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.OccurredAt.Before(start) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Aggregate computes the mean mood and per-level histogram over entries.
// An empty input yields averageMood 0.0 and an empty (non-nil) histogram,
// never NaN and never an error.
func Aggregate(entries []domain.MoodEntry) Statistics {
	counts := make(map[int]int)

	sum := 0
	for _, entry := range entries {
		sum += entry.MoodLevel
		counts[entry.MoodLevel]++
	}

	average := 0.0
	if len(entries) > 0 {
		average = float64(sum) / float64(len(entries))
	}

	return Statistics{
		AverageMood:  average,
		TotalEntries: len(entries),
		MoodCounts:   counts,
		Entries:      append([]domain.MoodEntry(nil), entries...),
	}
}

// ForPeriod filters entries to the period ending at now and aggregates them.
func ForPeriod(entries []domain.MoodEntry, period Period, now time.Time) Statistics {
	statistics := Aggregate(FilterByPeriod(entries, period, now))
	statistics.Period = period
	return statistics
}

// Stability maps the spread of mood levels to a [0,1] score: 1.0 for a
// perfectly steady mood, falling toward 0 as the population standard
// deviation grows. Empty input yields 0.0.
func (s Statistics) Stability() float64 {
	if len(s.Entries) == 0 {
		return 0.0
	}

	variance := 0.0
	for _, entry := range s.Entries {
		diff := float64(entry.MoodLevel) - s.AverageMood
		variance += diff * diff
	}
	variance /= float64(len(s.Entries))

	return math.Max(0, 1-math.Sqrt(variance)/2.0)
}

// TrendPoint is one charted sample: an anchor timestamp and a mood level.
type TrendPoint struct {
	Timestamp time.Time `json:"timestamp"`
	MoodLevel int       `json:"moodLevel"`
}

// TrendPoints produces one evenly spaced anchor per period unit (7 daily
// anchors for a week, 30 for a month, 12 monthly anchors for a year) and
// pairs anchors with entries positionally: the i-th chronologically sorted
// entry in the window maps to the i-th anchor, regardless of the entry's
// actual date. With fewer entries than anchors the series is truncated.
func TrendPoints(entries []domain.MoodEntry, period Period, now time.Time) []TrendPoint {
	anchors := periodAnchors(period, now)
	if len(anchors) == 0 {
		return nil
	}

	window := FilterByPeriod(entries, period, now)
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].OccurredAt.Before(window[j].OccurredAt)
	})

	n := len(window)
	if n > len(anchors) {
		n = len(anchors)
	}

	points := make([]TrendPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, TrendPoint{
			Timestamp: anchors[i],
			MoodLevel: window[i].MoodLevel,
		})
	}
	return points
}

// periodAnchors returns the period's anchor timestamps in chronological
// order, each truncated to the start of its day, ending at today.
func periodAnchors(period Period, now time.Time) []time.Time {
	count := period.anchorCount()
	anchors := make([]time.Time, 0, count)

	for i := 0; i < count; i++ {
		var at time.Time
		if period == PeriodYear {
			at = now.AddDate(0, i-(count-1), 0)
		} else {
			at = now.AddDate(0, 0, i-(count-1))
		}
		anchors = append(anchors, startOfDay(at))
	}
	return anchors
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

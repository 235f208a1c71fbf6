// Package export renders journal data into downstream formats: a CSV
// spreadsheet, a whole-data JSON dump and a human-readable backup report.
// Everything here is derivable from the journal snapshot and the statistics
// engine; the package holds no state of its own.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/moodlog/internal/domain"
)

// csvHeader is the fixed column set of the CSV export.
var csvHeader = []string{"日期", "时间", "心情等级", "心情描述", "活动", "备注", "包含语音", "包含图片"}

const (
	dateLayout   = "2006-01-02"
	timeLayout   = "15:04"
	zhDateLayout = "2006年01月02日"
)

// CSV renders entries as a comma-separated spreadsheet, one row per entry in
// the given order. Fields are quoted as needed with embedded quotes doubled,
// per encoding/csv.
func CSV(entries []domain.MoodEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export: writing CSV header: %w", err)
	}

	for _, entry := range entries {
		names := make([]string, 0, len(entry.Activities))
		for _, activity := range entry.Activities {
			names = append(names, activity.Name)
		}

		note := ""
		if entry.Note != nil {
			note = *entry.Note
		}

		row := []string{
			entry.OccurredAt.Format(dateLayout),
			entry.OccurredAt.Format(timeLayout),
			strconv.Itoa(entry.MoodLevel),
			entry.MoodDescription(),
			strings.Join(names, "、"),
			note,
			yesNo(entry.AudioRef != nil),
			yesNo(entry.ImageRef != nil),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Document is the whole-data JSON export.
type Document struct {
	UserProfile      domain.UserProfile `json:"userProfile"`
	MoodEntries      []domain.MoodEntry `json:"moodEntries"`
	CustomActivities []domain.Activity  `json:"customActivities"`
	ExportDate       time.Time          `json:"exportDate"`
}

// JSON renders the full data set as one indented JSON document.
func JSON(profile domain.UserProfile, entries []domain.MoodEntry, custom []domain.Activity, exportedAt time.Time) ([]byte, error) {
	if entries == nil {
		entries = []domain.MoodEntry{}
	}
	if custom == nil {
		custom = []domain.Activity{}
	}

	doc := Document{
		UserProfile:      profile,
		MoodEntries:      entries,
		CustomActivities: custom,
		ExportDate:       exportedAt,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encoding JSON document: %w", err)
	}
	return data, nil
}

// Summary is the aggregate header of the backup report.
type Summary struct {
	TotalEntries          int
	AverageMood           float64
	DateRange             string
	CustomActivitiesCount int
	IsPremium             bool
}

// Summarize computes the report aggregates over the full journal.
func Summarize(profile domain.UserProfile, entries []domain.MoodEntry, custom []domain.Activity) Summary {
	average := 0.0
	if len(entries) > 0 {
		sum := 0
		for _, entry := range entries {
			sum += entry.MoodLevel
		}
		average = float64(sum) / float64(len(entries))
	}

	return Summary{
		TotalEntries:          len(entries),
		AverageMood:           average,
		DateRange:             dateRange(entries),
		CustomActivitiesCount: len(custom),
		IsPremium:             profile.IsPremium,
	}
}

// Report renders the backup report as human-readable text.
func Report(summary Summary, generatedAt time.Time) string {
	membership := "免费用户"
	if summary.IsPremium {
		membership = "付费用户"
	}

	var b strings.Builder
	b.WriteString("心情日记备份报告\n\n")
	fmt.Fprintf(&b, "导出日期: %s\n\n", generatedAt.Format(zhDateLayout+" 15:04"))
	b.WriteString("数据统计:\n")
	fmt.Fprintf(&b, "• 心情记录总数: %d 条\n", summary.TotalEntries)
	fmt.Fprintf(&b, "• 平均心情评分: %.1f\n", summary.AverageMood)
	fmt.Fprintf(&b, "• 记录时间范围: %s\n", summary.DateRange)
	fmt.Fprintf(&b, "• 自定义活动: %d 个\n", summary.CustomActivitiesCount)
	fmt.Fprintf(&b, "• 会员状态: %s\n\n", membership)
	b.WriteString("此报告由心情日记应用自动生成。\n")
	return b.String()
}

// dateRange formats the oldest-to-newest span of the journal.
func dateRange(entries []domain.MoodEntry) string {
	if len(entries) == 0 {
		return "无数据"
	}

	sorted := append([]domain.MoodEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
	})

	first := sorted[0].OccurredAt.Format(zhDateLayout)
	last := sorted[len(sorted)-1].OccurredAt.Format(zhDateLayout)
	return first + " - " + last
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

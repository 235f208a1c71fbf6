package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/moodlog/internal/domain"
)

func sampleEntry(t *testing.T, occurredAt time.Time, level int) domain.MoodEntry {
	t.Helper()
	return domain.MoodEntry{
		ID:         uuid.New(),
		OccurredAt: occurredAt,
		MoodLevel:  level,
		CreatedAt:  occurredAt,
		UpdatedAt:  occurredAt,
	}
}

func TestCSVHeaderAndRows(t *testing.T) {
	t.Parallel()

	occurredAt := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	note := "和朋友聊天很开心"
	audio := "recording_1700000000.000001.m4a"

	entry := sampleEntry(t, occurredAt, 4)
	entry.Activities = []domain.Activity{domain.PredefinedActivities[0], domain.PredefinedActivities[4]}
	entry.Note = &note
	entry.AudioRef = &audio

	data, err := CSV([]domain.MoodEntry{entry})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t,
		[]string{"日期", "时间", "心情等级", "心情描述", "活动", "备注", "包含语音", "包含图片"},
		records[0])
	assert.Equal(t,
		[]string{"2024-03-10", "14:30", "4", "不错", "散步、与朋友聊天", note, "是", "否"},
		records[1])
}

func TestCSVQuotesEmbeddedCommasAndQuotes(t *testing.T) {
	t.Parallel()

	note := `he said "hi", twice`
	entry := sampleEntry(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), 3)
	entry.Note = &note

	data, err := CSV([]domain.MoodEntry{entry})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"he said ""hi"", twice"`)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, note, records[1][5])
}

func TestCSVEmptyJournal(t *testing.T) {
	t.Parallel()

	data, err := CSV(nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 1, "header only")
}

func TestJSONDocument(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	profile := *domain.NewUserProfile(now)
	entries := []domain.MoodEntry{sampleEntry(t, now, 5)}

	data, err := JSON(profile, entries, nil, now)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "userProfile")
	assert.Contains(t, doc, "moodEntries")
	assert.Contains(t, doc, "customActivities")
	assert.Contains(t, doc, "exportDate")

	var custom []domain.Activity
	require.NoError(t, json.Unmarshal(doc["customActivities"], &custom))
	assert.Empty(t, custom, "nil custom activities export as an empty array")
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	profile := *domain.NewUserProfile(now)
	entries := []domain.MoodEntry{
		sampleEntry(t, now, 5),
		sampleEntry(t, now.AddDate(0, 0, -9), 2),
	}

	summary := Summarize(profile, entries, nil)

	assert.Equal(t, 2, summary.TotalEntries)
	assert.InDelta(t, 3.5, summary.AverageMood, 1e-9)
	assert.Equal(t, "2024年03月01日 - 2024年03月10日", summary.DateRange)
	assert.False(t, summary.IsPremium)
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	summary := Summarize(*domain.NewUserProfile(time.Now().UTC()), nil, nil)

	assert.Equal(t, 0, summary.TotalEntries)
	assert.Equal(t, 0.0, summary.AverageMood)
	assert.Equal(t, "无数据", summary.DateRange)
}

func TestReport(t *testing.T) {
	t.Parallel()

	summary := Summary{
		TotalEntries:          14,
		AverageMood:           3.6,
		DateRange:             "2024年02月25日 - 2024年03月10日",
		CustomActivitiesCount: 2,
		IsPremium:             true,
	}

	report := Report(summary, time.Date(2024, 3, 10, 18, 45, 0, 0, time.UTC))

	assert.Contains(t, report, "心情日记备份报告")
	assert.Contains(t, report, "• 心情记录总数: 14 条")
	assert.Contains(t, report, "• 平均心情评分: 3.6")
	assert.Contains(t, report, "• 会员状态: 付费用户")
	assert.Contains(t, report, "2024年03月10日 18:45")
}

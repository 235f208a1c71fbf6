package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/moodlog/internal/domain"
	"github.com/phrazzld/moodlog/internal/platform/blobfile"
	"github.com/phrazzld/moodlog/internal/service/media"
	"github.com/phrazzld/moodlog/internal/store"
)

// newTestServer builds a server on a fresh file-backed provider and media
// directory, the same stack cmd/server wires.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := blobfile.New(t.TempDir(), logger)
	require.NoError(t, err)

	manager, err := media.NewManager(t.TempDir(), logger)
	require.NoError(t, err)

	journal := store.NewJournalStore(provider, manager, logger)
	require.NoError(t, journal.Load())
	activities := store.NewActivityStore(provider, logger)
	require.NoError(t, activities.Load())
	entitlements := store.NewEntitlementStore(provider, logger)
	require.NoError(t, entitlements.Load())
	profiles := store.NewProfileStore(provider, logger)
	require.NoError(t, profiles.Load())

	server := httptest.NewServer(NewRouter(Dependencies{
		Journal:      journal,
		Activities:   activities,
		Entitlements: entitlements,
		Profiles:     profiles,
		Media:        manager,
		Logger:       logger,
	}))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestEntryLifecycle(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	note := "今天散步了"
	resp := doJSON(t, http.MethodPost, server.URL+"/api/entries", map[string]any{
		"moodLevel":  4,
		"activities": []domain.Activity{domain.PredefinedActivities[0]},
		"note":       note,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[domain.MoodEntry](t, resp)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 4, created.MoodLevel)
	require.NotNil(t, created.Note)
	assert.Equal(t, note, *created.Note)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/entries/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[domain.MoodEntry](t, resp)
	assert.Equal(t, created.ID, fetched.ID)

	resp = doJSON(t, http.MethodPut, server.URL+"/api/entries/"+created.ID.String(), map[string]any{
		"moodLevel": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[domain.MoodEntry](t, resp)
	assert.Equal(t, 2, updated.MoodLevel)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/entries/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/entries/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestListEntriesDateDescending(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	older := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{older, newer} {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/entries", map[string]any{
			"date":      at,
			"moodLevel": 3,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/entries", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := decodeBody[[]domain.MoodEntry](t, resp)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].OccurredAt.After(entries[1].OccurredAt))
}

func TestCreateEntryRejectsInvalidMoodLevel(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/entries", map[string]any{
		"moodLevel": 7,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestEntryInvalidIDFormat(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/entries/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	for _, level := range []int{3, 3, 3} {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/entries", map[string]any{
			"moodLevel": level,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/stats?period=week", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	statistics := decodeBody[StatisticsResponse](t, resp)
	assert.Equal(t, 3, statistics.TotalEntries)
	assert.InDelta(t, 3.0, statistics.AverageMood, 1e-9)
	assert.InDelta(t, 1.0, statistics.Stability, 1e-9)
	assert.Equal(t, 3, statistics.MoodCounts[3])
}

func TestStatisticsRejectsUnknownPeriod(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/stats?period=decade", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestTrend(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/entries", map[string]any{"moodLevel": 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/stats/trend?period=week", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	points := decodeBody[[]map[string]any](t, resp)
	assert.Len(t, points, 1)
}

func TestCustomActivityLifecycle(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/activities", map[string]any{
		"name": "钓鱼",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[domain.Activity](t, resp)
	assert.True(t, created.IsCustom)
	assert.Equal(t, domain.CategoryCustom, created.Category)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/activities", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	all := decodeBody[[]domain.Activity](t, resp)
	assert.Len(t, all, len(domain.PredefinedActivities)+1)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/activities/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Predefined activities cannot be deleted.
	resp = doJSON(t, http.MethodDelete,
		server.URL+"/api/activities/"+domain.PredefinedActivities[0].ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateActivityRejectsLongName(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/activities", map[string]any{
		"name": strings.Repeat("长", 11),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCatalogUnlockAndApply(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	// elegant_purple is not part of the free tier.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/catalog/themes/elegant_purple/apply", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/api/catalog/themes/elegant_purple/unlock", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/api/catalog/themes/elegant_purple/apply", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/catalog/themes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := decodeBody[[]ThemeCatalogEntry](t, resp)
	require.Len(t, entries, len(domain.AvailableThemes))

	byID := make(map[string]ThemeCatalogEntry, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
	}
	assert.True(t, byID["elegant_purple"].Unlocked)
	assert.True(t, byID["elegant_purple"].Active)
	assert.True(t, byID["default"].Unlocked)
	assert.False(t, byID["default"].Active)
	assert.False(t, byID["dark_theme"].Unlocked)
}

func TestCatalogErrors(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/catalog/themes/no_such_theme/unlock", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/catalog/wallpapers", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSkinPackCatalog(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/catalog/skinpacks", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := decodeBody[[]SkinPackCatalogEntry](t, resp)
	require.Len(t, entries, len(domain.AvailableSkinPacks))
	assert.Equal(t, "default_emoji", entries[0].ID)
	assert.True(t, entries[0].Unlocked)
	assert.True(t, entries[0].Active)
}

func TestProfileSettings(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/profile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decodeBody[ProfileResponse](t, resp)
	assert.False(t, profile.OnboardingCompleted)
	assert.Nil(t, profile.Age)
	assert.True(t, profile.EnableDailyReminder)

	resp = doJSON(t, http.MethodPut, server.URL+"/api/profile/haptics", map[string]any{
		"enabled":   false,
		"intensity": 0.8,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile = decodeBody[ProfileResponse](t, resp)
	assert.False(t, profile.EnableHapticFeedback)
	assert.InDelta(t, 0.8, profile.HapticIntensity, 1e-9)

	resp = doJSON(t, http.MethodPut, server.URL+"/api/profile/haptics", map[string]any{
		"enabled":   true,
		"intensity": 1.5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, server.URL+"/api/profile/notifications", map[string]any{
		"enableDailyReminder": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile = decodeBody[ProfileResponse](t, resp)
	assert.False(t, profile.EnableDailyReminder)
}

func TestMediaUploadAndReclaim(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/media/images", "image/jpeg", bytes.NewReader([]byte("jpeg bytes")))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decodeBody[MediaResponse](t, resp)
	assert.True(t, strings.HasPrefix(saved.Handle, media.ImagePrefix))
	assert.NotEmpty(t, saved.Size)

	// Nothing references the upload, so a reclaim sweep removes it.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/media/reclaim", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reclaim := decodeBody[ReclaimResponse](t, resp)
	assert.Equal(t, 1, reclaim.Reclaimed)
}

func TestMediaReferencedUploadSurvivesReclaim(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/media/audio", "audio/mp4", bytes.NewReader([]byte("aac bytes")))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decodeBody[MediaResponse](t, resp)
	assert.True(t, strings.HasPrefix(saved.Handle, media.AudioPrefix))

	resp = doJSON(t, http.MethodPost, server.URL+"/api/entries", map[string]any{
		"moodLevel": 3,
		"audioURL":  saved.Handle,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/api/media/reclaim", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reclaim := decodeBody[ReclaimResponse](t, resp)
	assert.Equal(t, 0, reclaim.Reclaimed)
}

func TestMediaUploadRejectsEmptyBody(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/media/images", "image/jpeg", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/entries", map[string]any{"moodLevel": 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/export/csv", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "日期,时间,心情等级")
	assert.Contains(t, string(body), "很好")
}

func TestExportReport(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/export/report", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "心情日记备份报告")
	assert.Contains(t, string(body), "无数据")
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/export/json", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := decodeBody[map[string]json.RawMessage](t, resp)
	for _, key := range []string{"userProfile", "moodEntries", "customActivities", "exportDate"} {
		assert.Contains(t, doc, key, fmt.Sprintf("export document must carry %s", key))
	}
}

func TestErrorResponsesCarryTraceID(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/stats?period=decade", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	assert.NotEmpty(t, body["trace_id"])
	assert.NotEmpty(t, body["error"])
}

package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/moodlog/internal/domain"
)

func newTestEntitlements(t *testing.T, provider Provider) *EntitlementStore {
	t.Helper()
	entitlements := NewEntitlementStore(provider, nil)
	require.NoError(t, entitlements.Load())
	return entitlements
}

func TestEntitlementSeedsFreeTierOnce(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	entitlements := newTestEntitlements(t, provider)

	for _, id := range domain.FreeThemeIDs {
		assert.True(t, entitlements.IsUnlocked(KindTheme, id), "free theme %q must be seeded", id)
	}
	for _, id := range domain.FreeSkinPackIDs {
		assert.True(t, entitlements.IsUnlocked(KindSkinPack, id), "free pack %q must be seeded", id)
	}

	// The seed is persisted immediately.
	var seeded []string
	require.NoError(t, json.Unmarshal(provider.docs[KeyUnlockedThemes], &seeded))
	assert.ElementsMatch(t, domain.FreeThemeIDs, seeded)
}

func TestEntitlementNeverReseedsPresentDocument(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	provider.docs[KeyUnlockedThemes] = []byte(`[]`)
	provider.docs[KeyUnlockedMoodSkinPacks] = []byte(`[]`)

	entitlements := newTestEntitlements(t, provider)

	// A present-but-empty unlock set is respected: no free-tier re-seed.
	for _, id := range domain.FreeThemeIDs {
		assert.False(t, entitlements.IsUnlocked(KindTheme, id))
	}
	ids, err := entitlements.UnlockedIDs(KindSkinPack)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestApplyBeforeUnlock(t *testing.T) {
	t.Parallel()

	entitlements := newTestEntitlements(t, newMemProvider())

	err := entitlements.Apply(KindTheme, "elegant_purple")
	assert.ErrorIs(t, err, ErrNotUnlocked)

	require.NoError(t, entitlements.Unlock(KindTheme, "elegant_purple"))
	require.NoError(t, entitlements.Apply(KindTheme, "elegant_purple"))

	current, err := entitlements.Current(KindTheme)
	require.NoError(t, err)
	assert.Equal(t, "elegant_purple", current)
	assert.Equal(t, "优雅薰衣草", entitlements.CurrentTheme().Name)
}

func TestUnlockIsIdempotent(t *testing.T) {
	t.Parallel()

	entitlements := newTestEntitlements(t, newMemProvider())

	require.NoError(t, entitlements.Unlock(KindSkinPack, "nature_scenes"))
	require.NoError(t, entitlements.Unlock(KindSkinPack, "nature_scenes"))

	ids, err := entitlements.UnlockedIDs(KindSkinPack)
	require.NoError(t, err)
	assert.Equal(t, []string{"cute_animals", "default_emoji", "nature_scenes"}, ids)
}

func TestUnlockUnknownCatalogEntry(t *testing.T) {
	t.Parallel()

	entitlements := newTestEntitlements(t, newMemProvider())

	assert.ErrorIs(t, entitlements.Unlock(KindTheme, "no_such_theme"), ErrCatalogEntryNotFound)
	assert.ErrorIs(t, entitlements.Apply(KindSkinPack, "no_such_pack"), ErrCatalogEntryNotFound)
}

func TestApplyPersistsCurrentSelection(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	entitlements := newTestEntitlements(t, provider)

	require.NoError(t, entitlements.Apply(KindSkinPack, "cute_animals"))

	// A fresh store over the same provider sees the applied pack.
	reloaded := newTestEntitlements(t, provider)
	current, err := reloaded.Current(KindSkinPack)
	require.NoError(t, err)
	assert.Equal(t, "cute_animals", current)
	assert.Equal(t, "🐼", reloaded.MoodDisplay(3))
}

func TestUnlockRollsBackOnPersistenceFailure(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	entitlements := newTestEntitlements(t, provider)

	provider.failSet = true
	err := entitlements.Unlock(KindTheme, "dark_theme")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.False(t, entitlements.IsUnlocked(KindTheme, "dark_theme"))
}

func TestParseCatalogKind(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]CatalogKind{
		"theme":     KindTheme,
		"themes":    KindTheme,
		"skinPack":  KindSkinPack,
		"skinpacks": KindSkinPack,
	} {
		kind, err := ParseCatalogKind(input)
		require.NoError(t, err)
		assert.Equal(t, want, kind)
	}

	_, err := ParseCatalogKind("stickers")
	assert.ErrorIs(t, err, ErrInvalidCatalogKind)
}

func TestCurrentDefaultsWithoutPersistedState(t *testing.T) {
	t.Parallel()

	entitlements := newTestEntitlements(t, newMemProvider())

	theme, err := entitlements.Current(KindTheme)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultThemeID, theme)

	pack, err := entitlements.Current(KindSkinPack)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSkinPackID, pack)
}

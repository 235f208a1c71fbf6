package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/phrazzld/moodlog/internal/domain"
)

// CatalogKind selects which catalog an entitlement operation targets.
type CatalogKind string

// Possible catalog kinds.
const (
	KindTheme    CatalogKind = "theme"
	KindSkinPack CatalogKind = "skinPack"
)

// ParseCatalogKind converts a wire-level kind string into a CatalogKind.
// It accepts the route spellings "themes" and "skinpacks" as well.
func ParseCatalogKind(s string) (CatalogKind, error) {
	switch s {
	case "theme", "themes":
		return KindTheme, nil
	case "skinPack", "skinpack", "skinpacks":
		return KindSkinPack, nil
	default:
		return "", ErrInvalidCatalogKind
	}
}

// EntitlementStore tracks which theme and skin-pack IDs are unlocked and
// which one of each is currently active. Unlock sets and current selections
// are persisted as separate documents; the catalogs themselves are static.
//
// Free-tier defaults are seeded exactly once, the first time the store loads
// with no persisted unlock set. A present-but-empty set is respected and
// never re-seeded.
type EntitlementStore struct {
	provider Provider
	logger   *slog.Logger

	unlockedThemes  map[string]struct{}
	unlockedPacks   map[string]struct{}
	currentTheme    domain.ThemeDescriptor
	currentSkinPack domain.SkinPackDescriptor
}

// NewEntitlementStore creates an entitlement store backed by the given
// provider. If logger is nil, the default logger is used. Call Load before
// first use.
func NewEntitlementStore(provider Provider, logger *slog.Logger) *EntitlementStore {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &EntitlementStore{
		provider: provider,
		logger:   logger.With(slog.String("component", "entitlement_store")),
	}
}

// Load restores unlock sets and current selections, seeding free-tier
// defaults for any unlock set that has never been persisted.
func (s *EntitlementStore) Load() error {
	themes, err := s.loadUnlockSet(KeyUnlockedThemes, domain.FreeThemeIDs)
	if err != nil {
		return err
	}
	s.unlockedThemes = themes

	packs, err := s.loadUnlockSet(KeyUnlockedMoodSkinPacks, domain.FreeSkinPackIDs)
	if err != nil {
		return err
	}
	s.unlockedPacks = packs

	s.currentTheme = s.loadCurrentTheme()
	s.currentSkinPack = s.loadCurrentSkinPack()

	s.logger.Info("entitlements loaded",
		slog.Int("unlocked_themes", len(s.unlockedThemes)),
		slog.Int("unlocked_skin_packs", len(s.unlockedPacks)),
		slog.String("current_theme", s.currentTheme.ID),
		slog.String("current_skin_pack", s.currentSkinPack.ID))
	return nil
}

// Unlock idempotently adds the ID to the unlocked set for the given catalog
// and persists. Returns ErrCatalogEntryNotFound for an unknown ID.
func (s *EntitlementStore) Unlock(kind CatalogKind, id string) error {
	set, key, err := s.unlockSet(kind)
	if err != nil {
		return err
	}
	if !catalogHas(kind, id) {
		return ErrCatalogEntryNotFound
	}

	if _, already := set[id]; already {
		return nil
	}

	set[id] = struct{}{}
	if err := s.saveUnlockSet(key, set); err != nil {
		delete(set, id)
		return err
	}

	s.logger.Info("catalog entry unlocked",
		slog.String("kind", string(kind)),
		slog.String("id", id))
	return nil
}

// Apply sets the ID as the current selection for the given catalog and
// persists. Returns ErrNotUnlocked if the ID has not been unlocked and
// ErrCatalogEntryNotFound for an unknown ID.
func (s *EntitlementStore) Apply(kind CatalogKind, id string) error {
	set, _, err := s.unlockSet(kind)
	if err != nil {
		return err
	}
	if !catalogHas(kind, id) {
		return ErrCatalogEntryNotFound
	}
	if _, unlocked := set[id]; !unlocked {
		return ErrNotUnlocked
	}

	switch kind {
	case KindTheme:
		previous := s.currentTheme
		s.currentTheme, _ = domain.ThemeByID(id)
		if err := s.saveDocument(KeyCurrentTheme, s.currentTheme); err != nil {
			s.currentTheme = previous
			return err
		}
	case KindSkinPack:
		previous := s.currentSkinPack
		s.currentSkinPack, _ = domain.SkinPackByID(id)
		if err := s.saveDocument(KeyCurrentMoodSkinPack, s.currentSkinPack); err != nil {
			s.currentSkinPack = previous
			return err
		}
	}

	s.logger.Info("catalog entry applied",
		slog.String("kind", string(kind)),
		slog.String("id", id))
	return nil
}

// IsUnlocked reports whether the ID is in the unlocked set for the catalog.
// An unknown kind or ID reports false.
func (s *EntitlementStore) IsUnlocked(kind CatalogKind, id string) bool {
	set, _, err := s.unlockSet(kind)
	if err != nil {
		return false
	}
	_, unlocked := set[id]
	return unlocked
}

// Current returns the currently applied ID for the catalog.
func (s *EntitlementStore) Current(kind CatalogKind) (string, error) {
	switch kind {
	case KindTheme:
		return s.currentTheme.ID, nil
	case KindSkinPack:
		return s.currentSkinPack.ID, nil
	default:
		return "", ErrInvalidCatalogKind
	}
}

// CurrentTheme returns the currently applied theme descriptor.
func (s *EntitlementStore) CurrentTheme() domain.ThemeDescriptor {
	return s.currentTheme
}

// CurrentSkinPack returns the currently applied skin-pack descriptor.
func (s *EntitlementStore) CurrentSkinPack() domain.SkinPackDescriptor {
	return s.currentSkinPack
}

// UnlockedIDs returns the sorted unlocked IDs for the catalog.
func (s *EntitlementStore) UnlockedIDs(kind CatalogKind) ([]string, error) {
	set, _, err := s.unlockSet(kind)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// MoodDisplay returns the current skin pack's image for a mood level.
func (s *EntitlementStore) MoodDisplay(level int) string {
	return s.currentSkinPack.MoodImage(level)
}

// loadUnlockSet reads one unlock-set document, seeding and persisting the
// free-tier defaults only when the document has never been written. An
// unparseable document is treated as absence, the same degradation rule the
// journal uses.
func (s *EntitlementStore) loadUnlockSet(key string, seed []string) (map[string]struct{}, error) {
	data, err := s.provider.Get(key)
	if err != nil {
		if !IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: loading %s: %v", ErrPersistence, key, err)
		}
		return s.seedUnlockSet(key, seed)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn("unlock set document is corrupt, re-seeding defaults",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return s.seedUnlockSet(key, seed)
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (s *EntitlementStore) seedUnlockSet(key string, seed []string) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(seed))
	for _, id := range seed {
		set[id] = struct{}{}
	}
	if err := s.saveUnlockSet(key, set); err != nil {
		return nil, err
	}

	s.logger.Info("seeded free-tier unlock set",
		slog.String("key", key),
		slog.Int("count", len(seed)))
	return set, nil
}

func (s *EntitlementStore) loadCurrentTheme() domain.ThemeDescriptor {
	fallback := domain.AvailableThemes[0]

	data, err := s.provider.Get(KeyCurrentTheme)
	if err != nil {
		return fallback
	}

	var theme domain.ThemeDescriptor
	if err := json.Unmarshal(data, &theme); err != nil {
		return fallback
	}

	// Re-resolve against the catalog so stale denormalized fields heal.
	if resolved, ok := domain.ThemeByID(theme.ID); ok {
		return resolved
	}
	return fallback
}

func (s *EntitlementStore) loadCurrentSkinPack() domain.SkinPackDescriptor {
	fallback := domain.AvailableSkinPacks[0]

	data, err := s.provider.Get(KeyCurrentMoodSkinPack)
	if err != nil {
		return fallback
	}

	var pack domain.SkinPackDescriptor
	if err := json.Unmarshal(data, &pack); err != nil {
		return fallback
	}

	if resolved, ok := domain.SkinPackByID(pack.ID); ok {
		return resolved
	}
	return fallback
}

func (s *EntitlementStore) unlockSet(kind CatalogKind) (map[string]struct{}, string, error) {
	switch kind {
	case KindTheme:
		return s.unlockedThemes, KeyUnlockedThemes, nil
	case KindSkinPack:
		return s.unlockedPacks, KeyUnlockedMoodSkinPacks, nil
	default:
		return nil, "", ErrInvalidCatalogKind
	}
}

func (s *EntitlementStore) saveUnlockSet(key string, set map[string]struct{}) error {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return s.saveDocument(key, ids)
}

func (s *EntitlementStore) saveDocument(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrPersistence, key, err)
	}
	if err := s.provider.Set(key, data); err != nil {
		return fmt.Errorf("%w: saving %s: %v", ErrPersistence, key, err)
	}
	return nil
}

// catalogHas reports whether the catalog for kind contains the ID.
func catalogHas(kind CatalogKind, id string) bool {
	switch kind {
	case KindTheme:
		_, ok := domain.ThemeByID(id)
		return ok
	case KindSkinPack:
		_, ok := domain.SkinPackByID(id)
		return ok
	default:
		return false
	}
}

package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/moodlog/internal/domain"
)

// MediaReleaser releases media files attached to deleted entries. The media
// service implements it; the journal store only records references and never
// performs file I/O itself.
type MediaReleaser interface {
	Delete(handle string) error
}

// JournalStore owns the ordered collection of mood entries. Entries are kept
// date-descending (ties broken by insertion order, newest first) and the
// whole collection is persisted as one JSON document on every mutation.
type JournalStore struct {
	provider Provider
	media    MediaReleaser
	logger   *slog.Logger
	now      func() time.Time

	entries []domain.MoodEntry
}

// NewJournalStore creates a journal store backed by the given provider.
// media may be nil, in which case deletes skip attachment release. If logger
// is nil, the default logger is used. Call Load before first use.
func NewJournalStore(provider Provider, media MediaReleaser, logger *slog.Logger) *JournalStore {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &JournalStore{
		provider: provider,
		media:    media,
		logger:   logger.With(slog.String("component", "journal_store")),
		now:      time.Now,
	}
}

// Load deserializes the entry collection from the provider. Missing or
// corrupt data yields an empty collection, never a failure; the corrupt
// document is left untouched for forensic inspection until the next
// successful Save. Only a real provider failure is returned.
func (s *JournalStore) Load() error {
	data, err := s.provider.Get(KeyMoodEntries)
	if err != nil {
		if IsNotFoundError(err) {
			s.entries = nil
			s.logger.Info("no persisted mood entries, starting empty")
			return nil
		}
		return fmt.Errorf("%w: loading mood entries: %v", ErrPersistence, err)
	}

	var entries []domain.MoodEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Treat corrupt data as absence. The blob stays on disk as-is.
		s.entries = nil
		s.logger.Warn("mood entries document is corrupt, starting empty",
			slog.String("error", err.Error()))
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	s.entries = entries

	s.logger.Info("loaded mood entries", slog.Int("count", len(entries)))
	return nil
}

// Save serializes the full collection to the provider as one atomic
// document, in the in-memory (date-descending) order.
func (s *JournalStore) Save() error {
	data, err := json.Marshal(s.entriesOrEmpty())
	if err != nil {
		return fmt.Errorf("%w: encoding mood entries: %v", ErrPersistence, err)
	}

	if err := s.provider.Set(KeyMoodEntries, data); err != nil {
		return fmt.Errorf("%w: saving mood entries: %v", ErrPersistence, err)
	}
	return nil
}

// Create validates the draft, assigns identity and timestamps, inserts the
// entry at its date-descending position and persists synchronously. On
// persistence failure the in-memory insert is rolled back.
func (s *JournalStore) Create(draft domain.EntryDraft) (*domain.MoodEntry, error) {
	entry, err := domain.NewMoodEntry(draft, s.now())
	if err != nil {
		s.logger.Warn("entry validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	index := s.insert(*entry)

	if err := s.Save(); err != nil {
		s.removeAt(index)
		s.logger.Error("failed to persist created entry, rolled back",
			slog.String("entry_id", entry.ID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Info("entry created",
		slog.String("entry_id", entry.ID.String()),
		slog.Int("mood_level", entry.MoodLevel))
	return entry, nil
}

// Update replaces the entry with the given ID, preserving createdAt and
// refreshing updatedAt. The caller is responsible for having already saved
// new media files and deleted superseded ones; this store only records the
// references. On persistence failure the previous entry is restored.
func (s *JournalStore) Update(id uuid.UUID, draft domain.EntryDraft) (*domain.MoodEntry, error) {
	index := s.indexOf(id)
	if index < 0 {
		return nil, ErrEntryNotFound
	}

	previous := s.entries[index]

	occurredAt := draft.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = previous.OccurredAt
	}

	updated := domain.MoodEntry{
		ID:         previous.ID,
		OccurredAt: occurredAt,
		MoodLevel:  draft.MoodLevel,
		Activities: append([]domain.Activity(nil), draft.Activities...),
		Note:       draft.Note,
		AudioRef:   draft.AudioRef,
		ImageRef:   draft.ImageRef,
		CreatedAt:  previous.CreatedAt,
		UpdatedAt:  s.now(),
	}

	if err := updated.Validate(); err != nil {
		s.logger.Warn("entry validation failed during update",
			slog.String("entry_id", id.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	// Re-insert when the date moved so the ordering contract holds.
	s.removeAt(index)
	s.insert(updated)

	if err := s.Save(); err != nil {
		s.removeAt(s.indexOf(id))
		s.insert(previous)
		s.logger.Error("failed to persist updated entry, rolled back",
			slog.String("entry_id", id.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Info("entry updated", slog.String("entry_id", id.String()))
	return &updated, nil
}

// Delete removes the entry and persists the removal, then signals the media
// releaser for both attachments. Entry removal is the primary operation: a
// file-deletion failure is logged, not propagated, and leaves a reclaimable
// orphan for ReclaimOrphans to collect later.
func (s *JournalStore) Delete(id uuid.UUID) error {
	index := s.indexOf(id)
	if index < 0 {
		return ErrEntryNotFound
	}

	removed := s.entries[index]
	s.removeAt(index)

	if err := s.Save(); err != nil {
		s.insert(removed)
		s.logger.Error("failed to persist entry removal, rolled back",
			slog.String("entry_id", id.String()),
			slog.String("error", err.Error()))
		return err
	}

	s.releaseMedia(removed)

	s.logger.Info("entry deleted", slog.String("entry_id", id.String()))
	return nil
}

// GetByID retrieves an entry by its unique ID.
// Returns ErrEntryNotFound if the entry does not exist.
func (s *JournalStore) GetByID(id uuid.UUID) (*domain.MoodEntry, error) {
	index := s.indexOf(id)
	if index < 0 {
		return nil, ErrEntryNotFound
	}
	entry := s.entries[index]
	return &entry, nil
}

// List returns a date-descending snapshot of all entries. The returned
// slice is a defensive copy.
func (s *JournalStore) List() []domain.MoodEntry {
	return append([]domain.MoodEntry(nil), s.entries...)
}

// LiveMediaRefs returns the set of media handles referenced by any entry,
// taken atomically with respect to the store's in-memory state. Pass it to
// the media service's ReclaimOrphans so a file for a just-created entry is
// never reclaimed.
func (s *JournalStore) LiveMediaRefs() map[string]struct{} {
	live := make(map[string]struct{})
	for _, entry := range s.entries {
		if entry.AudioRef != nil {
			live[*entry.AudioRef] = struct{}{}
		}
		if entry.ImageRef != nil {
			live[*entry.ImageRef] = struct{}{}
		}
	}
	return live
}

// releaseMedia best-effort deletes both attachments of a removed entry.
func (s *JournalStore) releaseMedia(entry domain.MoodEntry) {
	if s.media == nil {
		return
	}
	for _, ref := range []*string{entry.AudioRef, entry.ImageRef} {
		if ref == nil {
			continue
		}
		if err := s.media.Delete(*ref); err != nil {
			s.logger.Warn("failed to release media file, leaving orphan",
				slog.String("entry_id", entry.ID.String()),
				slog.String("handle", *ref),
				slog.String("error", err.Error()))
		}
	}
}

// insert places the entry at its date-descending position, before any
// existing entry with the same date, and returns the index used.
func (s *JournalStore) insert(entry domain.MoodEntry) int {
	index := sort.Search(len(s.entries), func(i int) bool {
		return !s.entries[i].OccurredAt.After(entry.OccurredAt)
	})

	s.entries = append(s.entries, domain.MoodEntry{})
	copy(s.entries[index+1:], s.entries[index:])
	s.entries[index] = entry
	return index
}

func (s *JournalStore) removeAt(index int) {
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
}

func (s *JournalStore) indexOf(id uuid.UUID) int {
	for i, entry := range s.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

// entriesOrEmpty keeps the persisted document a JSON array even when the
// collection is empty.
func (s *JournalStore) entriesOrEmpty() []domain.MoodEntry {
	if s.entries == nil {
		return []domain.MoodEntry{}
	}
	return s.entries
}

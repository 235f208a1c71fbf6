package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/moodlog/internal/api/shared"
	"github.com/phrazzld/moodlog/internal/domain"
	"github.com/phrazzld/moodlog/internal/platform/logger"
	"github.com/phrazzld/moodlog/internal/store"
)

// ThemeCatalogEntry is one theme with the caller's entitlement state.
type ThemeCatalogEntry struct {
	domain.ThemeDescriptor
	Unlocked bool `json:"unlocked"`
	Active   bool `json:"active"`
}

// SkinPackCatalogEntry is one skin pack with the caller's entitlement state.
type SkinPackCatalogEntry struct {
	domain.SkinPackDescriptor
	Unlocked bool `json:"unlocked"`
	Active   bool `json:"active"`
}

// CatalogHandler handles theme and skin-pack catalog HTTP requests.
type CatalogHandler struct {
	entitlements *store.EntitlementStore
	logger       *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(entitlements *store.EntitlementStore, logger *slog.Logger) *CatalogHandler {
	if entitlements == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("entitlement store cannot be nil for CatalogHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CatalogHandler")
	}

	return &CatalogHandler{
		entitlements: entitlements,
		logger:       logger.With(slog.String("component", "catalog_handler")),
	}
}

// List handles GET /catalog/{kind} requests, returning every catalog entry
// annotated with its unlock and active state.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	switch kind {
	case store.KindTheme:
		current := h.entitlements.CurrentTheme().ID
		entries := make([]ThemeCatalogEntry, 0, len(domain.AvailableThemes))
		for _, theme := range domain.AvailableThemes {
			entries = append(entries, ThemeCatalogEntry{
				ThemeDescriptor: theme,
				Unlocked:        h.entitlements.IsUnlocked(kind, theme.ID),
				Active:          theme.ID == current,
			})
		}
		shared.RespondWithJSON(w, r, http.StatusOK, entries)
	case store.KindSkinPack:
		current := h.entitlements.CurrentSkinPack().ID
		entries := make([]SkinPackCatalogEntry, 0, len(domain.AvailableSkinPacks))
		for _, pack := range domain.AvailableSkinPacks {
			entries = append(entries, SkinPackCatalogEntry{
				SkinPackDescriptor: pack,
				Unlocked:           h.entitlements.IsUnlocked(kind, pack.ID),
				Active:             pack.ID == current,
			})
		}
		shared.RespondWithJSON(w, r, http.StatusOK, entries)
	}
}

// Unlock handles POST /catalog/{kind}/{id}/unlock requests. Unlocking is
// idempotent, so re-unlocking an owned entry succeeds.
func (h *CatalogHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	kind, ok := h.kind(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.entitlements.Unlock(kind, id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("catalog entry unlocked",
		slog.String("kind", string(kind)),
		slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// Apply handles POST /catalog/{kind}/{id}/apply requests, switching the
// current selection to an unlocked entry.
func (h *CatalogHandler) Apply(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	kind, ok := h.kind(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.entitlements.Apply(kind, id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("catalog entry applied",
		slog.String("kind", string(kind)),
		slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// kind parses the {kind} path parameter, writing the error response itself
// on failure.
func (h *CatalogHandler) kind(w http.ResponseWriter, r *http.Request) (store.CatalogKind, bool) {
	kind, err := store.ParseCatalogKind(chi.URLParam(r, "kind"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return "", false
	}
	return kind, true
}

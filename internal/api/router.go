package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/moodlog/internal/api/middleware"
	"github.com/phrazzld/moodlog/internal/service/media"
	"github.com/phrazzld/moodlog/internal/store"
)

// Dependencies holds everything the router needs to build the handlers.
type Dependencies struct {
	Journal      *store.JournalStore
	Activities   *store.ActivityStore
	Entitlements *store.EntitlementStore
	Profiles     *store.ProfileStore
	Media        *media.Manager
	Logger       *slog.Logger
}

// NewRouter builds the full API route tree.
func NewRouter(deps Dependencies) chi.Router {
	entryHandler := NewEntryHandler(deps.Journal, deps.Logger)
	activityHandler := NewActivityHandler(deps.Activities, deps.Logger)
	statsHandler := NewStatsHandler(deps.Journal, deps.Logger)
	catalogHandler := NewCatalogHandler(deps.Entitlements, deps.Logger)
	profileHandler := NewProfileHandler(deps.Profiles, deps.Logger)
	mediaHandler := NewMediaHandler(deps.Media, deps.Journal, deps.Logger)
	exportHandler := NewExportHandler(deps.Journal, deps.Activities, deps.Profiles, deps.Logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.TraceMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", entryHandler.Create)
			r.Get("/", entryHandler.List)
			r.Get("/{id}", entryHandler.Get)
			r.Put("/{id}", entryHandler.Update)
			r.Delete("/{id}", entryHandler.Delete)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", activityHandler.List)
			r.Post("/", activityHandler.Create)
			r.Delete("/{id}", activityHandler.Delete)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", statsHandler.Statistics)
			r.Get("/trend", statsHandler.Trend)
		})

		r.Route("/catalog/{kind}", func(r chi.Router) {
			r.Get("/", catalogHandler.List)
			r.Post("/{id}/unlock", catalogHandler.Unlock)
			r.Post("/{id}/apply", catalogHandler.Apply)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.Get)
			r.Put("/", profileHandler.Update)
			r.Put("/notifications", profileHandler.UpdateNotifications)
			r.Put("/haptics", profileHandler.UpdateHaptics)
		})

		r.Route("/media", func(r chi.Router) {
			r.Post("/images", mediaHandler.SaveImage)
			r.Post("/audio", mediaHandler.SaveAudio)
			r.Post("/reclaim", mediaHandler.Reclaim)
		})

		r.Route("/export", func(r chi.Router) {
			r.Get("/csv", exportHandler.CSV)
			r.Get("/json", exportHandler.JSON)
			r.Get("/report", exportHandler.Report)
		})
	})

	return r
}

// Package main implements the entry point for the moodlog server, a local
// single-user mood journal: entries, media attachments, entitlements,
// statistics and data export behind a loopback HTTP API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/phrazzld/moodlog/internal/api"
	"github.com/phrazzld/moodlog/internal/config"
	"github.com/phrazzld/moodlog/internal/platform/blobfile"
	"github.com/phrazzld/moodlog/internal/platform/logger"
	"github.com/phrazzld/moodlog/internal/service/media"
	"github.com/phrazzld/moodlog/internal/store"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// application holds the wired components of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	router http.Handler
}

// initializeApp loads configuration, sets up logging and storage, wires the
// stores and builds the route tree.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"data_dir", cfg.Storage.DataDir)

	provider, err := blobfile.New(cfg.Storage.DataDir, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	mediaManager, err := media.NewManager(cfg.Storage.MediaDir, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open media directory: %w", err)
	}

	journal := store.NewJournalStore(provider, mediaManager, appLogger)
	activities := store.NewActivityStore(provider, appLogger)
	entitlements := store.NewEntitlementStore(provider, appLogger)
	profiles := store.NewProfileStore(provider, appLogger)

	for name, load := range map[string]func() error{
		"journal":      journal.Load,
		"activities":   activities.Load,
		"entitlements": entitlements.Load,
		"profile":      profiles.Load,
	} {
		if err := load(); err != nil {
			return nil, fmt.Errorf("failed to load %s store: %w", name, err)
		}
	}

	router := api.NewRouter(api.Dependencies{
		Journal:      journal,
		Activities:   activities,
		Entitlements: entitlements,
		Profiles:     profiles,
		Media:        mediaManager,
		Logger:       appLogger,
	})

	return &application{
		config: cfg,
		logger: appLogger,
		router: router,
	}, nil
}

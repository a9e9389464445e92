// Command drafter edits numbered contract outlines.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driven/api"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driven/config/file"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driven/richtext"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driven/storage/sqlite"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/cli"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/services"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Environment variables read at startup, also from a .env file.
const (
	envHome       = "DRAFTER_HOME"
	envAPIBaseURL = "DRAFTER_API_BASE_URL"
	envAPIToken   = "DRAFTER_API_TOKEN"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	configDir, dataDir := os.Getenv(envHome), ""
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	applyEnv(&settings.API)

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	drafts, err := draftStore(settings.API, store)
	if err != nil {
		return err
	}

	draftService := services.NewDraftService(drafts, settings.Outline.Policy(), richtext.NewMarkdownRenderer())
	autosaver := services.NewAutosaver(draftService)
	scheduler := services.NewScheduler(settings.Autosave.SchedulerConfig(), store.SchedulerStore(), autosaver)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Drafts:    draftService,
		Settings:  settingsService,
		Autosaver: autosaver,
		Scheduler: scheduler,
	})
	return cli.Execute()
}

// applyEnv overrides the stored API settings with the environment.
func applyEnv(a *domain.APISettings) {
	if v := os.Getenv(envAPIBaseURL); v != "" {
		a.BaseURL = v
	}
	if v := os.Getenv(envAPIToken); v != "" {
		a.Token = v
	}
}

// draftStore selects the Persistence API when configured and the local
// database otherwise.
func draftStore(a domain.APISettings, store *sqlite.Store) (driven.DraftStore, error) {
	if !a.IsConfigured() {
		logger.Debug("persistence API not configured; using %s", store.Path())
		return store.DraftStore(), nil
	}
	client, err := api.NewDraftStore(api.Config{
		BaseURL:           a.BaseURL,
		Token:             a.Token,
		RequestsPerSecond: a.RequestsPerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring persistence API: %w", err)
	}
	logger.Debug("using persistence API at %s", a.BaseURL)
	return client, nil
}

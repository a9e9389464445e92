package driving

import (
	"context"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting from its string form.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// Watch streams the settings after each change to the config file,
	// until ctx is done.
	Watch(ctx context.Context) (<-chan *domain.AppSettings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}

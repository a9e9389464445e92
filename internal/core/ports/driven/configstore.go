package driven

import (
	"context"
	"time"
)

// ConfigStore is a flat key/value view of the settings file. Keys are
// dotted paths such as "autosave.interval". Typed getters return the zero
// value for missing keys and for values of another type.
type ConfigStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// GetFloat also accepts integer values.
	GetFloat(key string) float64

	// GetDuration accepts duration strings ("30s") or integer milliseconds.
	GetDuration(key string) time.Duration

	// Set stores value under key and persists it.
	Set(key string, value any) error

	// Save writes every value to storage.
	Save() error

	// Load replaces the values with those in storage.
	Load() error

	// Path identifies the backing storage.
	Path() string
}

// ConfigWatcher is implemented by config stores that can report changes
// made to their storage by other processes.
type ConfigWatcher interface {
	// Watch reloads the store on every change and signals on the returned
	// channel. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Package messages defines Bubbletea message types for the outline editor.
package messages

import (
	"time"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

// SaveRequested asks the editor to save, manually or from the autosave timer.
type SaveRequested struct {
	Auto bool
}

// SaveCompleted carries the result of a save back to the model.
type SaveCompleted struct {
	Draft *domain.Draft
	Auto  bool
	Err   error
}

// AutosaveTick fires once per autosave interval. Ticks whose Gen is older
// than the editor's current timer are dropped.
type AutosaveTick struct {
	At  time.Time
	Gen int
}

// SettingsChanged carries settings reloaded from the config file.
type SettingsChanged struct {
	Settings *domain.AppSettings
}

// Package tui provides an interactive terminal outline editor for drafter.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"time"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the editor.
type Ports struct {
	// Drafts saves the edited draft.
	Drafts driving.DraftService

	// AutosaveInterval saves dirty drafts periodically. Zero disables autosave.
	AutosaveInterval time.Duration

	// Settings, when set, delivers settings reloaded from the config file.
	// Only the autosave interval is applied; the outline keeps the policy
	// it was opened with.
	Settings <-chan *domain.AppSettings
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Drafts == nil {
		return ErrMissingDraftService
	}
	return nil
}

package mcp

import "github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Drafts loads, creates and saves drafts.
	Drafts driving.DraftService

	// Autosaver, when set, tracks every editor opened through the server.
	Autosaver driving.Autosaver
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Drafts == nil {
		return ErrMissingDraftService
	}
	return nil
}

// Package mcp provides an MCP (Model Context Protocol) server adapter for drafter.
// It lets AI assistants open contract drafts and edit their outlines.
package mcp

import "errors"

// ErrMissingDraftService is returned when the draft service is not provided.
var ErrMissingDraftService = errors.New("mcp: draft service is required")

// ErrUnknownSession is returned when a tool names a session that is not open.
var ErrUnknownSession = errors.New("mcp: unknown session")

// ErrNotApplied is returned when an outline command was rejected.
// The editor logs the reason.
var ErrNotApplied = errors.New("mcp: command not applied")

package tui

import "errors"

// ErrMissingDraftService is returned when the draft service is not provided.
var ErrMissingDraftService = errors.New("tui: draft service is required")

// ErrMissingEditor is returned when no editor is provided.
var ErrMissingEditor = errors.New("tui: editor is required")

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
)

// OpenInput is the input schema for the outline_open tool.
type OpenInput struct {
	Key         string `json:"key,omitempty" jsonschema:"key of a saved draft to open; empty starts a new draft"`
	ProviderKey string `json:"provider_key,omitempty" jsonschema:"provider owning a new draft"`
	Title       string `json:"title,omitempty" jsonschema:"title of a new draft"`
	Subtitle    string `json:"subtitle,omitempty" jsonschema:"subtitle of a new draft"`
}

// SessionInput names an open editing session.
type SessionInput struct {
	Session string `json:"session" jsonschema:"session returned by outline_open"`
}

// InsertInput is the input schema for the outline_insert tool.
type InsertInput struct {
	Session string `json:"session" jsonschema:"session returned by outline_open"`
	AfterID *int   `json:"after_id,omitempty" jsonschema:"section to insert after; omitted appends at the end"`
	Level   int    `json:"level" jsonschema:"outline level of the new section, 0 for top level"`
}

// SectionInput targets one section of a session.
type SectionInput struct {
	Session string `json:"session" jsonschema:"session returned by outline_open"`
	ID      int    `json:"id" jsonschema:"section id"`
}

// LevelInput is the input schema for the outline_level tool.
type LevelInput struct {
	Session string `json:"session" jsonschema:"session returned by outline_open"`
	ID      int    `json:"id" jsonschema:"section id"`
	Level   int    `json:"level" jsonschema:"new outline level"`
}

// MoveInput is the input schema for the outline_move tool.
type MoveInput struct {
	Session   string `json:"session" jsonschema:"session returned by outline_open"`
	ID        int    `json:"id" jsonschema:"section id"`
	Direction string `json:"direction" jsonschema:"up or down"`
}

// OptionsInput is the input schema for the outline_options tool.
type OptionsInput struct {
	Session string `json:"session" jsonschema:"session returned by outline_open"`
	ID      int    `json:"id" jsonschema:"section id"`
	Option  *int   `json:"option,omitempty" jsonschema:"option index; when set the sub-options of this option are resized"`
	Count   int    `json:"count" jsonschema:"desired number of options or sub-options"`
}

// OutlineOutput describes the outline of a session after a tool ran.
type OutlineOutput struct {
	Session    string           `json:"session"`
	Key        string           `json:"key,omitempty"`
	Title      string           `json:"title"`
	Dirty      bool             `json:"dirty"`
	Sections   []SectionSummary `json:"sections"`
	Violations []string         `json:"violations,omitempty"`
}

// SectionSummary is one line of an outline.
type SectionSummary struct {
	ID         int    `json:"id"`
	Index      string `json:"index"`
	Level      int    `json:"level"`
	Title      string `json:"title"`
	Options    int    `json:"options"`
	SubOptions []int  `json:"sub_options,omitempty"`
}

// SaveOutput is the output schema for the outline_save tool.
type SaveOutput struct {
	Session string `json:"session"`
	Key     string `json:"key"`
	Version int    `json:"version"`
}

// CloseOutput is the output schema for the outline_close tool.
type CloseOutput struct {
	Session string `json:"session"`
	Dirty   bool   `json:"dirty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "outline_open",
		Description: "Open a saved contract draft, or start a new one, for outline editing",
	}, s.handleOpen)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "outline_insert",
		Description: "Insert a placeholder section after another section or at the end",
	}, s.handleInsert)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "outline_remove",
		Description: "Remove a section and renumber the outline",
	}, s.handleRemove)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "outline_level",
		Description: "Move a section to another outline level",
	}, s.handleLevel)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "outline_move",
		Description: "Swap a section with the section above or below it",
	}, s.handleMove)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "outline_options",
		Description: "Resize the options of a section or the sub-options of one option",
	}, s.handleOptions)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "outline_renumber",
		Description: "Recompute every section index",
	}, s.handleRenumber)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "outline_save",
		Description: "Save a session through the Persistence API",
	}, s.handleSave)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "outline_close",
		Description: "Close a session without saving",
	}, s.handleClose)
}

func (s *Server) handleOpen(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	var editor driving.DraftEditor
	if input.Key != "" {
		if e, ok := s.sessions.byKey(input.Key); ok {
			return nil, s.outline(input.Key, e), nil
		}
		var err error
		editor, err = s.ports.Drafts.Open(ctx, input.Key)
		if err != nil {
			return nil, OutlineOutput{}, fmt.Errorf("opening draft %s: %w", input.Key, err)
		}
	} else {
		if input.ProviderKey == "" {
			return nil, OutlineOutput{}, fmt.Errorf("%w: provider_key is required for a new draft", domain.ErrInvalidInput)
		}
		editor = s.ports.Drafts.New(input.ProviderKey, input.Title, input.Subtitle)
	}

	id := s.sessions.open(input.Key, editor)
	if s.ports.Autosaver != nil {
		s.ports.Autosaver.Track(editor)
	}
	return nil, s.outline(id, editor), nil
}

func (s *Server) handleInsert(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input InsertInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	return s.edit(input.Session, "insert", func(e driving.DraftEditor) bool {
		if input.AfterID != nil {
			_, ok := e.InsertAfter(*input.AfterID, input.Level)
			return ok
		}
		_, ok := e.InsertEnd(input.Level)
		return ok
	})
}

func (s *Server) handleRemove(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SectionInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	return s.edit(input.Session, "remove", func(e driving.DraftEditor) bool {
		return e.Remove(input.ID)
	})
}

func (s *Server) handleLevel(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input LevelInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	return s.edit(input.Session, "change level", func(e driving.DraftEditor) bool {
		return e.ChangeLevel(input.ID, input.Level)
	})
}

func (s *Server) handleMove(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MoveInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	var dir domain.MoveDirection
	switch input.Direction {
	case "up":
		dir = domain.MoveUp
	case "down":
		dir = domain.MoveDown
	default:
		return nil, OutlineOutput{}, fmt.Errorf("%w: direction must be up or down, got %q",
			domain.ErrInvalidInput, input.Direction)
	}
	return s.edit(input.Session, "move "+input.Direction, func(e driving.DraftEditor) bool {
		return e.Move(input.ID, dir)
	})
}

func (s *Server) handleOptions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input OptionsInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	return s.edit(input.Session, "resize options", func(e driving.DraftEditor) bool {
		if input.Option != nil {
			return e.SetSubOptionCount(input.ID, *input.Option, input.Count)
		}
		return e.SetOptionCount(input.ID, input.Count)
	})
}

func (s *Server) handleRenumber(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SessionInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	return s.edit(input.Session, "renumber", func(e driving.DraftEditor) bool {
		e.Renumber()
		return true
	})
}

func (s *Server) handleSave(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SessionInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	editor, ok := s.sessions.get(input.Session)
	if !ok {
		return nil, SaveOutput{}, fmt.Errorf("%w: %s", ErrUnknownSession, input.Session)
	}
	draft, err := s.ports.Drafts.Save(ctx, editor)
	if err != nil {
		return nil, SaveOutput{}, fmt.Errorf("saving session %s: %w", input.Session, err)
	}
	return nil, SaveOutput{Session: input.Session, Key: draft.Key, Version: draft.Version}, nil
}

func (s *Server) handleClose(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SessionInput,
) (*mcp.CallToolResult, CloseOutput, error) {
	editor, ok := s.sessions.close(input.Session)
	if !ok {
		return nil, CloseOutput{}, fmt.Errorf("%w: %s", ErrUnknownSession, input.Session)
	}
	if s.ports.Autosaver != nil {
		s.ports.Autosaver.Untrack(editor)
	}
	return nil, CloseOutput{Session: input.Session, Dirty: editor.Dirty()}, nil
}

// edit runs fn against the session's editor and reports the outline.
func (s *Server) edit(
	session, what string,
	fn func(driving.DraftEditor) bool,
) (*mcp.CallToolResult, OutlineOutput, error) {
	editor, ok := s.sessions.get(session)
	if !ok {
		return nil, OutlineOutput{}, fmt.Errorf("%w: %s", ErrUnknownSession, session)
	}
	if !fn(editor) {
		return nil, OutlineOutput{}, fmt.Errorf("%s: %w", what, ErrNotApplied)
	}
	return nil, s.outline(session, editor), nil
}

func (s *Server) outline(session string, editor driving.DraftEditor) OutlineOutput {
	meta := editor.Meta()
	policy := editor.Policy()
	sections := editor.Sections()
	out := OutlineOutput{
		Session:  session,
		Key:      meta.Key,
		Title:    meta.Title,
		Dirty:    editor.Dirty(),
		Sections: make([]SectionSummary, len(sections)),
	}
	for i := range sections {
		sec := &sections[i]
		summary := SectionSummary{
			ID:      sec.ID,
			Index:   sec.Index,
			Level:   policy.Level(sec.Depth),
			Title:   sec.Title,
			Options: len(sec.Options),
		}
		for j := range sec.Options {
			if n := len(sec.Options[j].SubOptions); n > 0 {
				if summary.SubOptions == nil {
					summary.SubOptions = make([]int, len(sec.Options))
				}
				summary.SubOptions[j] = n
			}
		}
		out.Sections[i] = summary
	}
	for _, v := range editor.Check() {
		out.Violations = append(out.Violations, v.String())
	}
	return out
}

// Package status provides the status bar of the outline editor.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/tui/keymap"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/tui/styles"
)

// State represents the editor state shown on the left of the bar.
type State string

const (
	StateReady   State = "ready"
	StateEditing State = "editing"
	StateSaving  State = "saving"
	StateSaved   State = "saved"
	StateError   State = "error"
)

// Bar displays the editor state and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	dirty   bool
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	frame := s.styles.StatusBar.GetHorizontalFrameSize()
	padding := s.width - frame - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var left string
	switch s.state {
	case StateEditing:
		left = s.styles.Normal.Render("Editing title")
	case StateSaving:
		left = s.styles.Muted.Render("Saving...")
	case StateSaved:
		left = s.styles.Success.Render(s.orDefault("Saved"))
	case StateError:
		if s.message != "" {
			left = s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		} else {
			left = s.styles.Error.Render("Error")
		}
	default:
		left = s.styles.Muted.Render(s.orDefault("Ready"))
	}
	if s.dirty {
		left += s.styles.Warning.Render(" [modified]")
	}
	return left
}

func (s *Bar) orDefault(def string) string {
	if s.message != "" {
		return s.message
	}
	return def
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateEditing {
		bindings = s.keymap.EditHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// Set replaces the state and message.
func (s *Bar) Set(state State, message string) {
	s.state = state
	s.message = message
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetDirty marks whether the draft has unsaved changes.
func (s *Bar) SetDirty(dirty bool) {
	s.dirty = dirty
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// HelpKeys lists the bindings currently hinted, for tests.
func (s *Bar) HelpKeys() []key.Binding {
	if s.state == StateEditing {
		return s.keymap.EditHelp()
	}
	return s.keymap.ShortHelp()
}

// Package input provides text input components for the outline editor.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/tui/styles"
)

// TitleInput edits the title of one section.
type TitleInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	sectionID int
}

// NewTitleInput creates a blurred title input.
func NewTitleInput(s *styles.Styles) *TitleInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Section title"
	ti.CharLimit = 256
	ti.Width = 50

	return &TitleInput{
		textinput: ti,
		styles:    s,
		sectionID: -1,
	}
}

// Start focuses the input on the title of section id.
func (t *TitleInput) Start(id int, title string) tea.Cmd {
	t.sectionID = id
	t.textinput.SetValue(title)
	t.textinput.CursorEnd()
	return t.textinput.Focus()
}

// Stop blurs the input and forgets the section.
func (t *TitleInput) Stop() {
	t.textinput.Blur()
	t.textinput.Reset()
	t.sectionID = -1
}

// Update handles input messages.
func (t *TitleInput) Update(msg tea.Msg) (*TitleInput, tea.Cmd) {
	var cmd tea.Cmd
	t.textinput, cmd = t.textinput.Update(msg)
	return t, cmd
}

// View renders the input.
func (t *TitleInput) View() string {
	label := t.styles.Index.Render("Title: ")
	field := t.styles.InputField.Render(t.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (t *TitleInput) Value() string {
	return t.textinput.Value()
}

// SectionID returns the section being edited, or -1.
func (t *TitleInput) SectionID() int {
	return t.sectionID
}

// Focused returns whether the input is active.
func (t *TitleInput) Focused() bool {
	return t.textinput.Focused()
}

// SetWidth sets the width of the input.
func (t *TitleInput) SetWidth(width int) {
	w := width - 12
	if w < 20 {
		w = 20
	}
	t.textinput.Width = w
}

package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestTitleInput_Lifecycle(t *testing.T) {
	in := NewTitleInput(nil)
	assert.False(t, in.Focused())
	assert.Equal(t, -1, in.SectionID())

	in.Start(4, "Fees")
	assert.True(t, in.Focused())
	assert.Equal(t, 4, in.SectionID())
	assert.Equal(t, "Fees", in.Value())

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" and charges")})
	assert.Equal(t, "Fees and charges", in.Value())
	assert.Contains(t, in.View(), "Title:")

	in.Stop()
	assert.False(t, in.Focused())
	assert.Equal(t, -1, in.SectionID())
	assert.Empty(t, in.Value())
}

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

func TestDraftCommands_NotConfigured(t *testing.T) {
	setupCLI(t)
	SetServices(Services{})

	for _, args := range [][]string{
		{"draft", "create", "prov-1"},
		{"draft", "list"},
		{"draft", "show", "k"},
		{"draft", "delete", "k"},
		{"draft", "export", "k"},
		{"section", "add", "k"},
	} {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, errDraftsNotConfigured, strings.Join(args, " "))
	}
}

func TestDraftCreate(t *testing.T) {
	store := setupCLI(t)

	out, err := execute(t, "draft", "create", "prov-1", "--title", "Data licence", "-s", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "Created draft ")

	drafts, err := store.ListDrafts(t.Context())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "prov-1", drafts[0].ProviderKey)
	assert.Equal(t, "Data licence", drafts[0].Title)
	assert.Equal(t, "2024", drafts[0].Subtitle)
	assert.Empty(t, drafts[0].Sections)
}

func TestDraftList(t *testing.T) {
	store := setupCLI(t)

	out, err := execute(t, "draft", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No drafts found.")

	draft := seedDraft(t, store)
	out, err = execute(t, "draft", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, draft.Key)
	assert.Contains(t, out, "Data licence")
	assert.Contains(t, out, "Total: 1 drafts")
}

func TestDraftShow(t *testing.T) {
	store := setupCLI(t)
	draft := seedDraft(t, store)

	t.Run("plain outline", func(t *testing.T) {
		out, err := execute(t, "draft", "show", draft.Key)
		require.NoError(t, err)
		assert.Contains(t, out, "Data licence (2024) ["+draft.Key+"]")
		assert.Contains(t, out, "\n  1 Scope  (#0, 1 option)\n")
		assert.Contains(t, out, "\n    1.1 Territory  (#1, 1 option)\n")
		assert.Contains(t, out, "\n  2 Fees  (#2, 1 option)\n")
		assert.NotContains(t, out, "numbering problem")
	})

	t.Run("tree outline", func(t *testing.T) {
		out, err := execute(t, "draft", "show", draft.Key, "--tree")
		require.NoError(t, err)
		assert.Contains(t, out, "Territory")
		assert.Contains(t, out, "╰")
	})

	t.Run("reports numbering problems", func(t *testing.T) {
		sections := draft.Sections
		sections[2].Index = "2.1"
		_, err := store.UpdateDraft(t.Context(), draft.Key, domain.DraftCommand{
			ProviderKey: draft.ProviderKey, Title: draft.Title, Sections: sections,
		})
		require.NoError(t, err)

		out, err := execute(t, "draft", "show", draft.Key)
		require.NoError(t, err)
		assert.Contains(t, out, "1 numbering problem(s)")
		assert.Contains(t, out, "drafter draft renumber "+draft.Key)

		_, err = execute(t, "draft", "renumber", draft.Key)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "1.1", "2"}, indicesOf(t, store, draft.Key))
	})

	t.Run("unknown draft", func(t *testing.T) {
		_, err := execute(t, "draft", "show", "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDraftDelete(t *testing.T) {
	store := setupCLI(t)
	draft := seedDraft(t, store)

	out, err := execute(t, "draft", "delete", draft.Key)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted draft "+draft.Key)

	_, err = store.GetDraft(t.Context(), draft.Key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftExport(t *testing.T) {
	store := setupCLI(t)
	draft := seedDraft(t, store)

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "draft", "export", draft.Key)
		require.NoError(t, err)

		var cmd domain.DraftCommand
		require.NoError(t, json.Unmarshal([]byte(out), &cmd))
		assert.Equal(t, draft.Key, cmd.ID)
		assert.Equal(t, "prov-1", cmd.ProviderKey)
		require.Len(t, cmd.Sections, 3)
		assert.Equal(t, "1.1", cmd.Sections[1].Index)
		assert.Contains(t, out, `"icon": null`)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, "draft", "export", draft.Key, "-f", "yaml")
		require.NoError(t, err)

		var cmd domain.DraftCommand
		require.NoError(t, yaml.Unmarshal([]byte(out), &cmd))
		assert.Equal(t, draft.Key, cmd.ID)
		require.Len(t, cmd.Sections, 3)
		assert.Equal(t, domain.IconNone, cmd.Sections[0].Options[0].Icon)
		assert.Contains(t, out, "icon: null")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "draft", "export", draft.Key, "--format", "xml")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestDraftTitle(t *testing.T) {
	store := setupCLI(t)
	draft := seedDraft(t, store)

	_, err := execute(t, "draft", "title", draft.Key, "Renamed")
	require.NoError(t, err)
	got, err := store.GetDraft(t.Context(), draft.Key)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "2024", got.Subtitle)
	assert.Equal(t, 2, got.Version)

	_, err = execute(t, "draft", "title", draft.Key, "Renamed", "")
	require.NoError(t, err)
	got, err = store.GetDraft(t.Context(), draft.Key)
	require.NoError(t, err)
	assert.Empty(t, got.Subtitle)
}

func TestWriteCommand_YAMLIcon(t *testing.T) {
	cmd := domain.DraftCommand{
		ProviderKey: "prov-1",
		Sections:    []domain.Section{domain.NewPlaceholderSection(0, 0)},
	}
	cmd.Sections[0].Options[0].Icon = domain.IconWarranty

	var buf bytes.Buffer
	require.NoError(t, writeCommand(&buf, cmd, "YAML"))
	assert.Contains(t, buf.String(), "icon: Warranty")
	assert.True(t, strings.HasPrefix(buf.String(), "providerKey: prov-1\n"))
}

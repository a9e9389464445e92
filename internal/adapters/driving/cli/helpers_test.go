package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driven/richtext"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driven/storage/memory"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/services"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// setupCLI wires the commands to in-memory stores and restores the
// previous services when the test ends.
func setupCLI(t *testing.T) *memory.DraftStore {
	t.Helper()

	prev := Services{
		Drafts:    draftService,
		Settings:  settingsService,
		Autosaver: autosaver,
		Scheduler: schedulerService,
	}
	t.Cleanup(func() { SetServices(prev) })

	store := memory.NewDraftStore()
	drafts := services.NewDraftService(store, domain.DefaultOutlinePolicy(), richtext.NewMarkdownRenderer())
	SetServices(Services{
		Drafts:    drafts,
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
		Autosaver: services.NewAutosaver(drafts),
	})

	logger.SetOutput(io.Discard)
	return store
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag of cmd and its children to its default.
// Flag values are package variables and survive between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// seedDraft stores a draft with the outline 1, 1.1, 2.
func seedDraft(t *testing.T, store *memory.DraftStore) *domain.Draft {
	t.Helper()
	sections := []domain.Section{
		domain.NewPlaceholderSection(0, 0),
		domain.NewPlaceholderSection(1, 1),
		domain.NewPlaceholderSection(2, 0),
	}
	sections[0].Title = "Scope"
	sections[1].Title = "Territory"
	sections[2].Title = "Fees"
	domain.RenumberAll(sections)

	draft, err := store.CreateDraft(t.Context(), domain.DraftCommand{
		ProviderKey: "prov-1",
		Title:       "Data licence",
		Subtitle:    "2024",
		Sections:    sections,
	})
	require.NoError(t, err)
	return draft
}

func indicesOf(t *testing.T, store *memory.DraftStore, key string) []string {
	t.Helper()
	draft, err := store.GetDraft(t.Context(), key)
	require.NoError(t, err)
	out := make([]string, len(draft.Sections))
	for i, s := range draft.Sections {
		out[i] = s.Index
	}
	return out
}

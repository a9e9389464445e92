package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/tui"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
)

var editCmd = &cobra.Command{
	Use:   "edit [draft-key]",
	Short: "Edit a draft's outline interactively",
	Long: `Open the interactive outline editor on a saved draft, or on a new
draft with --new. Unsaved changes are saved every autosave interval;
a new interval in the config file applies while the editor is open.

Keys:
  ↑/k ↓/j     select a section
  a           append a section at the level of the selection
  o           insert a section after the selection
  x           remove the selection
  tab         indent, shift+tab outdent
  K J         swap with the section above or below
  enter       edit the title
  + -         add or drop an option
  r           renumber
  s           save
  q           quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

// Edit command flags.
var (
	editNewProvider string
	editTitle       string
	editSubtitle    string
)

func init() {
	editCmd.Flags().StringVar(&editNewProvider, "new", "", "Start a new draft for this provider")
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "Title of the new draft")
	editCmd.Flags().StringVarP(&editSubtitle, "subtitle", "s", "", "Subtitle of the new draft")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errDraftsNotConfigured
	}
	if (len(args) == 1) == (editNewProvider != "") {
		return errors.New("pass either a draft key or --new provider-key")
	}

	if !isTerminal(cmd.OutOrStdout()) {
		return errNotTerminal
	}

	ctx := cmd.Context()
	var editor driving.DraftEditor
	if len(args) == 1 {
		var err error
		editor, err = draftService.Open(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to open draft: %w", err)
		}
	} else {
		editor = draftService.New(editNewProvider, editTitle, editSubtitle)
	}

	ports := &tui.Ports{Drafts: draftService}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			ports.AutosaveInterval = s.Autosave.EditorInterval()
		}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	ports.Settings = watchSettings(watchCtx)

	if err := tui.Run(ctx, ports, editor); err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	if editor.Dirty() {
		cmd.Println("Unsaved changes were discarded.")
	} else if key := editor.Meta().Key; key != "" {
		cmd.Printf("Draft %s is saved.\n", key)
	}
	return nil
}

var errNotTerminal = errors.New("the outline editor needs an interactive terminal")

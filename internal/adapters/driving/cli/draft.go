package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage contract drafts",
	Long:  `Create, list, inspect, export and delete contract drafts.`,
}

var draftCreateCmd = &cobra.Command{
	Use:   "create [provider-key]",
	Short: "Create an empty draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftCreate,
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drafts",
	Args:  cobra.NoArgs,
	RunE:  runDraftList,
}

var draftShowCmd = &cobra.Command{
	Use:   "show [draft-key]",
	Short: "Show a draft's outline",
	Long: `Show a draft's numbered outline. On a terminal the outline is drawn
as a tree; otherwise one section is printed per line, indented by level.
Numbering problems are listed after the outline.`,
	Args: cobra.ExactArgs(1),
	RunE: runDraftShow,
}

var draftDeleteCmd = &cobra.Command{
	Use:   "delete [draft-key]",
	Short: "Delete a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftDelete,
}

var draftExportCmd = &cobra.Command{
	Use:   "export [draft-key]",
	Short: "Print the save command for a draft",
	Long: `Print the command that would be sent to the Persistence API for a
draft: its id, provider key, titles and every section with its options.`,
	Args: cobra.ExactArgs(1),
	RunE: runDraftExport,
}

var draftRenumberCmd = &cobra.Command{
	Use:   "renumber [draft-key]",
	Short: "Recompute every section number and save",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftRenumber,
}

var draftTitleCmd = &cobra.Command{
	Use:   "title [draft-key] [title] [subtitle]",
	Short: "Change a draft's title and subtitle",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runDraftTitle,
}

// Draft command flags.
var (
	draftTitle    string
	draftSubtitle string
	exportFormat  string
	forceTree     bool
)

func init() {
	draftCreateCmd.Flags().StringVarP(&draftTitle, "title", "t", "", "Draft title")
	draftCreateCmd.Flags().StringVarP(&draftSubtitle, "subtitle", "s", "", "Draft subtitle")
	draftExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")
	draftShowCmd.Flags().BoolVar(&forceTree, "tree", false, "Draw the tree even when not on a terminal")

	draftCmd.AddCommand(draftCreateCmd)
	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftDeleteCmd)
	draftCmd.AddCommand(draftExportCmd)
	draftCmd.AddCommand(draftRenumberCmd)
	draftCmd.AddCommand(draftTitleCmd)
	rootCmd.AddCommand(draftCmd)
}

func runDraftCreate(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errDraftsNotConfigured
	}

	draft, err := draftService.Create(cmd.Context(), args[0], draftTitle, draftSubtitle)
	if err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}

	cmd.Printf("Created draft %s\n", draft.Key)
	return nil
}

func runDraftList(cmd *cobra.Command, _ []string) error {
	if draftService == nil {
		return errDraftsNotConfigured
	}

	drafts, err := draftService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list drafts: %w", err)
	}
	if len(drafts) == 0 {
		cmd.Println("No drafts found.")
		return nil
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow(bold.Sprint("KEY"), bold.Sprint("PROVIDER"), bold.Sprint("TITLE"),
		bold.Sprint("SECTIONS"), bold.Sprint("VERSION"), bold.Sprint("UPDATED"))
	for i := range drafts {
		d := &drafts[i]
		tbl.AddRow(d.Key, d.ProviderKey, d.Title, len(d.Sections), d.Version,
			d.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	tbl.RightAlign(3)
	tbl.RightAlign(4)

	cmd.Println(tbl)
	cmd.Printf("\nTotal: %d drafts\n", len(drafts))
	return nil
}

func runDraftShow(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errDraftsNotConfigured
	}

	editor, err := draftService.Open(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to open draft: %w", err)
	}

	meta := editor.Meta()
	sections := editor.Sections()
	levelOf := levelFunc()

	if forceTree || isTerminal(cmd.OutOrStdout()) {
		cmd.Println(renderOutlineTree(meta, sections, levelOf))
	} else {
		cmd.Print(renderOutlinePlain(meta, sections, levelOf))
	}

	if violations := editor.Check(); len(violations) > 0 {
		cmd.Printf("\n%d numbering problem(s):\n", len(violations))
		for _, v := range violations {
			cmd.Printf("  %s\n", v)
		}
		cmd.Printf("Run 'drafter draft renumber %s' to fix them.\n", meta.Key)
	}
	return nil
}

func runDraftDelete(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errDraftsNotConfigured
	}

	if err := draftService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	cmd.Printf("Deleted draft %s\n", args[0])
	return nil
}

func runDraftExport(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errDraftsNotConfigured
	}

	editor, err := draftService.Open(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to open draft: %w", err)
	}
	return writeCommand(cmd.OutOrStdout(), editor.Export(), exportFormat)
}

func runDraftRenumber(cmd *cobra.Command, args []string) error {
	return editDraft(cmd, args[0], "renumber", func(e draftEditor) bool {
		e.Renumber()
		return true
	})
}

func runDraftTitle(cmd *cobra.Command, args []string) error {
	subtitle := ""
	if len(args) == 3 {
		subtitle = args[2]
	}
	return editDraft(cmd, args[0], "set titles", func(e draftEditor) bool {
		if len(args) == 2 {
			subtitle = e.Meta().Subtitle
		}
		e.SetTitles(args[1], subtitle)
		return true
	})
}

// writeCommand encodes a save command as indented JSON or YAML.
func writeCommand(w io.Writer, command domain.DraftCommand, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(command)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(command); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: unknown format %q (want json or yaml)", domain.ErrInvalidInput, format)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

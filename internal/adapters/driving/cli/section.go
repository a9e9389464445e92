package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
)

type draftEditor = driving.DraftEditor

// errNotApplied reports an outline command that left the draft unchanged.
var errNotApplied = errors.New("command not applied; run with --verbose for details")

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Edit the sections of a draft",
	Long: `Edit the outline of a draft. Every command loads the draft, applies
one change and saves it. Sections are referred to by id (shown as #id by
'drafter draft show'); levels start at 0 for top-level sections.`,
}

var sectionAddCmd = &cobra.Command{
	Use:   "add [draft-key]",
	Short: "Append a section at the end of the outline",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionAdd,
}

var sectionInsertCmd = &cobra.Command{
	Use:   "insert [draft-key] [after-id]",
	Short: "Insert a section after another and renumber",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionInsert,
}

var sectionRemoveCmd = &cobra.Command{
	Use:     "remove [draft-key] [id]",
	Aliases: []string{"rm"},
	Short:   "Remove a section and renumber",
	Args:    cobra.ExactArgs(2),
	RunE:    runSectionRemove,
}

var sectionLevelCmd = &cobra.Command{
	Use:     "level [draft-key] [id] [level]",
	Aliases: []string{"depth"},
	Short:   "Change a section's outline level and renumber",
	Long: `Change a section's outline level. The first section cannot move, and
a section can go at most one level deeper than the section before it.`,
	Args: cobra.ExactArgs(3),
	RunE: runSectionLevel,
}

var sectionUpCmd = &cobra.Command{
	Use:   "up [draft-key] [id]",
	Short: "Swap a section with the one before it",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionMove(domain.MoveUp),
}

var sectionDownCmd = &cobra.Command{
	Use:   "down [draft-key] [id]",
	Short: "Swap a section with the one after it",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionMove(domain.MoveDown),
}

var sectionTitleCmd = &cobra.Command{
	Use:   "title [draft-key] [id] [title]",
	Short: "Set a section title",
	Args:  cobra.ExactArgs(3),
	RunE:  runSectionTitle,
}

var sectionFlagsCmd = &cobra.Command{
	Use:   "flags [draft-key] [id]",
	Short: "Set a section's variable, optional and dynamic flags",
	Long:  `Set the display flags of a section. Flags not given are cleared.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionFlags,
}

var sectionDescribeCmd = &cobra.Command{
	Use:   "describe [draft-key] [id] [description]",
	Short: "Record why a section was changed",
	Args:  cobra.ExactArgs(3),
	RunE:  runSectionDescribe,
}

var sectionOptionsCmd = &cobra.Command{
	Use:   "options [draft-key] [id] [count]",
	Short: "Resize a section's options",
	Long: `Resize a section's options. Extra options are dropped from the end;
new ones get placeholder text. Negative counts are treated as 0.`,
	Args: cobra.ExactArgs(3),
	RunE: runSectionOptions,
}

var sectionSubOptionsCmd = &cobra.Command{
	Use:   "suboptions [draft-key] [id] [option] [count]",
	Short: "Resize an option's sub-options",
	Long: `Resize the sub-options of one option. With the legacy growth mode an
option without sub-options receives exactly one, whatever count is asked.`,
	Args: cobra.ExactArgs(4),
	RunE: runSectionSubOptions,
}

var sectionBodyCmd = &cobra.Command{
	Use:   "body [draft-key] [id] [option] [text]",
	Short: "Set the text of an option or sub-option",
	Long: `Set the text of an option, or of one of its sub-options with --sub.
The text is Markdown; its HTML rendering is stored alongside it.`,
	Args: cobra.ExactArgs(4),
	RunE: runSectionBody,
}

var sectionOptionCmd = &cobra.Command{
	Use:   "option [draft-key] [id] [option]",
	Short: "Set an option's icon, summary and short description",
	Args:  cobra.ExactArgs(3),
	RunE:  runSectionOption,
}

// Section command flags.
var (
	sectionLevel       int
	flagVariable       bool
	flagOptional       bool
	flagDynamic        bool
	bodySubOption      int
	optionIcon         string
	optionSummary      string
	optionShortDesc    string
	optionMutexSubopts bool
)

func init() {
	sectionAddCmd.Flags().IntVarP(&sectionLevel, "level", "l", 0, "Outline level of the new section")
	sectionInsertCmd.Flags().IntVarP(&sectionLevel, "level", "l", 0, "Outline level of the new section")

	sectionFlagsCmd.Flags().BoolVar(&flagVariable, "variable", false, "Mark the section variable")
	sectionFlagsCmd.Flags().BoolVar(&flagOptional, "optional", false, "Mark the section optional")
	sectionFlagsCmd.Flags().BoolVar(&flagDynamic, "dynamic", false, "Mark the section dynamic")

	sectionBodyCmd.Flags().IntVar(&bodySubOption, "sub", -1, "Sub-option index (default: the option itself)")

	sectionOptionCmd.Flags().StringVar(&optionIcon, "icon", "", "Icon name, or 'null' to clear")
	sectionOptionCmd.Flags().StringVar(&optionSummary, "summary", "", "Option summary")
	sectionOptionCmd.Flags().StringVar(&optionShortDesc, "short-description", "", "Short description")
	sectionOptionCmd.Flags().BoolVar(&optionMutexSubopts, "mutex-suboptions", false, "Sub-options are mutually exclusive")

	sectionCmd.AddCommand(sectionAddCmd)
	sectionCmd.AddCommand(sectionInsertCmd)
	sectionCmd.AddCommand(sectionRemoveCmd)
	sectionCmd.AddCommand(sectionLevelCmd)
	sectionCmd.AddCommand(sectionUpCmd)
	sectionCmd.AddCommand(sectionDownCmd)
	sectionCmd.AddCommand(sectionTitleCmd)
	sectionCmd.AddCommand(sectionFlagsCmd)
	sectionCmd.AddCommand(sectionDescribeCmd)
	sectionCmd.AddCommand(sectionOptionsCmd)
	sectionCmd.AddCommand(sectionSubOptionsCmd)
	sectionCmd.AddCommand(sectionBodyCmd)
	sectionCmd.AddCommand(sectionOptionCmd)
	rootCmd.AddCommand(sectionCmd)
}

// editDraft opens key, applies fn and saves when fn reports a change.
func editDraft(cmd *cobra.Command, key, what string, fn func(e draftEditor) bool) error {
	if draftService == nil {
		return errDraftsNotConfigured
	}

	ctx := cmd.Context()
	editor, err := draftService.Open(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to open draft: %w", err)
	}
	if !fn(editor) {
		return fmt.Errorf("%s: %w", what, errNotApplied)
	}

	draft, err := draftService.Save(ctx, editor)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	cmd.Printf("Saved draft %s (version %d)\n", draft.Key, draft.Version)
	return nil
}

// intArgs parses positional arguments as integers.
func intArgs(args ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, a)
		}
		out[i] = n
	}
	return out, nil
}

func runSectionAdd(cmd *cobra.Command, args []string) error {
	return editDraft(cmd, args[0], "add section", func(e draftEditor) bool {
		s, ok := e.InsertEnd(sectionLevel)
		if ok {
			cmd.Printf("Added section #%d as %s\n", s.ID, s.Index)
		}
		return ok
	})
}

func runSectionInsert(cmd *cobra.Command, args []string) error {
	n, err := intArgs(args[1])
	if err != nil {
		return err
	}
	return editDraft(cmd, args[0], "insert section", func(e draftEditor) bool {
		s, ok := e.InsertAfter(n[0], sectionLevel)
		if ok {
			cmd.Printf("Inserted section #%d as %s\n", s.ID, s.Index)
		}
		return ok
	})
}

func runSectionRemove(cmd *cobra.Command, args []string) error {
	n, err := intArgs(args[1])
	if err != nil {
		return err
	}
	return editDraft(cmd, args[0], "remove section", func(e draftEditor) bool {
		return e.Remove(n[0])
	})
}

func runSectionLevel(cmd *cobra.Command, args []string) error {
	n, err := intArgs(args[1], args[2])
	if err != nil {
		return err
	}
	return editDraft(cmd, args[0], "change level", func(e draftEditor) bool {
		return e.ChangeLevel(n[0], n[1])
	})
}

func runSectionMove(dir domain.MoveDirection) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		n, err := intArgs(args[1])
		if err != nil {
			return err
		}
		return editDraft(cmd, args[0], "move "+dir.String(), func(e draftEditor) bool {
			return e.Move(n[0], dir)
		})
	}
}

func runSectionTitle(cmd *cobra.Command, args []string) error {
	n, err := intArgs(args[1])
	if err != nil {
		return err
	}
	return editDraft(cmd, args[0], "set title", func(e draftEditor) bool {
		return e.SetTitle(n[0], args[2])
	})
}

func runSectionFlags(cmd *cobra.Command, args []string) error {
	n, err := intArgs(args[1])
	if err != nil {
		return err
	}
	flags := domain.SectionFlags{Variable: flagVariable, Optional: flagOptional, Dynamic: flagDynamic}
	return editDraft(cmd, args[0], "set flags", func(e draftEditor) bool {
		return e.SetFlags(n[0], flags)
	})
}

func runSectionDescribe(cmd *cobra.Command, args []string) error {
	n, err := intArgs(args[1])
	if err != nil {
		return err
	}
	return editDraft(cmd, args[0], "describe change", func(e draftEditor) bool {
		return e.SetDescriptionOfChange(n[0], args[2])
	})
}

func runSectionOptions(cmd *cobra.Command, args []string) error {
	n, err := intArgs(args[1], args[2])
	if err != nil {
		return err
	}
	return editDraft(cmd, args[0], "resize options", func(e draftEditor) bool {
		return e.SetOptionCount(n[0], n[1])
	})
}

func runSectionSubOptions(cmd *cobra.Command, args []string) error {
	n, err := intArgs(args[1], args[2], args[3])
	if err != nil {
		return err
	}
	return editDraft(cmd, args[0], "resize sub-options", func(e draftEditor) bool {
		return e.SetSubOptionCount(n[0], n[1], n[2])
	})
}

func runSectionBody(cmd *cobra.Command, args []string) error {
	n, err := intArgs(args[1], args[2])
	if err != nil {
		return err
	}
	sub := bodySubOption
	return editDraft(cmd, args[0], "set body", func(e draftEditor) bool {
		if sub >= 0 {
			return e.SetSubOptionBody(n[0], n[1], sub, args[3])
		}
		return e.SetOptionBody(n[0], n[1], args[3])
	})
}

func runSectionOption(cmd *cobra.Command, args []string) error {
	n, err := intArgs(args[1], args[2])
	if err != nil {
		return err
	}

	var patch domain.OptionPatch
	flags := cmd.Flags()
	if flags.Changed("icon") {
		icon, err := domain.ParseIcon(optionIcon)
		if err != nil {
			return err
		}
		patch.Icon = &icon
	}
	if flags.Changed("summary") {
		patch.Summary = &optionSummary
	}
	if flags.Changed("short-description") {
		patch.ShortDescription = &optionShortDesc
	}
	if flags.Changed("mutex-suboptions") {
		patch.MutexSuboptions = &optionMutexSubopts
	}
	if patch == (domain.OptionPatch{}) {
		return fmt.Errorf("%w: nothing to change; pass --icon, --summary, --short-description or --mutex-suboptions",
			domain.ErrInvalidInput)
	}

	return editDraft(cmd, args[0], "update option", func(e draftEditor) bool {
		return e.UpdateOption(n[0], n[1], patch)
	})
}

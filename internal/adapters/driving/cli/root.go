// Package cli is the cobra command tree of the drafter binary.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services configured by main before Execute.
var (
	draftService     driving.DraftService
	settingsService  driving.SettingsService
	autosaver        driving.Autosaver
	schedulerService driving.Scheduler
)

// verbose enables debug logging for every command.
var verbose bool

// errDraftsNotConfigured is returned by commands that need the draft service.
var errDraftsNotConfigured = errors.New("draft service not configured")

var rootCmd = &cobra.Command{
	Use:   "drafter",
	Short: "Edit numbered contract outlines",
	Long: `drafter edits provider contract drafts: an outline of numbered
sections (1, 1.1, 1.2, 2, ...), each with alternative wordings (options)
and nested sub-options. Drafts are saved through the Persistence API, or
to a local SQLite database when no API is configured.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Services groups the core services driven by the commands.
// Nil fields disable the commands that need them.
type Services struct {
	Drafts    driving.DraftService
	Settings  driving.SettingsService
	Autosaver driving.Autosaver
	Scheduler driving.Scheduler
}

// SetServices configures the services used by the commands.
func SetServices(s Services) {
	draftService = s.Drafts
	settingsService = s.Settings
	autosaver = s.Autosaver
	schedulerService = s.Scheduler
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errSettingsNotConfigured = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change outline, autosave and Persistence API settings.

Settings are stored in ~/.drafter/config.toml. DRAFTER_API_BASE_URL and
DRAFTER_API_TOKEN, from the environment or a .env file, override the
stored API settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting. Recognised keys:

  outline.depth_unit          stored depth step between levels (default 1)
  outline.strict_swap         reject moves between sections of different depth
  outline.suboption_growth    legacy or corrected
  autosave.enabled            save open drafts periodically during 'mcp serve'
  autosave.interval           time between autosaves, e.g. 30s
  api.base_url                Persistence API root; empty uses the local database
  api.token                   Persistence API bearer token
  api.requests_per_second     outgoing request rate`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the setting keys accepted by 'settings set'",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errSettingsNotConfigured
		}
		for _, k := range settingsService.Keys() {
			cmd.Println(k)
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Outline]")
	cmd.Printf("  Depth unit: %d\n", settings.Outline.DepthUnit)
	cmd.Printf("  Strict swap: %s\n", yesNo(settings.Outline.StrictSwap))
	cmd.Printf("  Sub-option growth: %s\n", settings.Outline.SubOptionGrowth)
	cmd.Println()

	cmd.Println("[Autosave]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.Autosave.Enabled))
	cmd.Printf("  Interval: %s\n", settings.Autosave.Interval)
	cmd.Println()

	cmd.Println("[Persistence API]")
	if settings.API.IsConfigured() {
		cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
		if settings.API.Token != "" {
			cmd.Printf("  Token: %s\n", maskAPIKey(settings.API.Token))
		} else {
			cmd.Println("  Token: (not set)")
		}
		cmd.Printf("  Requests per second: %g\n", settings.API.RequestsPerSecond)
	} else {
		cmd.Println("  Not configured; drafts are stored in the local database.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	key, value := strings.TrimSpace(args[0]), args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w\nknown keys: %s", key, err,
			strings.Join(settingsService.Keys(), ", "))
	}

	shown := value
	if strings.HasSuffix(key, "token") {
		shown = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, shown)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

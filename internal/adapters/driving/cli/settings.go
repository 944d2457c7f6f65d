package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the API endpoint, request throttling, page size and landing
page address. Settings are stored in ~/.servilink/config.toml.

SERVILINK_API_URL, from the environment or a .env file, overrides api.base_url
without being saved.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting. The new configuration is validated before it is saved.

Keys:
  api.base_url              marketplace API root, e.g. http://localhost:8000
  api.timeout_seconds       request timeout
  api.requests_per_second   client-side request rate
  api.burst                 requests allowed in a burst
  listing.page_size         search results per page
  landing.addr              listen address of 'servilink landing serve'`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	cmd.Printf("  Requests per second: %g\n", settings.API.RequestsPerSecond)
	cmd.Printf("  Burst: %d\n", settings.API.Burst)
	cmd.Println()

	cmd.Println("[Listing]")
	cmd.Printf("  Page size: %d\n", settings.Listing.PageSize)
	cmd.Println()

	cmd.Println("[Landing]")
	cmd.Printf("  Address: %s\n", settings.Landing.Addr)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'servilink settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}
	key, value := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s (known keys: %s): %w", key, strings.Join(settingsService.Keys(), ", "), err)
	}
	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

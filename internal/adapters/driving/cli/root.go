// Package cli provides the cobra command tree of the servilink binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
	"github.com/servilink/servilink-cli/internal/logger"
)

var (
	version = "dev"
	verbose bool
)

// Services used by commands. Set by the composition root through SetServices.
var (
	sessionService    driving.SessionService
	authService       driving.AuthService
	searchService     driving.SearchService
	catalogService    driving.CatalogService
	jobService        driving.JobService
	profileService    driving.ProfileService
	onboardingService driving.OnboardingService
	settingsService   driving.SettingsService
)

// Services groups the driving ports the commands depend on.
type Services struct {
	Session    driving.SessionService
	Auth       driving.AuthService
	Search     driving.SearchService
	Catalog    driving.CatalogService
	Jobs       driving.JobService
	Profile    driving.ProfileService
	Onboarding driving.OnboardingService
	Settings   driving.SettingsService
}

var rootCmd = &cobra.Command{
	Use:   "servilink",
	Short: "ServiLink marketplace client",
	Long: `ServiLink connects vendors who offer services with contractors who hire them.

Search the catalogue, hire a service, follow the job until both sides confirm
completion and leave a review, all from the terminal.

Run 'servilink tui' for the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetServices wires the driving ports into the commands.
func SetServices(s Services) {
	sessionService = s.Session
	authService = s.Auth
	searchService = s.Search
	catalogService = s.Catalog
	jobService = s.Jobs
	profileService = s.Profile
	onboardingService = s.Onboarding
	settingsService = s.Settings
}

// SetVersion sets the version reported by 'servilink version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and prints a readable error on failure.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", domain.UserMessage(err))
	}
	return err
}

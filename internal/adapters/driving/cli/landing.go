package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/servilink/servilink-cli/internal/adapters/driving/landing"
	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/logger"
)

var landingAddr string

var landingCmd = &cobra.Command{
	Use:   "landing",
	Short: "Landing page commands",
}

var landingServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ServiLink landing page",
	Long: `Serve the public landing page with the best rated services, a short guide
and the FAQ. /healthz answers with {"status":"ok"}.

The address defaults to landing.addr from the settings. With --verbose every
request is logged.`,
	RunE: runLandingServe,
}

func init() {
	landingServeCmd.Flags().StringVar(&landingAddr, "addr", "", "listen address (default landing.addr)")
	landingCmd.AddCommand(landingServeCmd)
	rootCmd.AddCommand(landingCmd)
}

func runLandingServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return fmt.Errorf("search: %w", errNotConfigured)
	}

	addr := landingAddr
	if addr == "" {
		addr = domain.DefaultLandingAddr
		if settingsService != nil {
			if s, err := settingsService.Get(); err == nil && s.Landing.Addr != "" {
				addr = s.Landing.Addr
			}
		}
	}

	logger.SetTimestamps(true)
	server, err := landing.NewServer(searchService, logger.IsVerbose())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Landing page on http://%s\n", addr)
	return server.Run(cmd.Context(), addr)
}

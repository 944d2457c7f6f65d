package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/servilink/servilink-cli/internal/adapters/driving/mcp"
	"github.com/servilink/servilink-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so assistants can browse the
ServiLink catalogue and, when you are logged in, act on your jobs.

Tools: search_services, get_service, list_jobs, job_action.
Resources: servilink://session, servilink://categories,
servilink://services/{serviceId}.

By default the server speaks JSON-RPC over stdio. Use --port to serve the
streamable HTTP transport instead.

Examples:
  servilink mcp serve
  servilink mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "servilink": {
        "command": "/path/to/servilink",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	logger.SetTimestamps(true)

	ports := &mcp.Ports{
		Search:   searchService,
		Catalog:  catalogService,
		Jobs:     jobService,
		Session:  sessionService,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

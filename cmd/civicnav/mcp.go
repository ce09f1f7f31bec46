package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/nagarniyantran/civicnav/internal/cli"
	"github.com/nagarniyantran/civicnav/pkg/adapters/mcp"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/locale"
	"github.com/nagarniyantran/civicnav/pkg/observability"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes navigation sessions as an MCP Server.
This allows AI agents to create sessions, inspect views and raise events as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer deps.stack.Close()

		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")

		manager := deps.stack.NewManager(deps.logger, observability.LoggingHooks(deps.logger))
		srv := mcp.NewServer(manager,
			mcp.WithLogger(deps.logger),
			mcp.WithLocaleMatcher(locale.NewMatcher(domain.Language(deps.cfg.DefaultLanguage))),
		)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			deps.logger.Info("Starting CivicNav MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				return fmt.Errorf("MCP server execution failed: %w", err)
			}
			return nil
		case "sse":
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()

			if err := srv.ServeSSE(sigCtx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("MCP server execution failed: %w", err)
			}
			deps.logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can open
drafts and edit their outlines.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead.

While the server runs, open drafts with unsaved changes are saved every
autosave interval (30s unless configured otherwise). Changes to the config
file take effect without a restart; drafts already open keep their
outline settings.

Examples:
  # Stdio mode (default)
  drafter mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  drafter mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "drafter": {
        "command": "/path/to/drafter",
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
	if draftService == nil {
		return errDraftsNotConfigured
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Drafts:    draftService,
		Autosaver: autosaver,
	})
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	if updates := watchSettings(ctx); updates != nil {
		g.Go(func() error {
			for s := range updates {
				applySettings(ctx, s)
			}
			return nil
		})
	}
	if schedulerService != nil {
		g.Go(func() error {
			if err := schedulerService.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("scheduler: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer stop()
		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}
		return server.Run(ctx)
	})

	err = g.Wait()

	// The server saved its open sessions on exit; wait for any autosave
	// run that was already in progress.
	if schedulerService != nil {
		_ = schedulerService.Stop()
	}
	return err
}

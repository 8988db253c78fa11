// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server over the shared repository.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/healthtrack/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and shares storage with the CLI.

CONFIGURATION:

  {
    "mcpServers": {
      "healthtrack": {
        "command": "healthtrack",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_water, log_steps, log_weight     Record intake and weight
  log_blood_pressure, log_heart_rate   Record and classify readings
  add_habit, toggle_habit, delete_habit
  list_records                         Recent records of one category
  get_stats                            Summary, trend and daily totals
  classify_reading                     Classify without storing

AVAILABLE RESOURCES:

  health://today      Today's dashboard
  health://summary    Statistics for every category
  health://habits     Habits with streaks and completion rates`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, goals())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logger.Info("mcp server starting", "backend", cfg.GetBackend())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

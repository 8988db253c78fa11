// ABOUTME: CLI commands for viewing and changing configuration.
// ABOUTME: Edits the config file only; environment overrides are shown but never saved.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/harperreed/healthtrack/internal/config"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change configuration",
	Long: `View or change healthtrack configuration.

SETTINGS:

  backend        sqlite (default), badger, charm or memory
  data_dir       where local backends keep data (default ~/.local/share/healthtrack)
  water_goal_ml  daily water goal (default 2000)
  step_goal      daily step goal (default 10000)
  log_level      debug, info, warn (default) or error
  log_format     text (default), json or logfmt

ENVIRONMENT:

  HEALTHTRACK_BACKEND, HEALTHTRACK_DATA_DIR, HEALTHTRACK_LOG_LEVEL and
  HEALTHTRACK_LOG_FORMAT override the file for a single run.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("file:"), config.GetConfigPath())
		fmt.Fprintln(out, string(data))
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("backend:"), cfg.GetBackend())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("data dir:"), cfg.GetDataDir())
		if cfg.GetBackend() == "sqlite" {
			fmt.Fprintf(out, "%s %s\n", faint.Sprint("database:"), storage.DefaultDBPath(cfg.GetDataDir()))
		}
		fmt.Fprintf(out, "%s %.0f ml, %.0f steps\n", faint.Sprint("goals:"), cfg.GetWaterGoal(), cfg.GetStepGoal())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		success(cmd.OutOrStdout(), "Set %s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

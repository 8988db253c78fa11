// ABOUTME: Root Cobra command for the healthtrack CLI.
// ABOUTME: Opens config, logger, storage and repository in PersistentPreRunE and closes them after.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/config"
	"github.com/harperreed/healthtrack/internal/logging"
	"github.com/harperreed/healthtrack/internal/repository"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *log.Logger
	repo   *repository.Repository
)

var rootCmd = &cobra.Command{
	Use:   "healthtrack",
	Short: "Personal health tracker",
	Long: `Healthtrack records daily health data on this device.

WHAT IT TRACKS:

  Intake      water (ml), steps
  Readings    weight (kg), blood pressure (mmHg), heart rate (bpm)
  Habits      weekly schedules with streaks and completion rates

QUICK START:

  $ healthtrack water add 250                 # Log a glass of water
  $ healthtrack bp add 128 82                 # Log and classify blood pressure
  $ healthtrack habit add Stretch --days Mon,Wed,Fri
  $ healthtrack habit done stretch            # Mark it done today
  $ healthtrack summary                       # Today's dashboard

STORAGE:

  Data lives in a local store selected by 'backend' in the config file
  (sqlite by default, also badger, charm or memory). Use 'healthtrack
  config show' to see where, and 'healthtrack migrate --to' to move it.

MCP INTEGRATION:

  Run 'healthtrack mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "healthtrack": { "command": "healthtrack", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger = logging.New(os.Stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

		if !needsStore(cmd) {
			return nil
		}
		return openRepository(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRepository()
	},
}

// needsStore reports whether cmd works on the health data.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", "config", "install-skill", "migrate", "sync":
			return false
		}
	}
	return true
}

func openRepository(cmd *cobra.Command) error {
	if err := closeRepository(); err != nil {
		return err
	}

	kv, err := cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.GetBackend(), err)
	}
	logger.Debug("opened store", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())

	repo = repository.New(storage.NewRecordStore(kv, logger), repository.WithLogger(logger))
	if err := repo.Load(cmd.Context()); err != nil {
		_ = closeRepository()
		return err
	}
	return nil
}

func closeRepository() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	return err
}

// goals returns the configured daily goals.
func goals() repository.Goals {
	if cfg == nil {
		return repository.DefaultGoals
	}
	return repository.Goals{WaterML: cfg.GetWaterGoal(), Steps: cfg.GetStepGoal()}
}

var (
	faint = color.New(color.Faint)
	green = color.New(color.FgGreen)
)

// success prints a green check line.
func success(w io.Writer, format string, args ...any) {
	green.Fprintf(w, "✓ "+format+"\n", args...)
}

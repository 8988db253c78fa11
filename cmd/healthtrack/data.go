// ABOUTME: CLI commands that move or clear stored data: migrate and reset.
// ABOUTME: Migrate copies every key between backends; reset clears the dataset.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/charm"
	"github.com/harperreed/healthtrack/internal/config"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
	migrateSwitch bool
	resetYes      bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy every stored key from the configured backend to another one.

Backends: sqlite, badger, charm, memory.

The destination must be empty unless --force is given, in which case keys
with the same name are overwritten. The source is left untouched.

USAGE:

  healthtrack migrate --to badger --dry-run   # Preview what would be copied
  healthtrack migrate --to badger --switch    # Copy and make badger the default`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := cfg.GetBackend()
		if migrateTo == "" {
			return fmt.Errorf("--to is required (use %s)", strings.Join(config.Backends, ", "))
		}
		if migrateTo == from {
			return fmt.Errorf("already using the %s backend", from)
		}
		return runMigrate(cmd.Context(), cmd.OutOrStdout(), from, migrateTo)
	},
}

func runMigrate(ctx context.Context, out io.Writer, from, to string) error {
	if to == "badger" && !migrateForce && !migrateDryRun {
		nonEmpty, err := storage.IsDirNonEmpty(filepath.Join(cfg.GetDataDir(), "badger"))
		if err != nil {
			return err
		}
		if nonEmpty {
			return fmt.Errorf("badger directory already has data (use --force to overwrite)")
		}
	}

	src, err := cfg.OpenBackend(from)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", from, err)
	}
	defer func() { _ = src.Close() }()

	if migrateDryRun {
		color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
		keys, err := src.Keys(ctx)
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}
		fmt.Fprintf(out, "Would copy %d keys from %s to %s:\n", len(keys), from, to)
		for _, k := range keys {
			fmt.Fprintf(out, "  %s\n", k)
		}
		return nil
	}

	dst, err := cfg.OpenBackend(to)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", to, err)
	}
	defer func() { _ = dst.Close() }()

	if !migrateForce {
		existing, err := dst.Keys(ctx)
		if err != nil {
			return fmt.Errorf("failed to list %s keys: %w", to, err)
		}
		if len(existing) > 0 {
			return fmt.Errorf("%s already has %d keys (use --force to overwrite)", to, len(existing))
		}
	}

	// Push once at the end instead of after every key.
	cc, toCharm := dst.(*charm.Client)
	if toCharm {
		cc.SetAutoSync(false)
	}
	summary, err := storage.MigrateData(ctx, src, dst)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if toCharm {
		if err := cc.Sync(); err != nil {
			logger.Warn("sync after migrate failed", "err", err)
		}
	}
	logger.Info("migrated", "from", from, "to", to, "keys", summary.Keys, "bytes", summary.Bytes)
	success(out, "Copied %d keys (%d bytes) from %s to %s", summary.Keys, summary.Bytes, from, to)

	if !migrateSwitch {
		fmt.Fprintf(out, "Run 'healthtrack config set backend %s' to start using it.\n", to)
		return nil
	}
	fileCfg, err := config.LoadFile()
	if err != nil {
		return err
	}
	if err := fileCfg.Set("backend", to); err != nil {
		return err
	}
	if err := fileCfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	success(out, "Default backend is now %s", to)
	return nil
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all health data",
	Long: `Delete every record and habit from the configured backend.

This is a DESTRUCTIVE operation. Export a backup first:
  healthtrack export json -o backup.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !resetYes {
			fmt.Fprint(out, "This will PERMANENTLY DELETE all health data. Continue? [y/N]: ")
			if !confirm(cmd.InOrStdin()) {
				fmt.Fprintln(out, "Canceled.")
				return nil
			}
		}
		if err := repo.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		success(out, "All health data deleted")
		return nil
	},
}

// confirm reads a yes/no answer from in.
func confirm(in io.Reader) bool {
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite keys in a non-empty destination")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "make the destination the default backend")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip confirmation prompt")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(resetCmd)
}

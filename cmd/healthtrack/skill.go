// ABOUTME: Installs the healthtrack agent skill definition.
// ABOUTME: Embeds SKILL.md and writes it to ~/.claude/skills/healthtrack/.

package main

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install the agent skill",
	Long: `Install the healthtrack skill definition to ~/.claude/skills/healthtrack/
so coding agents can log health data with this CLI.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(home, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func skillPath(home string) string {
	return filepath.Join(home, ".claude", "skills", "healthtrack", "SKILL.md")
}

func installSkill(home string, in io.Reader, out io.Writer) error {
	path := skillPath(home)

	fmt.Fprintln(out, "This will install the healthtrack skill, enabling agents to:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  • Log water, steps, weight, blood pressure and heart rate")
	fmt.Fprintln(out, "  • Check off habits and report streaks")
	fmt.Fprintln(out, "  • Summarize today's progress")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Destination:\n  %s\n\n", path)

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintln(out, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(out)
	}

	if !skillSkipConfirm {
		fmt.Fprint(out, "Install the healthtrack skill? [y/N] ")
		if !confirm(in) {
			fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
		fmt.Fprintln(out)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	success(out, "Installed healthtrack skill")
	return nil
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

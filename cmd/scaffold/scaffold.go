// Package scaffold holds the top-level init command that sets up a design
// workspace with OpenCode agent definitions.
package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dataarchitect/architect/internal/color"
	"github.com/dataarchitect/architect/internal/scaffold"
)

var (
	targetDir string
	force     bool
	dryRun    bool
)

var ScaffoldCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold OpenCode agent definitions into a project",
	Long: `Write the OpenCode agent definitions, the design session skill, AGENTS.md
and opencode.json into a project directory. Existing files are skipped
unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runScaffold,
}

func init() {
	ScaffoldCmd.Flags().StringVar(&targetDir, "dir", ".", "Target directory")
	ScaffoldCmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	ScaffoldCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be created without writing")
}

var symbols = map[scaffold.Action]string{
	scaffold.Created:     "ok",
	scaffold.Skipped:     "skipped",
	scaffold.WouldCreate: "pending",
}

func runScaffold(cmd *cobra.Command, args []string) error {
	results, err := scaffold.Scaffold(targetDir, scaffold.Options{Force: force, DryRun: dryRun})
	if err != nil {
		return fmt.Errorf("cannot scaffold into %s: %w", targetDir, err)
	}

	c := color.New(true)
	w := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(w, "%s %s\n", c.Symbol(symbols[r.Action]), filepath.FromSlash(r.Path))
	}

	if dryRun {
		fmt.Fprintf(w, "\nDry run: %d files would be created\n", len(results))
		return nil
	}

	counts := scaffold.Counts(results)
	var parts []string
	if n := counts[scaffold.Created]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d created", n))
	}
	if n := counts[scaffold.Skipped]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}
	fmt.Fprintf(w, "\nScaffolded: %s\n", strings.Join(parts, ", "))
	return nil
}

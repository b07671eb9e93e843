package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataarchitect/architect/cmd/scaffold"
	"github.com/dataarchitect/architect/internal/logger"
	"github.com/dataarchitect/architect/internal/version"
)

var Debug bool

var RootCmd = &cobra.Command{
	Use:   "architect",
	Short: "Anchor Model to SQL compiler",
	Long: fmt.Sprintf(`architect compiles Anchor Model specs into idempotent DDL and incremental
DML for PostgreSQL, T-SQL and Snowflake.

Version: %s@%s %s %s

Commands:
  init      Scaffold OpenCode agent definitions into a project
  dab       Generate, validate and convert Anchor Model specs
  version   Show version information

Use "architect [command] --help" for more information about a command.`,
		version.App(), version.GetGitCommit(), version.Platform(), version.GetBuildDate()),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "Enable debug logging")
	RootCmd.AddCommand(scaffold.ScaffoldCmd)
	RootCmd.AddCommand(DabCmd)
	RootCmd.AddCommand(VersionCmd)
}

func setupLogger() {
	logger.SetGlobal(logger.New(os.Stderr, Debug), Debug)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

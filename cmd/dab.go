package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dataarchitect/architect/cmd/generate"
	"github.com/dataarchitect/architect/cmd/initspec"
	"github.com/dataarchitect/architect/cmd/interop"
	"github.com/dataarchitect/architect/cmd/validate"
)

// DabCmd groups the data architecture build commands
var DabCmd = &cobra.Command{
	Use:   "dab",
	Short: "Work with Anchor Model specs",
	Long: `Data architecture build commands for Anchor Model specs.

Commands:
  generate   Generate DDL and DML from a spec
  validate   Validate a spec
  init       Write a spec template
  import     Convert Anchor Modeler XML into a YAML spec
  export     Convert a YAML spec into Anchor Modeler XML`,
}

func init() {
	DabCmd.AddCommand(generate.GenerateCmd)
	DabCmd.AddCommand(validate.ValidateCmd)
	DabCmd.AddCommand(initspec.InitCmd)
	DabCmd.AddCommand(interop.ImportCmd)
	DabCmd.AddCommand(interop.ExportCmd)
}

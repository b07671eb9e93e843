package initspec

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataarchitect/architect/cmd/util"
	"github.com/dataarchitect/architect/internal/color"
	"github.com/dataarchitect/architect/internal/validation"
)

var overwrite bool

var InitCmd = &cobra.Command{
	Use:   "init [OUTPUT]",
	Short: "Write a commented spec template",
	Long:  "Write a commented Anchor Model YAML template with knots, anchors, a staging mapping and a tie. The template validates as written.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	InitCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := util.DefaultSpecFile
	if len(args) == 1 {
		path = args[0]
	}

	if err := util.WriteOutputFile(path, []byte(validation.SpecTemplate()), overwrite); err != nil {
		return err
	}

	c := color.New(true)
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", c.Symbol("ok"), path)
	return nil
}

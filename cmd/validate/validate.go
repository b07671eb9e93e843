package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataarchitect/architect/internal/color"
	"github.com/dataarchitect/architect/internal/validation"
)

var ValidateCmd = &cobra.Command{
	Use:   "validate SPEC",
	Short: "Validate an Anchor Model spec",
	Long:  "Check an Anchor Model YAML spec for structural and referential errors. Errors are reported with line numbers where available.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	specPath := args[0]
	c := color.New(true)

	res := validation.Validate(specPath)
	if !res.Valid() {
		for _, e := range res.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", c.Symbol("error"), e.Error())
		}
		return fmt.Errorf("%s has %d validation error(s)", specPath, len(res.Errors))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid\n", c.Symbol("ok"), specPath)
	return nil
}

// Package interop holds the import and export commands converting between
// YAML specs and Anchor Modeler XML.
package interop

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dataarchitect/architect/cmd/util"
	"github.com/dataarchitect/architect/internal/color"
	"github.com/dataarchitect/architect/internal/validation"
	"github.com/dataarchitect/architect/internal/xmlinterop"
)

var (
	importOutput    string
	importOverwrite bool

	exportOutput    string
	exportOverwrite bool
	force           bool
)

var ImportCmd = &cobra.Command{
	Use:   "import XML",
	Short: "Convert Anchor Modeler XML into a YAML spec",
	Long:  "Read an Anchor Modeler XML file (namespaced or not) and write the equivalent YAML spec. The output defaults to spec.yaml in the current directory.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var ExportCmd = &cobra.Command{
	Use:   "export SPEC",
	Short: "Convert a YAML spec into Anchor Modeler XML",
	Long: `Validate a YAML spec and write it as Anchor Modeler XML. The output defaults
to the input path with a .xml extension.

Staging mappings and staging_column have no XML representation. Export
refuses specs using them unless --force is given, in which case they are
dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	ImportCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Output YAML file")
	ImportCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Replace an existing output file")

	ExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output XML file")
	ExportCmd.Flags().BoolVar(&exportOverwrite, "overwrite", false, "Replace an existing output file")
	ExportCmd.Flags().BoolVar(&force, "force", false, "Export even if YAML-only extensions will be dropped")
}

func runImport(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := importOutput
	if output == "" {
		output = util.DefaultSpecFile
	}

	m, err := xmlinterop.ImportFile(input)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	// The imported model has to pass the same checks as a hand-written spec
	if res := validation.ValidateBytes(data); !res.Valid() {
		return fmt.Errorf("imported model is invalid:\n%s", validation.FormatErrors(res.Errors))
	}

	if err := util.WriteOutputFile(output, data, importOverwrite); err != nil {
		return err
	}

	c := color.New(true)
	fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %s to %s\n", c.Symbol("ok"), input, output)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := exportOutput
	if output == "" {
		output = util.ReplaceExt(input, ".xml")
	}

	res := validation.Validate(input)
	if !res.Valid() {
		return fmt.Errorf("spec validation failed:\n%s", validation.FormatErrors(res.Errors))
	}

	c := color.New(true)
	data, err := xmlinterop.Export(res.Model, force)
	if errors.Is(err, xmlinterop.ErrYAMLExtensions) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", input, err)
	}
	if force {
		for _, ext := range xmlinterop.Extensions(res.Model) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Dropped: %s\n", c.Symbol("warn"), ext)
		}
	}

	if err := util.WriteOutputFile(output, data, exportOverwrite); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %s to %s\n", c.Symbol("ok"), input, output)
	return nil
}

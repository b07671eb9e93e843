package generate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataarchitect/architect/cmd/util"
	"github.com/dataarchitect/architect/internal/color"
	"github.com/dataarchitect/architect/internal/config"
	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/fingerprint"
	"github.com/dataarchitect/architect/internal/format"
	gen "github.com/dataarchitect/architect/internal/generate"
	"github.com/dataarchitect/architect/internal/logger"
	"github.com/dataarchitect/architect/internal/sqlcheck"
	"github.com/dataarchitect/architect/internal/validation"
	"github.com/dataarchitect/architect/internal/version"
	"github.com/dataarchitect/architect/internal/writer"
)

var (
	outputDir   string
	formatName  string
	dialectName string
	check       bool
	manifest    bool
	bundle      bool
)

var GenerateCmd = &cobra.Command{
	Use:   "generate SPEC",
	Short: "Generate DDL and DML from an Anchor Model spec",
	Long: `Validate an Anchor Model YAML spec and write idempotent DDL and incremental
DML to the output directory (ddl/ and dml/ subdirectories).

Settings are taken from flags, then ARCHITECT_DIALECT, ARCHITECT_FORMAT and
ARCHITECT_OUTPUT_DIR, then architect.toml next to the spec. The defaults are
the postgres dialect, raw format and an output/ directory next to the spec.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: util.PreRunEWithEnvVars(&dialectName, &formatName, &outputDir),
	RunE:    runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: <spec dir>/output)")
	GenerateCmd.Flags().StringVarP(&formatName, "format", "f", "", "Output format: raw or bruin (default: raw)")
	GenerateCmd.Flags().StringVarP(&dialectName, "dialect", "d", "", "SQL dialect: postgres, tsql or snowflake (default: postgres)")
	GenerateCmd.Flags().BoolVar(&check, "check", false, "Parse every generated statement before writing (postgres only)")
	GenerateCmd.Flags().BoolVar(&manifest, "manifest", false, "Write manifest.json describing the generated files")
	GenerateCmd.Flags().BoolVar(&bundle, "bundle", false, "Also write ddl.sql and dml.sql with every file inlined (postgres raw only)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	specPath := args[0]
	log := logger.Get()

	res := validation.Validate(specPath)
	if !res.Valid() {
		return fmt.Errorf("spec validation failed:\n%s", validation.FormatErrors(res.Errors))
	}

	settings, err := config.Resolve(specPath, config.Overrides{
		Dialect:   dialectName,
		Format:    formatName,
		OutputDir: outputDir,
		Check:     check,
	})
	if err != nil {
		return err
	}
	log.Debug("Resolved settings", "dialect", settings.Dialect, "format", settings.Format, "output", settings.OutputDir)

	out, err := gen.Compile(res.Model, settings.Dialect)
	if err != nil {
		return fmt.Errorf("failed to compile spec: %w", err)
	}
	out = settings.Ignore.Apply(out)

	if bundle && (settings.Dialect != dialect.Postgres || settings.Format != format.Raw) {
		return fmt.Errorf("--bundle requires the postgres dialect and raw format")
	}

	if settings.Check {
		if settings.Dialect != dialect.Postgres {
			return fmt.Errorf("--check is only supported for the postgres dialect, got %s", settings.Dialect)
		}
		for _, o := range []*gen.Output{out.DDL, out.DML} {
			if err := sqlcheck.CheckOutput(o); err != nil {
				return fmt.Errorf("generated SQL failed to parse: %w", err)
			}
		}
	}

	summary, err := writer.Write(cmd.Context(), settings.OutputDir, out, settings.Format)
	if err != nil {
		return err
	}

	if bundle {
		files, err := writer.WriteBundles(settings.OutputDir)
		if err != nil {
			return err
		}
		log.Debug("Wrote bundles", "files", files)
	}

	fp, err := fingerprint.ComputeModel(res.Model)
	if err != nil {
		return err
	}

	if manifest {
		if err := writeManifest(settings.OutputDir, out, settings, fp); err != nil {
			return err
		}
	}

	c := color.New(true)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s\n", c.Symbol("ok"), summary)
	fmt.Fprintf(w, "Output directory: %s\n", settings.OutputDir)
	fmt.Fprintln(w, fp)
	return nil
}

func writeManifest(dir string, out *gen.Result, settings *config.Settings, fp *fingerprint.Fingerprint) error {
	prev, err := writer.ReadManifest(dir)
	if err != nil {
		return err
	}
	if prev != nil {
		if err := fingerprint.Compare(&fingerprint.Fingerprint{Hash: prev.Fingerprint}, fp); err != nil {
			logger.Get().Debug("Model changed since previous generation", "detail", err)
		}
	}
	return writer.WriteManifest(dir, writer.NewManifest(version.App(), out, settings.Format, fp.Hash))
}

package interop

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dataarchitect/architect/internal/validation"
	"github.com/dataarchitect/architect/internal/xmlinterop"
)

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetArgs(args)
	err := c.Execute()
	return buf.String(), err
}

func TestCommands(t *testing.T) {
	if ImportCmd.Use != "import XML" || ExportCmd.Use != "export SPEC" {
		t.Errorf("unexpected Use: %q, %q", ImportCmd.Use, ExportCmd.Use)
	}
	for _, name := range []string{"output", "overwrite"} {
		if ImportCmd.Flags().Lookup(name) == nil {
			t.Errorf("import: expected --%s flag", name)
		}
		if ExportCmd.Flags().Lookup(name) == nil {
			t.Errorf("export: expected --%s flag", name)
		}
	}
	if ExportCmd.Flags().Lookup("force") == nil {
		t.Error("export: expected --force flag")
	}
}

const plainSpec = `knot:
  - mnemonic: GEN
    descriptor: Gender
    identity: TINYINT
    dataRange: VARCHAR(42)
anchor:
  - mnemonic: CU
    descriptor: Customer
    identity: INT
    attribute:
      - mnemonic: NAM
        descriptor: Name
        dataRange: VARCHAR(100)
        timeRange: DATETIME
      - mnemonic: GEN
        descriptor: Gender
        knotRange: GEN
`

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "model.yaml")
	if err := os.WriteFile(spec, []byte(plainSpec), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := execute(t, ExportCmd, spec)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, output)
	}
	xmlPath := filepath.Join(dir, "model.xml")
	if output != "✓ Exported "+spec+" to "+xmlPath+"\n" {
		t.Errorf("unexpected export output: %q", output)
	}

	yamlPath := filepath.Join(dir, "roundtrip.yaml")
	if output, err := execute(t, ImportCmd, xmlPath, "-o", yamlPath); err != nil {
		t.Fatalf("import failed: %v\n%s", err, output)
	}

	res := validation.Validate(yamlPath)
	if !res.Valid() {
		t.Fatalf("imported spec invalid:\n%s", validation.FormatErrors(res.Errors))
	}
	if len(res.Model.Anchors) != 1 || len(res.Model.Anchors[0].Attributes) != 2 || len(res.Model.Knots) != 1 {
		t.Errorf("unexpected model after round trip: %+v", res.Model)
	}

	// Exporting the imported spec yields an equivalent document
	again := filepath.Join(dir, "again.xml")
	if _, err := execute(t, ExportCmd, yamlPath, "-o", again); err != nil {
		t.Fatal(err)
	}
	a, _ := os.ReadFile(xmlPath)
	b, _ := os.ReadFile(again)
	same, err := xmlinterop.Equivalent(a, b)
	if err != nil || !same {
		t.Errorf("round trip changed XML (err=%v):\n%s\n%s", err, a, b)
	}
}

func TestExportExtensions(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "model.yaml")
	if err := os.WriteFile(spec, []byte(validation.SpecTemplate()), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, ExportCmd, spec)
	if !errors.Is(err, xmlinterop.ErrYAMLExtensions) {
		t.Fatalf("err = %v, want ErrYAMLExtensions", err)
	}

	output, err := execute(t, ExportCmd, spec, "--force")
	if err != nil {
		t.Fatalf("forced export failed: %v", err)
	}
	if !strings.Contains(output, "! Dropped: Anchor 'CU' has 1 staging mapping\n") {
		t.Errorf("dropped extensions not reported:\n%s", output)
	}

	_, err = execute(t, ExportCmd, spec, "--force")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected refusal to overwrite, got %v", err)
	}
}

func TestImportInvalidXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xml")
	if err := os.WriteFile(path, []byte("<schema><anchor"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, ImportCmd, path)
	if err == nil || !strings.Contains(err.Error(), "invalid XML") {
		t.Errorf("err = %v, want invalid XML", err)
	}
}

func TestImportDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "model.yaml")
	if err := os.WriteFile(spec, []byte(plainSpec), 0644); err != nil {
		t.Fatal(err)
	}
	xmlPath := filepath.Join(dir, "model.xml")
	if _, err := execute(t, ExportCmd, spec, "-o", xmlPath); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	output, err := execute(t, ImportCmd, xmlPath)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, output)
	}
	if output != "✓ Imported "+xmlPath+" to spec.yaml\n" {
		t.Errorf("unexpected import output: %q", output)
	}
	if res := validation.Validate(filepath.Join(dir, "spec.yaml")); !res.Valid() {
		t.Errorf("imported spec invalid:\n%s", validation.FormatErrors(res.Errors))
	}
}

package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dataarchitect/architect/internal/validation"
)

func run(t *testing.T, path string) (string, string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	ValidateCmd.SetOut(&stdout)
	ValidateCmd.SetErr(&stderr)
	ValidateCmd.SetArgs([]string{path})
	err := ValidateCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidateCommand(t *testing.T) {
	if ValidateCmd.Use != "validate SPEC" {
		t.Errorf("Expected Use to be 'validate SPEC', got '%s'", ValidateCmd.Use)
	}
	if ValidateCmd.Short == "" || ValidateCmd.Long == "" {
		t.Error("Expected descriptions to be set")
	}
}

func TestValidateValidSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(validation.SpecTemplate()), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := run(t, path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if stdout != "✓ "+path+" is valid\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestValidateInvalidSpec(t *testing.T) {
	spec := `anchor:
  - mnemonic: CU
    descriptor: Customer
    identity: INT
    attribute:
      - mnemonic: GEN
        descriptor: Gender
        knotRange: GEN
`
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(spec), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := run(t, path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "1 validation error(s)") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(stderr, "✗ Line 8: Attribute 'Gender' references nonexistent knot 'GEN'\n") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

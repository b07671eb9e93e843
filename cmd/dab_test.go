package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDabWorkflow scaffolds a project, then runs init, validate and generate
// through the root command
func TestDabWorkflow(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := t.TempDir()
	spec := filepath.Join(dir, "model.yaml")
	out := filepath.Join(dir, "out")

	steps := [][]string{
		{"init", "--dir", dir},
		{"dab", "init", spec},
		{"dab", "validate", spec},
		{"dab", "generate", spec, "-o", out, "-f", "bruin", "-d", "snowflake"},
	}
	for _, args := range steps {
		var buf bytes.Buffer
		RootCmd.SetOut(&buf)
		RootCmd.SetErr(&buf)
		RootCmd.SetArgs(args)
		if err := RootCmd.Execute(); err != nil {
			t.Fatalf("%s failed: %v\n%s", strings.Join(args, " "), err, buf.String())
		}
		if !strings.HasPrefix(buf.String(), "✓ ") {
			t.Errorf("%s: unexpected output %q", strings.Join(args, " "), buf.String())
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "opencode.json")); err != nil {
		t.Errorf("project not scaffolded: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(out, "dml", "CU_NAM_Customer_Name_load.sql"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "name: dab.CU_NAM_Customer_Name\n") {
		t.Errorf("unexpected asset:\n%s", content)
	}
}

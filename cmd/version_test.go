package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dataarchitect/architect/internal/version"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs([]string{"version"})

	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("version command execution failed: %v", err)
	}

	output := strings.TrimSpace(buf.String())
	prefix := "architect v" + version.Version() + "@"
	if !strings.HasPrefix(output, prefix) {
		t.Errorf("expected output to start with '%s', got: %s", prefix, output)
	}
	if !strings.Contains(output, version.Platform()) {
		t.Errorf("expected output to contain platform %s, got: %s", version.Platform(), output)
	}
}

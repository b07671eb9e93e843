package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSpecFile is the YAML spec written by init and import when no output
// path is given
const DefaultSpecFile = "spec.yaml"

// WriteOutputFile writes data to path, creating parent directories. An
// existing file is only replaced when overwrite is set.
func WriteOutputFile(path string, data []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file %s already exists (use --overwrite to replace it)", path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReplaceExt swaps the extension of path for ext
func ReplaceExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}

// Package config reads the optional architect.toml project file and resolves
// generation settings from flags, environment and file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/format"
	"github.com/dataarchitect/architect/internal/ignore"
)

// FileName is looked up in the directory of the spec
const FileName = "architect.toml"

// Environment variables consulted when a flag was not given
const (
	EnvDialect   = "ARCHITECT_DIALECT"
	EnvFormat    = "ARCHITECT_FORMAT"
	EnvOutputDir = "ARCHITECT_OUTPUT_DIR"
)

// File mirrors architect.toml:
//
//	dialect = "snowflake"
//	format = "bruin"
//	output_dir = "build/sql"
//	check = true
//
//	[ignore]
//	tables = ["stg_*"]
type File struct {
	Dialect   string        `toml:"dialect"`
	Format    string        `toml:"format"`
	OutputDir string        `toml:"output_dir"`
	Check     bool          `toml:"check"`
	Ignore    ignore.Config `toml:"ignore"`
}

// Load reads architect.toml from dir. A missing file yields nil.
func Load(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	var f File
	_, err := toml.DecodeFile(path, &f)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Relative output directories are relative to the config file
	if f.OutputDir != "" && !filepath.IsAbs(f.OutputDir) {
		f.OutputDir = filepath.Join(dir, f.OutputDir)
	}
	return &f, nil
}

// Settings are the resolved inputs of a generate run
type Settings struct {
	Dialect   dialect.Dialect
	Format    format.Format
	OutputDir string
	Check     bool
	Ignore    *ignore.Config
}

// Overrides carries values that take precedence over the file, already
// merged from flags and environment. Empty strings mean "not set".
type Overrides struct {
	Dialect   string
	Format    string
	OutputDir string
	Check     bool
}

// Resolve combines overrides, the project file next to specPath and the
// defaults (postgres, raw, <spec dir>/output).
func Resolve(specPath string, o Overrides) (*Settings, error) {
	specDir := filepath.Dir(specPath)
	file, err := Load(specDir)
	if err != nil {
		return nil, err
	}
	if file == nil {
		file = &File{}
	}

	dialectName := first(o.Dialect, file.Dialect, dialect.Postgres.String())
	d, err := dialect.Parse(dialectName)
	if err != nil {
		return nil, err
	}

	formatName := first(o.Format, file.Format, format.Raw.String())
	f, err := format.Parse(formatName)
	if err != nil {
		return nil, err
	}

	return &Settings{
		Dialect:   d,
		Format:    f,
		OutputDir: first(o.OutputDir, file.OutputDir, filepath.Join(specDir, "output")),
		Check:     o.Check || file.Check,
		Ignore:    &file.Ignore,
	}, nil
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

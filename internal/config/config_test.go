package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/format"
	"github.com/dataarchitect/architect/internal/ignore"
	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissing(t *testing.T) {
	f, err := Load(t.TempDir())
	if err != nil || f != nil {
		t.Errorf("Load() = %v, %v, want nil, nil", f, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `dialect = "snowflake"
format = "bruin"
output_dir = "build/sql"
check = true

[ignore]
tables = ["stg_*", "!stg_nw_*"]
`)

	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := &File{
		Dialect:   "snowflake",
		Format:    "bruin",
		OutputDir: filepath.Join(dir, "build", "sql"),
		Check:     true,
		Ignore:    ignore.Config{Tables: []string{"stg_*", "!stg_nw_*"}},
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "dialect = \n")

	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "model.yaml")

	t.Run("defaults", func(t *testing.T) {
		got, err := Resolve(spec, Overrides{})
		if err != nil {
			t.Fatal(err)
		}
		want := &Settings{Dialect: dialect.Postgres, Format: format.Raw, OutputDir: filepath.Join(dir, "output"), Ignore: &ignore.Config{}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("settings mismatch (-want +got):\n%s", diff)
		}
	})

	writeConfig(t, dir, "dialect = \"tsql\"\nformat = \"bruin\"\n")

	t.Run("file", func(t *testing.T) {
		got, err := Resolve(spec, Overrides{})
		if err != nil {
			t.Fatal(err)
		}
		if got.Dialect != dialect.TSQL || got.Format != format.Bruin {
			t.Errorf("settings = %+v", got)
		}
	})

	t.Run("overrides win", func(t *testing.T) {
		got, err := Resolve(spec, Overrides{Dialect: "snowflake", OutputDir: "/tmp/out", Check: true})
		if err != nil {
			t.Fatal(err)
		}
		want := &Settings{Dialect: dialect.Snowflake, Format: format.Bruin, OutputDir: "/tmp/out", Check: true, Ignore: &ignore.Config{}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("settings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown dialect", func(t *testing.T) {
		_, err := Resolve(spec, Overrides{Dialect: "oracle"})
		if !errors.Is(err, dialect.ErrUnknownDialect) {
			t.Errorf("err = %v, want ErrUnknownDialect", err)
		}
	})
}

// Package writer lays generated artifacts out on disk.
//
// The output directory gets a ddl/ and a dml/ subdirectory holding one file
// per artifact. For postgres each subdirectory also gets an _all.sql psql
// script that includes every file in generation order.
package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/format"
	"github.com/dataarchitect/architect/internal/generate"
	"github.com/dataarchitect/architect/internal/include"
	"github.com/dataarchitect/architect/internal/logger"
)

const (
	DDLDir = "ddl"
	DMLDir = "dml"

	// IndexFile is the psql script including every file of a subdirectory
	IndexFile = "_all.sql"

	// ManifestFile describes a generation run
	ManifestFile = "manifest.json"
)

// Summary describes what Write put on disk
type Summary struct {
	Dir   string
	DDL   int
	DML   int
	Files []string // paths relative to Dir, sorted
}

// String renders the summary as printed by the CLI
func (s *Summary) String() string {
	return fmt.Sprintf("Generated %d DDL and %d DML files", s.DDL, s.DML)
}

// Write renders every artifact of res in format f below dir. DDL and DML
// are written concurrently; the first failure cancels the other.
func Write(ctx context.Context, dir string, res *generate.Result, f format.Format) (*Summary, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	withIndex := res.Dialect == dialect.Postgres && f == format.Raw

	var ddlFiles, dmlFiles []string
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		ddlFiles, err = writeKind(ctx, dir, DDLDir, res.DDL, f, withIndex)
		return err
	})
	eg.Go(func() error {
		var err error
		dmlFiles, err = writeKind(ctx, dir, DMLDir, res.DML, f, withIndex)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	files := append(ddlFiles, dmlFiles...)
	sort.Strings(files)

	return &Summary{
		Dir:   dir,
		DDL:   res.DDL.Len(),
		DML:   res.DML.Len(),
		Files: files,
	}, nil
}

// writeKind writes one subdirectory and returns the relative paths written
func writeKind(ctx context.Context, baseDir, sub string, out *generate.Output, f format.Format, withIndex bool) ([]string, error) {
	dirPath := filepath.Join(baseDir, sub)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}

	log := logger.Get()
	var written []string
	var includes []string
	for _, a := range out.Artifacts() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		relPath := filepath.Join(sub, a.Name)
		if err := os.WriteFile(filepath.Join(baseDir, relPath), []byte(f.Artifact(a)), 0644); err != nil {
			return nil, fmt.Errorf("failed to write file %s: %w", relPath, err)
		}
		log.Debug("Wrote artifact", "path", relPath, "entity", a.Entity)

		written = append(written, relPath)
		includes = append(includes, fmt.Sprintf("\\ir %s", a.Name))
	}

	if withIndex && len(includes) > 0 {
		relPath := filepath.Join(sub, IndexFile)
		content := strings.Join(includes, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(baseDir, relPath), []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write index %s: %w", relPath, err)
		}
		written = append(written, relPath)
	}

	return written, nil
}

// Bundle expands the psql index of sub (DDLDir or DMLDir) below dir into a
// single script. Only postgres raw output has an index.
func Bundle(dir, sub string) (string, error) {
	index := filepath.Join(dir, sub, IndexFile)
	if _, err := os.Stat(index); err != nil {
		return "", fmt.Errorf("no %s index in %s: %w", sub, dir, err)
	}
	return include.NewProcessor(dir).ProcessFile(index)
}

// WriteBundles writes ddl.sql and dml.sql next to the ddl/ and dml/
// directories and returns their paths relative to dir
func WriteBundles(dir string) ([]string, error) {
	var written []string
	for _, sub := range []string{DDLDir, DMLDir} {
		script, err := Bundle(dir, sub)
		if err != nil {
			return nil, err
		}
		name := sub + ".sql"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0644); err != nil {
			return nil, fmt.Errorf("failed to write bundle %s: %w", name, err)
		}
		written = append(written, name)
	}
	return written, nil
}

// Manifest records a generation run next to its output
type Manifest struct {
	Version     string               `json:"version"`
	Dialect     string               `json:"dialect"`
	Format      string               `json:"format"`
	Fingerprint string               `json:"fingerprint"`
	DDL         []*generate.Artifact `json:"ddl"`
	DML         []*generate.Artifact `json:"dml"`
}

// NewManifest describes res
func NewManifest(version string, res *generate.Result, f format.Format, fingerprint string) *Manifest {
	return &Manifest{
		Version:     version,
		Dialect:     res.Dialect.String(),
		Format:      f.String(),
		Fingerprint: fingerprint,
		DDL:         res.DDL.Artifacts(),
		DML:         res.DML.Artifacts(),
	}
}

// WriteManifest writes m as indented JSON to dir/manifest.json
func WriteManifest(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads dir/manifest.json. It returns nil without error when
// the file does not exist.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

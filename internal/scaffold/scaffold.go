// Package scaffold writes the OpenCode agent definitions and shared context
// files that set up a data warehouse design workspace.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/dataarchitect/architect/internal/logger"
)

//go:embed all:templates
var templates embed.FS

// Files lists the scaffolded paths, relative to the target directory and
// slash separated, in the order they are written.
var Files = []string{
	".opencode/agents/data-architect.md",
	".opencode/agents/data-engineer.md",
	".opencode/agents/analytics-engineer.md",
	".opencode/agents/system-analyst.md",
	".opencode/agents/business-analyst.md",
	".opencode/agents/veteran-reviewer.md",
	".opencode/skills/da-start/SKILL.md",
	"AGENTS.md",
	"opencode.json",
}

// Action is what happened to one scaffolded file
type Action int

const (
	Created Action = iota
	Skipped
	WouldCreate
)

func (a Action) String() string {
	switch a {
	case Created:
		return "created"
	case Skipped:
		return "skipped"
	case WouldCreate:
		return "would_create"
	default:
		return "unknown"
	}
}

// Result reports the outcome for one file. Path is relative to the target
// directory.
type Result struct {
	Path   string
	Action Action
	Reason string
}

// Options controls Scaffold
type Options struct {
	// Force overwrites existing files
	Force bool
	// DryRun reports what would be written without touching the filesystem
	DryRun bool
}

// Content returns the embedded content of a scaffolded file
func Content(rel string) ([]byte, error) {
	return templates.ReadFile(path.Join("templates", rel))
}

// Scaffold writes every file of Files below dir and returns one result per
// file. Existing files are skipped unless opts.Force is set.
func Scaffold(dir string, opts Options) ([]Result, error) {
	log := logger.Get()
	results := make([]Result, 0, len(Files))

	for _, rel := range Files {
		target := filepath.Join(dir, filepath.FromSlash(rel))

		if opts.DryRun {
			results = append(results, Result{Path: rel, Action: WouldCreate, Reason: "Dry run"})
			continue
		}
		if _, err := os.Stat(target); err == nil && !opts.Force {
			results = append(results, Result{Path: rel, Action: Skipped, Reason: "Already exists"})
			continue
		}

		content, err := Content(rel)
		if err != nil {
			return nil, fmt.Errorf("missing template %s: %w", rel, err)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, fmt.Errorf("cannot create directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(target, content, 0644); err != nil {
			return nil, fmt.Errorf("cannot write %s: %w", target, err)
		}
		log.Debug("Scaffolded file", "path", rel)
		results = append(results, Result{Path: rel, Action: Created, Reason: "Created"})
	}

	return results, nil
}

// Counts tallies results by action
func Counts(results []Result) map[Action]int {
	counts := make(map[Action]int)
	for _, r := range results {
		counts[r.Action]++
	}
	return counts
}

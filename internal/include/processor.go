// Package include expands psql include directives in generated index
// scripts into a single SQL script.
package include

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// `\i path` resolves against the root directory like psql run from there;
// `\ir path` resolves against the including file.
var includeRegex = regexp.MustCompile(`^\s*\\(i|ir)\s+([^\s;]+)\s*;?\s*$`)

// Processor expands include directives below a root directory
type Processor struct {
	root    string
	visited map[string]bool
}

// NewProcessor creates a processor resolving `\i` paths against root
func NewProcessor(root string) *Processor {
	return &Processor{
		root:    root,
		visited: make(map[string]bool),
	}
}

// ProcessFile returns the content of filename with every include directive
// replaced by the content of the included file
func (p *Processor) ProcessFile(filename string) (string, error) {
	p.visited = make(map[string]bool)

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", filename, err)
	}
	return p.process(absPath)
}

func (p *Processor) process(filename string) (string, error) {
	if p.visited[filename] {
		return "", fmt.Errorf("circular include detected: %s", filename)
	}
	p.visited[filename] = true
	// The same file may be included again from a different branch
	defer delete(p.visited, filename)

	content, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	lines := strings.Split(string(content), "\n")
	var result strings.Builder
	for i, line := range lines {
		matches := includeRegex.FindStringSubmatch(line)
		if matches == nil {
			result.WriteString(line)
			if i < len(lines)-1 {
				result.WriteString("\n")
			}
			continue
		}

		dir := p.root
		if matches[1] == "ir" {
			dir = filepath.Dir(filename)
		}
		resolved, err := p.resolve(matches[2], dir)
		if err != nil {
			return "", fmt.Errorf("%s:%d: %w", filepath.Base(filename), i+1, err)
		}

		included, err := p.process(resolved)
		if err != nil {
			return "", err
		}
		result.WriteString(included)
		if !strings.HasSuffix(included, "\n") {
			result.WriteString("\n")
		}
	}
	return result.String(), nil
}

// resolve joins an include path to dir, refusing paths that leave the root
func (p *Processor) resolve(includePath, dir string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(includePath))
	if filepath.IsAbs(clean) {
		return "", fmt.Errorf("absolute include path not allowed: %s", includePath)
	}

	absPath, err := filepath.Abs(filepath.Join(dir, clean))
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	rootAbs, err := filepath.Abs(p.root)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute root path: %w", err)
	}

	rel, err := filepath.Rel(rootAbs, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("include path %s is outside %s", includePath, p.root)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("included file does not exist: %s", includePath)
	}
	return absPath, nil
}

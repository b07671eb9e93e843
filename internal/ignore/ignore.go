// Package ignore filters generated artifacts by target table name.
//
// Patterns are configured in architect.toml:
//
//	[ignore]
//	tables = ["stg_*", "!stg_nw_*"]
//
// Patterns support the * wildcard; patterns prefixed with ! re-include
// names matched by another pattern.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/dataarchitect/architect/internal/generate"
)

// Config holds the ignore patterns
type Config struct {
	Tables []string `toml:"tables"`
}

// ShouldIgnoreTable reports whether artifacts targeting table are skipped
func (c *Config) ShouldIgnoreTable(table string) bool {
	if c == nil || len(c.Tables) == 0 {
		return false
	}

	matched := false
	for _, pattern := range c.Tables {
		if !strings.HasPrefix(pattern, "!") && matchPattern(pattern, table) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	// Negation takes precedence
	for _, pattern := range c.Tables {
		if strings.HasPrefix(pattern, "!") && matchPattern(pattern[1:], table) {
			return false
		}
	}
	return true
}

// Filter returns out without the artifacts of ignored tables, keeping order
func (c *Config) Filter(out *generate.Output) *generate.Output {
	filtered := generate.NewOutput()
	for _, a := range out.Artifacts() {
		if !c.ShouldIgnoreTable(a.Entity) {
			filtered.Add(a)
		}
	}
	return filtered
}

// Apply filters both outputs of res
func (c *Config) Apply(res *generate.Result) *generate.Result {
	if c == nil || len(c.Tables) == 0 {
		return res
	}
	return &generate.Result{
		Dialect: res.Dialect,
		DDL:     c.Filter(res.DDL),
		DML:     c.Filter(res.DML),
	}
}

// matchPattern matches a glob-style pattern, falling back to a literal
// comparison for malformed patterns
func matchPattern(pattern, name string) bool {
	matched, err := filepath.Match(pattern, name)
	if err != nil {
		return pattern == name
	}
	return matched
}

// Package format renders generated artifacts as file contents.
package format

import (
	"fmt"
	"strings"

	"github.com/dataarchitect/architect/internal/generate"
)

// Format is an output file format
type Format string

const (
	// Raw writes the SQL as is
	Raw Format = "raw"
	// Bruin prefixes the SQL with a Bruin asset frontmatter block
	Bruin Format = "bruin"
)

// Formats returns every supported format
func Formats() []Format {
	return []Format{Raw, Bruin}
}

// Parse resolves a format name case-insensitively
func Parse(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case Raw, Bruin:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (supported: raw, bruin)", name)
}

func (f Format) String() string {
	return string(f)
}

// Bruin materialization strategies
const (
	StrategyMerge         = "merge"
	StrategyCreateReplace = "create+replace"
)

// AssetSchema qualifies every Bruin asset name
const AssetSchema = "dab"

// Artifact renders a single artifact in format f
func (f Format) Artifact(a *generate.Artifact) string {
	if f == Bruin {
		return BruinAsset(a)
	}
	return RawSQL(a.SQL)
}

// RawSQL returns sql terminated by exactly one newline
func RawSQL(sql string) string {
	return strings.TrimRight(sql, "\n") + "\n"
}

// Strategy picks the Bruin materialization strategy. Only historized loads
// merge; every other artifact is rebuilt.
func Strategy(a *generate.Artifact) string {
	if a.Kind == generate.KindDML && a.Historized {
		return StrategyMerge
	}
	return StrategyCreateReplace
}

// BruinAsset wraps the artifact SQL in a Bruin frontmatter block
func BruinAsset(a *generate.Artifact) string {
	var b strings.Builder
	b.WriteString("/* @bruin\n")
	fmt.Fprintf(&b, "name: %s.%s\n", AssetSchema, a.Asset())
	b.WriteString("type: sql\n")
	b.WriteString("materialization:\n")
	b.WriteString("    type: table\n")
	fmt.Fprintf(&b, "    strategy: %s\n", Strategy(a))
	b.WriteString("@bruin */\n\n")
	b.WriteString(RawSQL(a.SQL))
	return b.String()
}

// Package validation loads YAML specs and checks them for structural and
// referential problems, reporting each with its line number.
package validation

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dataarchitect/architect/internal/model"
)

// LineMap maps a field path to the 1-based line it was declared on
type LineMap map[string]int

// Lookup returns the line of path, falling back to the closest enclosing
// path that has one.
func (l LineMap) Lookup(path string) int {
	for path != "" {
		if line, ok := l[path]; ok {
			return line
		}
		i := strings.LastIndexAny(path, ".[")
		if i < 0 {
			break
		}
		path = path[:i]
	}
	return 0
}

// buildLineMap records the line of every mapping key and sequence item
func buildLineMap(n *yaml.Node, path string, lines LineMap) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			buildLineMap(c, path, lines)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			p := key.Value
			if path != "" {
				p = path + "." + key.Value
			}
			lines[p] = key.Line
			buildLineMap(value, p, lines)
		}
	case yaml.SequenceNode:
		for i, item := range n.Content {
			p := fmt.Sprintf("%s[%d]", path, i)
			lines[p] = item.Line
			buildLineMap(item, p, lines)
		}
	}
}

var typeErrorLine = regexp.MustCompile(`^line (\d+): (.*)$`)

// LoadBytes decodes a YAML spec. Decoding problems are returned as
// validation errors rather than a Go error so they can be reported together.
func LoadBytes(data []byte) (*model.Model, LineMap, []ValidationError) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, []ValidationError{{Message: fmt.Sprintf("YAML parse error: %v", err)}}
	}

	lines := make(LineMap)
	buildLineMap(&root, "", lines)

	m := &model.Model{}
	if root.Kind == 0 || len(root.Content) == 0 {
		return m, lines, nil
	}
	if doc := root.Content[0]; doc.Kind != yaml.MappingNode {
		return nil, lines, []ValidationError{{
			Message: "spec must be a mapping",
			Line:    doc.Line,
		}}
	}

	if err := root.Decode(m); err != nil {
		typeErr, ok := err.(*yaml.TypeError)
		if !ok {
			return nil, lines, []ValidationError{{Message: fmt.Sprintf("YAML parse error: %v", err)}}
		}
		errs := make([]ValidationError, 0, len(typeErr.Errors))
		for _, msg := range typeErr.Errors {
			ve := ValidationError{Message: msg}
			if match := typeErrorLine.FindStringSubmatch(msg); match != nil {
				ve.Line, _ = strconv.Atoi(match[1])
				ve.Message = match[2]
			}
			errs = append(errs, ve)
		}
		return nil, lines, errs
	}

	return m, lines, nil
}

// Load reads and decodes the spec at path
func Load(path string) (*model.Model, LineMap, []ValidationError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, []ValidationError{{Message: fmt.Sprintf("failed to read spec: %v", err)}}
	}
	return LoadBytes(data)
}

// ValidateBytes decodes data and runs every check. Referential checks run
// only on a structurally sound model.
func ValidateBytes(data []byte) *Result {
	m, lines, errs := LoadBytes(data)
	if len(errs) > 0 {
		return &Result{Errors: errs}
	}

	if errs := CheckStructure(m, lines); len(errs) > 0 {
		return &Result{Errors: errs}
	}

	return &Result{Model: m, Errors: CheckReferentialIntegrity(m, lines)}
}

// Validate reads the spec at path and runs every check
func Validate(path string) *Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Result{Errors: []ValidationError{{Message: fmt.Sprintf("failed to read spec: %v", err)}}}
	}
	return ValidateBytes(data)
}

package validation

import (
	"fmt"
	"strings"

	"github.com/dataarchitect/architect/internal/model"
)

// ValidationError is one problem found in a spec file
type ValidationError struct {
	FieldPath string // e.g. anchor[0].attribute[1].knotRange
	Message   string
	Line      int // 1-based, 0 when unknown
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
	}
	if e.FieldPath == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.FieldPath, e.Message)
}

// Result is the outcome of loading and validating a spec. Model is nil when
// the file could not be decoded or failed structural checks.
type Result struct {
	Model  *model.Model
	Errors []ValidationError
}

// Valid reports whether no errors were found
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// FormatErrors renders one error per line, preferring the line number over
// the field path.
func FormatErrors(errs []ValidationError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

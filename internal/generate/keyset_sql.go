package generate

import (
	"fmt"
	"strings"

	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/keyset"
	"github.com/dataarchitect/architect/internal/model"
)

// CompositeNaturalKeyExpr renders the SQL natural key of a mapping. One
// column is returned bare; several are cast to text and joined with ':',
// yielding NULL when any of them is NULL.
func CompositeNaturalKeyExpr(columns []string, d dialect.Dialect) (string, error) {
	switch len(columns) {
	case 0:
		return "", fmt.Errorf("composite natural key: %w", keyset.ErrNoKeyColumns)
	case 1:
		return columns[0], nil
	}

	nullChecks := make([]string, len(columns))
	parts := make([]string, 0, 2*len(columns)-1)
	sep := d.QuoteLiteral(keyset.CompositeSeparator)
	for i, col := range columns {
		nullChecks[i] = col + " IS NULL"
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, d.CastText(col))
	}

	return fmt.Sprintf("CASE WHEN %s THEN NULL ELSE %s END",
		strings.Join(nullChecks, " OR "), d.Concat(parts...)), nil
}

// KeysetExpr renders the keyset of one row as a NULL-safe SQL expression.
// The entity@system~tenant| prefix is escaped here, once; the natural key
// expression is escaped per row with nested REPLACE calls.
func KeysetExpr(entity, system, tenant, naturalKey string, d dialect.Dialect) string {
	nk := naturalKey
	if !isPlainIdentifier(nk) {
		nk = "(" + nk + ")"
	}

	escaped := d.CastText(nk)
	for _, delim := range []string{"@", "~", "|"} {
		escaped = fmt.Sprintf("REPLACE(%s, %s, %s)", escaped, d.QuoteLiteral(delim), d.QuoteLiteral(delim+delim))
	}

	prefix := d.QuoteLiteral(keyset.Prefix(entity, system, tenant))
	return fmt.Sprintf("CASE WHEN %s IS NULL THEN NULL ELSE %s END", nk, d.Concat(prefix, escaped))
}

// MappingKeysetExpr renders the keyset of rows loaded through mapping into
// anchor a. The anchor descriptor is the keyset entity.
func MappingKeysetExpr(a *model.Anchor, mapping *model.StagingMapping, d dialect.Dialect) (string, error) {
	nk, err := CompositeNaturalKeyExpr(mapping.NaturalKeyColumns, d)
	if err != nil {
		return "", fmt.Errorf("staging table %s: %w", mapping.Table, err)
	}
	return KeysetExpr(a.Descriptor, mapping.System, mapping.Tenant, nk, d), nil
}

func isPlainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '$' || r == '.'):
		default:
			return false
		}
	}
	return true
}

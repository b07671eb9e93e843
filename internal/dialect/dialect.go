// Package dialect describes the SQL dialects the compiler can target.
//
// Dialects form a closed set. Everything the generators need to know about a
// dialect lives in its Capabilities record so that adding a dialect means
// adding one entry to the table below.
package dialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Dialect is a supported SQL target
type Dialect int

const (
	Postgres Dialect = iota
	TSQL
	Snowflake
)

// ErrUnknownDialect is returned by Parse for an unsupported name
var ErrUnknownDialect = errors.New("unknown dialect")

// CreateStyle is how a dialect spells an idempotent CREATE TABLE
type CreateStyle int

const (
	// CreateIfNotExists renders CREATE TABLE IF NOT EXISTS
	CreateIfNotExists CreateStyle = iota
	// CreateGuardedByObjectID renders IF OBJECT_ID(...) IS NULL CREATE TABLE
	CreateGuardedByObjectID
)

// GeneratedStyle is how a dialect declares a stored computed column
type GeneratedStyle int

const (
	// GeneratedAlwaysStored renders <type> GENERATED ALWAYS AS (expr) STORED
	GeneratedAlwaysStored GeneratedStyle = iota
	// ComputedPersisted renders AS (expr) PERSISTED without a type
	ComputedPersisted
	// TypedAs renders <type> AS (expr)
	TypedAs
)

// Capabilities is the per-dialect capability record
type Capabilities struct {
	Name string

	// NativeUpsert selects INSERT ... ON CONFLICT over MERGE
	NativeUpsert bool

	// TimestampType is used for changed_at, recorded_at and metadata_recorded_at
	TimestampType string

	// TextType is the cast target applied to natural key values before escaping
	TextType string

	// ConcatOperator joins string expressions; empty means CONCAT(...)
	ConcatOperator string

	Create    CreateStyle
	Generated GeneratedStyle

	// IdempotentMarker appears in every CREATE statement for the dialect
	IdempotentMarker string

	quote func(string) string
}

var capabilities = [...]Capabilities{
	Postgres: {
		Name:             "postgres",
		NativeUpsert:     true,
		TimestampType:    "TIMESTAMPTZ",
		TextType:         "TEXT",
		ConcatOperator:   "||",
		Create:           CreateIfNotExists,
		Generated:        GeneratedAlwaysStored,
		IdempotentMarker: "CREATE TABLE IF NOT EXISTS",
		quote:            pq.QuoteLiteral,
	},
	TSQL: {
		Name:             "tsql",
		TimestampType:    "DATETIMEOFFSET",
		TextType:         "VARCHAR(500)",
		Create:           CreateGuardedByObjectID,
		Generated:        ComputedPersisted,
		IdempotentMarker: "IF OBJECT_ID(",
		quote:            quoteStandard,
	},
	Snowflake: {
		Name:             "snowflake",
		TimestampType:    "TIMESTAMP_NTZ",
		TextType:         "VARCHAR",
		ConcatOperator:   "||",
		Create:           CreateIfNotExists,
		Generated:        TypedAs,
		IdempotentMarker: "CREATE TABLE IF NOT EXISTS",
		quote:            quoteBackslashing,
	},
}

// All returns every supported dialect in declaration order
func All() []Dialect {
	return []Dialect{Postgres, TSQL, Snowflake}
}

// Names returns the names of all dialects
func Names() []string {
	names := make([]string, 0, len(capabilities))
	for _, d := range All() {
		names = append(names, d.String())
	}
	return names
}

// Parse resolves a dialect name case-insensitively
func Parse(name string) (Dialect, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, d := range All() {
		if capabilities[d].Name == n {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w %q (supported: %s)", ErrUnknownDialect, name, strings.Join(Names(), ", "))
}

// Capabilities returns the capability record of d
func (d Dialect) Capabilities() Capabilities {
	return capabilities[d]
}

func (d Dialect) String() string {
	if d < 0 || int(d) >= len(capabilities) {
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
	return capabilities[d].Name
}

// NativeUpsert reports whether d has INSERT ... ON CONFLICT
func (d Dialect) NativeUpsert() bool {
	return capabilities[d].NativeUpsert
}

// TimestampType returns the timestamp type token for d
func (d Dialect) TimestampType() string {
	return capabilities[d].TimestampType
}

// QuoteLiteral renders s as a string literal
func (d Dialect) QuoteLiteral(s string) string {
	return capabilities[d].quote(s)
}

// Concat joins string expressions
func (d Dialect) Concat(parts ...string) string {
	op := capabilities[d].ConcatOperator
	if op == "" {
		return "CONCAT(" + strings.Join(parts, ", ") + ")"
	}
	return strings.Join(parts, " "+op+" ")
}

// CastText casts expr to the dialect's text type
func (d Dialect) CastText(expr string) string {
	return "CAST(" + expr + " AS " + capabilities[d].TextType + ")"
}

// CreateTable wraps a column list body in an idempotent CREATE TABLE
func (d Dialect) CreateTable(name, body string) string {
	switch capabilities[d].Create {
	case CreateGuardedByObjectID:
		return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL\nCREATE TABLE %s (\n%s\n);", name, name, body)
	default:
		return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);", name, body)
	}
}

// GeneratedColumn renders the definition of a stored computed column
func (d Dialect) GeneratedColumn(name, typ, expr string) string {
	switch capabilities[d].Generated {
	case ComputedPersisted:
		return fmt.Sprintf("%s AS (%s) PERSISTED", name, expr)
	case TypedAs:
		return fmt.Sprintf("%s %s AS (%s)", name, typ, expr)
	default:
		return fmt.Sprintf("%s %s GENERATED ALWAYS AS (%s) STORED", name, typ, expr)
	}
}

// quoteStandard doubles single quotes
func quoteStandard(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteBackslashing also escapes backslashes, which are escape characters
// inside Snowflake string literals.
func quoteBackslashing(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return quoteStandard(s)
}

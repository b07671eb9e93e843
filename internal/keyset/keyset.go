// Package keyset encodes and decodes provenance identities of the form
//
//	entity@system~tenant|natural_key
//
// The delimiters @, ~ and | are escaped inside every component by doubling
// them. A NULL natural key yields a NULL keyset.
package keyset

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const (
	SystemDelimiter     = '@'
	TenantDelimiter     = '~'
	NaturalKeyDelimiter = '|'

	// CompositeSeparator joins the values of a multi-column natural key
	CompositeSeparator = ":"
)

var (
	// ErrInvalidComponent is returned when entity, system or tenant is empty
	ErrInvalidComponent = errors.New("keyset component must be non-empty")

	// ErrNoKeyColumns is returned when a composite key has no columns
	ErrNoKeyColumns = errors.New("at least one natural key column is required")
)

var (
	escaper   = strings.NewReplacer("@", "@@", "~", "~~", "|", "||")
	unescaper = strings.NewReplacer("@@", "@", "~~", "~", "||", "|")
)

// Components are the decoded parts of a keyset
type Components struct {
	Entity     string
	System     string
	Tenant     string
	NaturalKey string
}

// String formats the components back into a keyset
func (c Components) String() string {
	return Prefix(c.Entity, c.System, c.Tenant) + Escape(c.NaturalKey)
}

// Escape doubles every delimiter character in s
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape collapses doubled delimiter characters in s
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// Prefix returns the escaped constant part "entity@system~tenant|" of a
// keyset. SQL generation embeds it as a literal.
func Prefix(entity, system, tenant string) string {
	var b strings.Builder
	b.WriteString(Escape(entity))
	b.WriteRune(SystemDelimiter)
	b.WriteString(Escape(system))
	b.WriteRune(TenantDelimiter)
	b.WriteString(Escape(tenant))
	b.WriteRune(NaturalKeyDelimiter)
	return b.String()
}

// Format builds a keyset. A NULL natural key returns a NULL keyset and no
// error; an empty entity, system or tenant returns ErrInvalidComponent.
func Format(entity, system, tenant string, naturalKey sql.NullString) (sql.NullString, error) {
	if !naturalKey.Valid {
		return sql.NullString{}, nil
	}
	if entity == "" {
		return sql.NullString{}, fmt.Errorf("entity: %w", ErrInvalidComponent)
	}
	if system == "" {
		return sql.NullString{}, fmt.Errorf("system: %w", ErrInvalidComponent)
	}
	if tenant == "" {
		return sql.NullString{}, fmt.Errorf("tenant: %w", ErrInvalidComponent)
	}
	return sql.NullString{
		String: Prefix(entity, system, tenant) + Escape(naturalKey.String),
		Valid:  true,
	}, nil
}

// Parse splits a keyset into its unescaped components. It never panics:
// empty input, missing delimiters and unescaped delimiters after the natural
// key boundary all report false.
//
// Delimiters are located left to right; a delimiter immediately followed by
// itself is an escaped literal and both characters are skipped. A component
// that starts with the delimiter preceding it is therefore ambiguous, e.g. a
// system starting with "@" cannot be told apart from an entity ending in "@".
func Parse(s string) (Components, bool) {
	if s == "" {
		return Components{}, false
	}

	at := findUnescaped(s, SystemDelimiter, 0)
	if at < 0 {
		return Components{}, false
	}
	tilde := findUnescaped(s, TenantDelimiter, at+1)
	if tilde < 0 {
		return Components{}, false
	}
	pipe := findUnescaped(s, NaturalKeyDelimiter, tilde+1)
	if pipe < 0 {
		return Components{}, false
	}

	for _, d := range []byte{SystemDelimiter, TenantDelimiter, NaturalKeyDelimiter} {
		if findUnescaped(s, d, pipe+1) >= 0 {
			return Components{}, false
		}
	}

	return Components{
		Entity:     Unescape(s[:at]),
		System:     Unescape(s[at+1 : tilde]),
		Tenant:     Unescape(s[tilde+1 : pipe]),
		NaturalKey: Unescape(s[pipe+1:]),
	}, true
}

// ParseNullString is Parse for nullable column values
func ParseNullString(s sql.NullString) (Components, bool) {
	if !s.Valid {
		return Components{}, false
	}
	return Parse(s.String)
}

// findUnescaped returns the index of the first lone delimiter at or after
// start, or -1.
func findUnescaped(s string, delim byte, start int) int {
	for i := start; i < len(s); {
		if s[i] != delim {
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == delim {
			i += 2
			continue
		}
		return i
	}
	return -1
}

// JoinNaturalKey combines the values of a composite natural key with ":".
// Any NULL part makes the result NULL. A single part is returned as is.
func JoinNaturalKey(parts []sql.NullString) (sql.NullString, error) {
	if len(parts) == 0 {
		return sql.NullString{}, ErrNoKeyColumns
	}
	if len(parts) == 1 {
		return parts[0], nil
	}

	values := make([]string, len(parts))
	for i, p := range parts {
		if !p.Valid {
			return sql.NullString{}, nil
		}
		values[i] = p.String
	}
	return sql.NullString{String: strings.Join(values, CompositeSeparator), Valid: true}, nil
}

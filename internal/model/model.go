// Package model holds the in-memory Anchor Model consumed by the compiler.
//
// Values are produced once by the loader (internal/validation) or the XML
// importer (internal/xmlinterop) and treated as read-only afterwards.
package model

// Model is the root of an Anchor Model specification
type Model struct {
	Anchors     []*Anchor         `yaml:"anchor,omitempty" json:"anchors"`
	Knots       []*Knot           `yaml:"knot,omitempty" json:"knots"`
	Ties        []*Tie            `yaml:"tie,omitempty" json:"ties"`
	Nexuses     []*Nexus          `yaml:"nexus,omitempty" json:"nexuses,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
}

// Anchor represents an entity or event identified by a surrogate key
type Anchor struct {
	Mnemonic        string            `yaml:"mnemonic" json:"mnemonic"`
	Descriptor      string            `yaml:"descriptor" json:"descriptor"`
	Identity        string            `yaml:"identity" json:"identity"` // SQL type token of the surrogate key
	Attributes      []*Attribute      `yaml:"attribute,omitempty" json:"attributes"`
	Identifiers     []Identifier      `yaml:"identifier,omitempty" json:"identifiers,omitempty"`
	StagingMappings []*StagingMapping `yaml:"staging_mappings,omitempty" json:"staging_mappings,omitempty"`
	Metadata        map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Description     string            `yaml:"description,omitempty" json:"description,omitempty"`
}

// Attribute is a property of an anchor or nexus. Exactly one of DataRange and
// KnotRange is set.
type Attribute struct {
	Mnemonic      string            `yaml:"mnemonic" json:"mnemonic"`
	Descriptor    string            `yaml:"descriptor" json:"descriptor"`
	DataRange     string            `yaml:"dataRange,omitempty" json:"data_range,omitempty"`
	KnotRange     string            `yaml:"knotRange,omitempty" json:"knot_range,omitempty"`
	TimeRange     string            `yaml:"timeRange,omitempty" json:"time_range,omitempty"`
	Keys          []Key             `yaml:"key,omitempty" json:"keys,omitempty"`
	StagingColumn string            `yaml:"staging_column,omitempty" json:"staging_column,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Description   string            `yaml:"description,omitempty" json:"description,omitempty"`
}

// Historized reports whether the attribute carries a valid-time range
func (a *Attribute) Historized() bool {
	return a.TimeRange != ""
}

// Knotted reports whether the attribute value is a reference to a knot
func (a *Attribute) Knotted() bool {
	return a.KnotRange != ""
}

// Knot is a static, shared lookup value domain
type Knot struct {
	Mnemonic    string            `yaml:"mnemonic" json:"mnemonic"`
	Descriptor  string            `yaml:"descriptor" json:"descriptor"`
	Identity    string            `yaml:"identity" json:"identity"`
	DataRange   string            `yaml:"dataRange" json:"data_range"`
	Metadata    map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
}

// Tie is a relationship between two or more anchors or knots
type Tie struct {
	Roles       []*Role           `yaml:"role" json:"roles"`
	TimeRange   string            `yaml:"timeRange,omitempty" json:"time_range,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
}

// Historized reports whether the tie carries a valid-time range
func (t *Tie) Historized() bool {
	return t.TimeRange != ""
}

// Role is one participant of a tie or nexus
type Role struct {
	Role        string            `yaml:"role" json:"role"`
	Type        string            `yaml:"type" json:"type"` // mnemonic of the referenced anchor, knot or nexus
	Identifier  bool              `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Coloring    string            `yaml:"coloring,omitempty" json:"coloring,omitempty"`
	Keys        []Key             `yaml:"key,omitempty" json:"keys,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
}

// Nexus is a first-class entity that owns both attributes and roles.
// Nexuses survive loading and XML interchange but produce no SQL.
type Nexus struct {
	Mnemonic    string            `yaml:"mnemonic" json:"mnemonic"`
	Descriptor  string            `yaml:"descriptor" json:"descriptor"`
	Identity    string            `yaml:"identity" json:"identity"`
	Attributes  []*Attribute      `yaml:"attribute,omitempty" json:"attributes,omitempty"`
	Roles       []*Role           `yaml:"role,omitempty" json:"roles,omitempty"`
	Identifiers []Identifier      `yaml:"identifier,omitempty" json:"identifiers,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
}

// Key is a route key on an attribute or role
type Key struct {
	Stop   string `yaml:"stop" json:"stop"`
	Route  string `yaml:"route" json:"route"`
	Of     string `yaml:"of" json:"of"`
	Branch string `yaml:"branch,omitempty" json:"branch,omitempty"`
}

// Identifier names a route that identifies an anchor or nexus
type Identifier struct {
	Route string `yaml:"route" json:"route"`
}

// StagingMapping describes one source system table feeding an anchor
type StagingMapping struct {
	System            string            `yaml:"system" json:"system"`
	Tenant            string            `yaml:"tenant" json:"tenant"`
	Table             string            `yaml:"table" json:"table"`
	NaturalKeyColumns []string          `yaml:"natural_key_columns" json:"natural_key_columns"`
	Columns           []StagingColumn   `yaml:"columns,omitempty" json:"columns,omitempty"`
	ColumnMappings    map[string]string `yaml:"column_mappings,omitempty" json:"column_mappings,omitempty"` // attribute mnemonic -> staging column
	Priority          *int              `yaml:"priority,omitempty" json:"priority,omitempty"`               // lower wins, nil sorts last
}

// StagingColumn is a column of a staging table
type StagingColumn struct {
	Name   string `yaml:"name" json:"name"`
	Type   string `yaml:"type" json:"type"`
	MapsTo string `yaml:"maps_to,omitempty" json:"maps_to,omitempty"` // target attribute mnemonic
}

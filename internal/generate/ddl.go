package generate

import (
	"strings"

	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/model"
	"github.com/dataarchitect/architect/internal/naming"
)

// Table is a generated table definition
type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey []string // table-level key, used when it spans several columns or none is flagged inline
}

// HasColumn reports whether the table declares a column with the given name
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// SQL renders an idempotent CREATE TABLE statement for d
func (t *Table) SQL(d dialect.Dialect) string {
	lines := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		lines = append(lines, indent+c.Definition(d))
	}
	if len(t.PrimaryKey) > 0 {
		lines = append(lines, indent+"PRIMARY KEY ("+strings.Join(t.PrimaryKey, ", ")+")")
	}
	return d.CreateTable(t.Name, strings.Join(lines, ",\n"))
}

// AnchorTable builds the anchor table: identity primary key plus metadata
func AnchorTable(a *model.Anchor, d dialect.Dialect) *Table {
	cols := []Column{{Name: naming.IdentityColumn(a.Mnemonic), Type: a.Identity, PrimaryKey: true}}
	return &Table{
		Name:    naming.AnchorTable(a),
		Columns: append(cols, MetadataColumns(d)...),
	}
}

// AttributeTable builds the table of one attribute. The value column holds
// either the data range type or a foreign key to the knot. Historized
// attributes add the bitemporal pair and key on (anchor, changed_at).
func AttributeTable(a *model.Anchor, attr *model.Attribute, identities map[string]string, d dialect.Dialect) *Table {
	anchorFK := naming.IdentityColumn(a.Mnemonic)
	value := Column{Name: naming.AttributeValueColumn(a, attr), Type: attr.DataRange}
	if attr.Knotted() {
		value = Column{Name: naming.IdentityColumn(attr.KnotRange), Type: identityType(identities, attr.KnotRange)}
	}

	cols := []Column{
		{Name: anchorFK, Type: a.Identity, NotNull: true},
		value,
	}
	key := []string{anchorFK}
	if attr.Historized() {
		cols = append(cols, BitemporalColumns(d)...)
		key = append(key, ChangedAt)
	}
	cols = append(cols, MetadataColumns(d)...)

	return &Table{Name: naming.AttributeTable(a, attr), Columns: cols, PrimaryKey: key}
}

// KnotTable builds the knot table. Knots are never historized.
func KnotTable(k *model.Knot, d dialect.Dialect) *Table {
	cols := []Column{
		{Name: naming.IdentityColumn(k.Mnemonic), Type: k.Identity, PrimaryKey: true},
		{Name: naming.KnotValueColumn(k), Type: k.DataRange},
	}
	return &Table{
		Name:    naming.KnotTable(k),
		Columns: append(cols, MetadataColumns(d)...),
	}
}

// TieTable builds the tie table with one foreign key per role, in the same
// role order that names the table.
func TieTable(t *model.Tie, identities map[string]string, d dialect.Dialect) *Table {
	var cols []Column
	var key []string
	for _, r := range naming.SortedRoles(t) {
		name := naming.RoleColumn(r)
		cols = append(cols, Column{Name: name, Type: identityType(identities, r.Type), NotNull: true})
		key = append(key, name)
	}
	if t.Historized() {
		cols = append(cols, BitemporalColumns(d)...)
		key = append(key, ChangedAt)
	}
	cols = append(cols, MetadataColumns(d)...)

	return &Table{Name: naming.TieTable(t), Columns: cols, PrimaryKey: key}
}

// StagingTable builds a staging table from caller-supplied columns. The
// keyset column is added only when both the owning anchor and the mapping
// are known.
func StagingTable(name string, columns []model.StagingColumn, a *model.Anchor, mapping *model.StagingMapping, d dialect.Dialect) (*Table, error) {
	cols := make([]Column, 0, len(columns)+4)
	for _, c := range columns {
		cols = append(cols, Column{Name: c.Name, Type: c.Type})
	}
	if a != nil && mapping != nil {
		ks, err := KeysetColumn(a, mapping, d)
		if err != nil {
			return nil, err
		}
		cols = append(cols, ks)
	}
	cols = append(cols, MetadataColumns(d)...)

	return &Table{Name: name, Columns: cols}, nil
}

package generate

import (
	"strings"

	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/model"
	"github.com/dataarchitect/architect/internal/naming"
)

const (
	indent = "    "

	// RecordedBy is written to metadata_recorded_by by every load
	RecordedBy = "architect"

	// FallbackMetadataID is written to metadata_id when a load has no
	// staging mapping to derive a keyset from
	FallbackMetadataID = "architect-generated"

	sourceAlias = "source"
	targetAlias = "target"
	now         = "CURRENT_TIMESTAMP"
)

// assignment is a target column and the expression that fills it
type assignment struct {
	column string
	expr   string
}

// loadStatement is a dialect-neutral description of one incremental load
type loadStatement struct {
	target string
	source string
	key    []string // target columns identifying an existing row
	values []assignment
	update bool // overwrite non-key columns of matched rows
}

// SQL renders the statement as INSERT ... ON CONFLICT for dialects with a
// native upsert and as MERGE otherwise.
func (s *loadStatement) SQL(d dialect.Dialect) string {
	if d.NativeUpsert() {
		return s.upsert()
	}
	return s.merge()
}

func (s *loadStatement) upsert() string {
	var b strings.Builder

	cols := make([]string, len(s.values))
	selects := make([]string, len(s.values))
	for i, v := range s.values {
		cols[i] = v.column
		selects[i] = v.expr
		if v.expr != qualify(sourceAlias, v.column) {
			selects[i] += " AS " + v.column
		}
	}

	b.WriteString("INSERT INTO " + s.target + " (\n")
	b.WriteString(list(cols, 1))
	b.WriteString("\n)\nSELECT\n")
	b.WriteString(list(selects, 1))
	b.WriteString("\nFROM " + s.source + " AS " + sourceAlias + "\n")
	b.WriteString("ON CONFLICT (" + strings.Join(s.key, ", ") + ")")

	updates := s.nonKey()
	if !s.update || len(updates) == 0 {
		b.WriteString(" DO NOTHING;")
		return b.String()
	}

	sets := make([]string, len(updates))
	for i, v := range updates {
		sets[i] = v.column + " = EXCLUDED." + v.column
	}
	b.WriteString(" DO UPDATE SET\n")
	b.WriteString(list(sets, 1))
	b.WriteString(";")
	return b.String()
}

func (s *loadStatement) merge() string {
	var b strings.Builder

	b.WriteString("MERGE INTO " + s.target + " AS " + targetAlias + "\n")
	b.WriteString("USING " + s.source + " AS " + sourceAlias + "\n")

	conds := make([]string, len(s.key))
	for i, k := range s.key {
		conds[i] = qualify(targetAlias, k) + " = " + s.exprFor(k)
	}
	b.WriteString("ON " + strings.Join(conds, "\n   AND ") + "\n")

	if updates := s.nonKey(); s.update && len(updates) > 0 {
		sets := make([]string, len(updates))
		for i, v := range updates {
			sets[i] = v.column + " = " + v.expr
		}
		b.WriteString("WHEN MATCHED THEN\n")
		b.WriteString(indent + "UPDATE SET\n")
		b.WriteString(list(sets, 2))
		b.WriteString("\n")
	}

	cols := make([]string, len(s.values))
	exprs := make([]string, len(s.values))
	for i, v := range s.values {
		cols[i] = v.column
		exprs[i] = v.expr
	}
	b.WriteString("WHEN NOT MATCHED THEN\n")
	b.WriteString(indent + "INSERT (\n")
	b.WriteString(list(cols, 2))
	b.WriteString("\n" + indent + ")\n")
	b.WriteString(indent + "VALUES (\n")
	b.WriteString(list(exprs, 2))
	b.WriteString("\n" + indent + ");")
	return b.String()
}

// nonKey returns the assignments that are not part of the match key
func (s *loadStatement) nonKey() []assignment {
	var out []assignment
	for _, v := range s.values {
		isKey := false
		for _, k := range s.key {
			if v.column == k {
				isKey = true
				break
			}
		}
		if !isKey {
			out = append(out, v)
		}
	}
	return out
}

func (s *loadStatement) exprFor(column string) string {
	for _, v := range s.values {
		if v.column == column {
			return v.expr
		}
	}
	return qualify(sourceAlias, column)
}

// AnchorLoad builds the load of an anchor's identities. Existing identities
// are never touched.
func AnchorLoad(a *model.Anchor, mapping *model.StagingMapping, d dialect.Dialect) string {
	id := naming.IdentityColumn(a.Mnemonic)
	stmt := &loadStatement{
		target: naming.AnchorTable(a),
		source: anchorSource(a, mapping),
		key:    []string{id},
		values: append(
			[]assignment{{id, qualify(sourceAlias, id)}},
			metadataValues(metadataIDExpr(mapping, d), d)...,
		),
	}
	return stmt.SQL(d)
}

// AttributeLoad builds the load of one attribute. Static attributes upsert on
// the anchor key; historized attributes append rows keyed on (anchor,
// changed_at) and never update a recorded row.
func AttributeLoad(a *model.Anchor, attr *model.Attribute, mapping *model.StagingMapping, d dialect.Dialect) string {
	anchorFK := naming.IdentityColumn(a.Mnemonic)
	valueCol := naming.AttributeValueColumn(a, attr)
	if attr.Knotted() {
		valueCol = naming.IdentityColumn(attr.KnotRange)
	}

	values := []assignment{
		{anchorFK, qualify(sourceAlias, anchorFK)},
		{valueCol, qualify(sourceAlias, sourceColumn(attr, mapping, valueCol))},
	}
	key := []string{anchorFK}
	if attr.Historized() {
		values = append(values, bitemporalValues()...)
		key = append(key, ChangedAt)
	}

	stmt := &loadStatement{
		target: naming.AttributeTable(a, attr),
		source: anchorSource(a, mapping),
		key:    key,
		values: append(values, metadataValues(metadataIDExpr(mapping, d), d)...),
		update: !attr.Historized(),
	}
	return stmt.SQL(d)
}

// KnotLoad builds the insert-ignore load of a knot
func KnotLoad(k *model.Knot, d dialect.Dialect) string {
	id := naming.IdentityColumn(k.Mnemonic)
	value := naming.KnotValueColumn(k)
	table := naming.KnotTable(k)

	stmt := &loadStatement{
		target: table,
		source: naming.DefaultStagingTable(table),
		key:    []string{id},
		values: append(
			[]assignment{
				{id, qualify(sourceAlias, id)},
				{value, qualify(sourceAlias, value)},
			},
			metadataValues(d.QuoteLiteral(FallbackMetadataID), d)...,
		),
	}
	return stmt.SQL(d)
}

// TieLoad builds the load of a tie. A relationship either exists or not, so
// static ties insert-ignore on all roles; historized ties append on (roles,
// changed_at).
func TieLoad(t *model.Tie, d dialect.Dialect) string {
	table := naming.TieTable(t)

	var values []assignment
	var key []string
	for _, r := range naming.SortedRoles(t) {
		col := naming.RoleColumn(r)
		values = append(values, assignment{col, qualify(sourceAlias, col)})
		key = append(key, col)
	}
	if t.Historized() {
		values = append(values, bitemporalValues()...)
		key = append(key, ChangedAt)
	}

	stmt := &loadStatement{
		target: table,
		source: naming.DefaultStagingTable(table),
		key:    key,
		values: append(values, metadataValues(d.QuoteLiteral(FallbackMetadataID), d)...),
	}
	return stmt.SQL(d)
}

// anchorSource picks the staging table feeding an anchor and its attributes
func anchorSource(a *model.Anchor, mapping *model.StagingMapping) string {
	switch {
	case mapping != nil:
		return naming.StagingTable(mapping)
	case len(a.StagingMappings) > 0:
		return naming.StagingTable(a.StagingMappings[0])
	default:
		return naming.DefaultStagingTable(naming.AnchorTable(a))
	}
}

// sourceColumn resolves the staging column feeding an attribute: the
// mapping's column_mappings, then a mapping column with maps_to, then the
// attribute's staging_column, then the target column name itself.
func sourceColumn(attr *model.Attribute, mapping *model.StagingMapping, target string) string {
	if mapping != nil {
		if col, ok := mapping.ColumnFor(attr.Mnemonic); ok {
			return col
		}
	}
	if attr.StagingColumn != "" {
		return attr.StagingColumn
	}
	return target
}

// metadataIDExpr is the row keyset when a mapping is known and the fallback
// literal otherwise
func metadataIDExpr(mapping *model.StagingMapping, d dialect.Dialect) string {
	if mapping == nil {
		return d.QuoteLiteral(FallbackMetadataID)
	}
	return qualify(sourceAlias, KeysetID)
}

func metadataValues(metadataID string, d dialect.Dialect) []assignment {
	return []assignment{
		{MetadataRecordedAt, now},
		{MetadataRecordedBy, d.QuoteLiteral(RecordedBy)},
		{MetadataID, metadataID},
	}
}

func bitemporalValues() []assignment {
	return []assignment{
		{ChangedAt, qualify(sourceAlias, ChangedAt)},
		{RecordedAt, now},
	}
}

func qualify(alias, column string) string {
	return alias + "." + column
}

// list renders items one per line at the given indentation depth
func list(items []string, depth int) string {
	prefix := strings.Repeat(indent, depth)
	return prefix + strings.Join(items, ",\n"+prefix)
}

// Package generate compiles an Anchor Model into idempotent DDL and
// incremental DML for a target dialect.
//
// Every function in this package is pure: the same model and dialect always
// produce byte-identical output in the same order.
package generate

import (
	"fmt"

	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/model"
	"github.com/dataarchitect/architect/internal/naming"
)

// Result holds the DDL and DML generated for one model
type Result struct {
	Dialect dialect.Dialect
	DDL     *Output
	DML     *Output
}

// Compile generates DDL and DML for m
func Compile(m *model.Model, d dialect.Dialect) (*Result, error) {
	plan := NewPlan(m)

	ddl, err := plan.DDL(d)
	if err != nil {
		return nil, err
	}
	return &Result{Dialect: d, DDL: ddl, DML: plan.DML(d)}, nil
}

// GenerateDDL generates the table definitions of m
func GenerateDDL(m *model.Model, d dialect.Dialect) (*Output, error) {
	return NewPlan(m).DDL(d)
}

// GenerateDML generates the load statements of m
func GenerateDML(m *model.Model, d dialect.Dialect) *Output {
	return NewPlan(m).DML(d)
}

// DDL walks the plan and emits knots, anchors with their attributes, ties and
// finally staging tables. It fails only when a staging mapping has no natural
// key column.
func (p *Plan) DDL(d dialect.Dialect) (*Output, error) {
	out := NewOutput()
	add := func(t *Table, historized bool) {
		out.Add(&Artifact{
			Name:       naming.DDLFile(t.Name),
			Kind:       KindDDL,
			Entity:     t.Name,
			Historized: historized,
			SQL:        t.SQL(d),
		})
	}

	for _, k := range p.Knots {
		add(KnotTable(k, d), false)
	}
	for _, ap := range p.Anchors {
		add(AnchorTable(ap.Anchor, d), false)
		for _, attr := range ap.Attributes {
			add(AttributeTable(ap.Anchor, attr, p.identities, d), attr.Historized())
		}
	}
	for _, t := range p.Ties {
		add(TieTable(t, p.identities, d), t.Historized())
	}
	for _, sp := range p.Staging {
		t, err := StagingTable(sp.Table, sp.Mapping.Columns, sp.Anchor, sp.Mapping, d)
		if err != nil {
			return nil, fmt.Errorf("anchor %s: %w", sp.Anchor.Mnemonic, err)
		}
		add(t, false)
	}

	return out, nil
}

// DML walks the plan in the same order as DDL. An anchor with several
// sources gets one anchor load followed by its attribute loads per source,
// in conflict resolution order.
func (p *Plan) DML(d dialect.Dialect) *Output {
	out := NewOutput()

	for _, k := range p.Knots {
		table := naming.KnotTable(k)
		out.Add(&Artifact{
			Name:   naming.LoadFile(table),
			Kind:   KindDML,
			Entity: table,
			SQL:    KnotLoad(k, d),
		})
	}

	for _, ap := range p.Anchors {
		a := ap.Anchor
		anchorTable := naming.AnchorTable(a)
		for _, src := range ap.Sources {
			out.Add(&Artifact{
				Name:   src.LoadFile(anchorTable),
				Kind:   KindDML,
				Entity: anchorTable,
				Source: src.Suffix,
				SQL:    AnchorLoad(a, src.Mapping, d),
			})
			for _, attr := range ap.Attributes {
				table := naming.AttributeTable(a, attr)
				out.Add(&Artifact{
					Name:       src.LoadFile(table),
					Kind:       KindDML,
					Entity:     table,
					Source:     src.Suffix,
					Historized: attr.Historized(),
					SQL:        AttributeLoad(a, attr, src.Mapping, d),
				})
			}
		}
	}

	for _, t := range p.Ties {
		table := naming.TieTable(t)
		out.Add(&Artifact{
			Name:       naming.LoadFile(table),
			Kind:       KindDML,
			Entity:     table,
			Historized: t.Historized(),
			SQL:        TieLoad(t, d),
		})
	}

	return out
}

package generate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dataarchitect/architect/internal/model"
	"github.com/dataarchitect/architect/internal/naming"
)

// Plan is the deterministic walk order over a model. Both the DDL and the
// DML passes iterate a Plan rather than the model itself.
type Plan struct {
	Knots   []*model.Knot // by mnemonic
	Anchors []AnchorPlan  // by mnemonic
	Ties    []*model.Tie  // by table name
	Staging []StagingPlan // by table name

	identities map[string]string
}

// AnchorPlan is one anchor with its attributes and load sources in order
type AnchorPlan struct {
	Anchor     *model.Anchor
	Attributes []*model.Attribute // by mnemonic
	Sources    []Source           // conflict resolution order
}

// MultiSource reports whether the anchor is loaded from more than one mapping
func (p AnchorPlan) MultiSource() bool {
	return len(p.Sources) > 1
}

// Source is one load of an anchor. Mapping is nil for an anchor without
// staging mappings. Suffix is empty unless the anchor has several sources.
type Source struct {
	Mapping *model.StagingMapping
	Suffix  string
}

// LoadFile names the DML artifact of table loaded from this source
func (s Source) LoadFile(table string) string {
	if s.Suffix == "" {
		return naming.LoadFile(table)
	}
	return naming.SourceLoadFile(table, s.Suffix)
}

// StagingPlan is a staging table with the anchor and mapping that declared it
type StagingPlan struct {
	Table   string
	Anchor  *model.Anchor
	Mapping *model.StagingMapping
}

// NewPlan computes the walk order of m
func NewPlan(m *model.Model) *Plan {
	p := &Plan{identities: m.IdentityTypes()}

	p.Knots = append(p.Knots, m.Knots...)
	sort.SliceStable(p.Knots, func(i, j int) bool {
		return p.Knots[i].Mnemonic < p.Knots[j].Mnemonic
	})

	anchors := append([]*model.Anchor(nil), m.Anchors...)
	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].Mnemonic < anchors[j].Mnemonic
	})
	for _, a := range anchors {
		attrs := append([]*model.Attribute(nil), a.Attributes...)
		sort.SliceStable(attrs, func(i, j int) bool {
			return attrs[i].Mnemonic < attrs[j].Mnemonic
		})
		p.Anchors = append(p.Anchors, AnchorPlan{
			Anchor:     a,
			Attributes: attrs,
			Sources:    resolveSources(a.StagingMappings),
		})
	}

	p.Ties = append(p.Ties, m.Ties...)
	sort.SliceStable(p.Ties, func(i, j int) bool {
		return naming.TieTable(p.Ties[i]) < naming.TieTable(p.Ties[j])
	})

	// The first declaration of a staging table wins; anchors are visited in
	// mnemonic order so the winner does not depend on YAML order.
	seen := make(map[string]bool)
	for _, a := range anchors {
		for _, mapping := range a.StagingMappings {
			table := naming.StagingTable(mapping)
			if seen[table] {
				continue
			}
			seen[table] = true
			p.Staging = append(p.Staging, StagingPlan{Table: table, Anchor: a, Mapping: mapping})
		}
	}
	sort.SliceStable(p.Staging, func(i, j int) bool {
		return p.Staging[i].Table < p.Staging[j].Table
	})

	return p
}

// resolveSources orders the mappings of one anchor and assigns each a
// filename suffix. The suffix is the lowercased system; systems that collide
// after lowercasing are told apart by tenant, and exact duplicates by a
// running number.
func resolveSources(mappings []*model.StagingMapping) []Source {
	switch len(mappings) {
	case 0:
		return []Source{{}}
	case 1:
		return []Source{{Mapping: mappings[0]}}
	}

	ordered := ResolveStagingOrder(mappings)

	systems := make(map[string]int)
	for _, m := range ordered {
		systems[strings.ToLower(m.System)]++
	}

	used := make(map[string]int)
	sources := make([]Source, len(ordered))
	for i, m := range ordered {
		suffix := strings.ToLower(m.System)
		if systems[suffix] > 1 {
			suffix += "_" + strings.ToLower(m.Tenant)
		}
		used[suffix]++
		if n := used[suffix]; n > 1 {
			suffix += "_" + strconv.Itoa(n)
		}
		sources[i] = Source{Mapping: m, Suffix: suffix}
	}
	return sources
}

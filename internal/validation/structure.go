package validation

import (
	"fmt"

	"github.com/dataarchitect/architect/internal/model"
)

// structureChecker accumulates structural errors with their lines
type structureChecker struct {
	lines LineMap
	errs  []ValidationError
}

func (c *structureChecker) add(path, message string) {
	c.errs = append(c.errs, ValidationError{FieldPath: path, Message: message, Line: c.lines.Lookup(path)})
}

func (c *structureChecker) required(path, field, value string) {
	if value == "" {
		c.add(path+"."+field, fmt.Sprintf("field '%s' is required", field))
	}
}

// CheckStructure verifies required fields and per-element constraints that
// do not depend on other elements of the model.
func CheckStructure(m *model.Model, lines LineMap) []ValidationError {
	c := &structureChecker{lines: lines}

	for i, a := range m.Anchors {
		path := fmt.Sprintf("anchor[%d]", i)
		c.required(path, "mnemonic", a.Mnemonic)
		c.required(path, "descriptor", a.Descriptor)
		c.required(path, "identity", a.Identity)
		c.attributes(path, a.Attributes)
		c.stagingMappings(path, a)
	}

	for i, k := range m.Knots {
		path := fmt.Sprintf("knot[%d]", i)
		c.required(path, "mnemonic", k.Mnemonic)
		c.required(path, "descriptor", k.Descriptor)
		c.required(path, "identity", k.Identity)
		c.required(path, "dataRange", k.DataRange)
	}

	for i, t := range m.Ties {
		c.roles(fmt.Sprintf("tie[%d]", i), t.Roles)
	}

	for i, n := range m.Nexuses {
		path := fmt.Sprintf("nexus[%d]", i)
		c.required(path, "mnemonic", n.Mnemonic)
		c.required(path, "descriptor", n.Descriptor)
		c.required(path, "identity", n.Identity)
		c.attributes(path, n.Attributes)
		c.roles(path, n.Roles)
	}

	return c.errs
}

func (c *structureChecker) attributes(owner string, attrs []*model.Attribute) {
	for j, attr := range attrs {
		path := fmt.Sprintf("%s.attribute[%d]", owner, j)
		c.required(path, "mnemonic", attr.Mnemonic)
		c.required(path, "descriptor", attr.Descriptor)
		if attr.Knotted() == (attr.DataRange != "") {
			c.add(path, "Attribute must have exactly one of knotRange or dataRange")
		}
	}
}

func (c *structureChecker) roles(owner string, roles []*model.Role) {
	for j, r := range roles {
		path := fmt.Sprintf("%s.role[%d]", owner, j)
		c.required(path, "role", r.Role)
		c.required(path, "type", r.Type)
	}
}

func (c *structureChecker) stagingMappings(owner string, a *model.Anchor) {
	attrs := make(map[string]bool, len(a.Attributes))
	for _, attr := range a.Attributes {
		attrs[attr.Mnemonic] = true
	}

	for k, s := range a.StagingMappings {
		path := fmt.Sprintf("%s.staging_mappings[%d]", owner, k)
		c.required(path, "system", s.System)
		c.required(path, "tenant", s.Tenant)
		c.required(path, "table", s.Table)
		if len(s.NaturalKeyColumns) == 0 {
			c.add(path+".natural_key_columns", "staging mapping requires at least one natural key column")
		}

		for n, col := range s.Columns {
			colPath := fmt.Sprintf("%s.columns[%d]", path, n)
			c.required(colPath, "name", col.Name)
			c.required(colPath, "type", col.Type)
			if col.MapsTo != "" && !attrs[col.MapsTo] {
				c.add(colPath+".maps_to", fmt.Sprintf("Column '%s' maps to nonexistent attribute '%s'", col.Name, col.MapsTo))
			}
		}
		for _, mnemonic := range sortedKeys(s.ColumnMappings) {
			if !attrs[mnemonic] {
				c.add(path+".column_mappings."+mnemonic,
					fmt.Sprintf("column_mappings references nonexistent attribute '%s'", mnemonic))
			}
		}
	}
}

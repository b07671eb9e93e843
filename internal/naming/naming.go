// Package naming derives table, column and file names from model mnemonics.
package naming

import (
	"sort"
	"strings"

	"github.com/dataarchitect/architect/internal/model"
)

// AnchorTable returns "{mnemonic}_{descriptor}"
func AnchorTable(a *model.Anchor) string {
	return a.Mnemonic + "_" + a.Descriptor
}

// AttributeTable returns "{anchor.mnemonic}_{attr.mnemonic}_{anchor.descriptor}_{attr.descriptor}"
func AttributeTable(a *model.Anchor, attr *model.Attribute) string {
	return a.Mnemonic + "_" + attr.Mnemonic + "_" + a.Descriptor + "_" + attr.Descriptor
}

// KnotTable returns "{mnemonic}_{descriptor}"
func KnotTable(k *model.Knot) string {
	return k.Mnemonic + "_" + k.Descriptor
}

// TieTable joins the referenced mnemonics and then the role names of the
// tie's roles, both taken in SortedRoles order.
func TieTable(t *model.Tie) string {
	roles := SortedRoles(t)
	types := make([]string, len(roles))
	names := make([]string, len(roles))
	for i, r := range roles {
		types[i] = r.Type
		names[i] = r.Role
	}
	return strings.Join(types, "_") + "_" + strings.Join(names, "_")
}

// StagingTable returns the mapping's table name unchanged
func StagingTable(s *model.StagingMapping) string {
	return s.Table
}

// DefaultStagingTable is the staging table assumed for an entity without a
// staging mapping.
func DefaultStagingTable(table string) string {
	return "stg_" + table
}

// SortedRoles returns the tie roles ordered by (type, role). The tie itself is
// left untouched.
func SortedRoles(t *model.Tie) []*model.Role {
	roles := make([]*model.Role, len(t.Roles))
	copy(roles, t.Roles)
	sort.SliceStable(roles, func(i, j int) bool {
		if roles[i].Type != roles[j].Type {
			return roles[i].Type < roles[j].Type
		}
		return roles[i].Role < roles[j].Role
	})
	return roles
}

// IdentityColumn returns "{mnemonic}_ID"
func IdentityColumn(mnemonic string) string {
	return mnemonic + "_ID"
}

// AttributeValueColumn returns the value column of a data-ranged attribute.
// It shares the attribute table's name.
func AttributeValueColumn(a *model.Anchor, attr *model.Attribute) string {
	return AttributeTable(a, attr)
}

// KnotValueColumn returns "{mnemonic}_{descriptor}"
func KnotValueColumn(k *model.Knot) string {
	return k.Mnemonic + "_" + k.Descriptor
}

// RoleColumn returns "{type}_ID_{role}"
func RoleColumn(r *model.Role) string {
	return r.Type + "_ID_" + r.Role
}

// DDLFile returns "{table}.sql"
func DDLFile(table string) string {
	return table + ".sql"
}

// LoadFile returns "{table}_load.sql"
func LoadFile(table string) string {
	return table + "_load.sql"
}

// SourceLoadFile returns "{table}_load_{system}.sql" with the system lowercased
func SourceLoadFile(table, system string) string {
	return table + "_load_" + strings.ToLower(system) + ".sql"
}

package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dataarchitect/architect/internal/model"
)

// entityRef names an anchor, knot or nexus in error messages
type entityRef struct {
	kind       string
	descriptor string
}

// CheckReferentialIntegrity runs the checks that span several elements:
// global mnemonic uniqueness, attribute mnemonic uniqueness per owner,
// knotRange and role type references, tie and nexus role counts and
// duplicate tie compositions.
func CheckReferentialIntegrity(m *model.Model, lines LineMap) []ValidationError {
	var errs []ValidationError

	anchors := make(map[string]bool, len(m.Anchors))
	for _, a := range m.Anchors {
		anchors[a.Mnemonic] = true
	}
	knots := make(map[string]bool, len(m.Knots))
	for _, k := range m.Knots {
		knots[k.Mnemonic] = true
	}
	nexuses := make(map[string]bool, len(m.Nexuses))
	for _, n := range m.Nexuses {
		nexuses[n.Mnemonic] = true
	}

	errs = append(errs, duplicateMnemonics(m)...)

	for i, a := range m.Anchors {
		errs = append(errs, checkAttributes(fmt.Sprintf("anchor[%d]", i), "anchor", a.Descriptor, a.Attributes, knots, lines)...)
	}

	for i, n := range m.Nexuses {
		owner := fmt.Sprintf("nexus[%d]", i)
		errs = append(errs, checkAttributes(owner, "nexus", n.Descriptor, n.Attributes, knots, lines)...)

		nonKnot := 0
		for _, r := range n.Roles {
			if !knots[r.Type] {
				nonKnot++
			}
		}
		if nonKnot == 0 {
			errs = append(errs, ValidationError{
				FieldPath: owner + ".roles",
				Message:   fmt.Sprintf("Nexus '%s' must have at least one non-knot role", n.Descriptor),
			})
		}
	}

	var compositions []string
	for i, t := range m.Ties {
		owner := fmt.Sprintf("tie[%d]", i)

		anchorRoles := 0
		for _, r := range t.Roles {
			if anchors[r.Type] {
				anchorRoles++
			}
		}
		if anchorRoles < 2 {
			errs = append(errs, ValidationError{
				FieldPath: owner + ".roles",
				Message:   fmt.Sprintf("Tie must have at least 2 anchor roles, found %d", anchorRoles),
			})
		}

		for j, r := range t.Roles {
			if anchors[r.Type] || knots[r.Type] || nexuses[r.Type] {
				continue
			}
			path := fmt.Sprintf("%s.role[%d].type", owner, j)
			errs = append(errs, ValidationError{
				FieldPath: path,
				Message:   fmt.Sprintf("Tie role '%s' references nonexistent type '%s'", r.Role, r.Type),
				Line:      lines[path],
			})
		}

		types := make([]string, len(t.Roles))
		for j, r := range t.Roles {
			types[j] = r.Type
		}
		sort.Strings(types)
		composition := strings.Join(types, ", ")
		for _, seen := range compositions {
			if seen == composition {
				errs = append(errs, ValidationError{
					FieldPath: owner,
					Message:   "Duplicate tie composition: " + composition,
				})
				break
			}
		}
		compositions = append(compositions, composition)
	}

	for i, n := range m.Nexuses {
		for j, r := range n.Roles {
			if anchors[r.Type] || knots[r.Type] {
				continue
			}
			path := fmt.Sprintf("nexus[%d].role[%d].type", i, j)
			errs = append(errs, ValidationError{
				FieldPath: path,
				Message:   fmt.Sprintf("Nexus role '%s' references invalid type '%s'", r.Role, r.Type),
				Line:      lines[path],
			})
		}
	}

	return errs
}

// duplicateMnemonics reports mnemonics shared by anchors, knots and nexuses.
// Entities are listed anchors first, then knots, then nexuses, each sorted by
// descriptor.
func duplicateMnemonics(m *model.Model) []ValidationError {
	var order []string
	owners := make(map[string][]entityRef)
	add := func(mnemonic string, ref entityRef) {
		if _, ok := owners[mnemonic]; !ok {
			order = append(order, mnemonic)
		}
		owners[mnemonic] = append(owners[mnemonic], ref)
	}

	anchors := append([]*model.Anchor(nil), m.Anchors...)
	sort.SliceStable(anchors, func(i, j int) bool { return anchors[i].Descriptor < anchors[j].Descriptor })
	for _, a := range anchors {
		add(a.Mnemonic, entityRef{"Anchor", a.Descriptor})
	}
	knots := append([]*model.Knot(nil), m.Knots...)
	sort.SliceStable(knots, func(i, j int) bool { return knots[i].Descriptor < knots[j].Descriptor })
	for _, k := range knots {
		add(k.Mnemonic, entityRef{"Knot", k.Descriptor})
	}
	nexuses := append([]*model.Nexus(nil), m.Nexuses...)
	sort.SliceStable(nexuses, func(i, j int) bool { return nexuses[i].Descriptor < nexuses[j].Descriptor })
	for _, n := range nexuses {
		add(n.Mnemonic, entityRef{"Nexus", n.Descriptor})
	}

	var errs []ValidationError
	for _, mnemonic := range order {
		refs := owners[mnemonic]
		if len(refs) < 2 {
			continue
		}
		names := make([]string, len(refs))
		for i, r := range refs {
			names[i] = fmt.Sprintf("%s '%s'", r.kind, r.descriptor)
		}
		errs = append(errs, ValidationError{
			FieldPath: "mnemonic." + mnemonic,
			Message:   fmt.Sprintf("Duplicate mnemonic '%s' found in %s", mnemonic, strings.Join(names, " and ")),
		})
	}
	return errs
}

// checkAttributes validates the attributes of one anchor or nexus
func checkAttributes(owner, kind, descriptor string, attrs []*model.Attribute, knots map[string]bool, lines LineMap) []ValidationError {
	var errs []ValidationError
	var order []string
	descriptors := make(map[string][]string)

	for j, attr := range attrs {
		if _, ok := descriptors[attr.Mnemonic]; !ok {
			order = append(order, attr.Mnemonic)
		}
		descriptors[attr.Mnemonic] = append(descriptors[attr.Mnemonic], attr.Descriptor)

		if attr.Knotted() && !knots[attr.KnotRange] {
			path := fmt.Sprintf("%s.attribute[%d].knotRange", owner, j)
			errs = append(errs, ValidationError{
				FieldPath: path,
				Message:   fmt.Sprintf("Attribute '%s' references nonexistent knot '%s'", attr.Descriptor, attr.KnotRange),
				Line:      lines[path],
			})
		}
	}

	for _, mnemonic := range order {
		if ds := descriptors[mnemonic]; len(ds) > 1 {
			errs = append(errs, ValidationError{
				FieldPath: owner + ".attributes",
				Message: fmt.Sprintf("Duplicate attribute mnemonic '%s' in %s '%s': %s",
					mnemonic, kind, descriptor, strings.Join(ds, ", ")),
			})
		}
	}
	return errs
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

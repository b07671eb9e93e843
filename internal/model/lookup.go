package model

// FindAnchor returns the anchor with the given mnemonic, or nil
func (m *Model) FindAnchor(mnemonic string) *Anchor {
	for _, a := range m.Anchors {
		if a.Mnemonic == mnemonic {
			return a
		}
	}
	return nil
}

// FindKnot returns the knot with the given mnemonic, or nil
func (m *Model) FindKnot(mnemonic string) *Knot {
	for _, k := range m.Knots {
		if k.Mnemonic == mnemonic {
			return k
		}
	}
	return nil
}

// IdentityTypes maps every anchor, knot and nexus mnemonic to its identity
// type token. Foreign-key columns take the type of the identity they point at.
func (m *Model) IdentityTypes() map[string]string {
	types := make(map[string]string, len(m.Anchors)+len(m.Knots)+len(m.Nexuses))
	for _, a := range m.Anchors {
		types[a.Mnemonic] = a.Identity
	}
	for _, k := range m.Knots {
		types[k.Mnemonic] = k.Identity
	}
	for _, n := range m.Nexuses {
		types[n.Mnemonic] = n.Identity
	}
	return types
}

// HasPriority reports whether the mapping declares an explicit priority
func (s *StagingMapping) HasPriority() bool {
	return s.Priority != nil
}

// ColumnFor returns the staging column that feeds the given attribute.
// An explicit column_mappings entry wins over a column whose maps_to names
// the attribute. The second return value is false when neither exists.
func (s *StagingMapping) ColumnFor(attributeMnemonic string) (string, bool) {
	if col, ok := s.ColumnMappings[attributeMnemonic]; ok && col != "" {
		return col, true
	}
	for _, c := range s.Columns {
		if c.MapsTo == attributeMnemonic {
			return c.Name, true
		}
	}
	return "", false
}

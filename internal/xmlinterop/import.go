// Package xmlinterop converts between YAML specs and Anchor Modeler XML.
package xmlinterop

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/dataarchitect/architect/internal/model"
)

// Import reads an Anchor Modeler XML document. The schema namespace is
// optional.
func Import(r io.Reader) (*model.Model, error) {
	var doc schemaElem
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid XML: %w", err)
	}
	return doc.toModel(), nil
}

// ImportFile reads the Anchor Modeler XML file at path
func ImportFile(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer f.Close()

	return Import(f)
}

func (s *schemaElem) toModel() *model.Model {
	m := &model.Model{
		Metadata:    s.Metadata.toModel(),
		Description: textOf(s.Description),
	}
	for _, k := range s.Knots {
		m.Knots = append(m.Knots, &model.Knot{
			Mnemonic:    k.Mnemonic,
			Descriptor:  k.Descriptor,
			Identity:    k.Identity,
			DataRange:   k.DataRange,
			Metadata:    k.Metadata.toModel(),
			Description: textOf(k.Description),
		})
	}
	for _, a := range s.Anchors {
		m.Anchors = append(m.Anchors, &model.Anchor{
			Mnemonic:    a.Mnemonic,
			Descriptor:  a.Descriptor,
			Identity:    a.Identity,
			Attributes:  attributesToModel(a.Attributes),
			Identifiers: identifiersToModel(a.Identifiers),
			Metadata:    a.Metadata.toModel(),
			Description: textOf(a.Description),
		})
	}
	for _, n := range s.Nexuses {
		m.Nexuses = append(m.Nexuses, &model.Nexus{
			Mnemonic:    n.Mnemonic,
			Descriptor:  n.Descriptor,
			Identity:    n.Identity,
			Attributes:  attributesToModel(n.Attributes),
			Roles:       rolesToModel(n.Roles),
			Identifiers: identifiersToModel(n.Identifiers),
			Metadata:    n.Metadata.toModel(),
			Description: textOf(n.Description),
		})
	}
	for _, t := range s.Ties {
		m.Ties = append(m.Ties, &model.Tie{
			Roles:       rolesToModel(t.Roles),
			TimeRange:   t.TimeRange,
			Metadata:    t.Metadata.toModel(),
			Description: textOf(t.Description),
		})
	}
	return m
}

func attributesToModel(attrs []attributeElem) []*model.Attribute {
	var out []*model.Attribute
	for _, a := range attrs {
		out = append(out, &model.Attribute{
			Mnemonic:    a.Mnemonic,
			Descriptor:  a.Descriptor,
			KnotRange:   a.KnotRange,
			DataRange:   a.DataRange,
			TimeRange:   a.TimeRange,
			Keys:        keysToModel(a.Keys),
			Metadata:    a.Metadata.toModel(),
			Description: textOf(a.Description),
		})
	}
	return out
}

func rolesToModel(roles []roleElem) []*model.Role {
	var out []*model.Role
	for _, r := range roles {
		out = append(out, &model.Role{
			Role:        r.Role,
			Type:        r.Type,
			Identifier:  r.Identifier,
			Coloring:    r.Coloring,
			Keys:        keysToModel(r.Keys),
			Metadata:    r.Metadata.toModel(),
			Description: textOf(r.Description),
		})
	}
	return out
}

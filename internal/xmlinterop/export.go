package xmlinterop

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/dataarchitect/architect/internal/model"
)

// ErrYAMLExtensions is returned by Export when the model uses YAML-only
// fields that Anchor Modeler XML cannot represent
var ErrYAMLExtensions = errors.New("YAML-only extensions will be dropped during export")

// Extensions lists the YAML-only fields present in m: staging mappings on
// anchors and staging columns on anchor or nexus attributes.
func Extensions(m *model.Model) []string {
	var found []string
	for _, a := range m.Anchors {
		if n := len(a.StagingMappings); n > 0 {
			plural := ""
			if n > 1 {
				plural = "s"
			}
			found = append(found, fmt.Sprintf("Anchor '%s' has %d staging mapping%s", a.Mnemonic, n, plural))
		}
		found = append(found, stagingColumns(a.Mnemonic, a.Attributes)...)
	}
	for _, n := range m.Nexuses {
		found = append(found, stagingColumns(n.Mnemonic, n.Attributes)...)
	}
	return found
}

func stagingColumns(owner string, attrs []*model.Attribute) []string {
	var found []string
	for _, attr := range attrs {
		if attr.StagingColumn != "" {
			found = append(found, fmt.Sprintf("Attribute '%s.%s' has staging_column '%s'",
				owner, attr.Mnemonic, attr.StagingColumn))
		}
	}
	return found
}

// Export renders m as namespaced Anchor Modeler XML. Unless force is set it
// refuses models that use YAML-only extensions; with force they are dropped.
func Export(m *model.Model, force bool) ([]byte, error) {
	if ext := Extensions(m); len(ext) > 0 && !force {
		return nil, fmt.Errorf("%w:\n  - %s\nUse --force to proceed", ErrYAMLExtensions, strings.Join(ext, "\n  - "))
	}

	doc := fromModel(m)
	doc.Xmlns = Namespace

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode XML: %w", err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func fromModel(m *model.Model) *schemaElem {
	doc := &schemaElem{
		Metadata:    newMetadataElem(m.Metadata),
		Description: textPtr(m.Description),
	}
	for _, k := range m.Knots {
		doc.Knots = append(doc.Knots, knotElem{
			Mnemonic:    k.Mnemonic,
			Descriptor:  k.Descriptor,
			Identity:    k.Identity,
			DataRange:   k.DataRange,
			Metadata:    newMetadataElem(k.Metadata),
			Description: textPtr(k.Description),
		})
	}
	for _, a := range m.Anchors {
		doc.Anchors = append(doc.Anchors, anchorElem{
			Mnemonic:    a.Mnemonic,
			Descriptor:  a.Descriptor,
			Identity:    a.Identity,
			Attributes:  attributesFromModel(a.Attributes),
			Identifiers: identifiersFromModel(a.Identifiers),
			Metadata:    newMetadataElem(a.Metadata),
			Description: textPtr(a.Description),
		})
	}
	for _, n := range m.Nexuses {
		doc.Nexuses = append(doc.Nexuses, nexusElem{
			Mnemonic:    n.Mnemonic,
			Descriptor:  n.Descriptor,
			Identity:    n.Identity,
			Attributes:  attributesFromModel(n.Attributes),
			Roles:       rolesFromModel(n.Roles),
			Identifiers: identifiersFromModel(n.Identifiers),
			Metadata:    newMetadataElem(n.Metadata),
			Description: textPtr(n.Description),
		})
	}
	for _, t := range m.Ties {
		doc.Ties = append(doc.Ties, tieElem{
			TimeRange:   t.TimeRange,
			Roles:       rolesFromModel(t.Roles),
			Metadata:    newMetadataElem(t.Metadata),
			Description: textPtr(t.Description),
		})
	}
	return doc
}

func attributesFromModel(attrs []*model.Attribute) []attributeElem {
	out := make([]attributeElem, len(attrs))
	for i, a := range attrs {
		out[i] = attributeElem{
			Mnemonic:    a.Mnemonic,
			Descriptor:  a.Descriptor,
			KnotRange:   a.KnotRange,
			DataRange:   a.DataRange,
			TimeRange:   a.TimeRange,
			Keys:        keysFromModel(a.Keys),
			Metadata:    newMetadataElem(a.Metadata),
			Description: textPtr(a.Description),
		}
	}
	return out
}

func rolesFromModel(roles []*model.Role) []roleElem {
	out := make([]roleElem, len(roles))
	for i, r := range roles {
		out[i] = roleElem{
			Role:        r.Role,
			Type:        r.Type,
			Identifier:  r.Identifier,
			Coloring:    r.Coloring,
			Keys:        keysFromModel(r.Keys),
			Metadata:    newMetadataElem(r.Metadata),
			Description: textPtr(r.Description),
		}
	}
	return out
}

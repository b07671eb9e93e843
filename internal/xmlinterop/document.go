package xmlinterop

import (
	"encoding/xml"
	"sort"

	"github.com/dataarchitect/architect/internal/model"
)

// Namespace is the Anchor Modeler schema namespace
const Namespace = "http://anchormodeling.com/schema"

// The element types below mirror anchor.xsd. Tags carry no namespace so that
// both namespaced and plain documents decode; the schema element adds the
// namespace on export.

type schemaElem struct {
	XMLName     xml.Name      `xml:"schema"`
	Xmlns       string        `xml:"xmlns,attr,omitempty"`
	Knots       []knotElem    `xml:"knot"`
	Anchors     []anchorElem  `xml:"anchor"`
	Nexuses     []nexusElem   `xml:"nexus"`
	Ties        []tieElem     `xml:"tie"`
	Metadata    *metadataElem `xml:"metadata"`
	Description *string       `xml:"description"`
}

type knotElem struct {
	Mnemonic    string        `xml:"mnemonic,attr"`
	Descriptor  string        `xml:"descriptor,attr"`
	Identity    string        `xml:"identity,attr"`
	DataRange   string        `xml:"dataRange,attr"`
	Metadata    *metadataElem `xml:"metadata"`
	Description *string       `xml:"description"`
}

type anchorElem struct {
	Mnemonic    string           `xml:"mnemonic,attr"`
	Descriptor  string           `xml:"descriptor,attr"`
	Identity    string           `xml:"identity,attr"`
	Attributes  []attributeElem  `xml:"attribute"`
	Identifiers []identifierElem `xml:"identifier"`
	Metadata    *metadataElem    `xml:"metadata"`
	Description *string          `xml:"description"`
}

type attributeElem struct {
	Mnemonic    string        `xml:"mnemonic,attr"`
	Descriptor  string        `xml:"descriptor,attr"`
	KnotRange   string        `xml:"knotRange,attr,omitempty"`
	DataRange   string        `xml:"dataRange,attr,omitempty"`
	TimeRange   string        `xml:"timeRange,attr,omitempty"`
	Keys        []keyElem     `xml:"key"`
	Metadata    *metadataElem `xml:"metadata"`
	Description *string       `xml:"description"`
}

type tieElem struct {
	TimeRange   string        `xml:"timeRange,attr,omitempty"`
	Roles       []roleElem    `xml:"role"`
	Metadata    *metadataElem `xml:"metadata"`
	Description *string       `xml:"description"`
}

type roleElem struct {
	Role        string        `xml:"role,attr"`
	Type        string        `xml:"type,attr"`
	Identifier  bool          `xml:"identifier,attr"`
	Coloring    string        `xml:"coloring,attr,omitempty"`
	Keys        []keyElem     `xml:"key"`
	Metadata    *metadataElem `xml:"metadata"`
	Description *string       `xml:"description"`
}

type nexusElem struct {
	Mnemonic    string           `xml:"mnemonic,attr"`
	Descriptor  string           `xml:"descriptor,attr"`
	Identity    string           `xml:"identity,attr"`
	Attributes  []attributeElem  `xml:"attribute"`
	Roles       []roleElem       `xml:"role"`
	Identifiers []identifierElem `xml:"identifier"`
	Metadata    *metadataElem    `xml:"metadata"`
	Description *string          `xml:"description"`
}

type keyElem struct {
	Stop   string `xml:"stop,attr"`
	Route  string `xml:"route,attr"`
	Of     string `xml:"of,attr"`
	Branch string `xml:"branch,attr"`
}

type identifierElem struct {
	Route string `xml:"route,attr"`
}

// metadataElem carries arbitrary attributes (xs:anyAttribute)
type metadataElem struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func (e *metadataElem) toModel() map[string]string {
	if e == nil || len(e.Attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Attrs))
	for _, a := range e.Attrs {
		out[a.Name.Local] = a.Value
	}
	return out
}

// newMetadataElem renders metadata with attributes sorted by name
func newMetadataElem(m map[string]string) *metadataElem {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e := &metadataElem{Attrs: make([]xml.Attr, len(keys))}
	for i, k := range keys {
		e.Attrs[i] = xml.Attr{Name: xml.Name{Local: k}, Value: m[k]}
	}
	return e
}

func textOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func textPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

const defaultBranch = "1"

func keysToModel(keys []keyElem) []model.Key {
	if len(keys) == 0 {
		return nil
	}
	out := make([]model.Key, len(keys))
	for i, k := range keys {
		branch := k.Branch
		if branch == "" {
			branch = defaultBranch
		}
		out[i] = model.Key{Stop: k.Stop, Route: k.Route, Of: k.Of, Branch: branch}
	}
	return out
}

func keysFromModel(keys []model.Key) []keyElem {
	out := make([]keyElem, len(keys))
	for i, k := range keys {
		branch := k.Branch
		if branch == "" {
			branch = defaultBranch
		}
		out[i] = keyElem{Stop: k.Stop, Route: k.Route, Of: k.Of, Branch: branch}
	}
	return out
}

func identifiersToModel(ids []identifierElem) []model.Identifier {
	if len(ids) == 0 {
		return nil
	}
	out := make([]model.Identifier, len(ids))
	for i, id := range ids {
		out[i] = model.Identifier{Route: id.Route}
	}
	return out
}

func identifiersFromModel(ids []model.Identifier) []identifierElem {
	out := make([]identifierElem, len(ids))
	for i, id := range ids {
		out[i] = identifierElem{Route: id.Route}
	}
	return out
}

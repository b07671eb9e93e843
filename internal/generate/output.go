package generate

// Kind tells DDL and DML artifacts apart
type Kind string

const (
	KindDDL Kind = "ddl"
	KindDML Kind = "dml"
)

// Artifact is one generated SQL file
type Artifact struct {
	Name       string `json:"name"`             // file name, e.g. AC_Actor_load.sql
	Kind       Kind   `json:"kind"`             // ddl or dml
	Entity     string `json:"entity"`           // target table
	Source     string `json:"source,omitempty"` // multi-source suffix
	Historized bool   `json:"historized"`
	SQL        string `json:"-"`
}

// Asset is the name of the artifact as a pipeline asset: the target table,
// qualified by the source suffix for multi-source loads.
func (a *Artifact) Asset() string {
	if a.Source == "" {
		return a.Entity
	}
	return a.Entity + "_" + a.Source
}

// Output is an ordered collection of artifacts. Iteration order is the order
// in which artifacts were generated.
type Output struct {
	artifacts []*Artifact
	index     map[string]int
}

// NewOutput creates an empty Output
func NewOutput() *Output {
	return &Output{index: make(map[string]int)}
}

// Add appends an artifact. Adding a name twice replaces the earlier artifact
// in place, keeping its position.
func (o *Output) Add(a *Artifact) {
	if i, ok := o.index[a.Name]; ok {
		o.artifacts[i] = a
		return
	}
	o.index[a.Name] = len(o.artifacts)
	o.artifacts = append(o.artifacts, a)
}

// Get returns the artifact with the given file name
func (o *Output) Get(name string) (*Artifact, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.artifacts[i], true
}

// SQL returns the SQL text of the named artifact, or "" if absent
func (o *Output) SQL(name string) string {
	if a, ok := o.Get(name); ok {
		return a.SQL
	}
	return ""
}

// Names returns artifact file names in generation order
func (o *Output) Names() []string {
	names := make([]string, len(o.artifacts))
	for i, a := range o.artifacts {
		names[i] = a.Name
	}
	return names
}

// Artifacts returns the artifacts in generation order
func (o *Output) Artifacts() []*Artifact {
	out := make([]*Artifact, len(o.artifacts))
	copy(out, o.artifacts)
	return out
}

// Len returns the number of artifacts
func (o *Output) Len() int {
	return len(o.artifacts)
}

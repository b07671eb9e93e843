package fingerprint

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/dataarchitect/architect/internal/generate"
	"github.com/dataarchitect/architect/internal/model"
)

// Fingerprint identifies the state of a model or of generated output
type Fingerprint struct {
	Hash string `json:"hash"` // SHA256 of the JSON encoding
}

// ComputeModel fingerprints a model. Two models with equal fingerprints
// compile to identical output for every dialect.
func ComputeModel(m *model.Model) (*Fingerprint, error) {
	hash, err := hashObject(m)
	if err != nil {
		return nil, fmt.Errorf("failed to compute model hash: %w", err)
	}
	return &Fingerprint{Hash: hash}, nil
}

// artifactContent is what an artifact contributes to an output fingerprint
type artifactContent struct {
	Name string `json:"name"`
	SQL  string `json:"sql"`
}

// ComputeOutput fingerprints generated artifacts, including their SQL text
// and order.
func ComputeOutput(outputs ...*generate.Output) (*Fingerprint, error) {
	var content []artifactContent
	for _, out := range outputs {
		for _, a := range out.Artifacts() {
			content = append(content, artifactContent{Name: a.Name, SQL: a.SQL})
		}
	}
	hash, err := hashObject(content)
	if err != nil {
		return nil, fmt.Errorf("failed to compute output hash: %w", err)
	}
	return &Fingerprint{Hash: hash}, nil
}

// hashObject computes a SHA256 hash of any object
func hashObject(obj interface{}) (string, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// Short returns the first 8 characters of the hash
func (f *Fingerprint) Short() string {
	if len(f.Hash) >= 8 {
		return f.Hash[:8]
	}
	return f.Hash
}

// String returns a human-readable representation of the fingerprint
func (f *Fingerprint) String() string {
	return fmt.Sprintf("Model fingerprint: %s", f.Short())
}

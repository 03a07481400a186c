package model

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/bimobj/pkg/encoding"
)

// ErrInvalidModel is returned for documents that decode but are unusable.
var ErrInvalidModel = errors.New("invalid model document")

// Model is a building model document: a schema tag and its elements in
// document order.
type Model struct {
	Schema   string     `yaml:"schema"`
	Elements []*Element `yaml:"elements"`
}

// Parse decodes a model document.
func Parse(data []byte) (*Model, error) {
	m := &Model{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}

	for i, el := range m.Elements {
		if el == nil {
			return nil, fmt.Errorf("%w: element %d is empty", ErrInvalidModel, i)
		}
		if el.Type == "" {
			return nil, fmt.Errorf("%w: element %d has no type", ErrInvalidModel, i)
		}
		if el.Type == TypeAnnotation {
			el.Capabilities |= CapAnnotation
		}
	}

	return m, nil
}

// Load reads and decodes a model document from disk.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Marshal encodes the model as a YAML document.
func (m *Model) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Save writes the model document to path.
func (m *Model) Save(path string) error {
	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := m.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// All yields the elements in document order.
func (m *Model) All() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, el := range m.Elements {
			if !yield(el) {
				return
			}
		}
	}
}

// DecodeNames replaces STEP escape sequences in element names with UTF-8.
func (m *Model) DecodeNames() {
	for _, el := range m.Elements {
		el.Name = encoding.DecodeStep(el.Name)
	}
}

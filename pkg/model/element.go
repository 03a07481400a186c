// Package model provides the building model types read by the OBJ exporter.
package model

import (
	"encoding/base64"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// IFC type tags referenced by the exporter.
const (
	TypeOpeningElement = "IfcOpeningElement"
	TypeBuildingStorey = "IfcBuildingStorey"
	TypeBuilding       = "IfcBuilding"
	TypeAnnotation     = "IfcAnnotation"
)

// Capability is a set of traits carried by an element.
type Capability uint8

const (
	// CapAnnotation marks annotation elements (IfcAnnotation and subtypes).
	CapAnnotation Capability = 1 << iota
)

var capabilityNames = map[string]Capability{
	"annotation": CapAnnotation,
}

// Strings returns the capability names in a stable order.
func (c Capability) Strings() []string {
	var names []string
	if c&CapAnnotation != 0 {
		names = append(names, "annotation")
	}
	return names
}

// MarshalYAML encodes the set as a list of names.
func (c Capability) MarshalYAML() (interface{}, error) {
	return c.Strings(), nil
}

// UnmarshalYAML decodes a list of capability names.
func (c *Capability) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	var set Capability
	for _, name := range names {
		bit, ok := capabilityNames[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown capability %q", name)
		}
		set |= bit
	}
	*c = set
	return nil
}

// Buffer is a raw little-endian geometry buffer. In model documents it is
// written as a base64 scalar. A nil Buffer means the buffer is absent.
type Buffer []byte

// MarshalYAML encodes the buffer as a !!binary scalar.
func (b Buffer) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!binary",
		Value: base64.StdEncoding.EncodeToString(b),
	}, nil
}

// UnmarshalYAML decodes a base64 scalar, ignoring embedded whitespace.
func (b *Buffer) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: buffer must be a base64 scalar", value.Line)
	}
	data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(value.Value), ""))
	if err != nil {
		return fmt.Errorf("line %d: decoding buffer: %w", value.Line, err)
	}
	*b = Buffer(data)
	return nil
}

// GeometryData holds the packed buffers of one element.
type GeometryData struct {
	Vertices Buffer `yaml:"vertices,omitempty"` // float64 triples
	Normals  Buffer `yaml:"normals,omitempty"`  // float32 triples
	Indices  Buffer `yaml:"indices,omitempty"`  // uint32 triples
}

// GeometryInfo is an element's geometry reference.
type GeometryInfo struct {
	Transformation Buffer        `yaml:"transformation,omitempty"` // 16 float64, column-major
	Data           *GeometryData `yaml:"data,omitempty"`
}

// Element is a typed node of the building model.
type Element struct {
	Type         string        `yaml:"type"`
	GlobalID     string        `yaml:"global_id"`
	Name         string        `yaml:"name"`
	Capabilities Capability    `yaml:"capabilities,omitempty"`
	Geometry     *GeometryInfo `yaml:"geometry,omitempty"`
}

// Has reports whether the element carries all capabilities in c.
func (e *Element) Has(c Capability) bool {
	return e.Capabilities&c == c
}

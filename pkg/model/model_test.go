package model

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/bimobj/pkg/geometry"
)

func b64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func TestParse(t *testing.T) {
	doc := fmt.Sprintf(`
schema: IFC4
elements:
  - type: IfcWall
    global_id: 2O2Fr$t4X7Zf8NOew3FLOH
    name: Basic Wall
    geometry:
      transformation: !!binary %s
      data:
        vertices: %s
        normals: %s
        indices: '%s'
  - type: IfcAnnotation
    global_id: '0000000000000000000000'
    name: Grid Label
  - type: IfcSpace
    name: Room
    capabilities: [annotation]
    geometry:
      data: {}
`,
		b64(geometry.Translate(1, 2, 3).Encode()),
		b64(geometry.EncodeFloat64s(0, 0, 0)),
		b64(geometry.EncodeFloat32s(0, 0, 1)),
		b64(geometry.EncodeUint32s()),
	)

	m, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if m.Schema != "IFC4" {
		t.Errorf("expected schema IFC4, got %s", m.Schema)
	}
	if len(m.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(m.Elements))
	}

	wall := m.Elements[0]
	if wall.Type != "IfcWall" || wall.Name != "Basic Wall" || wall.GlobalID != "2O2Fr$t4X7Zf8NOew3FLOH" {
		t.Errorf("unexpected wall attributes: %+v", wall)
	}
	if wall.Geometry == nil || wall.Geometry.Data == nil {
		t.Fatal("wall geometry missing")
	}
	if len(wall.Geometry.Transformation) != geometry.TransformSize {
		t.Errorf("expected %d transformation bytes, got %d", geometry.TransformSize, len(wall.Geometry.Transformation))
	}
	if len(wall.Geometry.Data.Vertices) != 24 {
		t.Errorf("expected 24 vertex bytes, got %d", len(wall.Geometry.Data.Vertices))
	}
	if len(wall.Geometry.Data.Normals) != 12 {
		t.Errorf("expected 12 normal bytes, got %d", len(wall.Geometry.Data.Normals))
	}
	if wall.Geometry.Data.Indices == nil {
		t.Error("expected empty but present index buffer")
	}
	if wall.Has(CapAnnotation) {
		t.Error("wall should not be an annotation")
	}

	if !m.Elements[1].Has(CapAnnotation) {
		t.Error("IfcAnnotation should carry CapAnnotation")
	}
	if m.Elements[1].Geometry != nil {
		t.Error("annotation should have no geometry")
	}

	space := m.Elements[2]
	if !space.Has(CapAnnotation) {
		t.Error("expected capability list to set CapAnnotation")
	}
	if space.Geometry == nil || space.Geometry.Data == nil {
		t.Fatal("space geometry data missing")
	}
	if space.Geometry.Data.Vertices != nil {
		t.Error("expected absent vertex buffer")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"missing type", "elements:\n  - name: x\n", ErrInvalidModel},
		{"null element", "elements:\n  - ~\n", ErrInvalidModel},
		{"bad base64", "elements:\n  - type: IfcWall\n    geometry:\n      data:\n        vertices: '***'\n", nil},
		{"unknown capability", "elements:\n  - type: IfcWall\n    capabilities: [flying]\n", nil},
		{"buffer not scalar", "elements:\n  - type: IfcWall\n    geometry:\n      data:\n        vertices: [1, 2]\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	m := &Model{
		Schema: "IFC2X3TC1",
		Elements: []*Element{
			{
				Type:         "IfcSlab",
				GlobalID:     "3vB2YO$MX4xv5uCqZZG05x",
				Name:         "Floor",
				Capabilities: CapAnnotation,
				Geometry: &GeometryInfo{
					Data: &GeometryData{
						Vertices: geometry.EncodeFloat64s(1, 2, 3),
						Normals:  geometry.EncodeFloat32s(0, 1, 0),
					},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "nested", "model.yaml")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	el := loaded.Elements[0]
	if el.Name != "Floor" || !el.Has(CapAnnotation) {
		t.Errorf("unexpected element after reload: %+v", el)
	}
	if string(el.Geometry.Data.Vertices) != string(m.Elements[0].Geometry.Data.Vertices) {
		t.Error("vertex buffer changed after reload")
	}
	if el.Geometry.Data.Indices != nil {
		t.Error("absent index buffer should stay absent")
	}
	if el.Geometry.Transformation != nil {
		t.Error("absent transformation should stay absent")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/path/model.yaml")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestAll_StopsEarly(t *testing.T) {
	m := &Model{Elements: []*Element{{Type: "A"}, {Type: "B"}, {Type: "C"}}}

	var seen []string
	for el := range m.All() {
		seen = append(seen, el.Type)
		if el.Type == "B" {
			break
		}
	}

	if len(seen) != 2 || seen[0] != "A" || seen[1] != "B" {
		t.Errorf("expected [A B], got %v", seen)
	}
}

func TestDecodeNames(t *testing.T) {
	m := &Model{Elements: []*Element{
		{Type: "IfcDoor", Name: `T\X2\00FC\X0\r`},
		{Type: "IfcWall", Name: "Wall"},
	}}
	m.DecodeNames()

	if m.Elements[0].Name != "Tür" {
		t.Errorf("expected Tür, got %q", m.Elements[0].Name)
	}
	if m.Elements[1].Name != "Wall" {
		t.Errorf("expected Wall, got %q", m.Elements[1].Name)
	}
}

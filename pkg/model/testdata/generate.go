//go:build ignore

// This program generates a small sample model document for manual export runs.
// Run with: go run generate.go -o sample.yaml
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Faultbox/bimobj/pkg/geometry"
	"github.com/Faultbox/bimobj/pkg/model"
)

func main() {
	out := flag.String("o", "sample.yaml", "Output path")
	flag.Parse()

	m := &model.Model{
		Schema: "IFC4",
		Elements: []*model.Element{
			element(model.TypeBuilding, "Office", nil),
			element(model.TypeBuildingStorey, "Level 1", nil),
			element("IfcWall", "Wall North", box(geometry.Translate(0, 5, 0).Encode())),
			element("IfcSlab", "Floor Slab", box(geometry.Scale(10, 10, 0.3).Encode())),
			element("IfcDoor", `T\S\|r 1`, box(geometry.Translate(2, 5, 0).Encode())),
			element(model.TypeOpeningElement, "Door Opening", box(nil)),
			annotation("Grid A"),
		},
	}

	if err := m.Save(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d elements)\n", *out, len(m.Elements))
}

func element(typ, name string, geo *model.GeometryInfo) *model.Element {
	return &model.Element{
		Type:     typ,
		GlobalID: model.CompressGlobalID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))),
		Name:     name,
		Geometry: geo,
	}
}

func annotation(name string) *model.Element {
	el := element(model.TypeAnnotation, name, nil)
	el.Capabilities = model.CapAnnotation
	return el
}

// box returns a unit cube with one quad (two triangles) per face.
func box(transform []byte) *model.GeometryInfo {
	faces := []struct {
		normal  [3]float32
		corners [4][3]float64
	}{
		{[3]float32{0, 0, -1}, [4][3]float64{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
		{[3]float32{0, 0, 1}, [4][3]float64{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
		{[3]float32{0, -1, 0}, [4][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
		{[3]float32{0, 1, 0}, [4][3]float64{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
		{[3]float32{-1, 0, 0}, [4][3]float64{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
		{[3]float32{1, 0, 0}, [4][3]float64{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	}

	var (
		vertices []float64
		normals  []float32
		indices  []uint32
	)
	for i, f := range faces {
		for _, c := range f.corners {
			vertices = append(vertices, c[:]...)
			normals = append(normals, f.normal[:]...)
		}
		base := uint32(i * 4)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return &model.GeometryInfo{
		Transformation: transform,
		Data: &model.GeometryData{
			Vertices: geometry.EncodeFloat64s(vertices...),
			Normals:  geometry.EncodeFloat32s(normals...),
			Indices:  geometry.EncodeUint32s(indices...),
		},
	}
}

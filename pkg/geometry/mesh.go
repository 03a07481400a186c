package geometry

import "fmt"

// Mesh is the decoded form of one element's geometry buffers.
type Mesh struct {
	Positions [][3]float64 // Vertex positions
	Normals   [][3]float32 // Per-vertex normals, same ordinal as Positions
	Triangles [][3]uint32  // Zero-based indices into Positions
}

// VertexCount returns the number of vertex positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Decode decodes and validates the vertex, normal and index buffers of one
// element. Any buffer may be empty. Every index must address a decoded vertex.
func Decode(vertices, normals, indices []byte) (*Mesh, error) {
	coords, err := DecodeFloat64s(vertices)
	if err != nil {
		return nil, fmt.Errorf("vertices: %w", err)
	}
	if len(coords)%3 != 0 {
		return nil, fmt.Errorf("vertices: %w: %d doubles", ErrIncompleteTriple, len(coords))
	}

	comps, err := DecodeFloat32s(normals)
	if err != nil {
		return nil, fmt.Errorf("normals: %w", err)
	}
	if len(comps)%3 != 0 {
		return nil, fmt.Errorf("normals: %w: %d floats", ErrIncompleteTriple, len(comps))
	}

	idx, err := DecodeUint32s(indices)
	if err != nil {
		return nil, fmt.Errorf("indices: %w", err)
	}
	if len(idx)%3 != 0 {
		return nil, fmt.Errorf("indices: %w: %d integers", ErrIncompleteTriple, len(idx))
	}

	mesh := &Mesh{
		Positions: make([][3]float64, len(coords)/3),
		Normals:   make([][3]float32, len(comps)/3),
		Triangles: make([][3]uint32, len(idx)/3),
	}
	for i := range mesh.Positions {
		mesh.Positions[i] = [3]float64{coords[i*3], coords[i*3+1], coords[i*3+2]}
	}
	for i := range mesh.Normals {
		mesh.Normals[i] = [3]float32{comps[i*3], comps[i*3+1], comps[i*3+2]}
	}

	count := uint64(len(mesh.Positions))
	for i := range mesh.Triangles {
		tri := [3]uint32{idx[i*3], idx[i*3+1], idx[i*3+2]}
		for _, n := range tri {
			if uint64(n) >= count {
				return nil, fmt.Errorf("indices: %w: triangle %d references vertex %d of %d", ErrIndexOutOfRange, i, n, count)
			}
		}
		mesh.Triangles[i] = tri
	}

	return mesh, nil
}

package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// TransformSize is the byte length of an encoded transformation matrix.
const TransformSize = 16 * Float64Size

// Matrix is a 4x4 transformation in column-major order.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Matrix mgl64.Mat4

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix(mgl64.Ident4())
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Matrix {
	return Matrix(mgl64.Translate3D(x, y, z))
}

// Scale returns a scale matrix.
func Scale(x, y, z float64) Matrix {
	return Matrix(mgl64.Scale3D(x, y, z))
}

// ParseTransform decodes 16 little-endian doubles into a matrix.
func ParseTransform(data []byte) (Matrix, error) {
	if len(data) != TransformSize {
		return Matrix{}, fmt.Errorf("%w: got %d bytes", ErrInvalidTransform, len(data))
	}
	v := NewView(data)
	var m Matrix
	for i := range m {
		m[i] = v.Float64At(i)
	}
	return m, nil
}

// Encode packs the matrix as 16 little-endian doubles.
func (m Matrix) Encode() []byte {
	return EncodeFloat64s(m[:]...)
}

// TransformPoint multiplies (x, y, z, 1) by the matrix and returns the first
// three components. The w component is discarded, not divided through.
func (m Matrix) TransformPoint(p [3]float64) [3]float64 {
	r := mgl64.Mat4(m).Mul4x1(mgl64.Vec4{p[0], p[1], p[2], 1})
	return [3]float64{r[0], r[1], r[2]}
}

// NormalMatrix returns the inverse-transpose of the upper-left 3x3.
// A singular matrix yields the zero matrix.
func (m Matrix) NormalMatrix() mgl64.Mat3 {
	return mgl64.Mat4(m).Mat3().Inv().Transpose()
}

// TransformNormal applies a normal matrix and renormalizes the result.
// Degenerate results are returned unnormalized.
func TransformNormal(nm mgl64.Mat3, n [3]float32) [3]float32 {
	r := nm.Mul3x1(mgl64.Vec3{float64(n[0]), float64(n[1]), float64(n[2])})
	if l := r.Len(); l > 0 {
		r = r.Mul(1 / l)
	}
	return [3]float32{float32(r[0]), float32(r[1]), float32(r[2])}
}

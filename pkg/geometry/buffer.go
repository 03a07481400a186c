// Package geometry decodes packed little-endian geometry buffers.
package geometry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Element sizes in bytes.
const (
	Float64Size = 8
	Float32Size = 4
	Uint32Size  = 4
)

// Buffer decoding errors.
var (
	ErrMisalignedBuffer = errors.New("buffer length is not a multiple of the element size")
	ErrIncompleteTriple = errors.New("buffer does not hold whole triples")
	ErrIndexOutOfRange  = errors.New("triangle index out of range")
	ErrInvalidTransform = errors.New("transformation must hold 16 doubles")
)

// View is a read-only little-endian view over a raw byte slice.
// Reads never depend on the host byte order.
type View struct {
	data []byte
}

// NewView wraps data without copying it.
func NewView(data []byte) View {
	return View{data: data}
}

// Len returns the number of whole elements of the given byte width.
func (v View) Len(width int) int {
	return len(v.data) / width
}

// Aligned reports whether the view holds a whole number of elements.
func (v View) Aligned(width int) bool {
	return len(v.data)%width == 0
}

// Float64At returns the i-th 64-bit float.
func (v View) Float64At(i int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(v.data[i*Float64Size:]))
}

// Float32At returns the i-th 32-bit float.
func (v View) Float32At(i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(v.data[i*Float32Size:]))
}

// Uint32At returns the i-th unsigned 32-bit integer.
func (v View) Uint32At(i int) uint32 {
	return binary.LittleEndian.Uint32(v.data[i*Uint32Size:])
}

// DecodeFloat64s decodes a flat array of little-endian doubles.
func DecodeFloat64s(data []byte) ([]float64, error) {
	v := NewView(data)
	if !v.Aligned(Float64Size) {
		return nil, fmt.Errorf("%w: %d bytes for %d-byte doubles", ErrMisalignedBuffer, len(data), Float64Size)
	}
	out := make([]float64, v.Len(Float64Size))
	for i := range out {
		out[i] = v.Float64At(i)
	}
	return out, nil
}

// DecodeFloat32s decodes a flat array of little-endian floats.
func DecodeFloat32s(data []byte) ([]float32, error) {
	v := NewView(data)
	if !v.Aligned(Float32Size) {
		return nil, fmt.Errorf("%w: %d bytes for %d-byte floats", ErrMisalignedBuffer, len(data), Float32Size)
	}
	out := make([]float32, v.Len(Float32Size))
	for i := range out {
		out[i] = v.Float32At(i)
	}
	return out, nil
}

// DecodeUint32s decodes a flat array of little-endian unsigned integers.
func DecodeUint32s(data []byte) ([]uint32, error) {
	v := NewView(data)
	if !v.Aligned(Uint32Size) {
		return nil, fmt.Errorf("%w: %d bytes for %d-byte integers", ErrMisalignedBuffer, len(data), Uint32Size)
	}
	out := make([]uint32, v.Len(Uint32Size))
	for i := range out {
		out[i] = v.Uint32At(i)
	}
	return out, nil
}

// EncodeFloat64s packs values as little-endian doubles.
func EncodeFloat64s(values ...float64) []byte {
	buf := make([]byte, len(values)*Float64Size)
	for i, f := range values {
		binary.LittleEndian.PutUint64(buf[i*Float64Size:], math.Float64bits(f))
	}
	return buf
}

// EncodeFloat32s packs values as little-endian floats.
func EncodeFloat32s(values ...float32) []byte {
	buf := make([]byte, len(values)*Float32Size)
	for i, f := range values {
		binary.LittleEndian.PutUint32(buf[i*Float32Size:], math.Float32bits(f))
	}
	return buf
}

// EncodeUint32s packs values as little-endian unsigned integers.
func EncodeUint32s(values ...uint32) []byte {
	buf := make([]byte, len(values)*Uint32Size)
	for i, n := range values {
		binary.LittleEndian.PutUint32(buf[i*Uint32Size:], n)
	}
	return buf
}

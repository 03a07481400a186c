package objexport

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// nameReplacer keeps group names on a single line.
var nameReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// lineWriter emits OBJ lines through a buffered writer. The first write
// error is kept and every later call becomes a no-op.
type lineWriter struct {
	w   *bufio.Writer
	buf []byte
	err error
}

func newLineWriter(sink io.Writer, size int) *lineWriter {
	return &lineWriter{
		w:   bufio.NewWriterSize(sink, size),
		buf: make([]byte, 0, 128),
	}
}

func (lw *lineWriter) emit() {
	if lw.err != nil {
		return
	}
	lw.buf = append(lw.buf, '\n')
	if _, err := lw.w.Write(lw.buf); err != nil {
		lw.err = fmt.Errorf("%w: %w", ErrWrite, err)
	}
}

func (lw *lineWriter) flush() error {
	if lw.err != nil {
		return lw.err
	}
	if err := lw.w.Flush(); err != nil {
		lw.err = fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return lw.err
}

func (lw *lineWriter) comment(key, value string) {
	lw.buf = append(lw.buf[:0], "# "...)
	lw.buf = append(lw.buf, key...)
	lw.buf = append(lw.buf, ": "...)
	lw.buf = append(lw.buf, nameReplacer.Replace(value)...)
	lw.emit()
}

func (lw *lineWriter) group(name string) {
	lw.buf = append(lw.buf[:0], "g "...)
	lw.buf = append(lw.buf, nameReplacer.Replace(name)...)
	lw.emit()
}

func (lw *lineWriter) vertex(p [3]float64) {
	lw.buf = append(lw.buf[:0], 'v')
	for _, c := range p {
		lw.buf = append(lw.buf, ' ')
		lw.buf = appendNumber(lw.buf, c, 64)
	}
	lw.emit()
}

func (lw *lineWriter) normal(n [3]float32) {
	lw.buf = append(lw.buf[:0], "vn"...)
	for _, c := range n {
		lw.buf = append(lw.buf, ' ')
		lw.buf = appendNumber(lw.buf, float64(c), 32)
	}
	lw.emit()
}

// face writes "f a//a b//b c//c" with 1-based global indices.
func (lw *lineWriter) face(idx [3]uint64) {
	lw.buf = append(lw.buf[:0], 'f')
	for _, n := range idx {
		lw.buf = append(lw.buf, ' ')
		lw.buf = strconv.AppendUint(lw.buf, n, 10)
		lw.buf = append(lw.buf, "//"...)
		lw.buf = strconv.AppendUint(lw.buf, n, 10)
	}
	lw.emit()
}

func (lw *lineWriter) blank() {
	lw.buf = lw.buf[:0]
	lw.emit()
}

// appendNumber appends the shortest decimal form that round-trips at the
// given bit size. Integral values keep a trailing ".0" (1 -> "1.0").
// Magnitudes outside [1e-3, 1e7) use an exponent (1e21 -> "1.0E21").
func appendNumber(dst []byte, v float64, bitSize int) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "NaN"...)
	case math.IsInf(v, 1):
		return append(dst, "Infinity"...)
	case math.IsInf(v, -1):
		return append(dst, "-Infinity"...)
	}

	if a := math.Abs(v); a != 0 && (a < 1e-3 || a >= 1e7) {
		return appendScientific(dst, v, bitSize)
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'f', -1, bitSize)
	if bytes.IndexByte(dst[start:], '.') < 0 {
		dst = append(dst, '.', '0')
	}
	return dst
}

// appendScientific writes "<mantissa>E<exponent>" with at least one
// fractional mantissa digit and no exponent sign or padding for positives.
func appendScientific(dst []byte, v float64, bitSize int) []byte {
	var tmp [32]byte
	s := strconv.AppendFloat(tmp[:0], v, 'e', -1, bitSize)
	e := bytes.IndexByte(s, 'e')
	mant, exp := s[:e], s[e+1:]

	dst = append(dst, mant...)
	if bytes.IndexByte(mant, '.') < 0 {
		dst = append(dst, '.', '0')
	}
	dst = append(dst, 'E')
	if exp[0] == '-' {
		dst = append(dst, '-')
	}
	return append(dst, bytes.TrimLeft(exp[1:], "0")...)
}

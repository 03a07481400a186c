package objexport

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/bimobj/pkg/geometry"
	"github.com/Faultbox/bimobj/pkg/model"
)

// DefaultBufferSize is the output buffer size used when Options leaves it unset.
const DefaultBufferSize = 64 * 1024

// Export errors.
var (
	ErrWrite             = errors.New("writing OBJ output")
	ErrMalformedGeometry = errors.New("malformed geometry")
)

// ElementError identifies the element whose geometry could not be decoded.
type ElementError struct {
	Type     string
	GlobalID string
	Name     string
	Err      error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %s %s (%q): %v", e.Type, e.GlobalID, e.Name, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// Options controls optional exporter behaviour.
type Options struct {
	Metadata         bool // Write "# _t:" and "# _guid:" comments before each group
	TransformNormals bool // Apply the inverse-transpose of the transform to normals
	SkipMalformed    bool // Skip elements with malformed geometry instead of aborting
	BufferSize       int  // Output buffer size in bytes (0 = DefaultBufferSize)
}

// Stats summarizes one export.
type Stats struct {
	Written  int // Elements written
	Skipped  int // Elements rejected by the filter
	Rejected int // Elements with malformed geometry (SkipMalformed only)
	Vertices int
	Normals  int
	Faces    int
}

// Cursor is the running vertex count of one output stream. Face indices of
// the next element are offset by it.
type Cursor struct {
	offset uint64
}

// Offset returns the number of vertices written so far.
func (c *Cursor) Offset() uint64 {
	return c.offset
}

// Index converts a zero-based element-local index into a 1-based OBJ index.
func (c *Cursor) Index(i uint32) uint64 {
	return uint64(i) + 1 + c.offset
}

// Advance adds an element's vertex count.
func (c *Cursor) Advance(vertices int) {
	c.offset += uint64(vertices)
}

// Exporter writes filtered model elements as one OBJ stream. It holds no
// per-export state and may be reused.
type Exporter struct {
	opts     Options
	observer Observer
}

// New creates an exporter. A nil observer discards diagnostics.
func New(opts Options, observer Observer) *Exporter {
	if observer == nil {
		observer = nopObserver{}
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}
	return &Exporter{opts: opts, observer: observer}
}

// Export writes every exportable element to sink in iteration order.
//
// Malformed geometry aborts the export with an *ElementError unless
// Options.SkipMalformed is set. A sink failure aborts with ErrWrite; output
// already handed to the sink is not rolled back.
func (e *Exporter) Export(elements iter.Seq[*model.Element], sink io.Writer) (Stats, error) {
	var (
		stats Stats
		cur   Cursor
	)
	lw := newLineWriter(sink, e.opts.BufferSize)

	for el := range elements {
		if reason := Check(el); reason != SkipNone {
			stats.Skipped++
			if !reason.Silent() {
				e.observer.ElementSkipped(el, reason)
			}
			continue
		}

		p, err := e.prepare(el)
		if err != nil {
			elErr := &ElementError{
				Type:     el.Type,
				GlobalID: el.GlobalID,
				Name:     el.Name,
				Err:      fmt.Errorf("%w: %w", ErrMalformedGeometry, err),
			}
			if !e.opts.SkipMalformed {
				if ferr := lw.flush(); ferr != nil {
					return stats, errors.Join(elErr, ferr)
				}
				return stats, elErr
			}
			stats.Rejected++
			e.observer.ElementRejected(el, elErr)
			continue
		}

		e.write(lw, el, p, &cur)
		if lw.err != nil {
			return stats, lw.err
		}

		stats.Written++
		stats.Vertices += len(p.mesh.Positions)
		stats.Normals += len(p.mesh.Normals)
		stats.Faces += len(p.mesh.Triangles)
		e.observer.ElementWritten(el, len(p.mesh.Positions), len(p.mesh.Triangles))
	}

	if err := lw.flush(); err != nil {
		return stats, err
	}
	return stats, nil
}

// prepared is an element's decoded geometry, validated before any output.
type prepared struct {
	mesh      *geometry.Mesh
	transform *geometry.Matrix
}

func (e *Exporter) prepare(el *model.Element) (*prepared, error) {
	data := el.Geometry.Data
	mesh, err := geometry.Decode(data.Vertices, data.Normals, data.Indices)
	if err != nil {
		return nil, err
	}

	p := &prepared{mesh: mesh}
	if len(el.Geometry.Transformation) > 0 {
		m, err := geometry.ParseTransform(el.Geometry.Transformation)
		if err != nil {
			return nil, fmt.Errorf("transformation: %w", err)
		}
		p.transform = &m
	}
	return p, nil
}

func (e *Exporter) write(lw *lineWriter, el *model.Element, p *prepared, cur *Cursor) {
	if e.opts.Metadata {
		lw.comment("_t", el.Type)
		lw.comment("_guid", el.GlobalID)
	}
	lw.group(el.Name)

	for _, v := range p.mesh.Positions {
		if p.transform != nil {
			v = p.transform.TransformPoint(v)
		}
		lw.vertex(v)
	}

	var nm *mgl64.Mat3
	if e.opts.TransformNormals && p.transform != nil {
		m := p.transform.NormalMatrix()
		nm = &m
	}
	for _, n := range p.mesh.Normals {
		if nm != nil {
			n = geometry.TransformNormal(*nm, n)
		}
		lw.normal(n)
	}

	for _, tri := range p.mesh.Triangles {
		lw.face([3]uint64{cur.Index(tri[0]), cur.Index(tri[1]), cur.Index(tri[2])})
	}

	cur.Advance(p.mesh.VertexCount())
	lw.blank()
}

// Package objexport writes building model geometry as Wavefront OBJ text.
package objexport

import (
	"fmt"

	"github.com/Faultbox/bimobj/pkg/model"
)

// SkipReason explains why the filter rejected an element.
type SkipReason int

const (
	SkipNone           SkipReason = iota // Exportable
	SkipDenied                           // Organizational type (opening, storey, building)
	SkipAnnotation                       // Annotation without geometry, never reported
	SkipNoGeometry                       // No geometry reference
	SkipNoGeometryData                   // Geometry reference without payload
	SkipNoVertices                       // Payload without vertex buffer
)

// String returns a human-readable reason.
func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "exportable"
	case SkipDenied:
		return "denied type"
	case SkipAnnotation:
		return "annotation without geometry"
	case SkipNoGeometry:
		return "no geometry info"
	case SkipNoGeometryData:
		return "no geometry data"
	case SkipNoVertices:
		return "no vertices"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}

// Silent reports whether the reason is never passed to an Observer.
func (r SkipReason) Silent() bool {
	return r == SkipAnnotation
}

// deniedTypes are non-physical organizational nodes.
var deniedTypes = map[string]struct{}{
	model.TypeOpeningElement: {},
	model.TypeBuildingStorey: {},
	model.TypeBuilding:       {},
}

// Check returns the first reason the element cannot be exported, or SkipNone.
func Check(el *model.Element) SkipReason {
	if el == nil {
		return SkipNoGeometry
	}
	if _, denied := deniedTypes[el.Type]; denied {
		return SkipDenied
	}
	if el.Geometry == nil {
		if el.Has(model.CapAnnotation) {
			return SkipAnnotation
		}
		return SkipNoGeometry
	}
	if el.Geometry.Data == nil {
		return SkipNoGeometryData
	}
	if el.Geometry.Data.Vertices == nil {
		return SkipNoVertices
	}
	return SkipNone
}

// IsExportable reports whether the element has exportable geometry.
func IsExportable(el *model.Element) bool {
	return Check(el) == SkipNone
}

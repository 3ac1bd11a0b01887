// Package entity defines the contract between the parse pipeline and a
// CAD-parsing collaborator.
//
// The pipeline does not understand raw drawing bytes. A Reader (for example
// the bundled dxf package) turns bytes into a Document, and the Document
// yields a stream of typed entities. Only the planar entity kinds the
// pipeline can tessellate are represented; adapters drop everything else
// before it reaches the stream.
package entity

import (
	"iter"

	"github.com/Paullovitt/dxf-3d-viewer/geom"
)

// Entity is the closed set of CAD primitives the pipeline accepts.
// The concrete types are Line, Arc, Circle, Polyline and Spline; the
// interface exists only to seal the set.
type Entity interface {
	isEntity()
}

// Line is a straight segment between two points.
type Line struct {
	Start, End geom.Point
}

// Arc is a circular arc. Angles are in degrees, measured counter-clockwise
// from the positive X axis, matching the DXF convention.
type Arc struct {
	Center     geom.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// Circle is a full circle.
type Circle struct {
	Center geom.Point
	Radius float64
}

// Vertex is one polyline vertex with its outgoing bulge.
// Bulge is the tangent of a quarter of the included angle of the arc
// segment that follows the vertex; zero means a straight segment.
type Vertex struct {
	Point geom.Point
	Bulge float64
}

// Polyline is a connected sequence of straight and bulge segments.
// Both the DXF LWPOLYLINE and legacy POLYLINE map onto this type.
type Polyline struct {
	Vertices []Vertex
	Closed   bool
}

// Spline is a freeform curve. Flattening is owned by the parsing
// collaborator: Curve evaluates the spline when present, and Control is the
// fallback when it is absent or yields too few points.
type Spline struct {
	Control []geom.Point
	Closed  bool
	Curve   Curve
}

// Curve is the collaborator-side evaluation handle for a spline.
type Curve interface {
	// Flatten approximates the curve with an ordered point sequence whose
	// chords deviate from the true curve by at most tolerance.
	Flatten(tolerance float64) []geom.Point
}

func (Line) isEntity()     {}
func (Arc) isEntity()      {}
func (Circle) isEntity()   {}
func (Polyline) isEntity() {}
func (Spline) isEntity()   {}

// Document is a parsed drawing as exposed by the collaborator.
type Document interface {
	// Entities yields the drawing's model-space entities in file order.
	Entities() iter.Seq[Entity]
}

// Reader turns raw drawing bytes into a Document.
//
// Read is the strict path. Recover is the repair path for malformed input;
// it should accept anything Read accepts plus structurally damaged files,
// and only fail when no entity data can be located at all.
type Reader interface {
	Read(data []byte) (Document, error)
	Recover(data []byte) (Document, error)
}

// List is a Document over an in-memory entity slice.
// Adapters and tests use it to avoid re-implementing iteration.
type List []Entity

// Entities implements Document.
func (l List) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range l {
			if !yield(e) {
				return
			}
		}
	}
}

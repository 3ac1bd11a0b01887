// Package numeric defines the numeric execution backend used by the
// tessellation and normalization stages.
//
// Two implementations exist: the scalar backend returned by [Scalar], and the
// lane-batched backend in the batch subpackage, which registers itself as the
// accelerator via a blank import:
//
//	import _ "github.com/Paullovitt/dxf-3d-viewer/numeric/batch"
//
// The two paths are a throughput choice, never a semantic one. Both evaluate
// the same per-element formulas, so their outputs agree to within floating
// tolerance (in practice bit-for-bit); the contract tests in this package
// hold them to that.
package numeric

import (
	"github.com/Paullovitt/dxf-3d-viewer/geom"
)

// Backend is the set of numeric kernels both execution paths implement.
//
// Implementations must be safe for concurrent use: the parse worker pools
// share one backend instance per mode.
type Backend interface {
	// Name returns the backend identifier (e.g. "scalar", "batch").
	Name() string

	// ArcPoints samples a circular arc. It returns steps+1 points with
	// angles spaced linearly over [startRad, startRad+sweepRad]; the final
	// sample is taken at exactly startRad+sweepRad so the arc endpoint does
	// not drift. steps < 1 returns nil.
	ArcPoints(center geom.Point, radius, startRad, sweepRad float64, steps int) []geom.Point

	// Clean drops non-finite points, then drops every point whose squared
	// distance to its predecessor in the finite sequence is at most sqTol.
	// The first finite point is always kept. The input slice is not modified.
	Clean(pts []geom.Point, sqTol float64) []geom.Point

	// Bounds returns the axis-aligned bounding box of pts.
	// ok is false when pts is empty.
	Bounds(pts []geom.Point) (bounds geom.Rect, ok bool)

	// Translate offsets every point by d, in place.
	Translate(pts []geom.Point, d geom.Point)
}

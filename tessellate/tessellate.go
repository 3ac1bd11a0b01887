// Package tessellate converts curved DXF primitives into polyline point runs.
//
// All functions are pure and tolerance-driven: the chord tolerance bounds the
// sagitta of each emitted segment, so flatter tolerances produce more points.
// Arc and circle sampling is delegated to a numeric.Backend; bulge segments
// are short enough that they are always sampled inline.
package tessellate

import (
	"math"

	"github.com/Paullovitt/dxf-3d-viewer/entity"
	"github.com/Paullovitt/dxf-3d-viewer/geom"
	"github.com/Paullovitt/dxf-3d-viewer/numeric"
)

const (
	// DefaultChordTolerance is the sampling tolerance used when the caller
	// does not supply one.
	DefaultChordTolerance = 0.8

	// MinChordTolerance is the smallest effective tolerance. Values below it
	// are clamped so degenerate tolerances cannot explode the point count.
	MinChordTolerance = 0.05

	// MergeTolerance collapses consecutive points closer than this.
	MergeTolerance = 1e-7

	// SeamTolerance decides whether a closing point duplicates the first
	// point of a closed contour.
	SeamTolerance = 1e-6
)

// maxSteps bounds the sample count of a single primitive. Inputs that ask
// for more are treated as degenerate rather than allocating without bound.
const maxSteps = 4 << 20

// BulgeSegment expands one polyline segment with a bulge factor into arc
// samples. The bulge is tan(theta/4) for included angle theta; zero means a
// straight segment. The first and last returned points are exactly p1 and p2.
func BulgeSegment(p1, p2 geom.Point, bulge, chordTol float64) []geom.Point {
	if math.Abs(bulge) < 1e-12 {
		return []geom.Point{p1, p2}
	}

	chord := p1.Distance(p2)
	if chord < SeamTolerance {
		return []geom.Point{p1, p2}
	}

	theta := 4 * math.Atan(bulge)
	sinHalf := math.Sin(math.Abs(theta) / 2)
	if math.Abs(sinHalf) < SeamTolerance {
		return []geom.Point{p1, p2}
	}

	radius := chord / (2 * sinHalf)
	mid := p1.Lerp(p2, 0.5)
	normal := geom.Point{X: -(p2.Y - p1.Y) / chord, Y: (p2.X - p1.X) / chord}
	offset := math.Sqrt(math.Max(radius*radius-(chord*0.5)*(chord*0.5), 0))
	if bulge < 0 {
		offset = -offset
	}
	center := mid.Add(normal.Mul(offset))
	start := math.Atan2(p1.Y-center.Y, p1.X-center.X)

	want := math.Ceil(math.Abs(theta) * radius / math.Max(chordTol, MinChordTolerance))
	if !(want < maxSteps) {
		return []geom.Point{p1, p2}
	}
	steps := int(want)
	if steps < 2 {
		steps = 2
	}

	pts := make([]geom.Point, 0, steps+1)
	pts = append(pts, p1)
	for i := 1; i <= steps; i++ {
		a := start + theta*(float64(i)/float64(steps))
		sin, cos := math.Sincos(a)
		pts = append(pts, geom.Point{X: center.X + radius*cos, Y: center.Y + radius*sin})
	}
	pts[len(pts)-1] = p2
	return pts
}

// ArcPoints samples a circular arc given in degrees. The sweep is normalized
// into (0, 360] by adding full turns, matching the DXF convention of
// counterclockwise arcs. Returns nil for non-positive radii or degenerate
// angle inputs.
func ArcPoints(center geom.Point, radius, startDeg, endDeg, chordTol float64, b numeric.Backend) []geom.Point {
	if radius <= 0 {
		return nil
	}

	sweep := endDeg - startDeg
	if math.IsNaN(sweep) || math.IsInf(sweep, 0) {
		return nil
	}
	for sweep <= 0 {
		sweep += 360
	}

	want := math.Ceil(math.Pi * sweep / 180 * radius / math.Max(chordTol, MinChordTolerance))
	if !(want < maxSteps) {
		return nil
	}
	steps := int(want)
	if steps < 8 {
		steps = 8
	}

	const degToRad = math.Pi / 180
	return b.ArcPoints(center, radius, startDeg*degToRad, sweep*degToRad, steps)
}

// CirclePoints samples a full circle as a closed point run. The duplicated
// seam sample is dropped; nil is returned unless at least three points
// remain.
func CirclePoints(center geom.Point, radius, chordTol float64, b numeric.Backend) []geom.Point {
	pts := ArcPoints(center, radius, 0, 360, chordTol, b)
	if len(pts) > 1 && pts[0].Distance(pts[len(pts)-1]) <= SeamTolerance {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return nil
	}
	return pts
}

// SplinePoints flattens a spline to a point run. The spline's own curve
// evaluator is preferred; when it yields fewer than two points the control
// polygon is used instead. Returns nil when neither produces two points.
func SplinePoints(s entity.Spline, chordTol float64) []geom.Point {
	var pts []geom.Point
	if s.Curve != nil {
		pts = s.Curve.Flatten(chordTol)
	}
	if len(pts) < 2 {
		pts = s.Control
	}
	if len(pts) < 2 {
		return nil
	}
	return CleanPoints(pts, MergeTolerance)
}

// CleanPoints drops consecutive points within tol of the last kept point.
// The input slice is not modified.
func CleanPoints(pts []geom.Point, tol float64) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) == 0 || out[len(out)-1].Distance(p) > tol {
			out = append(out, p)
		}
	}
	return out
}

package numeric

import (
	"math"

	"github.com/Paullovitt/dxf-3d-viewer/geom"
)

// scalarBackend is the procedural reference implementation.
// It is always available and needs no registration.
type scalarBackend struct{}

// Scalar returns the scalar numeric backend.
func Scalar() Backend { return scalarBackend{} }

func (scalarBackend) Name() string { return "scalar" }

func (scalarBackend) ArcPoints(center geom.Point, radius, startRad, sweepRad float64, steps int) []geom.Point {
	if steps < 1 {
		return nil
	}

	pts := make([]geom.Point, steps+1)
	step := sweepRad / float64(steps)
	for i := 0; i <= steps; i++ {
		angle := float64(i)*step + startRad
		if i == steps {
			// Land exactly on the arc endpoint regardless of accumulated
			// rounding in the linear spacing.
			angle = startRad + sweepRad
		}
		sin, cos := math.Sincos(angle)
		pts[i] = geom.Point{X: center.X + radius*cos, Y: center.Y + radius*sin}
	}
	return pts
}

func (scalarBackend) Clean(pts []geom.Point, sqTol float64) []geom.Point {
	finite := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if p.IsFinite() {
			finite = append(finite, p)
		}
	}
	if len(finite) <= 1 {
		return finite
	}

	// The keep mask compares each point against its predecessor in the
	// finite sequence, not against the last kept point. Both backends share
	// this rule; it is what makes the mask computable in one pass.
	out := finite[:1]
	for i := 1; i < len(finite); i++ {
		if finite[i].DistanceSquared(finite[i-1]) > sqTol {
			out = append(out, finite[i])
		}
	}
	return out
}

func (scalarBackend) Bounds(pts []geom.Point) (geom.Rect, bool) {
	if len(pts) == 0 {
		return geom.Rect{}, false
	}

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return geom.Rect{Min: geom.Point{X: minX, Y: minY}, Max: geom.Point{X: maxX, Y: maxY}}, true
}

func (scalarBackend) Translate(pts []geom.Point, d geom.Point) {
	for i := range pts {
		pts[i].X += d.X
		pts[i].Y += d.Y
	}
}

package dxf

import (
	"math"

	"github.com/Paullovitt/dxf-3d-viewer/geom"
	"github.com/Paullovitt/dxf-3d-viewer/tessellate"
)

// flattenMaxSteps caps spline sampling so a corrupt knot vector cannot
// demand an absurd point count.
const flattenMaxSteps = 4096

// splineCurve evaluates a parsed SPLINE with de Boor's algorithm.
// It implements entity.Curve.
type splineCurve struct {
	degree  int
	knots   []float64
	control []geom.Point
}

// newSplineCurve builds an evaluator from tag data. Knot vectors that are
// missing, mis-sized, unsorted or non-finite are replaced with a clamped
// uniform vector. Returns nil when the control polygon cannot support the
// degree; callers then fall back to the raw control points.
func newSplineCurve(degree int, knots []float64, control []geom.Point) *splineCurve {
	if degree < 1 {
		degree = 3
	}
	if len(control) < degree+1 {
		return nil
	}
	for _, p := range control {
		if !p.IsFinite() {
			return nil
		}
	}
	if !validKnots(knots, len(control), degree) {
		knots = clampedUniformKnots(len(control), degree)
	}
	return &splineCurve{degree: degree, knots: knots, control: control}
}

// validKnots reports whether knots is a usable vector for n control points
// of the given degree: correct length, non-decreasing, finite, and spanning
// a non-empty parameter domain.
func validKnots(knots []float64, n, degree int) bool {
	if len(knots) != n+degree+1 {
		return false
	}
	for i, k := range knots {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return false
		}
		if i > 0 && k < knots[i-1] {
			return false
		}
	}
	return knots[degree] < knots[n]
}

// clampedUniformKnots synthesizes the standard clamped vector: degree+1
// repeats at each end with uniform interior spacing, so the curve
// interpolates its first and last control points.
func clampedUniformKnots(n, degree int) []float64 {
	knots := make([]float64, n+degree+1)
	last := float64(n - degree)
	for i := range knots {
		switch {
		case i <= degree:
			knots[i] = 0
		case i >= n:
			knots[i] = last
		default:
			knots[i] = float64(i - degree)
		}
	}
	return knots
}

// Flatten samples the curve uniformly in parameter space. The sample count
// comes from the control polygon length, which bounds the curve length, so
// denser polygons get proportionally more chords.
func (c *splineCurve) Flatten(tolerance float64) []geom.Point {
	if tolerance < tessellate.MinChordTolerance {
		tolerance = tessellate.MinChordTolerance
	}
	lo := c.knots[c.degree]
	hi := c.knots[len(c.control)]
	if !(hi > lo) {
		return nil
	}

	var length float64
	for i := 1; i < len(c.control); i++ {
		length += c.control[i].Distance(c.control[i-1])
	}
	steps := int(math.Ceil(length / tolerance))
	if min := 2 * len(c.control); steps < min {
		steps = min
	}
	if steps > flattenMaxSteps {
		steps = flattenMaxSteps
	}

	pts := make([]geom.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := lo + (hi-lo)*(float64(i)/float64(steps))
		pts = append(pts, c.at(t))
	}
	return pts
}

// at evaluates the spline at parameter t with de Boor's triangular scheme.
func (c *splineCurve) at(t float64) geom.Point {
	p := c.degree
	n := len(c.control)

	// Locate the knot span holding t. Repeated knots produce empty spans,
	// which the >= comparison skips.
	k := p
	for k < n-1 && t >= c.knots[k+1] {
		k++
	}

	d := make([]geom.Point, p+1)
	copy(d, c.control[k-p:k+1])
	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			i := k - p + j
			den := c.knots[i+p-r+1] - c.knots[i]
			var alpha float64
			if den > 0 {
				alpha = (t - c.knots[i]) / den
			}
			d[j] = d[j-1].Lerp(d[j], alpha)
		}
	}
	return d[p]
}

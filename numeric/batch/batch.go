// Package batch provides the lane-batched numeric backend.
//
// Kernels walk their inputs in fixed-width float64 lanes (structure-of-arrays
// batches of 4) with a scalar tail, evaluating exactly the per-element
// formulas the scalar backend uses. Importing the package registers it as the
// accelerator:
//
//	import _ "github.com/Paullovitt/dxf-3d-viewer/numeric/batch"
package batch

import (
	"math"

	"github.com/Paullovitt/dxf-3d-viewer/geom"
	"github.com/Paullovitt/dxf-3d-viewer/internal/lane"
	"github.com/Paullovitt/dxf-3d-viewer/numeric"
)

func init() {
	_ = numeric.RegisterAccelerator(New())
}

// backend implements numeric.Backend with lane-batched kernels.
// It is stateless and safe for concurrent use.
type backend struct{}

// New returns the batch backend. Most callers rely on init registration
// instead; tests construct isolated instances through New.
func New() numeric.Backend { return backend{} }

func (backend) Name() string { return "batch" }

func (backend) ArcPoints(center geom.Point, radius, startRad, sweepRad float64, steps int) []geom.Point {
	if steps < 1 {
		return nil
	}

	pts := make([]geom.Point, steps+1)
	step := sweepRad / float64(steps)

	stepv := lane.Splat(step)
	startv := lane.Splat(startRad)
	rv := lane.Splat(radius)
	cxv := lane.Splat(center.X)
	cyv := lane.Splat(center.Y)

	// Full lanes cover the interior samples; the endpoint is fixed up after
	// the tail so it lands exactly on startRad+sweepRad.
	i := 0
	for ; i+lane.Width <= steps+1; i += lane.Width {
		idx := lane.Ramp(float64(i), 1)
		angles := idx.MulAdd(stepv, startv)
		sin, cos := angles.Sincos()
		xs := cos.MulAdd(rv, cxv)
		ys := sin.MulAdd(rv, cyv)
		for j := range lane.Width {
			pts[i+j] = geom.Point{X: xs[j], Y: ys[j]}
		}
	}
	for ; i <= steps; i++ {
		angle := float64(i)*step + startRad
		sin, cos := math.Sincos(angle)
		pts[i] = geom.Point{X: center.X + radius*cos, Y: center.Y + radius*sin}
	}

	sin, cos := math.Sincos(startRad + sweepRad)
	pts[steps] = geom.Point{X: center.X + radius*cos, Y: center.Y + radius*sin}
	return pts
}

func (backend) Clean(pts []geom.Point, sqTol float64) []geom.Point {
	finite := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if p.IsFinite() {
			finite = append(finite, p)
		}
	}
	n := len(finite)
	if n <= 1 {
		return finite
	}

	// One-pass keep mask over consecutive squared distances, batched.
	keep := make([]bool, n)
	keep[0] = true

	i := 1
	for ; i+lane.Width <= n; i += lane.Width {
		var dx, dy lane.F64x4
		for j := range lane.Width {
			dx[j] = finite[i+j].X - finite[i+j-1].X
			dy[j] = finite[i+j].Y - finite[i+j-1].Y
		}
		d2 := dx.Mul(dx).Add(dy.Mul(dy))
		for j := range lane.Width {
			keep[i+j] = d2[j] > sqTol
		}
	}
	for ; i < n; i++ {
		keep[i] = finite[i].DistanceSquared(finite[i-1]) > sqTol
	}

	out := finite[:0]
	for i, p := range finite {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

func (backend) Bounds(pts []geom.Point) (geom.Rect, bool) {
	n := len(pts)
	if n == 0 {
		return geom.Rect{}, false
	}

	minX := lane.Splat(pts[0].X)
	minY := lane.Splat(pts[0].Y)
	maxX := minX
	maxY := minY

	i := 0
	for ; i+lane.Width <= n; i += lane.Width {
		var xs, ys lane.F64x4
		for j := range lane.Width {
			xs[j] = pts[i+j].X
			ys[j] = pts[i+j].Y
		}
		minX = minX.Min(xs)
		minY = minY.Min(ys)
		maxX = maxX.Max(xs)
		maxY = maxY.Max(ys)
	}

	lo := geom.Point{X: minX.HorizontalMin(), Y: minY.HorizontalMin()}
	hi := geom.Point{X: maxX.HorizontalMax(), Y: maxY.HorizontalMax()}
	for ; i < n; i++ {
		lo.X = math.Min(lo.X, pts[i].X)
		lo.Y = math.Min(lo.Y, pts[i].Y)
		hi.X = math.Max(hi.X, pts[i].X)
		hi.Y = math.Max(hi.Y, pts[i].Y)
	}
	return geom.Rect{Min: lo, Max: hi}, true
}

func (backend) Translate(pts []geom.Point, d geom.Point) {
	dx := lane.Splat(d.X)
	dy := lane.Splat(d.Y)

	i := 0
	for ; i+lane.Width <= len(pts); i += lane.Width {
		var xs, ys lane.F64x4
		for j := range lane.Width {
			xs[j] = pts[i+j].X
			ys[j] = pts[i+j].Y
		}
		xs = xs.Add(dx)
		ys = ys.Add(dy)
		for j := range lane.Width {
			pts[i+j].X = xs[j]
			pts[i+j].Y = ys[j]
		}
	}
	for ; i < len(pts); i++ {
		pts[i].X += d.X
		pts[i].Y += d.Y
	}
}

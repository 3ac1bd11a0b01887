package tessellate

import (
	"math"
	"testing"

	"github.com/Paullovitt/dxf-3d-viewer/entity"
	"github.com/Paullovitt/dxf-3d-viewer/geom"
	"github.com/Paullovitt/dxf-3d-viewer/numeric"
)

type fixedCurve struct {
	pts []geom.Point
}

func (c fixedCurve) Flatten(tol float64) []geom.Point { return c.pts }

func TestBulgeSegmentStraight(t *testing.T) {
	p1, p2 := geom.Pt(1, 2), geom.Pt(4, 6)

	for _, bulge := range []float64{0, 1e-13, -1e-13} {
		pts := BulgeSegment(p1, p2, bulge, DefaultChordTolerance)
		if len(pts) != 2 || pts[0] != p1 || pts[1] != p2 {
			t.Errorf("BulgeSegment(bulge=%g) = %v, want [%v %v]", bulge, pts, p1, p2)
		}
	}

	// A chord shorter than the seam tolerance cannot support an arc.
	near := geom.Pt(1+1e-8, 2)
	pts := BulgeSegment(p1, near, 1, DefaultChordTolerance)
	if len(pts) != 2 || pts[0] != p1 || pts[1] != near {
		t.Errorf("BulgeSegment(short chord) = %v, want [%v %v]", pts, p1, near)
	}
}

func TestBulgeSegmentSemicircle(t *testing.T) {
	// bulge 1 is a half turn: theta = 4*atan(1) = pi, so the arc from (0,0)
	// to (2,0) is the lower unit semicircle around (1,0).
	p1, p2 := geom.Pt(0, 0), geom.Pt(2, 0)
	pts := BulgeSegment(p1, p2, 1, DefaultChordTolerance)

	if len(pts) < 3 {
		t.Fatalf("len(pts) = %d, want >= 3", len(pts))
	}
	if pts[0] != p1 {
		t.Errorf("pts[0] = %v, want %v", pts[0], p1)
	}
	if pts[len(pts)-1] != p2 {
		t.Errorf("pts[last] = %v, want %v", pts[len(pts)-1], p2)
	}

	center := geom.Pt(1, 0)
	for i, p := range pts {
		if r := p.Distance(center); math.Abs(r-1) > 1e-12 {
			t.Errorf("pts[%d] = %v: radius %v, want 1", i, p, r)
		}
		if p.Y > 1e-12 {
			t.Errorf("pts[%d] = %v: above the chord, want the arc to bow down", i, p)
		}
	}
}

func TestBulgeSegmentNegativeBulge(t *testing.T) {
	// Negative bulge flips the arc to the other side of the chord.
	pts := BulgeSegment(geom.Pt(0, 0), geom.Pt(2, 0), -1, DefaultChordTolerance)
	for i, p := range pts {
		if p.Y < -1e-12 {
			t.Errorf("pts[%d] = %v: below the chord, want the arc to bow up", i, p)
		}
	}
}

func TestBulgeSegmentStepCount(t *testing.T) {
	// Tighter tolerances must never produce fewer points.
	p1, p2 := geom.Pt(0, 0), geom.Pt(10, 0)
	coarse := BulgeSegment(p1, p2, 0.5, 1.0)
	fine := BulgeSegment(p1, p2, 0.5, 0.05)
	if len(fine) <= len(coarse) {
		t.Errorf("len(fine) = %d, len(coarse) = %d, want fine > coarse", len(fine), len(coarse))
	}

	// The minimum of two segments holds even for huge tolerances.
	pts := BulgeSegment(p1, p2, 0.5, 1e9)
	if len(pts) != 3 {
		t.Errorf("len(pts) = %d, want 3 (two segments)", len(pts))
	}
}

func TestArcPoints(t *testing.T) {
	b := numeric.Scalar()

	pts := ArcPoints(geom.Pt(0, 0), 1, 0, 90, DefaultChordTolerance, b)
	if len(pts) != 9 {
		t.Fatalf("len(pts) = %d, want 9 (8 step minimum)", len(pts))
	}
	if d := pts[0].Distance(geom.Pt(1, 0)); d > 1e-12 {
		t.Errorf("pts[0] = %v, want (1, 0)", pts[0])
	}
	if d := pts[8].Distance(geom.Pt(0, 1)); d > 1e-12 {
		t.Errorf("pts[8] = %v, want (0, 1)", pts[8])
	}
}

func TestArcPointsSweepNormalization(t *testing.T) {
	b := numeric.Scalar()

	// end < start wraps through 360: the 90..0 arc covers 270 degrees.
	pts := ArcPoints(geom.Pt(0, 0), 1, 90, 0, DefaultChordTolerance, b)
	if len(pts) == 0 {
		t.Fatal("ArcPoints(90..0) returned no points")
	}
	if d := pts[0].Distance(geom.Pt(0, 1)); d > 1e-12 {
		t.Errorf("pts[0] = %v, want (0, 1)", pts[0])
	}
	last := pts[len(pts)-1]
	if d := last.Distance(geom.Pt(1, 0)); d > 1e-12 {
		t.Errorf("pts[last] = %v, want (1, 0)", last)
	}

	// A zero sweep becomes a full turn.
	full := ArcPoints(geom.Pt(0, 0), 1, 45, 45, DefaultChordTolerance, b)
	lo, hi := full[0], full[len(full)-1]
	if d := lo.Distance(hi); d > 1e-9 {
		t.Errorf("full-turn endpoints %v and %v differ by %g", lo, hi, d)
	}
}

func TestArcPointsDegenerate(t *testing.T) {
	b := numeric.Scalar()

	if pts := ArcPoints(geom.Pt(0, 0), 0, 0, 90, DefaultChordTolerance, b); pts != nil {
		t.Errorf("ArcPoints(radius=0) = %v, want nil", pts)
	}
	if pts := ArcPoints(geom.Pt(0, 0), -2, 0, 90, DefaultChordTolerance, b); pts != nil {
		t.Errorf("ArcPoints(radius<0) = %v, want nil", pts)
	}
	if pts := ArcPoints(geom.Pt(0, 0), 1, 0, math.Inf(1), DefaultChordTolerance, b); pts != nil {
		t.Errorf("ArcPoints(end=+Inf) = %v, want nil", pts)
	}
	if pts := ArcPoints(geom.Pt(0, 0), 1e300, 0, 360, DefaultChordTolerance, b); pts != nil {
		t.Errorf("ArcPoints(radius=1e300) = %v, want nil", pts)
	}
}

func TestCirclePoints(t *testing.T) {
	b := numeric.Scalar()

	pts := CirclePoints(geom.Pt(5, 5), 2, DefaultChordTolerance, b)
	if len(pts) < 3 {
		t.Fatalf("len(pts) = %d, want >= 3", len(pts))
	}

	// The seam sample is dropped, leaving an open ring of on-circle points.
	first, last := pts[0], pts[len(pts)-1]
	if first.Distance(last) <= SeamTolerance {
		t.Errorf("seam not dropped: first %v, last %v", first, last)
	}
	for i, p := range pts {
		if r := p.Distance(geom.Pt(5, 5)); math.Abs(r-2) > 1e-9 {
			t.Errorf("pts[%d] radius = %v, want 2", i, r)
		}
	}

	if pts := CirclePoints(geom.Pt(0, 0), 0, DefaultChordTolerance, b); pts != nil {
		t.Errorf("CirclePoints(radius=0) = %v, want nil", pts)
	}
}

func TestSplinePoints(t *testing.T) {
	curvePts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 0)}

	tests := []struct {
		name string
		s    entity.Spline
		want []geom.Point
	}{
		{
			name: "curve evaluator",
			s:    entity.Spline{Curve: fixedCurve{curvePts}},
			want: curvePts,
		},
		{
			name: "duplicates merged",
			s: entity.Spline{Curve: fixedCurve{[]geom.Point{
				geom.Pt(0, 0), geom.Pt(0, 1e-9), geom.Pt(1, 1),
			}}},
			want: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)},
		},
		{
			name: "control fallback",
			s: entity.Spline{
				Curve:   fixedCurve{[]geom.Point{geom.Pt(0, 0)}},
				Control: []geom.Point{geom.Pt(0, 0), geom.Pt(3, 3)},
			},
			want: []geom.Point{geom.Pt(0, 0), geom.Pt(3, 3)},
		},
		{
			name: "no evaluator",
			s:    entity.Spline{Control: []geom.Point{geom.Pt(0, 0), geom.Pt(3, 3)}},
			want: []geom.Point{geom.Pt(0, 0), geom.Pt(3, 3)},
		},
		{
			name: "nothing usable",
			s:    entity.Spline{Control: []geom.Point{geom.Pt(1, 1)}},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplinePoints(tt.s, DefaultChordTolerance)
			if len(got) != len(tt.want) {
				t.Fatalf("SplinePoints() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplinePoints()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCleanPoints(t *testing.T) {
	// The comparison runs against the last kept point, so a chain of short
	// hops keeps any point that drifts far enough from the last survivor.
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(0.9, 0), geom.Pt(1.8, 0)}
	got := CleanPoints(pts, 1.0)
	want := []geom.Point{geom.Pt(0, 0), geom.Pt(1.8, 0)}
	if len(got) != len(want) {
		t.Fatalf("CleanPoints() = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("CleanPoints()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Input slice must not be modified.
	if pts[1] != geom.Pt(0.9, 0) {
		t.Errorf("input mutated: pts[1] = %v", pts[1])
	}

	if got := CleanPoints(nil, 1e-7); len(got) != 0 {
		t.Errorf("CleanPoints(nil) = %v, want empty", got)
	}
}

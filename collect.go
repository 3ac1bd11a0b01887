package dxfview

import (
	"github.com/Paullovitt/dxf-3d-viewer/entity"
	"github.com/Paullovitt/dxf-3d-viewer/geom"
	"github.com/Paullovitt/dxf-3d-viewer/numeric"
	"github.com/Paullovitt/dxf-3d-viewer/tessellate"
)

// Collect walks the document and tessellates every supported entity into a
// contour. Unsupported entity types and degenerate entities are skipped;
// collection never fails on a single bad entity.
func Collect(doc entity.Document, chordTol float64, b numeric.Backend) []Contour {
	var contours []Contour

	for ent := range doc.Entities() {
		switch e := ent.(type) {
		case entity.Line:
			contours = append(contours, Contour{
				Points: []geom.Point{e.Start, e.End},
			})

		case entity.Polyline:
			if c, ok := polylineContour(e, chordTol); ok {
				contours = append(contours, c)
			}

		case entity.Arc:
			if e.Radius <= 0 {
				continue
			}
			pts := tessellate.ArcPoints(e.Center, e.Radius, e.StartAngle, e.EndAngle, chordTol, b)
			if len(pts) >= 2 {
				contours = append(contours, Contour{Points: pts})
			}

		case entity.Circle:
			if e.Radius <= 0 {
				continue
			}
			if pts := tessellate.CirclePoints(e.Center, e.Radius, chordTol, b); pts != nil {
				contours = append(contours, Contour{Points: pts, Closed: true})
			}

		case entity.Spline:
			pts := tessellate.SplinePoints(e, chordTol)
			if e.Closed && len(pts) > 1 && pts[0].Distance(pts[len(pts)-1]) <= tessellate.SeamTolerance {
				pts = pts[:len(pts)-1]
			}
			minPts := 2
			if e.Closed {
				minPts = 3
			}
			if len(pts) >= minPts {
				contours = append(contours, Contour{Points: pts, Closed: e.Closed})
			}

		default:
			// Text, dimensions, inserts and other non-curve entities carry
			// no geometry for the viewer.
		}
	}

	return contours
}

// polylineContour expands a polyline's segments, honoring per-vertex bulge
// factors. Closed polylines get one extra segment from the last vertex back
// to the first.
func polylineContour(p entity.Polyline, chordTol float64) (Contour, bool) {
	verts := p.Vertices
	if len(verts) < 2 {
		return Contour{}, false
	}

	segs := len(verts) - 1
	if p.Closed {
		segs = len(verts)
	}

	pts := make([]geom.Point, 0, len(verts))
	pts = append(pts, verts[0].Point)
	for i := 0; i < segs; i++ {
		next := (i + 1) % len(verts)
		seg := tessellate.BulgeSegment(verts[i].Point, verts[next].Point, verts[i].Bulge, chordTol)
		// The segment's first point duplicates the tail of the previous one.
		pts = append(pts, seg[1:]...)
	}

	pts = tessellate.CleanPoints(pts, tessellate.MergeTolerance)
	if p.Closed && len(pts) > 1 && pts[0].Distance(pts[len(pts)-1]) <= tessellate.SeamTolerance {
		pts = pts[:len(pts)-1]
	}
	return Contour{Points: pts, Closed: p.Closed}, true
}

package dxfview

import (
	"github.com/Paullovitt/dxf-3d-viewer/geom"
	"github.com/Paullovitt/dxf-3d-viewer/numeric"
)

const (
	// dedupSqTol is the squared distance under which consecutive points
	// collapse during normalization.
	dedupSqTol = 1e-10

	// closeSeamTol is the distance under which a closed contour's last
	// point is considered a duplicate of its first.
	closeSeamTol = 1e-5

	// extentEps is the smallest width or height a drawing may have.
	extentEps = 1e-6
)

// Normalize deduplicates, validates and translates collected contours into
// a Drawing anchored at the origin. Contours that degenerate during cleaning
// are dropped silently; a closed contour left with fewer than three points
// is demoted to open before the final length check.
//
// Returns ErrNoContours when nothing survives and ErrDegenerateExtent when
// the surviving points span no area. The input contours are not modified.
func Normalize(contours []Contour, b numeric.Backend) (*Drawing, error) {
	valid := make([]Contour, 0, len(contours))
	total := 0

	for _, c := range contours {
		pts := b.Clean(c.Points, dedupSqTol)
		if len(pts) == 0 {
			continue
		}

		closed := c.Closed && len(pts) >= 3
		if closed && len(pts) > 1 && pts[0].Distance(pts[len(pts)-1]) <= closeSeamTol {
			pts = pts[:len(pts)-1]
		}

		minPts := 2
		if closed {
			minPts = 3
		}
		if len(pts) < minPts {
			continue
		}

		valid = append(valid, Contour{Points: pts, Closed: closed})
		total += len(pts)
	}

	if len(valid) == 0 {
		return nil, ErrNoContours
	}

	all := make([]geom.Point, 0, total)
	for i := range valid {
		all = append(all, valid[i].Points...)
	}
	bounds, ok := b.Bounds(all)
	if !ok {
		return nil, ErrNoContours
	}

	width := bounds.Max.X - bounds.Min.X
	height := bounds.Max.Y - bounds.Min.Y
	if width <= extentEps || height <= extentEps {
		return nil, ErrDegenerateExtent
	}

	shift := geom.Point{X: -bounds.Min.X, Y: -bounds.Min.Y}
	for i := range valid {
		b.Translate(valid[i].Points, shift)
	}

	return &Drawing{Contours: valid, Width: width, Height: height}, nil
}

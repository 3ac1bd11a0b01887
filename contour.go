package dxfview

import "github.com/Paullovitt/dxf-3d-viewer/geom"

// Contour is one polyline run extracted from a drawing. Closed contours
// represent rings whose last point connects back to the first; the closing
// point itself is not stored.
type Contour struct {
	Points []geom.Point `json:"points"`
	Closed bool         `json:"closed"`
}

// Drawing is a normalized set of contours translated to the origin.
// Width and Height span the axis-aligned extent of all points.
type Drawing struct {
	Contours []Contour `json:"contours"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
}

// Valid reports whether the drawing holds at least one contour and a
// positive extent. Cache records failing this check are discarded.
func (d *Drawing) Valid() bool {
	if d == nil || len(d.Contours) == 0 {
		return false
	}
	return d.Width > 0 && d.Height > 0
}

// ApproxSize estimates the in-memory footprint in bytes. The estimate feeds
// the byte budget of the memory cache; it only needs to be proportional,
// not exact.
func (d *Drawing) ApproxSize() int {
	if d == nil {
		return 0
	}
	const (
		drawingOverhead = 64
		contourOverhead = 48
		pointBytes      = 16
	)
	size := drawingOverhead
	for i := range d.Contours {
		size += contourOverhead + pointBytes*len(d.Contours[i].Points)
	}
	return size
}

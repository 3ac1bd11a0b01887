// Package preview renders normalized drawings into raster thumbnails.
//
// The renderer is deliberately small: closed contours are filled, open
// contours are stroked as quads, everything is scaled to fit the requested
// canvas with a margin. It exists for quick visual inspection of parse
// results, not for print-quality output.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	dxfview "github.com/Paullovitt/dxf-3d-viewer"
	"github.com/Paullovitt/dxf-3d-viewer/geom"
)

const (
	defaultSize        = 512
	defaultMargin      = 16
	defaultStrokeWidth = 1.5
)

// Options controls the rendered image. The zero value selects a 512x512
// white canvas with a 16 pixel margin.
type Options struct {
	// Width and Height are the canvas size in pixels. Zero selects 512.
	Width, Height int

	// Margin is the padding around the drawing in pixels.
	// Zero selects 16; negative values mean no margin.
	Margin int

	// StrokeWidth is the open-contour line width in pixels. Zero selects 1.5.
	StrokeWidth float64

	// Background, Fill and Stroke override the palette. Nil selects white,
	// light gray and near-black respectively.
	Background, Fill, Stroke color.Color
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = defaultSize
	}
	if o.Height <= 0 {
		o.Height = defaultSize
	}
	if o.Margin == 0 {
		o.Margin = defaultMargin
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = defaultStrokeWidth
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Fill == nil {
		o.Fill = color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}
	}
	if o.Stroke == nil {
		o.Stroke = color.RGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xff}
	}
	return o
}

// Render rasterizes a drawing scaled to fit the canvas. The drawing's Y
// axis points up, the image's down, so the output is flipped to match what
// a CAD viewer shows. Returns nil for drawings that fail Valid.
func Render(d *dxfview.Drawing, opts Options) *image.RGBA {
	if !d.Valid() {
		return nil
	}
	o := opts.withDefaults()

	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.Background), image.Point{}, draw.Src)

	innerW := float64(o.Width - 2*o.Margin)
	innerH := float64(o.Height - 2*o.Margin)
	if innerW <= 0 || innerH <= 0 {
		return img
	}
	scale := math.Min(innerW/d.Width, innerH/d.Height)
	offX := (float64(o.Width) - d.Width*scale) / 2
	offY := (float64(o.Height) - d.Height*scale) / 2

	place := func(p geom.Point) (float32, float32) {
		return float32(offX + p.X*scale), float32(offY + (d.Height-p.Y)*scale)
	}

	fill := vector.NewRasterizer(o.Width, o.Height)
	stroke := vector.NewRasterizer(o.Width, o.Height)
	strokedAny := false

	for _, c := range d.Contours {
		if len(c.Points) < 2 {
			continue
		}
		if c.Closed {
			x, y := place(c.Points[0])
			fill.MoveTo(x, y)
			for _, p := range c.Points[1:] {
				x, y = place(p)
				fill.LineTo(x, y)
			}
			fill.ClosePath()
			continue
		}
		for i := 1; i < len(c.Points); i++ {
			x1, y1 := place(c.Points[i-1])
			x2, y2 := place(c.Points[i])
			if quad(stroke, x1, y1, x2, y2, float32(o.StrokeWidth/2)) {
				strokedAny = true
			}
		}
	}

	fill.Draw(img, img.Bounds(), image.NewUniform(o.Fill), image.Point{})
	if strokedAny {
		stroke.Draw(img, img.Bounds(), image.NewUniform(o.Stroke), image.Point{})
	}
	return img
}

// quad emits one stroked segment as a filled quadrilateral. Zero-length
// segments are skipped; reports whether anything was emitted.
func quad(r *vector.Rasterizer, x1, y1, x2, y2, hw float32) bool {
	dx, dy := x2-x1, y2-y1
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return false
	}
	nx, ny := -dy/length*hw, dx/length*hw

	r.MoveTo(x1+nx, y1+ny)
	r.LineTo(x2+nx, y2+ny)
	r.LineTo(x2-nx, y2-ny)
	r.LineTo(x1-nx, y1-ny)
	r.ClosePath()
	return true
}

// EncodePNG writes an image as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("preview: nil image")
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("preview: encode png: %w", err)
	}
	return nil
}

// Package dxfview parses DXF drawings into normalized 2D contours for
// viewing and toolpath preparation.
//
// # Overview
//
// dxfview tessellates the curved entities of a DXF file (arcs, circles,
// bulged polylines, splines) into flat point runs, normalizes the result to
// the origin and serves repeated requests from a two-tier cache. Parsing is
// dispatched to worker pools so many files can be processed concurrently.
//
// # Quick Start
//
//	import "github.com/Paullovitt/dxf-3d-viewer"
//
//	p, err := dxfview.New(dxfview.ConfigFromEnv())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	res, err := p.Parse(ctx, data, dxfview.ModeCPU)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Drawing.Width, res.Drawing.Height)
//
// # Compute Modes
//
// Two modes are supported: ModeCPU runs the scalar kernels, ModeAccelerated
// runs the lane-batched kernels when an accelerated backend is registered.
// Enable the built-in batch backend with a blank import:
//
//	import _ "github.com/Paullovitt/dxf-3d-viewer/numeric/batch"
//
// Requests for an unavailable mode downgrade to CPU silently apart from a
// warning log line. Both backends produce coordinates within 1e-9 of each
// other, so cached results are interchangeable.
//
// # Caching
//
// Parsed drawings are cached twice: an in-memory LRU bounded by a byte
// budget derived from total RAM, and a disk tier keyed by content hash and
// compute mode. Disk records carry schema and parser version stamps; any
// mismatch or decode failure is treated as a miss and the file is parsed
// again.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Parser, Config, Drawing, Contour, Mode
//   - Geometry: geom (points, rects), tessellate (curve flattening)
//   - Numeric: numeric (scalar backend), numeric/batch (lane-batched backend)
//   - Input: entity (document model), dxf (reader)
//   - Storage: cache (memory LRU + disk tier)
//
// # Coordinate System
//
// Drawing coordinates follow the DXF convention: X increases right, Y
// increases up, angles are degrees counter-clockwise from the positive X
// axis. Normalized drawings have their minimum corner at the origin.
package dxfview

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 1
)

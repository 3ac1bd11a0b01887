// Package dxf reads ASCII DXF drawings into the entity model consumed by
// the parse pipeline.
//
// The reader understands the tagged group-code format: an integer group
// code on one line and its value on the next. It extracts LINE, ARC,
// CIRCLE, LWPOLYLINE, POLYLINE and SPLINE entities from the ENTITIES
// section and drops everything else. Values are decoded per the drawing's
// $DWGCODEPAGE header variable; R2007 and later files are UTF-8.
//
// Read is strict and fails on structural damage. Recover re-scans
// leniently, skipping unparseable lines and tolerating truncated sections,
// and fails only when no ENTITIES section exists at all.
package dxf

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/Paullovitt/dxf-3d-viewer/entity"
	"github.com/Paullovitt/dxf-3d-viewer/geom"
)

var (
	// ErrMalformed wraps every structural failure of the strict reader:
	// dangling group codes, non-integer code lines, unterminated sections.
	ErrMalformed = errors.New("dxf: malformed input")

	// ErrNoEntities reports that recovery found no ENTITIES section
	// anywhere in the input.
	ErrNoEntities = errors.New("dxf: no entities section found")
)

// Reader parses ASCII DXF. It is stateless and safe for concurrent use.
type Reader struct{}

// NewReader returns the bundled DXF reader.
func NewReader() *Reader { return &Reader{} }

// Read implements entity.Reader. It fails on any structural damage.
func (r *Reader) Read(data []byte) (entity.Document, error) {
	return parse(data, false)
}

// Recover implements entity.Reader. It salvages what it can from damaged
// input and fails only when no ENTITIES section is present.
func (r *Reader) Recover(data []byte) (entity.Document, error) {
	return parse(data, true)
}

// tag is one decoded group-code/value pair.
type tag struct {
	code  int
	value string
}

// rawTag is a pair before codepage decoding.
type rawTag struct {
	code  int
	value []byte
}

func parse(data []byte, lenient bool) (entity.Document, error) {
	raw, err := scanRaw(data, lenient)
	if err != nil {
		return nil, err
	}
	tags := decodeTags(raw, headerDecoder(raw, lenient))

	ents, found, err := parseSections(tags, lenient)
	if err != nil {
		return nil, err
	}
	if lenient && !found {
		return nil, ErrNoEntities
	}
	return ents, nil
}

// scanRaw splits the input into group-code/value pairs. Strict mode fails
// on a non-integer code line or a code with no value line; lenient mode
// skips single lines until the pairing realigns.
func scanRaw(data []byte, lenient bool) ([]rawTag, error) {
	lines := bytes.Split(data, []byte("\n"))
	for i, l := range lines {
		lines[i] = bytes.TrimSuffix(l, []byte("\r"))
	}
	// A trailing newline yields one empty trailing element.
	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}

	tags := make([]rawTag, 0, len(lines)/2)
	i := 0
	for i < len(lines) {
		code, err := strconv.Atoi(strings.TrimSpace(string(lines[i])))
		if err != nil {
			if lenient {
				i++
				continue
			}
			return nil, fmt.Errorf("%w: line %d: group code %q is not an integer",
				ErrMalformed, i+1, lines[i])
		}
		if i+1 >= len(lines) {
			if lenient {
				break
			}
			return nil, fmt.Errorf("%w: line %d: group code %d has no value",
				ErrMalformed, i+1, code)
		}
		tags = append(tags, rawTag{code: code, value: lines[i+1]})
		i += 2
	}
	return tags, nil
}

// headerDecoder scans the HEADER section for $DWGCODEPAGE and $ACADVER and
// returns the matching decoder. Both variables are ASCII, so this runs on
// the raw tags before any decoding.
func headerDecoder(tags []rawTag, lenient bool) *encoding.Decoder {
	var codepage, acadver, name string
	inHeader := false
	for i := 0; i < len(tags); i++ {
		t := tags[i]
		v := strings.TrimSpace(string(t.value))
		switch {
		case t.code == 0 && v == "SECTION":
			if i+1 < len(tags) && tags[i+1].code == 2 {
				inHeader = strings.TrimSpace(string(tags[i+1].value)) == "HEADER"
				i++
			}
		case t.code == 0 && v == "ENDSEC":
			if inHeader {
				return decoderFor(codepage, acadver, lenient)
			}
		case !inHeader:
		case t.code == 9:
			name = v
		case t.code == 3 && name == "$DWGCODEPAGE":
			codepage = v
		case t.code == 1 && name == "$ACADVER":
			acadver = v
		}
	}
	return decoderFor(codepage, acadver, lenient)
}

// decodeTags materializes string values through the drawing's decoder.
// Surrounding whitespace is insignificant for every group the reader
// consumes, so values are trimmed here once.
func decodeTags(raw []rawTag, dec *encoding.Decoder) []tag {
	tags := make([]tag, len(raw))
	for i, t := range raw {
		v, err := dec.String(string(t.value))
		if err != nil {
			v = string(t.value)
		}
		tags[i] = tag{code: t.code, value: strings.TrimSpace(v)}
	}
	return tags
}

// parseSections walks the top-level section structure. Sections other than
// ENTITIES are skipped whole; found reports whether an ENTITIES section
// was seen.
func parseSections(tags []tag, lenient bool) (entity.List, bool, error) {
	var ents entity.List
	found := false
	i := 0
	for i < len(tags) {
		t := tags[i]
		if t.code != 0 || t.value != "SECTION" {
			i++
			continue
		}
		name := ""
		if i+1 < len(tags) && tags[i+1].code == 2 {
			name = tags[i+1].value
			i += 2
		} else if lenient {
			i++
			continue
		} else {
			return nil, false, fmt.Errorf("%w: SECTION without a name tag", ErrMalformed)
		}

		if name == "ENTITIES" {
			found = true
			got, next, err := parseEntityBlocks(tags, i, lenient)
			if err != nil {
				return nil, false, err
			}
			ents = append(ents, got...)
			i = next
			continue
		}

		next, ok := skipSection(tags, i)
		if !ok && !lenient {
			return nil, false, fmt.Errorf("%w: unterminated %s section", ErrMalformed, name)
		}
		i = next
	}
	return ents, found, nil
}

// skipSection advances past the matching ENDSEC.
func skipSection(tags []tag, i int) (int, bool) {
	for ; i < len(tags); i++ {
		if tags[i].code == 0 && tags[i].value == "ENDSEC" {
			return i + 1, true
		}
	}
	return i, false
}

// blockEnd returns the index just past an entity block: the next code 0
// tag, or the end of the stream.
func blockEnd(tags []tag, i int) int {
	for i++; i < len(tags); i++ {
		if tags[i].code == 0 {
			return i
		}
	}
	return i
}

// parseEntityBlocks consumes the body of an ENTITIES section starting at
// the first entity tag and returns the index just past ENDSEC.
func parseEntityBlocks(tags []tag, i int, lenient bool) (entity.List, int, error) {
	var ents entity.List
	for i < len(tags) {
		t := tags[i]
		if t.code != 0 {
			// Stray data tag between entities; harmless.
			i++
			continue
		}
		if t.value == "ENDSEC" {
			return ents, i + 1, nil
		}

		end := blockEnd(tags, i)
		var (
			e   entity.Entity
			err error
		)
		switch t.value {
		case "LINE":
			e, err = parseLine(tags[i+1:end], lenient)
		case "CIRCLE":
			e, err = parseCircle(tags[i+1:end], lenient)
		case "ARC":
			e, err = parseArc(tags[i+1:end], lenient)
		case "LWPOLYLINE":
			e, err = parseLWPolyline(tags[i+1:end], lenient)
		case "POLYLINE":
			e, end, err = parsePolyline(tags, i, end, lenient)
		case "SPLINE":
			e, err = parseSpline(tags[i+1:end], lenient)
		default:
			// Entity kinds outside the pipeline's set are dropped here.
		}
		if err != nil {
			return nil, i, err
		}
		if e != nil {
			ents = append(ents, e)
		}
		i = end
	}
	if !lenient {
		return nil, i, fmt.Errorf("%w: unterminated ENTITIES section", ErrMalformed)
	}
	return ents, i, nil
}

func parseLine(block []tag, lenient bool) (entity.Entity, error) {
	var e entity.Line
	for _, t := range block {
		var err error
		switch t.code {
		case 10:
			err = setFloat(&e.Start.X, t, lenient)
		case 20:
			err = setFloat(&e.Start.Y, t, lenient)
		case 11:
			err = setFloat(&e.End.X, t, lenient)
		case 21:
			err = setFloat(&e.End.Y, t, lenient)
		}
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

func parseCircle(block []tag, lenient bool) (entity.Entity, error) {
	var e entity.Circle
	for _, t := range block {
		var err error
		switch t.code {
		case 10:
			err = setFloat(&e.Center.X, t, lenient)
		case 20:
			err = setFloat(&e.Center.Y, t, lenient)
		case 40:
			err = setFloat(&e.Radius, t, lenient)
		}
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

func parseArc(block []tag, lenient bool) (entity.Entity, error) {
	var e entity.Arc
	for _, t := range block {
		var err error
		switch t.code {
		case 10:
			err = setFloat(&e.Center.X, t, lenient)
		case 20:
			err = setFloat(&e.Center.Y, t, lenient)
		case 40:
			err = setFloat(&e.Radius, t, lenient)
		case 50:
			err = setFloat(&e.StartAngle, t, lenient)
		case 51:
			err = setFloat(&e.EndAngle, t, lenient)
		}
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// parseLWPolyline assembles vertices from repeated 10/20/42 groups. A code
// 10 starts a new vertex; 20 and 42 attach to the most recent one. The
// group 90 vertex count is advisory and ignored.
func parseLWPolyline(block []tag, lenient bool) (entity.Entity, error) {
	var (
		pl    entity.Polyline
		flags int
	)
	cur := -1
	for _, t := range block {
		var err error
		switch t.code {
		case 70:
			err = setInt(&flags, t, lenient)
		case 10:
			pl.Vertices = append(pl.Vertices, entity.Vertex{})
			cur = len(pl.Vertices) - 1
			err = setFloat(&pl.Vertices[cur].Point.X, t, lenient)
		case 20:
			if cur >= 0 {
				err = setFloat(&pl.Vertices[cur].Point.Y, t, lenient)
			}
		case 42:
			if cur >= 0 {
				err = setFloat(&pl.Vertices[cur].Bulge, t, lenient)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	pl.Closed = flags&1 != 0
	return pl, nil
}

// parsePolyline reads the legacy POLYLINE form: a header block, VERTEX
// blocks, then SEQEND. Strict mode requires the SEQEND; lenient mode
// accepts a truncated sequence.
func parsePolyline(tags []tag, start, headerEnd int, lenient bool) (entity.Entity, int, error) {
	var (
		pl    entity.Polyline
		flags int
	)
	for _, t := range tags[start+1 : headerEnd] {
		if t.code == 70 {
			if err := setInt(&flags, t, lenient); err != nil {
				return nil, 0, err
			}
		}
	}
	pl.Closed = flags&1 != 0

	i := headerEnd
	for i < len(tags) && tags[i].code == 0 && tags[i].value == "VERTEX" {
		end := blockEnd(tags, i)
		var v entity.Vertex
		for _, t := range tags[i+1 : end] {
			var err error
			switch t.code {
			case 10:
				err = setFloat(&v.Point.X, t, lenient)
			case 20:
				err = setFloat(&v.Point.Y, t, lenient)
			case 42:
				err = setFloat(&v.Bulge, t, lenient)
			}
			if err != nil {
				return nil, 0, err
			}
		}
		pl.Vertices = append(pl.Vertices, v)
		i = end
	}

	if i < len(tags) && tags[i].code == 0 && tags[i].value == "SEQEND" {
		i = blockEnd(tags, i)
	} else if !lenient {
		return nil, 0, fmt.Errorf("%w: POLYLINE without SEQEND", ErrMalformed)
	}
	return pl, i, nil
}

// parseSpline reads flags, degree, knots and control points. The curve
// evaluator is attached only when the data supports it; otherwise the
// control polygon remains the fallback.
func parseSpline(block []tag, lenient bool) (entity.Entity, error) {
	var (
		sp     entity.Spline
		flags  int
		degree = 3
		knots  []float64
	)
	cur := -1
	for _, t := range block {
		var err error
		switch t.code {
		case 70:
			err = setInt(&flags, t, lenient)
		case 71:
			err = setInt(&degree, t, lenient)
		case 40:
			var k float64
			if err = setFloat(&k, t, lenient); err == nil {
				knots = append(knots, k)
			}
		case 10:
			sp.Control = append(sp.Control, geom.Point{})
			cur = len(sp.Control) - 1
			err = setFloat(&sp.Control[cur].X, t, lenient)
		case 20:
			if cur >= 0 {
				err = setFloat(&sp.Control[cur].Y, t, lenient)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	sp.Closed = flags&1 != 0
	if c := newSplineCurve(degree, knots, sp.Control); c != nil {
		sp.Curve = c
	}
	return sp, nil
}

func setFloat(dst *float64, t tag, lenient bool) error {
	v, err := strconv.ParseFloat(t.value, 64)
	if err != nil {
		if lenient {
			return nil
		}
		return fmt.Errorf("%w: group %d: %q is not a number", ErrMalformed, t.code, t.value)
	}
	*dst = v
	return nil
}

func setInt(dst *int, t tag, lenient bool) error {
	v, err := strconv.Atoi(t.value)
	if err != nil {
		if lenient {
			return nil
		}
		return fmt.Errorf("%w: group %d: %q is not an integer", ErrMalformed, t.code, t.value)
	}
	*dst = v
	return nil
}

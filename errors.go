package dxfview

import (
	"errors"
	"fmt"
)

// Sentinel errors for input classification. Every input-level failure wraps
// ErrInvalidInput so callers can separate bad files from internal faults
// with a single errors.Is check.
var (
	// ErrInvalidInput is the base class of all rejected-input errors.
	ErrInvalidInput = errors.New("dxfview: invalid input")

	// ErrEmptyInput is returned when the input has zero bytes.
	ErrEmptyInput = fmt.Errorf("%w: empty file", ErrInvalidInput)

	// ErrNoContours is returned when no entity survives collection and
	// normalization.
	ErrNoContours = fmt.Errorf("%w: no usable contours", ErrInvalidInput)

	// ErrDegenerateExtent is returned when the drawing collapses to a
	// point or a line and has no drawable area.
	ErrDegenerateExtent = fmt.Errorf("%w: degenerate drawing extent", ErrInvalidInput)
)

package dxfview

import "strings"

// Mode selects the numeric backend used for tessellation and normalization.
type Mode string

const (
	// ModeCPU runs the scalar kernels. Always available.
	ModeCPU Mode = "cpu"

	// ModeAccelerated runs the lane-batched kernels when an accelerated
	// backend is registered. Requests for it downgrade to ModeCPU when no
	// backend is available.
	ModeAccelerated Mode = "accelerated"
)

// ParseMode normalizes a mode string. Unknown or empty values fall back to
// ModeCPU, mirroring the lenient treatment of client-supplied mode fields.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeAccelerated)) {
		return ModeAccelerated
	}
	return ModeCPU
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

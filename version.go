package dxfview

// Cache gating constants. Bump ParserVersion whenever tessellation or
// normalization output changes shape or values; bump SchemaVersion when the
// disk record layout itself changes. Either bump invalidates all existing
// cache records.
const (
	// SchemaVersion is the disk cache record layout version.
	SchemaVersion = 2

	// ParserVersion stamps cache records with the parse semantics that
	// produced them.
	ParserVersion = "dxf-parse-v3"
)

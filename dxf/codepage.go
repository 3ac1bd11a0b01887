package dxf

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// codepages maps $DWGCODEPAGE names to the single-byte encodings used by
// pre-R2007 drawings.
var codepages = map[string]encoding.Encoding{
	"ANSI_874":  charmap.Windows874,
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1255": charmap.Windows1255,
	"ANSI_1256": charmap.Windows1256,
	"ANSI_1257": charmap.Windows1257,
	"ANSI_1258": charmap.Windows1258,
}

// decoderFor selects the text decoder for a drawing. R2007 (AC1021) and
// later files are UTF-8 regardless of the codepage header. Older files use
// the named codepage; unknown or missing names pass bytes through
// unchanged, or fall back to Windows-1252 when lenient.
func decoderFor(codepage, acadver string, lenient bool) *encoding.Decoder {
	// Version strings order lexically: AC1009 < AC1015 < AC1021.
	if acadver >= "AC1021" {
		return encoding.Nop.NewDecoder()
	}
	if enc, ok := codepages[strings.ToUpper(strings.TrimSpace(codepage))]; ok {
		return enc.NewDecoder()
	}
	if lenient {
		return charmap.Windows1252.NewDecoder()
	}
	return encoding.Nop.NewDecoder()
}

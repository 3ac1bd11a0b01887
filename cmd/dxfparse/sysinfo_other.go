//go:build !linux

package main

// totalRAM reports zero on platforms without a memory probe; the parser
// then assumes its documented default.
func totalRAM() uint64 { return 0 }

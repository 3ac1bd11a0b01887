package dxfview

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"cpu", ModeCPU},
		{"CPU", ModeCPU},
		{"accelerated", ModeAccelerated},
		{"ACCELERATED", ModeAccelerated},
		{"  Accelerated ", ModeAccelerated},
		{"", ModeCPU},
		{"gpu", ModeCPU},
		{"cuda", ModeCPU},
		{"fast please", ModeCPU},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

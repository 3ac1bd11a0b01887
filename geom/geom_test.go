package geom

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPoint_Distance(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want float64
	}{
		{"same point", Pt(1, 1), Pt(1, 1), 0},
		{"unit x", Pt(0, 0), Pt(1, 0), 1},
		{"3-4-5", Pt(0, 0), Pt(3, 4), 5},
		{"negative quadrant", Pt(-3, -4), Pt(0, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Distance(tt.q); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
			if got := tt.p.DistanceSquared(tt.q); math.Abs(got-tt.want*tt.want) > 1e-12 {
				t.Errorf("DistanceSquared() = %v, want %v", got, tt.want*tt.want)
			}
		})
	}
}

func TestPoint_Lerp(t *testing.T) {
	p, q := Pt(0, 0), Pt(10, 20)

	if got := p.Lerp(q, 0); got != p {
		t.Errorf("Lerp(0) = %v, want %v", got, p)
	}
	if got := p.Lerp(q, 1); got != q {
		t.Errorf("Lerp(1) = %v, want %v", got, q)
	}
	if got := p.Lerp(q, 0.5); got != Pt(5, 10) {
		t.Errorf("Lerp(0.5) = %v, want %v", got, Pt(5, 10))
	}
}

func TestPoint_IsFinite(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"finite", Pt(1, 2), true},
		{"zero", Pt(0, 0), true},
		{"nan x", Pt(math.NaN(), 0), false},
		{"nan y", Pt(0, math.NaN()), false},
		{"+inf", Pt(math.Inf(1), 0), false},
		{"-inf", Pt(0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPoint_JSON(t *testing.T) {
	data, err := json.Marshal(Pt(1.5, -2.25))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[1.5,-2.25]" {
		t.Errorf("Marshal = %s, want [1.5,-2.25]", data)
	}

	var p Point
	if err := json.Unmarshal([]byte("[3,4]"), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p != Pt(3, 4) {
		t.Errorf("Unmarshal = %v, want %v", p, Pt(3, 4))
	}

	if err := json.Unmarshal([]byte(`{"x":1}`), &p); err == nil {
		t.Error("Unmarshal of object should fail, got nil error")
	}
}

func TestRect(t *testing.T) {
	r := NewRect(Pt(10, 2), Pt(-3, 8))

	if r.Min != Pt(-3, 2) || r.Max != Pt(10, 8) {
		t.Errorf("NewRect normalized to %v..%v, want (-3,2)..(10,8)", r.Min, r.Max)
	}
	if got := r.Width(); got != 13 {
		t.Errorf("Width() = %v, want 13", got)
	}
	if got := r.Height(); got != 6 {
		t.Errorf("Height() = %v, want 6", got)
	}

	u := r.Union(NewRect(Pt(-5, 0), Pt(0, 0)))
	if u.Min != Pt(-5, 0) || u.Max != Pt(10, 8) {
		t.Errorf("Union = %v..%v, want (-5,0)..(10,8)", u.Min, u.Max)
	}

	if !r.Contains(Pt(0, 5)) {
		t.Error("Contains(0,5) = false, want true")
	}
	if r.Contains(Pt(11, 5)) {
		t.Error("Contains(11,5) = true, want false")
	}
}

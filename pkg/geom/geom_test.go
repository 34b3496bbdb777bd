package geom

import "testing"

func TestClamp(t *testing.T) {
	type tc struct {
		v, lo, hi float64
		want      float64
	}

	tests := map[string]tc{
		"inside range":    {v: 5, lo: 0, hi: 10, want: 5},
		"below range":     {v: -3, lo: 0, hi: 10, want: 0},
		"above range":     {v: 42, lo: 0, hi: 10, want: 10},
		"lo wins on flip": {v: 5, lo: 8, hi: 3, want: 8},
		"exact lo":        {v: 0, lo: 0, hi: 10, want: 0},
		"exact hi":        {v: 10, lo: 0, hi: 10, want: 10},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%g, %g, %g) = %g, want %g", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestAxis_Flip(t *testing.T) {
	if got := Horizontal.Flip(); got != Vertical {
		t.Errorf("Horizontal.Flip() = %v, want %v", got, Vertical)
	}
	if got := Vertical.Flip(); got != Horizontal {
		t.Errorf("Vertical.Flip() = %v, want %v", got, Horizontal)
	}
}

func TestOffset_Math(t *testing.T) {
	a := Off(3, 4)
	b := Off(1, 2)

	if got := a.Add(b); got != Off(4, 6) {
		t.Errorf("Add() = %v, want (4, 6)", got)
	}
	if got := a.Sub(b); got != Off(2, 2) {
		t.Errorf("Sub() = %v, want (2, 2)", got)
	}
	if got := a.Scale(2); got != Off(6, 8) {
		t.Errorf("Scale(2) = %v, want (6, 8)", got)
	}
	if !Off(0, 0).IsZero() {
		t.Error("Off(0, 0).IsZero() = false, want true")
	}
	if a.IsZero() {
		t.Error("Off(3, 4).IsZero() = true, want false")
	}
}

func TestOffset_Along(t *testing.T) {
	o := Off(7, 9)
	if got := o.Along(Horizontal); got != 7 {
		t.Errorf("Along(Horizontal) = %g, want 7", got)
	}
	if got := o.Along(Vertical); got != 9 {
		t.Errorf("Along(Vertical) = %g, want 9", got)
	}
}

func TestByAxis(t *testing.T) {
	if got := ByAxis(Horizontal, 10, 20); got != Off(10, 20) {
		t.Errorf("ByAxis(Horizontal, 10, 20) = %v, want (10, 20)", got)
	}
	if got := ByAxis(Vertical, 10, 20); got != Off(20, 10) {
		t.Errorf("ByAxis(Vertical, 10, 20) = %v, want (20, 10)", got)
	}
}

func TestSize_Axes(t *testing.T) {
	s := Sz(100, 50)
	if got := s.Along(Horizontal); got != 100 {
		t.Errorf("Along(Horizontal) = %g, want 100", got)
	}
	if got := s.Along(Vertical); got != 50 {
		t.Errorf("Along(Vertical) = %g, want 50", got)
	}
	if got := s.Across(Horizontal); got != 50 {
		t.Errorf("Across(Horizontal) = %g, want 50", got)
	}
}

func TestSize_Expand(t *testing.T) {
	s := Sz(100, 50).Expand(InsetsAll(8))
	if s != Sz(116, 66) {
		t.Errorf("Expand(InsetsAll(8)) = %v, want 116x66", s)
	}
}

func TestRect_Intersect(t *testing.T) {
	type tc struct {
		a, b Rect
		want Rect
	}

	tests := map[string]tc{
		"overlapping": {
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 5, Y: 5, Width: 10, Height: 10},
			want: Rect{X: 5, Y: 5, Width: 5, Height: 5},
		},
		"disjoint": {
			a:    Rect{X: 0, Y: 0, Width: 4, Height: 4},
			b:    Rect{X: 10, Y: 10, Width: 4, Height: 4},
			want: Rect{},
		},
		"contained": {
			a:    Rect{X: 0, Y: 0, Width: 20, Height: 20},
			b:    Rect{X: 5, Y: 5, Width: 2, Height: 2},
			want: Rect{X: 5, Y: 5, Width: 2, Height: 2},
		},
		"edge touch is empty": {
			a:    Rect{X: 0, Y: 0, Width: 5, Height: 5},
			b:    Rect{X: 5, Y: 0, Width: 5, Height: 5},
			want: Rect{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(Off(0, 0)) {
		t.Error("Contains(min corner) = false, want true")
	}
	if r.Contains(Off(10, 10)) {
		t.Error("Contains(max corner) = true, want false")
	}
}

func TestEdgeInsets(t *testing.T) {
	in := InsetsSymmetric(4, 6)
	if got := in.Horizontal(); got != 8 {
		t.Errorf("Horizontal() = %g, want 8", got)
	}
	if got := in.Vertical(); got != 12 {
		t.Errorf("Vertical() = %g, want 12", got)
	}
	if got := in.TopLeft(); got != Off(4, 6) {
		t.Errorf("TopLeft() = %v, want (4, 6)", got)
	}
	if !(EdgeInsets{}).IsZero() {
		t.Error("zero insets IsZero() = false, want true")
	}
}

package svgfx

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRectPixels(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want image.Rectangle
	}{
		{"integral", XYWH(1, 2, 3, 4), image.Rect(1, 2, 4, 6)},
		{"rounds outward", Rect{0.5, 1.2, 3.1, 4}, image.Rect(0, 1, 4, 4)},
		{"negative", Rect{-1.5, -0.1, 0.1, 1}, image.Rect(-2, -1, 1, 1)},
		{"empty", Rect{2, 2, 2, 5}, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Pixels(); got != tt.want {
				t.Errorf("Pixels() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectSetOps(t *testing.T) {
	a := XYWH(0, 0, 10, 10)
	b := XYWH(5, -5, 10, 10)

	if diff := cmp.Diff(Rect{0, -5, 15, 10}, a.Union(b)); diff != "" {
		t.Errorf("Union mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Rect{5, 0, 10, 5}, a.Intersect(b)); diff != "" {
		t.Errorf("Intersect mismatch (-want +got):\n%s", diff)
	}
	if got := a.Intersect(XYWH(20, 20, 1, 1)); got != (Rect{}) {
		t.Errorf("disjoint Intersect = %+v, want zero", got)
	}
	if !a.Contains(XYWH(1, 1, 2, 2)) || a.Contains(b) {
		t.Error("Contains gave the wrong answer")
	}
	if diff := cmp.Diff(Rect{3, -2, 13, 8}, a.Translate(3, -2)); diff != "" {
		t.Errorf("Translate mismatch (-want +got):\n%s", diff)
	}
}

func TestGrowAndOverhang(t *testing.T) {
	r := XYWH(10, 10, 10, 10)
	in := Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}
	grown := r.Grow(in)
	if diff := cmp.Diff(Rect{8, 9, 24, 23}, grown); diff != "" {
		t.Errorf("Grow mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(in, Overhang(r, grown)); diff != "" {
		t.Errorf("Overhang of grown rect mismatch (-want +got):\n%s", diff)
	}
	if got := Overhang(r, XYWH(12, 12, 2, 2)); !got.IsZero() {
		t.Errorf("Overhang of inner rect = %+v, want zero", got)
	}
}

func TestInsetsMinMax(t *testing.T) {
	a := Insets{Top: 1, Left: 5, Bottom: 2, Right: 0}
	b := Insets{Top: 3, Left: 1, Bottom: 2, Right: 4}
	if diff := cmp.Diff(Insets{Top: 3, Left: 5, Bottom: 2, Right: 4}, a.Max(b)); diff != "" {
		t.Errorf("Max mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Insets{Top: 1, Left: 1, Bottom: 2, Right: 0}, a.Min(b)); diff != "" {
		t.Errorf("Min mismatch (-want +got):\n%s", diff)
	}
}

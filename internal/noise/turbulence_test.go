package noise

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRandom(t *testing.T) {
	// Park-Miller with seed 1 yields 16807 then 282475249.
	s := random(1)
	if s != 16807 {
		t.Fatalf("random(1) = %d, want 16807", s)
	}
	if s = random(s); s != 282475249 {
		t.Errorf("random(16807) = %d, want 282475249", s)
	}
}

func TestSetupSeed(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-5, 6},
		{42, 42},
		{randM + 10, randM - 1},
	}
	for _, tt := range tests {
		if got := setupSeed(tt.in); got != tt.want {
			t.Errorf("setupSeed(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTurbulenceDeterministic(t *testing.T) {
	a := New(7, 3, 0.05, 0.05)
	b := New(7, 3, 0.05, 0.05)
	for y := 0.0; y < 20; y += 3.5 {
		for x := 0.0; x < 20; x += 2.25 {
			for _, fractal := range []bool{false, true} {
				if diff := cmp.Diff(a.At(x, y, fractal, nil), b.At(x, y, fractal, nil)); diff != "" {
					t.Fatalf("At(%v, %v) differs (-a +b):\n%s", x, y, diff)
				}
			}
		}
	}
}

func TestTurbulenceSeedMatters(t *testing.T) {
	a := New(1, 1, 0.1, 0.1).At(3.3, 4.4, false, nil)
	b := New(2, 1, 0.1, 0.1).At(3.3, 4.4, false, nil)
	if a == b {
		t.Error("different seeds produced identical noise")
	}
}

func TestTurbulenceRange(t *testing.T) {
	gen := New(0, 4, 0.08, 0.08)
	for y := 0.0; y < 50; y += 1.7 {
		for x := 0.0; x < 50; x += 1.3 {
			tv := gen.At(x, y, false, nil)
			fv := gen.At(x, y, true, nil)
			for c := 0; c < 4; c++ {
				if tv[c] < 0 {
					t.Fatalf("turbulence channel %d = %v < 0", c, tv[c])
				}
				if fv[c] < -64 || fv[c] > 320 {
					t.Fatalf("fractal channel %d = %v far outside range", c, fv[c])
				}
			}
		}
	}
}

func TestZeroOctaves(t *testing.T) {
	gen := New(3, 0, 0.1, 0.1)
	if got := gen.At(1, 1, false, nil); got != [4]float64{} {
		t.Errorf("turbulence with no octaves = %v, want zeros", got)
	}
	want := [4]float64{127.5, 127.5, 127.5, 127.5}
	if got := gen.At(1, 1, true, nil); got != want {
		t.Errorf("fractal with no octaves = %v, want %v", got, want)
	}
}

func TestOctavesClamped(t *testing.T) {
	if got := New(0, 100, 0, 0).octaves; got != MaxOctaves {
		t.Errorf("octaves = %d, want %d", got, MaxOctaves)
	}
}

func TestAdjustFrequency(t *testing.T) {
	// 100 * 0.013 = 1.3 cells, nearest whole count is 1.
	if got := adjustFrequency(0.013, 100); got != 0.01 {
		t.Errorf("adjustFrequency(0.013, 100) = %v, want 0.01", got)
	}
	if got := adjustFrequency(0.018, 100); got != 0.02 {
		t.Errorf("adjustFrequency(0.018, 100) = %v, want 0.02", got)
	}
}

// Package noise implements the Perlin turbulence function of feTurbulence.
//
// The generator is seeded with the Park-Miller minimal standard RNG so that
// output is deterministic for a given seed, frequency and octave count.
package noise

import "math"

// Park-Miller "minimal standard" generator constants.
const (
	randM = 2147483647 // 2**31 - 1
	randA = 16807      // 7**5, primitive root of m
	randQ = 127773     // m / a
	randR = 2836       // m % a
)

const (
	bSize   = 0x100
	bMask   = 0xff
	perlinN = 0x1000
)

// MaxOctaves is the largest useful octave count. Each octave halves its
// contribution, so past eight it is below half a code value.
const MaxOctaves = 8

// Tile is the stitching rectangle in noise-space user units.
type Tile struct {
	X, Y, Width, Height float64
}

// Turbulence is a seeded four-channel Perlin noise generator.
// It is safe for concurrent use once constructed.
type Turbulence struct {
	lattice  [bSize + 1]int
	gradient [(bSize + 1) * 8]float64
	octaves  int
	freqX    float64
	freqY    float64
}

// New creates a generator. octaves is clamped to [0, MaxOctaves].
func New(seed, octaves int, freqX, freqY float64) *Turbulence {
	t := &Turbulence{
		octaves: min(max(octaves, 0), MaxOctaves),
		freqX:   freqX,
		freqY:   freqY,
	}
	t.init(seed)
	return t
}

func setupSeed(seed int) int {
	if seed <= 0 {
		seed = -(seed % (randM - 1)) + 1
	}
	if seed > randM-1 {
		seed = randM - 1
	}
	return seed
}

func random(seed int) int {
	r := randA*(seed%randQ) - randR*(seed/randQ)
	if r <= 0 {
		r += randM
	}
	return r
}

func (t *Turbulence) init(seed int) {
	s := setupSeed(seed)
	next := func() int {
		s = random(s)
		return s
	}

	for k := 0; k < 4; k++ {
		for i := 0; i < bSize; i++ {
			var u, v float64
			for u == 0 && v == 0 {
				u = float64(next()%(2*bSize) - bSize)
				v = float64(next()%(2*bSize) - bSize)
			}
			n := math.Hypot(u, v)
			t.gradient[i*8+k*2] = u / n
			t.gradient[i*8+k*2+1] = v / n
		}
	}

	for i := 0; i < bSize; i++ {
		t.lattice[i] = i
	}
	for i := bSize - 1; i > 0; i-- {
		j := next() % bSize
		t.lattice[i], t.lattice[j] = t.lattice[j], t.lattice[i]
		for c := 0; c < 8; c++ {
			t.gradient[i*8+c], t.gradient[j*8+c] = t.gradient[j*8+c], t.gradient[i*8+c]
		}
	}
	t.lattice[bSize] = t.lattice[0]
	copy(t.gradient[bSize*8:], t.gradient[:8])
}

type stitchState struct {
	width, height int
	wrapX, wrapY  int
}

func sCurve(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func (t *Turbulence) noise2(out *[4]float64, x, y float64, st *stitchState) {
	tx := x + perlinN
	bx0 := int(tx)
	bx1 := bx0 + 1
	rx0 := tx - float64(bx0)
	rx1 := rx0 - 1
	sx := sCurve(rx0)

	ty := y + perlinN
	by0 := int(ty)
	by1 := by0 + 1
	ry0 := ty - float64(by0)
	ry1 := ry0 - 1
	sy := sCurve(ry0)

	if st != nil {
		if bx0 >= st.wrapX {
			bx0 -= st.width
		}
		if bx1 >= st.wrapX {
			bx1 -= st.width
		}
		if by0 >= st.wrapY {
			by0 -= st.height
		}
		if by1 >= st.wrapY {
			by1 -= st.height
		}
	}
	bx0 &= bMask
	bx1 &= bMask
	by0 &= bMask
	by1 &= bMask

	i := t.lattice[bx0]
	j := t.lattice[bx1]
	b00 := ((i + by0) & bMask) << 3
	b10 := ((j + by0) & bMask) << 3
	b01 := ((i + by1) & bMask) << 3
	b11 := ((j + by1) & bMask) << 3

	g := &t.gradient
	for c := range out {
		o := 2 * c
		u := rx0*g[b00+o] + ry0*g[b00+o+1]
		v := rx1*g[b10+o] + ry0*g[b10+o+1]
		a := lerp(sx, u, v)
		u = rx0*g[b01+o] + ry1*g[b01+o+1]
		v = rx1*g[b11+o] + ry1*g[b11+o+1]
		out[c] = lerp(sy, a, lerp(sx, u, v))
	}
}

// At evaluates the noise at (x, y) and returns R, G, B, A on the 0..255
// scale. Values are not clamped. fractal selects fractalNoise instead of
// turbulence. A non-nil tile enables stitching.
func (t *Turbulence) At(x, y float64, fractal bool, tile *Tile) [4]float64 {
	fx, fy := t.freqX, t.freqY
	var st *stitchState
	if tile != nil {
		if fx != 0 {
			fx = adjustFrequency(fx, tile.Width)
		}
		if fy != 0 {
			fy = adjustFrequency(fy, tile.Height)
		}
		st = &stitchState{
			width:  int(tile.Width*fx + 0.5),
			height: int(tile.Height*fy + 0.5),
		}
		st.wrapX = int(tile.X*fx + perlinN + float64(st.width))
		st.wrapY = int(tile.Y*fy + perlinN + float64(st.height))
	}

	var sum, n [4]float64
	ratio := 255.0
	if fractal {
		sum = [4]float64{127.5, 127.5, 127.5, 127.5}
		ratio = 127.5
	}
	vx, vy := x*fx, y*fy

	for o := 0; o < t.octaves; o++ {
		t.noise2(&n, vx, vy, st)
		for c := range sum {
			if fractal {
				sum[c] += n[c] * ratio
			} else {
				sum[c] += math.Abs(n[c]) * ratio
			}
		}
		vx *= 2
		vy *= 2
		ratio *= 0.5
		if st != nil {
			st.width *= 2
			st.wrapX = 2*st.wrapX + perlinN
			st.height *= 2
			st.wrapY = 2*st.wrapY + perlinN
		}
	}
	return sum
}

// adjustFrequency picks the nearest frequency that fits a whole number of
// lattice cells into the tile.
func adjustFrequency(freq, size float64) float64 {
	lo := math.Floor(size*freq) / size
	hi := math.Ceil(size*freq) / size
	if freq/lo < hi/freq {
		return lo
	}
	return hi
}

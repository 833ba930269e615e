package blur

import (
	"sync"

	"github.com/gogpu/svgfx/internal/color"
)

// EdgeMode selects how pixels outside the input are sampled.
type EdgeMode uint8

const (
	// EdgeNone treats pixels outside the input as transparent black.
	EdgeNone EdgeMode = iota
	// EdgeDuplicate repeats the nearest edge pixel.
	EdgeDuplicate
	// EdgeWrap samples from the opposite edge.
	EdgeWrap
)

// String returns the SVG attribute value of the edge mode.
func (m EdgeMode) String() string {
	switch m {
	case EdgeDuplicate:
		return "duplicate"
	case EdgeWrap:
		return "wrap"
	default:
		return "none"
	}
}

// Options configures a blur.
type Options struct {
	// SigmaX and SigmaY are the deviations in device pixels.
	SigmaX, SigmaY float64
	Edge           EdgeMode
	// AlphaOnly blurs only the alpha channel and zeros color.
	AlphaOnly bool
}

// IsNoop reports whether the options leave the image unchanged.
// A negative deviation on either axis disables the blur, as does zero on
// both. An alpha-only blur always changes color, so it is never a no-op.
func (o Options) IsNoop() bool {
	if o.AlphaOnly {
		return false
	}
	return o.disabled() || (o.SigmaX == 0 && o.SigmaY == 0)
}

func (o Options) disabled() bool {
	return o.SigmaX < 0 || o.SigmaY < 0
}

// Apply blurs src and returns a new plane of the same size and color
// space. src is not modified. Results are clamped to [0, 1] with color
// clamped to alpha.
func Apply(src *color.Plane, o Options) *color.Plane {
	if src == nil {
		return nil
	}
	w, h := src.Width, src.Height
	dst := &color.Plane{Width: w, Height: h, Pix: make([]float32, len(src.Pix)), Space: src.Space}
	if o.IsNoop() || w <= 0 || h <= 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}
	channels := []int{0, 1, 2, 3}
	if o.AlphaOnly {
		channels = []int{3}
	}

	buf := getBuffer(len(src.Pix))
	defer putBuffer(buf)
	copy(buf.data, src.Pix)

	if o.SigmaX > 0 && !o.disabled() {
		blurAxis(buf.data, w, h, 4, w*4, channels, o.SigmaX, o.Edge)
	}
	if o.SigmaY > 0 && !o.disabled() {
		blurAxis(buf.data, h, w, w*4, 4, channels, o.SigmaY, o.Edge)
	}

	out := dst.Pix
	for i := 0; i+3 < len(out); i += 4 {
		a := clampUnit(buf.data[i+3])
		out[i+3] = a
		if o.AlphaOnly {
			continue
		}
		out[i] = min(clampUnit(buf.data[i]), a)
		out[i+1] = min(clampUnit(buf.data[i+1]), a)
		out[i+2] = min(clampUnit(buf.data[i+2]), a)
	}
	return dst
}

// blurAxis blurs n-pixel lines in place. step is the distance between
// pixels of one line and lineStep the distance between lines.
func blurAxis(data []float32, n, lines, step, lineStep int, channels []int, sigma float64, edge EdgeMode) {
	line := make([]float32, n)
	tmp := make([]float32, n)
	var kernel []float32
	var passes [3]box
	explicit := sigma < BoxThreshold
	if explicit {
		kernel = GaussianKernel(sigma)
	} else {
		passes = boxPasses(KernelDiameter(sigma))
	}

	for l := 0; l < lines; l++ {
		base := l * lineStep
		for _, c := range channels {
			for i := range line {
				line[i] = data[base+i*step+c]
			}
			if explicit {
				convolve(tmp, line, kernel, edge)
				line, tmp = tmp, line
			} else {
				for _, b := range passes {
					boxPass(tmp, line, b, edge)
					line, tmp = tmp, line
				}
			}
			for i, v := range line {
				data[base+i*step+c] = v
			}
		}
	}
}

// convolve writes src convolved with a centered kernel into dst.
func convolve(dst, src, kernel []float32, edge EdgeMode) {
	r := len(kernel) / 2
	for i := range dst {
		var sum float32
		for k, w := range kernel {
			sum += w * sample(src, i+k-r, edge)
		}
		dst[i] = sum
	}
}

// boxPass writes the running-window average of src into dst.
func boxPass(dst, src []float32, b box, edge EdgeMode) {
	right := b.size - 1 - b.left
	var sum float32
	for j := -b.left; j <= right; j++ {
		sum += sample(src, j, edge)
	}
	inv := 1 / float32(b.size)
	for i := range dst {
		dst[i] = sum * inv
		sum += sample(src, i+right+1, edge) - sample(src, i-b.left, edge)
	}
}

func sample(line []float32, i int, edge EdgeMode) float32 {
	n := len(line)
	if i >= 0 && i < n {
		return line[i]
	}
	switch edge {
	case EdgeDuplicate:
		if i < 0 {
			return line[0]
		}
		return line[n-1]
	case EdgeWrap:
		return line[((i%n)+n)%n]
	default:
		return 0
	}
}

func clampUnit(v float32) float32 {
	return max(0, min(1, v))
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var bufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{}
	},
}

func getBuffer(size int) *floatBuffer {
	b := bufferPool.Get().(*floatBuffer)
	if cap(b.data) < size {
		b.data = make([]float32, size)
	}
	b.data = b.data[:size]
	return b
}

func putBuffer(b *floatBuffer) {
	// Large buffers are left to the collector.
	if cap(b.data) <= 16*1024*1024 {
		bufferPool.Put(b)
	}
}

package blur

import (
	"math"

	"github.com/gogpu/svgfx/internal/cache"
)

// BoxThreshold is the deviation from which three box passes replace the
// explicit kernel.
const BoxThreshold = 2.0

// tailPrecision is the probability mass one side of the explicit kernel must
// cover. The remaining tail is below 0.001.
const tailPrecision = 0.499

var sqrt2Pi = math.Sqrt(2 * math.Pi)

// KernelDiameter returns the box size d used for three-pass box blurring.
// It is non-decreasing in sigma. Values <= 0 return 0.
func KernelDiameter(sigma float64) int {
	if sigma <= 0 || math.IsNaN(sigma) {
		return 0
	}
	return int(math.Floor(0.75*sqrt2Pi*sigma + 0.5))
}

// KernelRadius returns the half width of the explicit Gaussian kernel.
// The discrete normal density is accumulated from the center outward until
// one side holds tailPrecision of the mass.
func KernelRadius(sigma float64) int {
	if sigma <= 0 || math.IsNaN(sigma) {
		return 0
	}
	norm := 1 / (sigma * sqrt2Pi)
	twoSigmaSq := 2 * sigma * sigma
	area := 0.5 * norm
	i := 0
	for area < tailPrecision {
		i++
		area += math.Exp(-float64(i*i)/twoSigmaSq) * norm
	}
	return i
}

// Extent returns how many pixels a blur with deviation sigma reaches beyond
// the input on each side.
func Extent(sigma float64) int {
	if sigma <= 0 || math.IsNaN(sigma) {
		return 0
	}
	if sigma < BoxThreshold {
		return KernelRadius(sigma)
	}
	left, right := 0, 0
	for _, b := range boxPasses(KernelDiameter(sigma)) {
		left += b.left
		right += b.size - 1 - b.left
	}
	return max(left, right)
}

// GaussianKernel returns the normalized explicit kernel for sigma.
// Its length is 2*KernelRadius(sigma)+1. For sigma <= 0 it returns [1].
// Kernels are cached; the returned slice must not be modified.
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 || math.IsNaN(sigma) {
		return []float32{1}
	}
	return kernels.GetOrCreate(sigma, func() []float32 {
		return gaussianKernel(sigma)
	})
}

var kernels = cache.New[float64, []float32](64)

// KernelStats reports the state of the explicit kernel cache.
func KernelStats() cache.Stats {
	return kernels.Stats()
}

func gaussianKernel(sigma float64) []float32 {
	radius := KernelRadius(sigma)
	kernel := make([]float32, 2*radius+1)
	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	weights := make([]float64, len(kernel))
	for i := range weights {
		x := float64(i - radius)
		weights[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += weights[i]
	}
	for i, w := range weights {
		kernel[i] = float32(w / sum)
	}
	return kernel
}

// box is one box-blur pass. The window covers left pixels before the output
// pixel and size-1-left after it.
type box struct {
	size int
	left int
}

// boxPasses returns the three passes for box size d.
func boxPasses(d int) [3]box {
	if d%2 == 1 {
		c := box{size: d, left: d / 2}
		return [3]box{c, c, c}
	}
	return [3]box{
		{size: d, left: d / 2},
		{size: d, left: d/2 - 1},
		{size: d + 1, left: d / 2},
	}
}

// Package blend implements Porter-Duff compositing operators and blend modes.
//
// Blend operations work on premultiplied pixels with float32 channels in
// [0, 1], so intermediate results in linear light keep their precision.
// The source is the layer being drawn (feBlend/feComposite "in"), the
// destination is the backdrop ("in2"). Bytes adapts any Func to 8-bit
// premultiplied pixels.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// BlendMode selects a compositing operation.
type BlendMode uint8

// Porter-Duff operators. Each one is S*Fa + D*Fb with the factors listed.
const (
	BlendClear           BlendMode = iota // Fa=0     Fb=0
	BlendSource                           // Fa=1     Fb=0
	BlendDestination                      // Fa=0     Fb=1
	BlendSourceOver                       // Fa=1     Fb=1-Sa
	BlendDestinationOver                  // Fa=1-Da  Fb=1
	BlendSourceIn                         // Fa=Da    Fb=0
	BlendDestinationIn                    // Fa=0     Fb=Sa
	BlendSourceOut                        // Fa=1-Da  Fb=0
	BlendDestinationOut                   // Fa=0     Fb=1-Sa
	BlendSourceAtop                       // Fa=Da    Fb=1-Sa
	BlendDestinationAtop                  // Fa=1-Da  Fb=Sa
	BlendXor                              // Fa=1-Da  Fb=1-Sa
	BlendPlus                             // Fa=1     Fb=1
)

// Pixel is a premultiplied RGBA value with channels in [0, 1].
type Pixel [4]float32

// Func combines a source pixel with a destination pixel.
type Func func(s, d Pixel) Pixel

// factor is one Porter-Duff coefficient, evaluated against the alphas of
// the pixel pair.
type factor uint8

const (
	zero factor = iota
	one
	srcAlpha
	invSrcAlpha
	dstAlpha
	invDstAlpha
)

func (f factor) eval(sa, da float32) float32 {
	switch f {
	case one:
		return 1
	case srcAlpha:
		return sa
	case invSrcAlpha:
		return 1 - sa
	case dstAlpha:
		return da
	case invDstAlpha:
		return 1 - da
	}
	return 0
}

// porterDuff holds Fa and Fb for each operator, indexed by BlendMode.
var porterDuff = [...][2]factor{
	BlendClear:           {zero, zero},
	BlendSource:          {one, zero},
	BlendDestination:     {zero, one},
	BlendSourceOver:      {one, invSrcAlpha},
	BlendDestinationOver: {invDstAlpha, one},
	BlendSourceIn:        {dstAlpha, zero},
	BlendDestinationIn:   {zero, srcAlpha},
	BlendSourceOut:       {invDstAlpha, zero},
	BlendDestinationOut:  {zero, invSrcAlpha},
	BlendSourceAtop:      {dstAlpha, invSrcAlpha},
	BlendDestinationAtop: {invDstAlpha, srcAlpha},
	BlendXor:             {invDstAlpha, invSrcAlpha},
	BlendPlus:            {one, one},
}

// operators caches one Func per Porter-Duff mode.
var operators [len(porterDuff)]Func

// modes holds the blend-mode functions from advanced.go and hsl.go.
var modes = map[BlendMode]Func{
	BlendMultiply:   separable(multiply),
	BlendScreen:     separable(screen),
	BlendOverlay:    separable(overlay),
	BlendDarken:     separable(darken),
	BlendLighten:    separable(lighten),
	BlendColorDodge: separable(colorDodge),
	BlendColorBurn:  separable(colorBurn),
	BlendHardLight:  separable(hardLight),
	BlendSoftLight:  separable(softLight),
	BlendDifference: separable(difference),
	BlendExclusion:  separable(exclusion),
	BlendHue:        nonSeparable(hue),
	BlendSaturation: nonSeparable(saturation),
	BlendColor:      nonSeparable(color),
	BlendLuminosity: nonSeparable(luminosity),
}

func init() {
	for m, f := range porterDuff {
		operators[m] = compose(f[0], f[1])
	}
}

// compose builds the operator S*fa + D*fb.
func compose(fa, fb factor) Func {
	return func(s, d Pixel) Pixel {
		a, b := fa.eval(s[3], d[3]), fb.eval(s[3], d[3])
		var out Pixel
		for i := range out {
			out[i] = min(s[i]*a+d[i]*b, 1)
		}
		return out
	}
}

// Get returns the blend function for the given mode. Unknown modes fall
// back to source-over.
func Get(mode BlendMode) Func {
	if int(mode) < len(operators) {
		return operators[mode]
	}
	if fn, ok := modes[mode]; ok {
		return fn
	}
	return operators[BlendSourceOver]
}

// Apply blends src onto dst pixel by pixel, writing into dst.
// Both slices hold premultiplied RGBA; the shorter length wins.
func Apply(dst, src []float32, fn Func) {
	n := min(len(dst), len(src))
	for i := 0; i+3 < n; i += 4 {
		out := fn(Pixel(src[i:i+4]), Pixel(dst[i:i+4]))
		copy(dst[i:i+4], out[:])
	}
}

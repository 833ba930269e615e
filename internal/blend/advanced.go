package blend

import "math"

// W3C separable and non-separable blend modes (feBlend).
const (
	// Separable blend modes
	BlendMultiply   BlendMode = iota + 16 // Result: S * D
	BlendScreen                           // Result: 1 - (1-S)*(1-D)
	BlendOverlay                          // HardLight with swapped layers
	BlendDarken                           // min(S, D)
	BlendLighten                          // max(S, D)
	BlendColorDodge                       // D / (1 - S)
	BlendColorBurn                        // 1 - (1 - D) / S
	BlendHardLight                        // Multiply or Screen depending on source
	BlendSoftLight                        // Soft version of HardLight
	BlendDifference                       // |S - D|
	BlendExclusion                        // S + D - 2*S*D

	// Non-separable blend modes
	BlendHue        // Hue of source, saturation and luminosity of backdrop
	BlendSaturation // Saturation of source, hue and luminosity of backdrop
	BlendColor      // Hue and saturation of source, luminosity of backdrop
	BlendLuminosity // Luminosity of source, hue and saturation of backdrop
)

// channelMode computes B(Cs, Cb) on unpremultiplied channel values.
type channelMode func(s, d float32) float32

// separable applies a per-channel blend function with the W3C
// premultiplied compositing formula:
//
//	co = cs*(1 - ab) + cb*(1 - as) + as*ab*B(Cb, Cs)
//	ao = as + ab*(1 - as)
func separable(mode channelMode) Func {
	return func(s, d Pixel) Pixel {
		as, ab := s[3], d[3]
		if as <= 0 {
			return d
		}
		if ab <= 0 {
			return s
		}
		var out Pixel
		out[3] = min(as+ab*(1-as), 1)
		for i := 0; i < 3; i++ {
			b := mode(min(s[i]/as, 1), min(d[i]/ab, 1))
			out[i] = min(s[i]*(1-ab)+d[i]*(1-as)+as*ab*b, out[3])
		}
		return out
	}
}

func multiply(s, d float32) float32 { return s * d }

// screen computes 1 - (1 - s) * (1 - d).
func screen(s, d float32) float32 { return s + d - s*d }

// overlay is HardLight with the layers swapped.
func overlay(s, d float32) float32 { return hardLight(d, s) }

func darken(s, d float32) float32  { return min(s, d) }
func lighten(s, d float32) float32 { return max(s, d) }

// colorDodge brightens the destination to reflect the source.
// Formula: B(Cb, Cs) = 0 if Cb == 0; 1 if Cs == 1; else min(1, Cb / (1 - Cs))
func colorDodge(s, d float32) float32 {
	if d <= 0 {
		return 0
	}
	if s >= 1 {
		return 1
	}
	return min(1, d/(1-s))
}

// colorBurn darkens the destination to reflect the source.
// Formula: B(Cb, Cs) = 1 if Cb == 1; 0 if Cs == 0; else 1 - min(1, (1 - Cb) / Cs)
func colorBurn(s, d float32) float32 {
	if d >= 1 {
		return 1
	}
	if s <= 0 {
		return 0
	}
	return 1 - min(1, (1-d)/s)
}

// hardLight is Multiply(Cb, 2*Cs) for Cs <= 0.5, else Screen(Cb, 2*Cs - 1).
func hardLight(s, d float32) float32 {
	if s <= 0.5 {
		return multiply(2*s, d)
	}
	return screen(2*s-1, d)
}

// softLight is a softer version of HardLight.
func softLight(s, d float32) float32 {
	if s <= 0.5 {
		// B(Cb, Cs) = Cb - (1 - 2*Cs) * Cb * (1 - Cb)
		return d - (1-2*s)*d*(1-d)
	}
	// B(Cb, Cs) = Cb + (2*Cs - 1) * (D(Cb) - Cb)
	// where D(x) = if x <= 0.25: ((16*x - 12)*x + 4)*x, else: sqrt(x)
	var dx float32
	if d <= 0.25 {
		dx = ((16*d-12)*d + 4) * d
	} else {
		dx = float32(math.Sqrt(float64(d)))
	}
	return d + (2*s-1)*(dx-d)
}

func difference(s, d float32) float32 {
	if s > d {
		return s - d
	}
	return d - s
}

// exclusion is similar to Difference but with lower contrast.
// Formula: B(Cb, Cs) = Cb + Cs - 2 * Cb * Cs
func exclusion(s, d float32) float32 { return s + d - 2*s*d }

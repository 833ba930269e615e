package color

import "math"

// sRGBToLinearLUT converts sRGB byte [0-255] → Linear float32 [0.0-1.0].
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT converts Linear [0.0-1.0] at 12-bit precision → sRGB byte.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := 0; i < 256; i++ {
		sRGBToLinearLUT[i] = float32(srgbToLinear64(float64(i) / 255.0))
	}
	for i := 0; i < 4096; i++ {
		linearToSRGBLUT[i] = round8(linearToSRGB64(float64(i) / 4095.0))
	}
}

func srgbToLinear64(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

func linearToSRGB64(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

func round8(v float64) uint8 {
	n := int(v*255.0 + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	//nolint:gosec // G115: n is clamped to [0,255] range
	return uint8(n)
}

// SRGBToLinearFast converts sRGB byte to linear float32 using lookup table.
//
// Example:
//
//	r := SRGBToLinearFast(128) // ~0.2159 (not 0.5!)
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts linear float32 to sRGB byte using lookup table.
// Input is clamped to [0.0, 1.0].
//
// Example:
//
//	s := LinearToSRGBFast(0.5) // 188 (not 128!)
func LinearToSRGBFast(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*4095.0 + 0.5)
	if index > 4095 {
		index = 4095
	}
	return linearToSRGBLUT[index]
}

// LinearToSRGB returns the sRGB byte whose linear value is nearest to l.
// It starts from the 12-bit table and settles ties against the 8-bit one,
// so LinearToSRGB(SRGBToLinearFast(s)) == s holds for every s even after
// float rounding.
func LinearToSRGB(l float32) uint8 {
	s := LinearToSRGBFast(l)
	d := abs32(l - sRGBToLinearLUT[s])
	if s > 0 && abs32(l-sRGBToLinearLUT[s-1]) < d {
		return s - 1
	}
	if s < 255 && abs32(l-sRGBToLinearLUT[s+1]) < d {
		return s + 1
	}
	return s
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

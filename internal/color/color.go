// Package color provides the sRGB and linearRGB color spaces used by
// filter primitives, with lookup tables and float planes for working buffers.
package color

// ColorSpace represents a color space.
type ColorSpace uint8

const (
	// ColorSpaceSRGB represents the standard sRGB color space.
	ColorSpaceSRGB ColorSpace = iota
	// ColorSpaceLinear represents the linear RGB color space.
	ColorSpaceLinear
)

// String returns the SVG name of the color space.
func (cs ColorSpace) String() string {
	if cs == ColorSpaceLinear {
		return "linearRGB"
	}
	return "sRGB"
}

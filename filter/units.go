package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/svgfx"
	"github.com/gogpu/svgfx/internal/color"
)

// Units selects the coordinate system of filter and primitive attributes.
type Units uint8

const (
	// UserSpaceOnUse interprets values in the user space of the element.
	UserSpaceOnUse Units = iota
	// ObjectBoundingBox interprets values as fractions of the element
	// bounding box.
	ObjectBoundingBox
)

// String returns the attribute spelling.
func (u Units) String() string {
	if u == ObjectBoundingBox {
		return "objectBoundingBox"
	}
	return "userSpaceOnUse"
}

// ParseUnits parses a filterUnits or primitiveUnits value.
func ParseUnits(s string) (Units, error) {
	switch s {
	case "userSpaceOnUse":
		return UserSpaceOnUse, nil
	case "objectBoundingBox":
		return ObjectBoundingBox, nil
	}
	return UserSpaceOnUse, fmt.Errorf("filter: unknown units %q", s)
}

// Length is an optional number or percentage.
type Length struct {
	Value   float64
	Percent bool
	set     bool
}

// Number returns a plain length.
func Number(v float64) Length {
	return Length{Value: v, set: true}
}

// Percent returns a percentage length; Percent(50) is 50%.
func Percent(v float64) Length {
	return Length{Value: v, Percent: true, set: true}
}

// ParseLength parses "12", "12.5px" or "40%". The empty string is unset.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, nil
	}
	if v, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Length{}, fmt.Errorf("filter: parse length %q: %w", s, err)
		}
		return Percent(f), nil
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return Length{}, fmt.Errorf("filter: parse length %q: %w", s, err)
	}
	return Number(f), nil
}

// IsSet reports whether the length was given.
func (l Length) IsSet() bool {
	return l.set
}

// Or returns l if set, otherwise def.
func (l Length) Or(def Length) Length {
	if l.set {
		return l
	}
	return def
}

// fraction returns the length as a fraction of a reference size.
// Under objectBoundingBox plain numbers are fractions already.
func (l Length) fraction() float64 {
	if l.Percent {
		return l.Value / 100
	}
	return l.Value
}

// resolve maps a coordinate or size to user space. origin and size describe
// the reference interval for percentages and bounding-box fractions.
// coord reports whether l is a coordinate, which is offset by origin.
func (l Length) resolve(u Units, origin, size float64, coord bool) float64 {
	if u == UserSpaceOnUse && !l.Percent {
		return l.Value
	}
	v := l.fraction() * size
	if coord {
		v += origin
	}
	return v
}

// resolveRect resolves x, y, width and height against ref.
func resolveRect(u Units, ref svgfx.Rect, x, y, w, h Length) svgfx.Rect {
	return svgfx.XYWH(
		x.resolve(u, ref.MinX, ref.Width(), true),
		y.resolve(u, ref.MinY, ref.Height(), true),
		w.resolve(u, 0, ref.Width(), false),
		h.resolve(u, 0, ref.Height(), false),
	)
}

// ColorInterpolation is the color-interpolation-filters property.
type ColorInterpolation uint8

const (
	// Inherit uses the value of the filter.
	Inherit ColorInterpolation = iota
	// SRGB computes on gamma-encoded values.
	SRGB
	// LinearRGB computes on linear-light values.
	LinearRGB
)

// ParseColorInterpolation parses "auto", "sRGB", "linearRGB" or "inherit".
// auto maps to linearRGB.
func ParseColorInterpolation(s string) (ColorInterpolation, error) {
	switch s {
	case "", "inherit":
		return Inherit, nil
	case "sRGB":
		return SRGB, nil
	case "linearRGB", "auto":
		return LinearRGB, nil
	}
	return Inherit, fmt.Errorf("filter: unknown color interpolation %q", s)
}

func (ci ColorInterpolation) space() color.ColorSpace {
	if ci == SRGB {
		return color.ColorSpaceSRGB
	}
	return color.ColorSpaceLinear
}

// String returns the property spelling.
func (ci ColorInterpolation) String() string {
	switch ci {
	case SRGB:
		return "sRGB"
	case LinearRGB:
		return "linearRGB"
	default:
		return "inherit"
	}
}

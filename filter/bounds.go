package filter

import (
	"math"

	"github.com/gogpu/svgfx"
)

// Flags are deferred layout properties resolved by LayoutBounds.Resolve.
type Flags struct {
	// WholeRegion marks output that may cover every pixel of the filter
	// region, such as a transfer function that makes transparent pixels
	// opaque.
	WholeRegion bool
}

// LayoutBounds is the device-space extent of a channel during layout.
//
// Rect is the area the channel may cover. Insets are the margins by which
// the visible clip must grow so that content outside it can still reach
// the visible area through later primitives. Every side is >= 0.
type LayoutBounds struct {
	Rect   svgfx.Rect
	Insets svgfx.Insets
	Flags  Flags
}

// NewLayoutBounds returns bounds with no flags set.
func NewLayoutBounds(r svgfx.Rect, in svgfx.Insets) LayoutBounds {
	return LayoutBounds{Rect: r, Insets: in}
}

// Union covers both bounds. Empty rectangles do not contribute.
func (b LayoutBounds) Union(o LayoutBounds) LayoutBounds {
	r := b.Rect
	switch {
	case r.IsEmpty():
		r = o.Rect
	case !o.Rect.IsEmpty():
		r = r.Union(o.Rect)
	}
	return LayoutBounds{
		Rect:   r,
		Insets: b.Insets.Max(o.Insets),
		Flags:  Flags{WholeRegion: b.Flags.WholeRegion || o.Flags.WholeRegion},
	}
}

// Grow expands the rect by h horizontally and v vertically on both sides.
// Content within that distance outside the clip can bleed in, so the
// insets grow by the part of the new rect that lies outside the clip.
func (b LayoutBounds) Grow(h, v float64, ctx *LayoutContext) LayoutBounds {
	h, v = math.Max(h, 0), math.Max(v, 0)
	amount := svgfx.Insets{Top: v, Left: h, Bottom: v, Right: h}
	grown := b.Rect.Grow(amount)
	escape := svgfx.Overhang(ctx.Clip(), grown).Min(amount)
	return LayoutBounds{
		Rect:   grown,
		Insets: b.Insets.Max(escape),
		Flags:  b.Flags,
	}
}

// Translate moves the content by the device offset (dx, dy). The rect
// covers both the original and the shifted area. Content that overhangs
// the clip on the side it moves away from can shift into view, so the
// insets grow by that overhang, limited to the offset.
func (b LayoutBounds) Translate(dx, dy float64, ctx *LayoutContext) LayoutBounds {
	toward := svgfx.Insets{
		Top:    math.Max(dy, 0),
		Left:   math.Max(dx, 0),
		Bottom: math.Max(-dy, 0),
		Right:  math.Max(-dx, 0),
	}
	escape := svgfx.Overhang(ctx.Clip(), b.Rect).Min(toward)
	return LayoutBounds{
		Rect:   b.Rect.Union(b.Rect.Translate(dx, dy)),
		Insets: b.Insets.Max(escape),
		Flags:  b.Flags,
	}
}

// Intersect clips the rect to r. Insets and flags are kept.
func (b LayoutBounds) Intersect(r svgfx.Rect) LayoutBounds {
	b.Rect = b.Rect.Intersect(r)
	return b
}

// WithFlags returns b with its flags replaced.
func (b LayoutBounds) WithFlags(f Flags) LayoutBounds {
	b.Flags = f
	return b
}

// Transform maps the rect through fn, which must be monotone.
func (b LayoutBounds) Transform(fn func(svgfx.Rect) svgfx.Rect) LayoutBounds {
	b.Rect = fn(b.Rect)
	return b
}

// Resolve applies deferred flags. WholeRegion expands the rect to the
// filter region and the insets to the part of the region outside the clip.
func (b LayoutBounds) Resolve(ctx *LayoutContext) LayoutBounds {
	if !b.Flags.WholeRegion {
		return b
	}
	region := ctx.Region()
	return LayoutBounds{
		Rect:   region,
		Insets: b.Insets.Max(svgfx.Overhang(ctx.Clip(), region)),
	}
}

package svgfx

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle with float64 bounds.
// A rect with MaxX <= MinX or MaxY <= MinY is empty.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// XYWH creates a rect from its origin and size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// RectFromImage converts an integer image rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{
		MinX: float64(r.Min.X),
		MinY: float64(r.Min.Y),
		MaxX: float64(r.Max.X),
		MaxY: float64(r.Max.Y),
	}
}

// IsEmpty reports whether the rect encloses no area.
func (r Rect) IsEmpty() bool {
	return !(r.MaxX > r.MinX && r.MaxY > r.MinY)
}

// Width returns the width of the rect.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rect.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Union returns the smallest rect containing both r and o.
// Coordinates of degenerate rects still take part, which keeps
// Union associative and idempotent.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		MinX: math.Max(r.MinX, o.MinX),
		MinY: math.Max(r.MinY, o.MinY),
		MaxX: math.Min(r.MaxX, o.MaxX),
		MaxY: math.Min(r.MaxY, o.MaxY),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Grow returns r expanded outward by the insets.
func (r Rect) Grow(in Insets) Rect {
	return Rect{
		MinX: r.MinX - in.Left,
		MinY: r.MinY - in.Top,
		MaxX: r.MaxX + in.Right,
		MaxY: r.MaxY + in.Bottom,
	}
}

// Contains reports whether o lies inside r.
func (r Rect) Contains(o Rect) bool {
	return o.MinX >= r.MinX && o.MinY >= r.MinY && o.MaxX <= r.MaxX && o.MaxY <= r.MaxY
}

// Pixels rounds r outward to whole pixels.
func (r Rect) Pixels() image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.MinX)),
		int(math.Floor(r.MinY)),
		int(math.Ceil(r.MaxX)),
		int(math.Ceil(r.MaxY)),
	)
}

// Insets are directional margins. All sides are >= 0 in practice.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Max returns the component-wise maximum.
func (in Insets) Max(o Insets) Insets {
	return Insets{
		Top:    math.Max(in.Top, o.Top),
		Left:   math.Max(in.Left, o.Left),
		Bottom: math.Max(in.Bottom, o.Bottom),
		Right:  math.Max(in.Right, o.Right),
	}
}

// Min returns the component-wise minimum.
func (in Insets) Min(o Insets) Insets {
	return Insets{
		Top:    math.Min(in.Top, o.Top),
		Left:   math.Min(in.Left, o.Left),
		Bottom: math.Min(in.Bottom, o.Bottom),
		Right:  math.Min(in.Right, o.Right),
	}
}

// IsZero reports whether every side is zero.
func (in Insets) IsZero() bool {
	return in == Insets{}
}

// Overhang returns how far r extends beyond outer on each side.
func Overhang(outer, r Rect) Insets {
	return Insets{
		Top:    math.Max(outer.MinY-r.MinY, 0),
		Left:   math.Max(outer.MinX-r.MinX, 0),
		Bottom: math.Max(r.MaxY-outer.MaxY, 0),
		Right:  math.Max(r.MaxX-outer.MaxX, 0),
	}
}

package svgfx

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/svgfx/internal/blend"
)

// Surface is the raster target a filter result is composited onto.
// It exposes the device transform and clip of the current draw call and
// accepts a finished pixel buffer at an integer device offset.
type Surface interface {
	// Transform returns the user-to-device transform.
	Transform() Matrix
	// ClipBounds returns the device-space clip rectangle.
	ClipBounds() Rect
	// DrawPixmap composites pm source-over with its origin at (x, y).
	DrawPixmap(pm *Pixmap, x, y int)
}

// Canvas is a minimal Pixmap-backed Surface.
// It draws axis-aligned or transformed rectangles and images with
// source-over compositing and no anti-aliasing.
type Canvas struct {
	pm        *Pixmap
	transform Matrix
	clip      image.Rectangle
	stack     []canvasState
}

type canvasState struct {
	transform Matrix
	clip      image.Rectangle
}

var _ Surface = (*Canvas)(nil)

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	o := defaultCanvasOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pm := o.pixmap
	if pm == nil {
		pm = NewPixmap(width, height)
	}
	c := &Canvas{
		pm:        pm,
		transform: o.transform,
		clip:      pm.Bounds(),
	}
	if o.clip != nil {
		c.clip = o.clip.Pixels().Intersect(pm.Bounds())
	}
	return c
}

// Pixmap returns the canvas pixel buffer.
func (c *Canvas) Pixmap() *Pixmap {
	return c.pm
}

// Transform returns the user-to-device transform.
func (c *Canvas) Transform() Matrix {
	return c.transform
}

// SetTransform replaces the user-to-device transform.
func (c *Canvas) SetTransform(m Matrix) {
	c.transform = m
}

// Concat prepends m to the current transform, so m applies first.
func (c *Canvas) Concat(m Matrix) {
	c.transform = c.transform.Multiply(m)
}

// ClipBounds returns the device-space clip rectangle.
func (c *Canvas) ClipBounds() Rect {
	return RectFromImage(c.clip)
}

// ClipRect narrows the clip to the device bounds of the user-space rect r.
func (c *Canvas) ClipRect(r Rect) {
	c.clip = c.clip.Intersect(c.transform.TransformRect(r).Pixels())
}

// Push saves the transform and clip.
func (c *Canvas) Push() {
	c.stack = append(c.stack, canvasState{transform: c.transform, clip: c.clip})
}

// Pop restores the most recently pushed transform and clip.
func (c *Canvas) Pop() {
	if len(c.stack) == 0 {
		return
	}
	s := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.transform, c.clip = s.transform, s.clip
}

// FillRect fills the user-space rect r with a solid color.
// A pixel is covered when its center maps inside r.
func (c *Canvas) FillRect(r Rect, col RGBA) {
	if r.IsEmpty() || col.A <= 0 {
		return
	}
	area := c.transform.TransformRect(r).Pixels().Intersect(c.clip)
	if area.Empty() {
		return
	}
	pc := col.Premul()
	over := blend.GetBlendFunc(blend.BlendSourceOver)
	inv := c.transform.Invert()
	data := c.pm.Data()
	stride := c.pm.Stride()

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			p := inv.TransformPoint(Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			if p.X < r.MinX || p.X >= r.MaxX || p.Y < r.MinY || p.Y >= r.MaxY {
				continue
			}
			i := y*stride + x*4
			data[i], data[i+1], data[i+2], data[i+3] = over(
				pc.R, pc.G, pc.B, pc.A,
				data[i], data[i+1], data[i+2], data[i+3])
		}
	}
}

// DrawImage draws img with its top-left corner at the user-space point at.
// Non-translation transforms resample with bilinear filtering.
func (c *Canvas) DrawImage(img image.Image, at Point) {
	if c.clip.Empty() {
		return
	}
	dst := c.pm.ToImage().SubImage(c.clip).(*image.RGBA)
	m := c.transform.Multiply(Translate(at.X, at.Y))
	if m.IsTranslation() && m.C == math.Trunc(m.C) && m.F == math.Trunc(m.F) {
		b := img.Bounds()
		to := image.Rect(int(m.C), int(m.F), int(m.C)+b.Dx(), int(m.F)+b.Dy())
		draw.Draw(dst, to, img, b.Min, draw.Over)
		return
	}
	// Transform maps source coordinates relative to the image origin.
	b := img.Bounds()
	m = m.Multiply(Translate(-float64(b.Min.X), -float64(b.Min.Y)))
	draw.ApproxBiLinear.Transform(dst, m.Aff3(), img, b, draw.Over, nil)
}

// DrawPixmap composites pm source-over in device space at (x, y).
// The result is limited to the current clip.
func (c *Canvas) DrawPixmap(pm *Pixmap, x, y int) {
	if pm == nil || pm.IsEmpty() || c.clip.Empty() {
		return
	}
	dst := c.pm.ToImage().SubImage(c.clip).(*image.RGBA)
	to := image.Rect(x, y, x+pm.Width(), y+pm.Height())
	draw.Draw(dst, to, pm.ToImage(), image.Point{}, draw.Over)
}

package filter

import (
	"image"
	"log/slog"

	"github.com/gogpu/svgfx"
	"github.com/gogpu/svgfx/internal/color"
)

// Info describes one paint call through a filter. It is produced by
// Filter.ComputeBounds and consumed by Filter.Apply.
type Info struct {
	// Element is the user-space bounding box of the filtered element.
	Element svgfx.Rect
	// Region is the user-space filter region.
	Region svgfx.Rect
	// Transform maps user space to device space.
	Transform svgfx.Matrix
	// Clip is the device-space clip of the paint call.
	Clip svgfx.Rect
	// Raster is the device-pixel area of every buffer in the apply phase.
	Raster image.Rectangle

	PrimitiveUnits     Units
	ColorInterpolation ColorInterpolation
}

// deviceRegion returns the filter region in device space.
func (info *Info) deviceRegion() svgfx.Rect {
	return info.Transform.TransformRect(info.Region)
}

// env holds what both phases know about the paint call.
type env struct {
	info   *Info
	logger *slog.Logger
}

// Region returns the device-space filter region.
func (e *env) Region() svgfx.Rect {
	return e.info.deviceRegion()
}

// Clip returns the device-space clip.
func (e *env) Clip() svgfx.Rect {
	return e.info.Clip
}

// Transform returns the user-to-device transform.
func (e *env) Transform() svgfx.Matrix {
	return e.info.Transform
}

// Info returns the paint call description.
func (e *env) Info() *Info {
	return e.info
}

// Logger returns the filter logger.
func (e *env) Logger() *slog.Logger {
	return e.logger
}

// primitiveScale converts lengths of primitive attributes to user units.
func (e *env) primitiveScale(x, y float64) (float64, float64) {
	if e.info.PrimitiveUnits == ObjectBoundingBox {
		x *= e.info.Element.Width()
		y *= e.info.Element.Height()
	}
	return x, y
}

// Scale converts a primitive size such as a deviation or radius to device
// pixels along each axis.
func (e *env) Scale(x, y float64) (float64, float64) {
	x, y = e.primitiveScale(x, y)
	m := e.info.Transform
	return x * m.ScaleX(), y * m.ScaleY()
}

// Vector converts a primitive offset to a device-space displacement.
func (e *env) Vector(dx, dy float64) (float64, float64) {
	dx, dy = e.primitiveScale(dx, dy)
	m := e.info.Transform
	return m.A*dx + m.B*dy, m.D*dx + m.E*dy
}

// Subregion returns the device-space primitive subregion of b.
func (e *env) Subregion(b *Base) svgfx.Rect {
	return e.info.Transform.TransformRect(e.UserSubregion(b))
}

// UserSubregion returns the user-space primitive subregion of b, limited to
// the filter region. Unset attributes default to the filter region.
func (e *env) UserSubregion(b *Base) svgfx.Rect {
	info := e.info
	region := info.Region
	u := info.PrimitiveUnits
	ref := region
	if u == ObjectBoundingBox {
		ref = info.Element
	}
	r := region
	if b.X.IsSet() {
		r.MinX = b.X.resolve(u, ref.MinX, ref.Width(), true)
	}
	if b.Y.IsSet() {
		r.MinY = b.Y.resolve(u, ref.MinY, ref.Height(), true)
	}
	w, h := region.Width(), region.Height()
	if b.Width.IsSet() {
		w = b.Width.resolve(u, 0, ref.Width(), false)
	}
	if b.Height.IsSet() {
		h = b.Height.resolve(u, 0, ref.Height(), false)
	}
	r.MaxX, r.MaxY = r.MinX+w, r.MinY+h
	return r.Intersect(region)
}

// ColorSpace returns the space b computes in.
func (e *env) ColorSpace(b *Base) color.ColorSpace {
	ci := b.ColorInterpolation
	if ci == Inherit {
		ci = e.info.ColorInterpolation
	}
	return ci.space()
}

// LayoutContext is passed to Primitive.Layout.
type LayoutContext struct {
	env
	results *ChannelStorage[LayoutBounds]
}

// Bounds returns the layout of channel key.
func (c *LayoutContext) Bounds(key Key) (LayoutBounds, error) {
	return c.results.Get(key.orLastResult())
}

// Input returns the layout of the primary input of b.
func (c *LayoutContext) Input(b *Base) (LayoutBounds, error) {
	return c.Bounds(b.In)
}

// Save publishes the layout result of b. An explicit subregion limits it.
func (c *LayoutContext) Save(b *Base, lb LayoutBounds) {
	if b.hasSubregion() {
		lb = lb.Intersect(c.Subregion(b))
	}
	c.results.Put(b.Result.orLastResult(), lb)
}

// Storage exposes the layout results.
func (c *LayoutContext) Storage() *ChannelStorage[LayoutBounds] {
	return c.results
}

// Context is passed to Primitive.Apply.
type Context struct {
	env
	results *ChannelStorage[*Channel]
}

// Size returns the buffer dimensions of the apply phase.
func (c *Context) Size() (int, int) {
	return c.info.Raster.Dx(), c.info.Raster.Dy()
}

// Channel returns the channel under key.
func (c *Context) Channel(key Key) (*Channel, error) {
	return c.results.Get(key.orLastResult())
}

// Input returns the primary input of b.
func (c *Context) Input(b *Base) (*Channel, error) {
	return c.Channel(b.In)
}

// Pixmap returns the materialized channel under key.
func (c *Context) Pixmap(key Key) (*svgfx.Pixmap, error) {
	ch, err := c.Channel(key)
	if err != nil {
		return nil, err
	}
	return ch.Pixmap()
}

// Working returns the channel under key decoded to a float plane in the
// color space of b.
func (c *Context) Working(b *Base, key Key) (*color.Plane, error) {
	pm, err := c.Pixmap(key)
	if err != nil {
		return nil, err
	}
	return color.Decode(pm.Data(), pm.Width(), pm.Height(), c.ColorSpace(b)), nil
}

// SaveWorking encodes p back to sRGB and publishes it as the result of b.
func (c *Context) SaveWorking(b *Base, p *color.Plane) {
	pm := svgfx.NewPixmap(p.Width, p.Height)
	p.Encode(pm.Data())
	c.SavePixmap(b, pm)
}

// SavePixmap publishes an sRGB buffer as the result of b.
func (c *Context) SavePixmap(b *Base, pm *svgfx.Pixmap) {
	if b.hasSubregion() {
		clipTo(pm, c.PixelRect(c.Subregion(b)))
	}
	c.results.Put(b.Result.orLastResult(), PixmapChannel(pm))
}

// Save publishes ch unchanged as the result of b.
func (c *Context) Save(b *Base, ch *Channel) {
	if b.hasSubregion() {
		pm, err := ch.Pixmap()
		if err == nil {
			c.SavePixmap(b, pm.Clone())
			return
		}
	}
	c.results.Put(b.Result.orLastResult(), ch)
}

// PixelRect converts a device rect to buffer pixel coordinates.
func (c *Context) PixelRect(r svgfx.Rect) image.Rectangle {
	origin := c.info.Raster.Min
	return r.Translate(-float64(origin.X), -float64(origin.Y)).Pixels().
		Intersect(image.Rect(0, 0, c.info.Raster.Dx(), c.info.Raster.Dy()))
}

// UserToPixel maps user space to buffer pixel coordinates.
func (c *Context) UserToPixel() svgfx.Matrix {
	origin := c.info.Raster.Min
	return svgfx.Translate(-float64(origin.X), -float64(origin.Y)).Multiply(c.info.Transform)
}

// Storage exposes the apply results.
func (c *Context) Storage() *ChannelStorage[*Channel] {
	return c.results
}

// clipTo clears every pixel of pm outside r.
func clipTo(pm *svgfx.Pixmap, r image.Rectangle) {
	b := pm.Bounds()
	if r.Eq(b) {
		return
	}
	transparent := svgfx.Transparent
	pm.FillRect(image.Rect(b.Min.X, b.Min.Y, b.Max.X, r.Min.Y), transparent)
	pm.FillRect(image.Rect(b.Min.X, r.Max.Y, b.Max.X, b.Max.Y), transparent)
	pm.FillRect(image.Rect(b.Min.X, r.Min.Y, r.Min.X, r.Max.Y), transparent)
	pm.FillRect(image.Rect(r.Max.X, r.Min.Y, b.Max.X, r.Max.Y), transparent)
}

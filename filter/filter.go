package filter

import (
	"errors"
	"log/slog"

	"github.com/gogpu/svgfx"
)

// Filter is an ordered graph of primitives with its region attributes.
type Filter struct {
	primitives []Primitive

	x, y, width, height Length
	filterUnits         Units
	primitiveUnits      Units
	interpolation       ColorInterpolation
	logger              *slog.Logger

	validErr error
}

// Option configures a Filter.
type Option func(*Filter)

// WithRegion sets the x, y, width and height attributes. Unset lengths keep
// their defaults of -10%, -10%, 120% and 120%.
func WithRegion(x, y, width, height Length) Option {
	return func(f *Filter) {
		f.x = x.Or(f.x)
		f.y = y.Or(f.y)
		f.width = width.Or(f.width)
		f.height = height.Or(f.height)
	}
}

// WithFilterUnits sets filterUnits. The default is ObjectBoundingBox.
func WithFilterUnits(u Units) Option {
	return func(f *Filter) {
		f.filterUnits = u
	}
}

// WithPrimitiveUnits sets primitiveUnits. The default is UserSpaceOnUse.
func WithPrimitiveUnits(u Units) Option {
	return func(f *Filter) {
		f.primitiveUnits = u
	}
}

// WithColorInterpolation sets the color-interpolation-filters value
// inherited by the primitives. The default is LinearRGB.
func WithColorInterpolation(ci ColorInterpolation) Option {
	return func(f *Filter) {
		if ci == Inherit {
			ci = LinearRGB
		}
		f.interpolation = ci
	}
}

// WithLogger sets the logger for this filter. By default the package-level
// svgfx.Logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(f *Filter) {
		f.logger = l
	}
}

// New creates a filter over primitives. The slice is not copied.
func New(primitives []Primitive, opts ...Option) *Filter {
	f := &Filter{
		primitives:     primitives,
		x:              Percent(-10),
		y:              Percent(-10),
		width:          Percent(120),
		height:         Percent(120),
		filterUnits:    ObjectBoundingBox,
		primitiveUnits: UserSpaceOnUse,
		interpolation:  LinearRGB,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.validErr = f.validate()
	return f
}

// Primitives returns the primitives in document order.
func (f *Filter) Primitives() []Primitive {
	return f.primitives
}

func (f *Filter) validate() error {
	if len(f.primitives) == 0 {
		return errors.New("filter: no primitives")
	}
	var errs []error
	for _, p := range f.primitives {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Valid reports whether the filter can be applied. A filter without
// primitives, or with a primitive that fails Validate, is not.
func (f *Filter) Valid() bool {
	return f.validErr == nil
}

// Err returns the reason the filter is not valid, or nil.
func (f *Filter) Err() error {
	return f.validErr
}

func (f *Filter) log() *slog.Logger {
	if f.logger != nil {
		return f.logger
	}
	return svgfx.Logger()
}

// Region resolves the user-space filter region for an element bounding box.
func (f *Filter) Region(element svgfx.Rect) svgfx.Rect {
	return resolveRect(f.filterUnits, element, f.x, f.y, f.width, f.height)
}

// ComputeBounds runs the layout phase. It returns false when nothing of the
// filter result can be visible.
func (f *Filter) ComputeBounds(element svgfx.Rect, transform svgfx.Matrix, clip svgfx.Rect) (Info, bool) {
	info := Info{
		Element:            element,
		Region:             f.Region(element),
		Transform:          transform,
		Clip:               clip,
		PrimitiveUnits:     f.primitiveUnits,
		ColorInterpolation: f.interpolation,
	}
	region := info.deviceRegion()
	if region.Intersect(clip).IsEmpty() {
		return Info{}, false
	}

	ctx := &LayoutContext{
		env:     env{info: &info, logger: f.log()},
		results: NewChannelStorage[LayoutBounds](),
	}
	source := NewLayoutBounds(transform.TransformRect(element).Intersect(clip), svgfx.Insets{})
	ctx.results.Put(SourceGraphic, source)
	ctx.results.PutDerived(SourceAlpha, func() LayoutBounds { return source })

	for _, p := range f.primitives {
		if err := p.Layout(ctx); err != nil {
			f.skip(p, err)
		}
	}

	last, err := ctx.results.Get(LastResult)
	if err != nil {
		return Info{}, false
	}
	last = last.Resolve(ctx)
	visible := region.Intersect(clip.Grow(last.Insets))
	info.Raster = last.Rect.Intersect(visible).Pixels()
	if info.Raster.Empty() {
		return Info{}, false
	}
	return info, true
}

// Apply runs the apply phase over source, a buffer covering info.Raster.
// It returns the LastResult buffer.
func (f *Filter) Apply(source *svgfx.Pixmap, info Info) (*svgfx.Pixmap, error) {
	if source.Width() != info.Raster.Dx() || source.Height() != info.Raster.Dy() {
		return nil, errors.New("filter: source size does not match raster")
	}
	ctx := &Context{
		env:     env{info: &info, logger: f.log()},
		results: NewChannelStorage[*Channel](),
	}
	src := PixmapChannel(source)
	ctx.results.Put(SourceGraphic, src)
	ctx.results.PutDerived(SourceAlpha, func() *Channel { return alphaChannel(src) })

	for _, p := range f.primitives {
		if err := p.Apply(ctx); err != nil {
			f.skip(p, err)
		}
	}
	return ctx.Pixmap(LastResult)
}

func (f *Filter) skip(p Primitive, err error) {
	if errors.Is(err, ErrChannelNotFound) {
		f.log().Debug("filter: skipping primitive", "tag", p.Tag(), "err", err)
		return
	}
	f.log().Warn("filter: primitive failed", "tag", p.Tag(), "err", err)
}

// Paint draws an element through the filter onto s. draw renders the
// element in user space onto an offscreen canvas. Invalid filters paint
// the element unfiltered. Paint reports whether anything was drawn; it is
// false when the filter region misses the clip or the apply phase fails.
func (f *Filter) Paint(s svgfx.Surface, element svgfx.Rect, draw func(*svgfx.Canvas)) bool {
	clip := s.ClipBounds()
	if !f.Valid() {
		f.log().Warn("filter: invalid filter, painting unfiltered", "err", f.validErr)
		return paintDirect(s, clip, draw)
	}
	info, ok := f.ComputeBounds(element, s.Transform(), clip)
	if !ok {
		f.log().Debug("filter: nothing to paint", "err", ErrEmptyRegion)
		return false
	}

	origin := info.Raster.Min
	offscreen := svgfx.NewCanvas(info.Raster.Dx(), info.Raster.Dy(),
		svgfx.WithTransform(svgfx.Translate(-float64(origin.X), -float64(origin.Y)).Multiply(info.Transform)))
	draw(offscreen)

	out, err := f.Apply(offscreen.Pixmap(), info)
	if err != nil {
		f.log().Warn("filter: apply failed", "err", err)
		return false
	}
	s.DrawPixmap(out, origin.X, origin.Y)
	return true
}

// paintDirect renders the element into a clip-sized buffer and blits it.
func paintDirect(s svgfx.Surface, clip svgfx.Rect, draw func(*svgfx.Canvas)) bool {
	r := clip.Pixels()
	if r.Empty() {
		return false
	}
	c := svgfx.NewCanvas(r.Dx(), r.Dy(),
		svgfx.WithTransform(svgfx.Translate(-float64(r.Min.X), -float64(r.Min.Y)).Multiply(s.Transform())))
	draw(c)
	s.DrawPixmap(c.Pixmap(), r.Min.X, r.Min.Y)
	return true
}

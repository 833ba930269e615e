package filter

import "github.com/gogpu/svgfx"

// Flood fills the primitive subregion with a color.
type Flood struct {
	Base
	Color   svgfx.RGBA
	Opacity float64
}

// NewFlood returns a flood of c at full opacity.
func NewFlood(c svgfx.RGBA, opacity float64) *Flood {
	return &Flood{Color: c, Opacity: opacity}
}

// Tag implements Primitive.
func (p *Flood) Tag() string { return "feFlood" }

// Validate implements Primitive.
func (p *Flood) Validate() error { return nil }

// Layout implements Primitive.
func (p *Flood) Layout(ctx *LayoutContext) error {
	ctx.Save(&p.Base, NewLayoutBounds(ctx.Subregion(&p.Base), svgfx.Insets{}))
	return nil
}

// Apply implements Primitive.
func (p *Flood) Apply(ctx *Context) error {
	w, h := ctx.Size()
	pm := svgfx.NewPixmap(w, h)
	pm.FillRect(ctx.PixelRect(ctx.Subregion(&p.Base)), p.Color.WithAlpha(clamp01(p.Opacity)))
	ctx.SavePixmap(&p.Base, pm)
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package filter

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/svgfx"
)

// Offset shifts its input by (Dx, Dy) primitive units.
type Offset struct {
	Base
	Dx, Dy float64
}

// NewOffset returns an offset by (dx, dy).
func NewOffset(dx, dy float64) *Offset {
	return &Offset{Dx: dx, Dy: dy}
}

// Tag implements Primitive.
func (p *Offset) Tag() string { return "feOffset" }

// Validate implements Primitive.
func (p *Offset) Validate() error { return nil }

func (p *Offset) isNoop() bool {
	return p.Dx == 0 && p.Dy == 0
}

// Layout implements Primitive.
func (p *Offset) Layout(ctx *LayoutContext) error {
	in, err := ctx.Input(&p.Base)
	if err != nil {
		return err
	}
	if p.isNoop() {
		ctx.Save(&p.Base, in)
		return nil
	}
	dx, dy := ctx.Vector(p.Dx, p.Dy)
	out := in.Translate(dx, dy, ctx)
	if !isIntegral(dx) || !isIntegral(dy) {
		// Bilinear sampling touches one more pixel on each side.
		out = out.Transform(func(r svgfx.Rect) svgfx.Rect {
			return svgfx.RectFromImage(r.Pixels())
		})
	}
	ctx.Save(&p.Base, out)
	return nil
}

// Apply implements Primitive.
func (p *Offset) Apply(ctx *Context) error {
	in, err := ctx.Input(&p.Base)
	if err != nil {
		return err
	}
	if p.isNoop() {
		ctx.Save(&p.Base, in)
		return nil
	}
	src, err := in.Pixmap()
	if err != nil {
		return err
	}
	dx, dy := ctx.Vector(p.Dx, p.Dy)
	ctx.SavePixmap(&p.Base, shift(src, dx, dy))
	return nil
}

// shift returns src translated by (dx, dy) with transparent fill.
func shift(src *svgfx.Pixmap, dx, dy float64) *svgfx.Pixmap {
	dst := svgfx.NewPixmap(src.Width(), src.Height())
	if isIntegral(dx) && isIntegral(dy) {
		off := image.Pt(int(dx), int(dy))
		draw.Draw(dst.ToImage(), src.Bounds().Add(off), src.ToImage(), image.Point{}, draw.Src)
		return dst
	}
	m := f64.Aff3{1, 0, dx, 0, 1, dy}
	draw.ApproxBiLinear.Transform(dst.ToImage(), m, src.ToImage(), src.Bounds(), draw.Src, nil)
	return dst
}

func isIntegral(v float64) bool {
	return v == math.Trunc(v)
}

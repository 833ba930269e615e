package filter

import (
	"errors"
	"sync"

	"github.com/gogpu/svgfx"
)

// DropShadow draws a blurred, offset, colored copy of its input's alpha
// beneath the input. It expands into a chain of five primitives on first
// use; its fields must not change afterwards.
type DropShadow struct {
	Base
	Dx, Dy       float64
	StdDeviation []float64
	Color        svgfx.RGBA
	Opacity      float64

	once  sync.Once
	outer Key
	chain []Primitive
}

// NewDropShadow returns a drop shadow with the SVG defaults: offset (2, 2),
// deviation 2, opaque black.
func NewDropShadow() *DropShadow {
	return &DropShadow{
		Dx:           2,
		Dy:           2,
		StdDeviation: []float64{2},
		Color:        svgfx.Black,
		Opacity:      1,
	}
}

// Tag implements Primitive.
func (p *DropShadow) Tag() string { return "feDropShadow" }

func (p *DropShadow) expand() {
	p.once.Do(func() {
		p.outer = internalKey("drop-shadow-input")
		alpha := internalKey("drop-shadow-alpha")
		shifted := internalKey("drop-shadow-offset")
		flooded := internalKey("drop-shadow-flood")
		shadow := internalKey("drop-shadow")
		ci := p.ColorInterpolation

		blurred := NewGaussianBlur(p.StdDeviation...)
		blurred.AlphaOnly = true
		blurred.Base = Base{In: p.outer, Result: alpha, ColorInterpolation: ci}

		offset := NewOffset(p.Dx, p.Dy)
		offset.Base = Base{In: alpha, Result: shifted, ColorInterpolation: ci}

		flood := NewFlood(p.Color, p.Opacity)
		flood.Base = p.Base
		flood.In, flood.Result = Key{}, flooded

		composite := NewComposite(CompositeIn, flooded, shifted)
		composite.Result = shadow
		composite.ColorInterpolation = ci

		merge := NewMerge(shadow, p.outer)
		merge.Base = p.Base
		merge.In = Key{}

		p.chain = []Primitive{blurred, offset, flood, composite, merge}
	})
}

// Primitives returns the expanded chain.
func (p *DropShadow) Primitives() []Primitive {
	p.expand()
	return p.chain
}

// Validate implements Primitive.
func (p *DropShadow) Validate() error {
	var errs []error
	for _, sub := range p.Primitives() {
		if err := sub.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Layout implements Primitive.
func (p *DropShadow) Layout(ctx *LayoutContext) error {
	in, err := ctx.Input(&p.Base)
	if err != nil {
		return err
	}
	chain := p.Primitives()
	restore := ctx.results.keepLast()
	ctx.results.Put(p.outer, in)
	for _, sub := range chain {
		if err := sub.Layout(ctx); err != nil {
			restore()
			return err
		}
	}
	return nil
}

// Apply implements Primitive.
func (p *DropShadow) Apply(ctx *Context) error {
	in, err := ctx.Input(&p.Base)
	if err != nil {
		return err
	}
	chain := p.Primitives()
	restore := ctx.results.keepLast()
	ctx.results.Put(p.outer, in)
	for _, sub := range chain {
		if err := sub.Apply(ctx); err != nil {
			restore()
			return err
		}
	}
	return nil
}

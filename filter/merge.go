package filter

import (
	"github.com/gogpu/svgfx/internal/blend"
	"github.com/gogpu/svgfx/internal/color"
)

// Merge composites its inputs source-over in order, the first at the
// bottom. Without inputs it passes SourceGraphic through.
type Merge struct {
	Base
	Inputs []Key
}

// NewMerge returns a merge of inputs.
func NewMerge(inputs ...Key) *Merge {
	return &Merge{Inputs: inputs}
}

// Tag implements Primitive.
func (p *Merge) Tag() string { return "feMerge" }

// Validate implements Primitive.
func (p *Merge) Validate() error { return nil }

// Layout implements Primitive.
func (p *Merge) Layout(ctx *LayoutContext) error {
	if len(p.Inputs) == 0 {
		lb, err := ctx.Bounds(SourceGraphic)
		if err != nil {
			return err
		}
		ctx.Save(&p.Base, lb)
		return nil
	}
	var out LayoutBounds
	for i, key := range p.Inputs {
		lb, err := ctx.Bounds(key)
		if err != nil {
			return err
		}
		if i == 0 {
			out = lb
		} else {
			out = out.Union(lb)
		}
	}
	ctx.Save(&p.Base, out)
	return nil
}

// Apply implements Primitive.
func (p *Merge) Apply(ctx *Context) error {
	if len(p.Inputs) == 0 {
		ch, err := ctx.Channel(SourceGraphic)
		if err != nil {
			return err
		}
		ctx.Save(&p.Base, ch)
		return nil
	}
	// Resolve every input before drawing so a missing one skips the merge.
	layers := make([]*color.Plane, len(p.Inputs))
	for i, key := range p.Inputs {
		pl, err := ctx.Working(&p.Base, key)
		if err != nil {
			return err
		}
		layers[i] = pl
	}
	dst := layers[0]
	over := blend.Get(blend.BlendSourceOver)
	for _, layer := range layers[1:] {
		blend.Apply(dst.Pix, layer.Pix, over)
	}
	ctx.SaveWorking(&p.Base, dst)
	return nil
}

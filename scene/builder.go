package scene

import (
	"github.com/gogpu/svgfx"
	"github.com/gogpu/svgfx/filter"
)

// Builder provides a fluent API for constructing scenes in code.
//
// Example:
//
//	s := scene.NewBuilder(256, 256).
//	    Background(svgfx.White).
//	    Filter("blur", filter.New([]filter.Primitive{filter.NewGaussianBlur(4)})).
//	    Rect(svgfx.XYWH(64, 64, 128, 128), svgfx.Red).
//	    WithFilter("blur").
//	    Build()
type Builder struct {
	scene *Scene
}

// NewBuilder starts a transparent scene of the given size.
func NewBuilder(width, height int) *Builder {
	return &Builder{scene: &Scene{
		Width:     width,
		Height:    height,
		Transform: svgfx.Identity(),
		Filters:   make(map[string]*filter.Filter),
	}}
}

// Background sets the canvas background.
func (b *Builder) Background(c svgfx.RGBA) *Builder {
	b.scene.Background = c
	return b
}

// Transform sets the canvas transform.
func (b *Builder) Transform(m svgfx.Matrix) *Builder {
	b.scene.Transform = m
	return b
}

// Filter registers f under id.
func (b *Builder) Filter(id string, f *filter.Filter) *Builder {
	b.scene.Filters[id] = f
	return b
}

// Rect appends a filled rectangle.
func (b *Builder) Rect(r svgfx.Rect, fill svgfx.RGBA) *Builder {
	return b.add(Element{Kind: KindRect, Bounds: r, Fill: fill})
}

// Image appends an image scaled to r.
func (b *Builder) Image(r svgfx.Rect, pm *svgfx.Pixmap) *Builder {
	return b.add(Element{Kind: KindImage, Bounds: r, Image: pm})
}

// WithFilter paints the most recent element through the filter id.
func (b *Builder) WithFilter(id string) *Builder {
	if el := b.last(); el != nil {
		el.Filter = id
	}
	return b
}

// WithTransform sets the transform of the most recent element.
func (b *Builder) WithTransform(m svgfx.Matrix) *Builder {
	if el := b.last(); el != nil {
		el.Transform = m
	}
	return b
}

// WithOpacity sets the opacity of the most recent element.
func (b *Builder) WithOpacity(opacity float64) *Builder {
	if el := b.last(); el != nil {
		el.Opacity = opacity
	}
	return b
}

// Build returns the scene. The builder must not be used afterwards.
func (b *Builder) Build() *Scene {
	return b.scene
}

func (b *Builder) add(el Element) *Builder {
	el.Opacity = 1
	el.Transform = svgfx.Identity()
	b.scene.Elements = append(b.scene.Elements, el)
	return b
}

func (b *Builder) last() *Element {
	if len(b.scene.Elements) == 0 {
		return nil
	}
	return &b.scene.Elements[len(b.scene.Elements)-1]
}

package scene

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/svgfx"
	"github.com/gogpu/svgfx/filter"
)

// Kind is the type of an element.
type Kind uint8

const (
	// KindRect is a filled rectangle.
	KindRect Kind = iota
	// KindImage is a decoded raster image.
	KindImage
)

// String returns the scene file spelling of k.
func (k Kind) String() string {
	if k == KindImage {
		return "image"
	}
	return "rect"
}

// Element is one drawable of a scene.
type Element struct {
	Kind Kind
	// Bounds is the user-space rectangle the element covers. It is also the
	// bounding box passed to the filter.
	Bounds svgfx.Rect
	Fill   svgfx.RGBA
	// Image is drawn scaled to Bounds for KindImage.
	Image   *svgfx.Pixmap
	Opacity float64
	// Transform is applied on top of the canvas transform. The zero Matrix
	// is treated as the identity.
	Transform svgfx.Matrix
	// Clip limits the element to a user-space rectangle when non-nil.
	Clip *svgfx.Rect
	// Filter names an entry of Scene.Filters, or is empty.
	Filter string
}

// draw renders the element onto c in its user space.
func (el *Element) draw(c *svgfx.Canvas) {
	switch el.Kind {
	case KindImage:
		if el.Image == nil || el.Image.IsEmpty() {
			return
		}
		img := el.Image
		if el.Opacity < 1 {
			img = fade(img, el.Opacity)
		}
		sx := el.Bounds.Width() / float64(img.Width())
		sy := el.Bounds.Height() / float64(img.Height())
		c.Push()
		c.Concat(svgfx.Translate(el.Bounds.MinX, el.Bounds.MinY).Multiply(svgfx.Scale(sx, sy)))
		c.DrawImage(img.ToImage(), svgfx.Pt(0, 0))
		c.Pop()
	default:
		c.FillRect(el.Bounds, el.Fill.WithAlpha(el.Opacity))
	}
}

// fade returns a copy of pm with every channel scaled by opacity.
func fade(pm *svgfx.Pixmap, opacity float64) *svgfx.Pixmap {
	out := pm.Clone()
	k := uint32(max(0, min(1, opacity)) * 256)
	data := out.Data()
	for i := range data {
		data[i] = uint8(uint32(data[i]) * k >> 8)
	}
	return out
}

// Scene is a canvas description with its elements and filters.
type Scene struct {
	Width, Height int
	Background    svgfx.RGBA
	Transform     svgfx.Matrix
	Elements      []Element
	Filters       map[string]*filter.Filter
}

// FilterIDs returns the filter names in sorted order.
func (s *Scene) FilterIDs() []string {
	return slices.Sorted(maps.Keys(s.Filters))
}

// Render paints the scene onto a new canvas. It stops between elements
// when ctx is done.
func (s *Scene) Render(ctx context.Context) (*svgfx.Pixmap, error) {
	c := svgfx.NewCanvas(s.Width, s.Height, svgfx.WithTransform(s.Transform))
	if s.Background.A > 0 {
		c.Pixmap().Fill(s.Background)
	}
	if err := s.RenderTo(ctx, c); err != nil {
		return nil, err
	}
	return c.Pixmap(), nil
}

// RenderTo paints the elements onto c.
func (s *Scene) RenderTo(ctx context.Context, c *svgfx.Canvas) error {
	log := svgfx.Logger()
	for i := range s.Elements {
		if err := ctx.Err(); err != nil {
			return err
		}
		el := &s.Elements[i]
		c.Push()
		if el.Transform != (svgfx.Matrix{}) {
			c.Concat(el.Transform)
		}
		if el.Clip != nil {
			c.ClipRect(*el.Clip)
		}
		if el.Filter == "" {
			el.draw(c)
			c.Pop()
			continue
		}
		f, ok := s.Filters[el.Filter]
		if !ok {
			c.Pop()
			return fmt.Errorf("scene: element %d: unknown filter %q", i, el.Filter)
		}
		log.Debug("scene: painting filtered element",
			"element", i, "kind", el.Kind, "filter", el.Filter, "primitives", len(f.Primitives()))
		if !f.Paint(c, el.Bounds, el.draw) {
			log.Debug("scene: filtered element not painted", "element", i, "filter", el.Filter)
		}
		c.Pop()
	}
	return nil
}

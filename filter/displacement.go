package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/svgfx"
)

// ColorChannel selects a component of a pixel.
type ColorChannel uint8

// Color channels. The zero value is A, the SVG default.
const (
	ChannelA ColorChannel = iota
	ChannelR
	ChannelG
	ChannelB
)

// ParseColorChannel parses xChannelSelector and yChannelSelector values.
func ParseColorChannel(s string) (ColorChannel, error) {
	switch s {
	case "", "A":
		return ChannelA, nil
	case "R":
		return ChannelR, nil
	case "G":
		return ChannelG, nil
	case "B":
		return ChannelB, nil
	}
	return ChannelA, fmt.Errorf("filter: unknown color channel %q", s)
}

// offset returns the byte index of the channel within an RGBA pixel.
func (c ColorChannel) offset() int {
	switch c {
	case ChannelR:
		return 0
	case ChannelG:
		return 1
	case ChannelB:
		return 2
	default:
		return 3
	}
}

// DisplacementMap moves pixels of In by amounts read from In2.
type DisplacementMap struct {
	Base
	Scale              float64
	XChannel, YChannel ColorChannel
	In2                Key
}

// NewDisplacementMap returns a displacement of in by in2.
func NewDisplacementMap(scale float64, in, in2 Key) *DisplacementMap {
	d := &DisplacementMap{Scale: scale, In2: in2}
	d.In = in
	return d
}

// Tag implements Primitive.
func (p *DisplacementMap) Tag() string { return "feDisplacementMap" }

// Validate implements Primitive.
func (p *DisplacementMap) Validate() error { return nil }

// Layout implements Primitive.
func (p *DisplacementMap) Layout(ctx *LayoutContext) error {
	src, err := ctx.Input(&p.Base)
	if err != nil {
		return err
	}
	if p.Scale == 0 {
		ctx.Save(&p.Base, src)
		return nil
	}
	dst, err := ctx.Bounds(p.In2)
	if err != nil {
		return err
	}
	sx, sy := ctx.Scale(p.Scale, p.Scale)
	ctx.Save(&p.Base, src.Union(dst).Grow(math.Abs(sx)/2, math.Abs(sy)/2, ctx))
	return nil
}

// Apply implements Primitive.
func (p *DisplacementMap) Apply(ctx *Context) error {
	if p.Scale == 0 {
		return passInput(ctx, &p.Base)
	}
	// A nearest-pixel copy commutes with the color space conversion, so
	// the input is moved as stored. The map is read as stored too.
	src, err := ctx.Pixmap(p.In)
	if err != nil {
		return err
	}
	disp, err := ctx.Pixmap(p.In2)
	if err != nil {
		return err
	}
	sx, sy := ctx.Scale(p.Scale, p.Scale)
	ctx.SavePixmap(&p.Base, displace(src, disp, sx, sy, p.XChannel.offset(), p.YChannel.offset()))
	return nil
}

func displace(src, disp *svgfx.Pixmap, sx, sy float64, xc, yc int) *svgfx.Pixmap {
	w, h := src.Width(), src.Height()
	dst := svgfx.NewPixmap(w, h)
	in, m, out := src.Data(), disp.Data(), dst.Data()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			if i+3 >= len(m) {
				continue
			}
			a := m[i+3]
			dx := float64(channelValue(m[i+xc], a, xc))/255 - 0.5
			dy := float64(channelValue(m[i+yc], a, yc))/255 - 0.5
			tx := int(math.Round(float64(x) + sx*dx))
			ty := int(math.Round(float64(y) + sy*dy))
			if tx < 0 || tx >= w || ty < 0 || ty >= h {
				continue
			}
			j := (ty*w + tx) * 4
			copy(out[i:i+4], in[j:j+4])
		}
	}
	return dst
}

// channelValue returns the unpremultiplied value of a component.
func channelValue(v, a uint8, offset int) uint8 {
	if offset == 3 {
		return v
	}
	return unpremul8(v, a)
}

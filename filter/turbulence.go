package filter

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/gogpu/svgfx"
	svgcolor "github.com/gogpu/svgfx/internal/color"
	"github.com/gogpu/svgfx/internal/noise"
)

// TurbulenceType selects the noise function.
type TurbulenceType uint8

const (
	// TurbulenceNoise sums absolute noise.
	TurbulenceNoise TurbulenceType = iota
	// FractalNoise sums signed noise around mid grey.
	FractalNoise
)

// ParseTurbulenceType parses the type attribute of feTurbulence.
func ParseTurbulenceType(s string) (TurbulenceType, error) {
	switch s {
	case "", "turbulence":
		return TurbulenceNoise, nil
	case "fractalNoise":
		return FractalNoise, nil
	}
	return TurbulenceNoise, fmt.Errorf("filter: unknown turbulence type %q", s)
}

// Turbulence synthesizes Perlin noise over the primitive subregion.
type Turbulence struct {
	Base
	BaseFrequency []float64
	NumOctaves    int
	Seed          float64
	StitchTiles   bool
	Type          TurbulenceType

	once sync.Once
	gen  *noise.Turbulence
}

// NewTurbulence returns a turbulence with one octave.
func NewTurbulence(t TurbulenceType, baseFrequency ...float64) *Turbulence {
	return &Turbulence{Type: t, BaseFrequency: baseFrequency, NumOctaves: 1}
}

// Tag implements Primitive.
func (p *Turbulence) Tag() string { return "feTurbulence" }

// Validate implements Primitive.
func (p *Turbulence) Validate() error {
	if len(p.BaseFrequency) > 2 {
		return fmt.Errorf("%w: feTurbulence takes at most two base frequencies, got %d",
			ErrInvalidFilterConfiguration, len(p.BaseFrequency))
	}
	fx, fy := p.frequency()
	if fx < 0 || fy < 0 {
		return fmt.Errorf("%w: negative base frequency", ErrInvalidFilterConfiguration)
	}
	return nil
}

func (p *Turbulence) frequency() (float64, float64) {
	switch len(p.BaseFrequency) {
	case 0:
		return 0, 0
	case 1:
		return p.BaseFrequency[0], p.BaseFrequency[0]
	default:
		return p.BaseFrequency[0], p.BaseFrequency[1]
	}
}

func (p *Turbulence) generator() *noise.Turbulence {
	p.once.Do(func() {
		fx, fy := p.frequency()
		p.gen = noise.New(int(math.Round(p.Seed)), p.NumOctaves, fx, fy)
	})
	return p.gen
}

// Layout implements Primitive.
func (p *Turbulence) Layout(ctx *LayoutContext) error {
	ctx.Save(&p.Base, NewLayoutBounds(ctx.Subregion(&p.Base), svgfx.Insets{}))
	return nil
}

// Apply implements Primitive.
func (p *Turbulence) Apply(ctx *Context) error {
	gen := p.generator()
	fractal := p.Type == FractalNoise
	area := ctx.PixelRect(ctx.Subregion(&p.Base))
	toUser := ctx.UserToPixel().Invert()
	linear := ctx.ColorSpace(&p.Base) == svgcolor.ColorSpaceLinear

	var tile *noise.Tile
	if p.StitchTiles {
		r := ctx.UserSubregion(&p.Base)
		tile = &noise.Tile{X: r.MinX, Y: r.MinY, Width: r.Width(), Height: r.Height()}
	}

	w, h := ctx.Size()
	ch := ProceduralChannel(w, h, func(x, y int) color.RGBA {
		if x < area.Min.X || x >= area.Max.X || y < area.Min.Y || y >= area.Max.Y {
			return color.RGBA{}
		}
		pt := toUser.TransformPoint(svgfx.Pt(float64(x)+0.5, float64(y)+0.5))
		v := gen.At(pt.X, pt.Y, fractal, tile)
		r, g, b, a := noiseByte(v[0]), noiseByte(v[1]), noiseByte(v[2]), noiseByte(v[3])
		if linear {
			r, g, b = linearNoise(v[0]), linearNoise(v[1]), linearNoise(v[2])
		}
		return color.RGBA{R: premul8(r, a), G: premul8(g, a), B: premul8(b, a), A: a}
	})
	ctx.Save(&p.Base, ch)
	return nil
}

// linearNoise encodes a linear-light noise value in [0, 255] as sRGB.
func linearNoise(v float64) uint8 {
	return svgcolor.LinearToSRGB(float32(v / 255))
}

func noiseByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}

package filter

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/svgfx/internal/color"
)

// TransferType selects a component transfer function.
type TransferType uint8

const (
	TransferIdentity TransferType = iota
	TransferTable
	TransferDiscrete
	TransferLinear
	TransferGamma
)

// ParseTransferType parses the type attribute of feFuncR/G/B/A.
func ParseTransferType(s string) (TransferType, error) {
	switch s {
	case "", "identity":
		return TransferIdentity, nil
	case "table":
		return TransferTable, nil
	case "discrete":
		return TransferDiscrete, nil
	case "linear":
		return TransferLinear, nil
	case "gamma":
		return TransferGamma, nil
	}
	return TransferIdentity, fmt.Errorf("filter: unknown transfer function type %q", s)
}

// TransferFunc is one feFuncX element. Use NewTransferFunc for the SVG
// defaults of slope, amplitude and exponent.
type TransferFunc struct {
	Type        TransferType
	TableValues []float64
	Slope       float64
	Intercept   float64
	Amplitude   float64
	Exponent    float64
	Offset      float64
}

// NewTransferFunc returns a function of type t with default parameters.
func NewTransferFunc(t TransferType) TransferFunc {
	return TransferFunc{Type: t, Slope: 1, Amplitude: 1, Exponent: 1}
}

// isIdentity reports whether the function maps every value to itself.
func (f TransferFunc) isIdentity() bool {
	switch f.Type {
	case TransferTable, TransferDiscrete:
		return len(f.TableValues) == 0
	case TransferLinear:
		return f.Slope == 1 && f.Intercept == 0
	case TransferGamma:
		return f.Amplitude == 1 && f.Exponent == 1 && f.Offset == 0
	default:
		return true
	}
}

// eval applies the function to a channel value in [0, 1]. The result is
// not clamped.
func (f TransferFunc) eval(x float64) float64 {
	// Bias the index floors so values exactly on a table step land on it.
	const eps = 1e-9
	n := len(f.TableValues)
	switch f.Type {
	case TransferTable:
		if n == 0 {
			return x
		}
		fi := x * float64(n-1)
		k := min(int(fi+eps), n-1)
		next := min(k+1, n-1)
		return f.TableValues[k] + (fi-float64(k))*(f.TableValues[next]-f.TableValues[k])
	case TransferDiscrete:
		if n == 0 {
			return x
		}
		return f.TableValues[min(int(x*float64(n)+eps), n-1)]
	case TransferLinear:
		return f.Slope*x + f.Intercept
	case TransferGamma:
		return f.Amplitude*math.Pow(x, f.Exponent) + f.Offset
	}
	return x
}

// lookup bakes the function into a table over 0..255, or nil for identity.
func (f TransferFunc) lookup() *[256]uint8 {
	if f.isIdentity() {
		return nil
	}
	var t [256]uint8
	for j := range t {
		t[j] = unit8(f.eval(float64(j) / 255))
	}
	return &t
}

// ComponentTransfer remaps each channel of its input independently.
type ComponentTransfer struct {
	Base
	R, G, B, A TransferFunc

	once   sync.Once
	tables [4]*[256]uint8
	linear [3]*[256]uint8
}

// Tag implements Primitive.
func (p *ComponentTransfer) Tag() string { return "feComponentTransfer" }

// Validate implements Primitive.
func (p *ComponentTransfer) Validate() error { return nil }

func (p *ComponentTransfer) isNoop() bool {
	return p.R.isIdentity() && p.G.isIdentity() && p.B.isIdentity() && p.A.isIdentity()
}

// build bakes the lookup tables. The linear-light variants evaluate the
// color functions on linear values while reading and writing sRGB.
func (p *ComponentTransfer) build() {
	p.once.Do(func() {
		for i, f := range [4]TransferFunc{p.R, p.G, p.B, p.A} {
			p.tables[i] = f.lookup()
		}
		for i, f := range [3]TransferFunc{p.R, p.G, p.B} {
			if p.tables[i] == nil {
				continue
			}
			var lin [256]uint8
			for s := range lin {
				l := f.eval(float64(color.SRGBToLinearFast(uint8(s))))
				lin[s] = color.LinearToSRGB(float32(clamp01(l)))
			}
			p.linear[i] = &lin
		}
	})
}

// Layout implements Primitive.
func (p *ComponentTransfer) Layout(ctx *LayoutContext) error {
	in, err := ctx.Input(&p.Base)
	if err != nil {
		return err
	}
	if !p.isNoop() {
		in = in.WithFlags(Flags{WholeRegion: true})
	}
	ctx.Save(&p.Base, in)
	return nil
}

// Apply implements Primitive.
func (p *ComponentTransfer) Apply(ctx *Context) error {
	if p.isNoop() {
		return passInput(ctx, &p.Base)
	}
	src, err := ctx.Pixmap(p.In)
	if err != nil {
		return err
	}
	p.build()
	tables := p.tables
	if ctx.ColorSpace(&p.Base) == color.ColorSpaceLinear {
		for i := range p.linear {
			tables[i] = p.linear[i]
		}
	}

	pm := src.Clone()
	data := pm.Data()
	for i := 0; i < len(data); i += 4 {
		a := data[i+3]
		var px [4]uint8
		for c := 0; c < 3; c++ {
			px[c] = unpremul8(data[i+c], a)
		}
		px[3] = a
		for c, t := range tables {
			if t != nil {
				px[c] = t[px[c]]
			}
		}
		na := px[3]
		data[i] = premul8(px[0], na)
		data[i+1] = premul8(px[1], na)
		data[i+2] = premul8(px[2], na)
		data[i+3] = na
	}
	ctx.SavePixmap(&p.Base, pm)
	return nil
}

func unpremul8(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	if a == 255 {
		return c
	}
	return uint8(min(255, (uint32(c)*255+uint32(a)/2)/uint32(a)))
}

func premul8(c, a uint8) uint8 {
	t := uint32(c)*uint32(a) + 128
	return uint8((t + t>>8) >> 8)
}

func unit8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/svgfx/internal/color"
)

// ColorMatrixType selects how ColorMatrix.Values is interpreted.
type ColorMatrixType uint8

const (
	// MatrixValues takes a row-major 4x5 matrix.
	MatrixValues ColorMatrixType = iota
	// Saturate takes a single saturation amount.
	Saturate
	// HueRotate takes an angle in degrees.
	HueRotate
	// LuminanceToAlpha takes no values.
	LuminanceToAlpha
)

// ParseColorMatrixType parses the type attribute of feColorMatrix.
func ParseColorMatrixType(s string) (ColorMatrixType, error) {
	switch s {
	case "", "matrix":
		return MatrixValues, nil
	case "saturate":
		return Saturate, nil
	case "hueRotate":
		return HueRotate, nil
	case "luminanceToAlpha":
		return LuminanceToAlpha, nil
	}
	return MatrixValues, fmt.Errorf("filter: unknown color matrix type %q", s)
}

// ColorMatrix transforms unpremultiplied RGBA by a 4x5 matrix.
type ColorMatrix struct {
	Base
	Type   ColorMatrixType
	Values []float64
}

// NewColorMatrix returns a color matrix of the given type.
func NewColorMatrix(t ColorMatrixType, values ...float64) *ColorMatrix {
	return &ColorMatrix{Type: t, Values: values}
}

// Tag implements Primitive.
func (p *ColorMatrix) Tag() string { return "feColorMatrix" }

// Validate implements Primitive.
func (p *ColorMatrix) Validate() error {
	if p.Type == MatrixValues && len(p.Values) != 0 && len(p.Values) != 20 {
		return fmt.Errorf("%w: feColorMatrix matrix takes 20 values, got %d",
			ErrInvalidFilterConfiguration, len(p.Values))
	}
	return nil
}

var identityMatrix = [20]float64{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// matrix returns the effective matrix.
func (p *ColorMatrix) matrix() [20]float64 {
	switch p.Type {
	case Saturate:
		s := 1.0
		if len(p.Values) > 0 {
			s = p.Values[0]
		}
		if s == 1 {
			return identityMatrix
		}
		return saturateMatrix(s)
	case HueRotate:
		deg := 0.0
		if len(p.Values) > 0 {
			deg = p.Values[0]
		}
		if math.Mod(deg, 360) == 0 {
			return identityMatrix
		}
		return hueRotateMatrix(deg)
	case LuminanceToAlpha:
		return [20]float64{
			0, 0, 0, 0, 0,
			0, 0, 0, 0, 0,
			0, 0, 0, 0, 0,
			0.2125, 0.7154, 0.0721, 0, 0,
		}
	default:
		if len(p.Values) != 20 {
			return identityMatrix
		}
		var m [20]float64
		copy(m[:], p.Values)
		return m
	}
}

func saturateMatrix(s float64) [20]float64 {
	return [20]float64{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func hueRotateMatrix(deg float64) [20]float64 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return [20]float64{
		0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928, 0, 0,
		0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283, 0, 0,
		0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Layout implements Primitive.
func (p *ColorMatrix) Layout(ctx *LayoutContext) error {
	in, err := ctx.Input(&p.Base)
	if err != nil {
		return err
	}
	m := p.matrix()
	if m[19] > 0 {
		// A positive alpha offset makes transparent pixels visible.
		in = in.WithFlags(Flags{WholeRegion: true})
	}
	ctx.Save(&p.Base, in)
	return nil
}

// Apply implements Primitive.
func (p *ColorMatrix) Apply(ctx *Context) error {
	m := p.matrix()
	if m == identityMatrix {
		return passInput(ctx, &p.Base)
	}
	src, err := ctx.Pixmap(p.In)
	if err != nil {
		return err
	}
	space := ctx.ColorSpace(&p.Base)
	if m[19] != 0 {
		// Constant alpha is defined on stored values.
		space = color.ColorSpaceSRGB
	}
	pl := color.Decode(src.Data(), src.Width(), src.Height(), space)
	applyColorMatrix(pl.Pix, &m)
	ctx.SaveWorking(&p.Base, pl)
	return nil
}

func applyColorMatrix(pix []float32, m *[20]float64) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := float64(pix[i+3])
		var r, g, b float64
		if a > 0 {
			r = min(float64(pix[i])/a, 1)
			g = min(float64(pix[i+1])/a, 1)
			b = min(float64(pix[i+2])/a, 1)
		}
		nr := clamp01(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
		ng := clamp01(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
		nb := clamp01(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
		na := clamp01(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])
		pix[i] = float32(nr * na)
		pix[i+1] = float32(ng * na)
		pix[i+2] = float32(nb * na)
		pix[i+3] = float32(na)
	}
}

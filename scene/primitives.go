package scene

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/gogpu/svgfx"
	"github.com/gogpu/svgfx/filter"
)

// primitiveSpec is one [[filter.<id>.primitive]] table. Only the fields
// relevant to Type are read.
type primitiveSpec struct {
	Type string `toml:"type"`

	X      length `toml:"x"`
	Y      length `toml:"y"`
	Width  length `toml:"width"`
	Height length `toml:"height"`

	In                 string `toml:"in"`
	In2                string `toml:"in2"`
	Result             string `toml:"result"`
	ColorInterpolation string `toml:"color-interpolation-filters"`

	Kind   string  `toml:"kind"`
	Values numbers `toml:"values"`

	StdDeviation numbers `toml:"stdDeviation"`
	EdgeMode     string  `toml:"edgeMode"`

	Dx *float64 `toml:"dx"`
	Dy *float64 `toml:"dy"`

	Color   string   `toml:"color"`
	Opacity *float64 `toml:"opacity"`

	Mode     string  `toml:"mode"`
	Operator string  `toml:"operator"`
	K1       float64 `toml:"k1"`
	K2       float64 `toml:"k2"`
	K3       float64 `toml:"k3"`
	K4       float64 `toml:"k4"`

	Scale    float64 `toml:"scale"`
	XChannel string  `toml:"xChannelSelector"`
	YChannel string  `toml:"yChannelSelector"`

	BaseFrequency numbers `toml:"baseFrequency"`
	NumOctaves    *int    `toml:"numOctaves"`
	Seed          float64 `toml:"seed"`
	StitchTiles   string  `toml:"stitchTiles"`

	Inputs []string `toml:"inputs"`

	FuncR *transferSpec `toml:"funcR"`
	FuncG *transferSpec `toml:"funcG"`
	FuncB *transferSpec `toml:"funcB"`
	FuncA *transferSpec `toml:"funcA"`
}

// transferSpec is an feFuncX inline table.
type transferSpec struct {
	Type        string   `toml:"type"`
	TableValues numbers  `toml:"tableValues"`
	Slope       *float64 `toml:"slope"`
	Intercept   float64  `toml:"intercept"`
	Amplitude   *float64 `toml:"amplitude"`
	Exponent    *float64 `toml:"exponent"`
	Offset      float64  `toml:"offset"`
}

type builder func(ps *primitiveSpec) (filter.Primitive, error)

// builders maps folded primitive names without the "fe" prefix.
var builders = map[string]builder{
	"blend":             buildBlend,
	"colormatrix":       buildColorMatrix,
	"componenttransfer": buildComponentTransfer,
	"composite":         buildComposite,
	"displacementmap":   buildDisplacementMap,
	"dropshadow":        buildDropShadow,
	"flood":             buildFlood,
	"gaussianblur":      buildGaussianBlur,
	"merge":             buildMerge,
	"offset":            buildOffset,
	"turbulence":        buildTurbulence,
}

// passthroughTypes are SVG primitives that are recognized but not rendered.
var passthroughTypes = []string{
	"feConvolveMatrix",
	"feDiffuseLighting",
	"feImage",
	"feMorphology",
	"feSpecularLighting",
	"feTile",
}

var fold = cases.Fold()

// canonicalType folds name and strips the "fe" prefix.
func canonicalType(name string) string {
	f := fold.String(strings.TrimSpace(name))
	return strings.TrimPrefix(f, "fe")
}

// PrimitiveTypes returns the element names of the supported primitives in
// sorted order.
func PrimitiveTypes() []string {
	names := make([]string, 0, len(builders))
	for _, p := range []filter.Primitive{
		&filter.Blend{}, &filter.ColorMatrix{}, &filter.ComponentTransfer{},
		&filter.Composite{}, &filter.DisplacementMap{}, &filter.DropShadow{},
		&filter.Flood{}, &filter.GaussianBlur{}, &filter.Merge{},
		&filter.Offset{}, &filter.Turbulence{},
	} {
		names = append(names, p.Tag())
	}
	slices.Sort(names)
	return names
}

// PassthroughTypes returns the element names that are accepted but pass
// their input through.
func PassthroughTypes() []string {
	return slices.Clone(passthroughTypes)
}

// buildPrimitive converts ps. Unknown types become a Passthrough.
func buildPrimitive(ps *primitiveSpec) (filter.Primitive, error) {
	if ps.Type == "" {
		return nil, fmt.Errorf("scene: primitive without type")
	}
	build, ok := builders[canonicalType(ps.Type)]
	if !ok {
		p := filter.NewPassthrough(ps.Type)
		if err := ps.base(p.Attrs()); err != nil {
			return nil, err
		}
		return p, nil
	}
	p, err := build(ps)
	if err != nil {
		return nil, err
	}
	if err := ps.base(p.Attrs()); err != nil {
		return nil, err
	}
	return p, nil
}

// base fills the attributes shared by every primitive. Fields set by the
// builder, such as In of a two-input primitive, are kept when ps leaves
// them empty.
func (ps *primitiveSpec) base(b *filter.Base) error {
	b.X, b.Y = ps.X.Length, ps.Y.Length
	b.Width, b.Height = ps.Width.Length, ps.Height.Length
	if ps.In != "" {
		b.In = filter.ParseKey(ps.In)
	}
	b.Result = filter.NamedKey(ps.Result)
	ci, err := filter.ParseColorInterpolation(ps.ColorInterpolation)
	if err != nil {
		return err
	}
	b.ColorInterpolation = ci
	return nil
}

func (ps *primitiveSpec) offset(dx, dy float64) (float64, float64) {
	if ps.Dx != nil {
		dx = *ps.Dx
	}
	if ps.Dy != nil {
		dy = *ps.Dy
	}
	return dx, dy
}

func (ps *primitiveSpec) color(def svgfx.RGBA) (svgfx.RGBA, error) {
	if ps.Color == "" {
		return def, nil
	}
	return parseColor(ps.Color)
}

func (ps *primitiveSpec) opacity() float64 {
	if ps.Opacity == nil {
		return 1
	}
	return *ps.Opacity
}

func buildBlend(ps *primitiveSpec) (filter.Primitive, error) {
	mode, err := filter.ParseBlendMode(ps.Mode)
	if err != nil {
		return nil, err
	}
	return filter.NewBlend(mode, filter.Key{}, filter.ParseKey(ps.In2)), nil
}

func buildColorMatrix(ps *primitiveSpec) (filter.Primitive, error) {
	t, err := filter.ParseColorMatrixType(ps.Kind)
	if err != nil {
		return nil, err
	}
	return filter.NewColorMatrix(t, ps.Values...), nil
}

func buildComponentTransfer(ps *primitiveSpec) (filter.Primitive, error) {
	ct := &filter.ComponentTransfer{}
	for _, f := range []struct {
		spec *transferSpec
		dst  *filter.TransferFunc
	}{
		{ps.FuncR, &ct.R}, {ps.FuncG, &ct.G}, {ps.FuncB, &ct.B}, {ps.FuncA, &ct.A},
	} {
		if f.spec == nil {
			continue
		}
		fn, err := f.spec.build()
		if err != nil {
			return nil, err
		}
		*f.dst = fn
	}
	return ct, nil
}

func (ts *transferSpec) build() (filter.TransferFunc, error) {
	t, err := filter.ParseTransferType(ts.Type)
	if err != nil {
		return filter.TransferFunc{}, err
	}
	f := filter.NewTransferFunc(t)
	f.TableValues = ts.TableValues
	f.Intercept = ts.Intercept
	f.Offset = ts.Offset
	if ts.Slope != nil {
		f.Slope = *ts.Slope
	}
	if ts.Amplitude != nil {
		f.Amplitude = *ts.Amplitude
	}
	if ts.Exponent != nil {
		f.Exponent = *ts.Exponent
	}
	return f, nil
}

func buildComposite(ps *primitiveSpec) (filter.Primitive, error) {
	op, err := filter.ParseCompositeOperator(ps.Operator)
	if err != nil {
		return nil, err
	}
	c := filter.NewComposite(op, filter.Key{}, filter.ParseKey(ps.In2))
	c.K1, c.K2, c.K3, c.K4 = ps.K1, ps.K2, ps.K3, ps.K4
	return c, nil
}

func buildDisplacementMap(ps *primitiveSpec) (filter.Primitive, error) {
	xc, err := filter.ParseColorChannel(ps.XChannel)
	if err != nil {
		return nil, err
	}
	yc, err := filter.ParseColorChannel(ps.YChannel)
	if err != nil {
		return nil, err
	}
	d := filter.NewDisplacementMap(ps.Scale, filter.Key{}, filter.ParseKey(ps.In2))
	d.XChannel, d.YChannel = xc, yc
	return d, nil
}

func buildDropShadow(ps *primitiveSpec) (filter.Primitive, error) {
	d := filter.NewDropShadow()
	d.Dx, d.Dy = ps.offset(d.Dx, d.Dy)
	if ps.StdDeviation != nil {
		d.StdDeviation = ps.StdDeviation
	}
	c, err := ps.color(d.Color)
	if err != nil {
		return nil, err
	}
	d.Color = c
	d.Opacity = ps.opacity()
	return d, nil
}

func buildFlood(ps *primitiveSpec) (filter.Primitive, error) {
	c, err := ps.color(svgfx.Black)
	if err != nil {
		return nil, err
	}
	return filter.NewFlood(c, ps.opacity()), nil
}

func buildGaussianBlur(ps *primitiveSpec) (filter.Primitive, error) {
	edge, err := filter.ParseEdgeMode(ps.EdgeMode)
	if err != nil {
		return nil, err
	}
	b := filter.NewGaussianBlur(ps.StdDeviation...)
	b.EdgeMode = edge
	return b, nil
}

func buildMerge(ps *primitiveSpec) (filter.Primitive, error) {
	keys := make([]filter.Key, len(ps.Inputs))
	for i, in := range ps.Inputs {
		keys[i] = filter.ParseKey(in)
	}
	return filter.NewMerge(keys...), nil
}

func buildOffset(ps *primitiveSpec) (filter.Primitive, error) {
	return filter.NewOffset(ps.offset(0, 0)), nil
}

func buildTurbulence(ps *primitiveSpec) (filter.Primitive, error) {
	t, err := filter.ParseTurbulenceType(ps.Kind)
	if err != nil {
		return nil, err
	}
	p := filter.NewTurbulence(t, ps.BaseFrequency...)
	if ps.NumOctaves != nil {
		p.NumOctaves = *ps.NumOctaves
	}
	p.Seed = ps.Seed
	switch ps.StitchTiles {
	case "", "noStitch":
	case "stitch":
		p.StitchTiles = true
	default:
		return nil, fmt.Errorf("scene: unknown stitchTiles value %q", ps.StitchTiles)
	}
	return p, nil
}

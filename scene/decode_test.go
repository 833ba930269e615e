package scene

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/svgfx"
	"github.com/gogpu/svgfx/filter"
)

const shadowScene = `
[canvas]
width = 64
height = 48
background = "white"

[[element]]
type = "rect"
x = 10
y = 10
width = 20
height = 20
fill = "#ff0000"
filter = "shadow"

[[element]]
x = 40
y = 5
width = 10
height = 10
fill = "navy"
opacity = 0.5

[filter.shadow]
filterUnits = "userSpaceOnUse"
x = 0
y = 0
width = "200%"
height = "200%"

[[filter.shadow.primitive]]
type = "FEDROPSHADOW"
dx = 3
stdDeviation = "1.5"
color = "black"
opacity = 0.5
`

func TestDecode(t *testing.T) {
	s, err := Decode([]byte(shadowScene), "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Width != 64 || s.Height != 48 {
		t.Errorf("size = %dx%d, want 64x48", s.Width, s.Height)
	}
	if diff := cmp.Diff(svgfx.White, s.Background); diff != "" {
		t.Errorf("background mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"shadow"}, s.FilterIDs()); diff != "" {
		t.Errorf("filter ids mismatch (-want +got):\n%s", diff)
	}
	if len(s.Elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(s.Elements))
	}

	first := s.Elements[0]
	if first.Kind != KindRect || first.Filter != "shadow" || first.Bounds != svgfx.XYWH(10, 10, 20, 20) {
		t.Errorf("first element = %+v", first)
	}
	second := s.Elements[1]
	if second.Opacity != 0.5 || second.Filter != "" || !second.Transform.IsIdentity() {
		t.Errorf("second element = %+v", second)
	}

	f := s.Filters["shadow"]
	if !f.Valid() {
		t.Fatalf("filter invalid: %v", f.Err())
	}
	// Percentages refer to the element box.
	if got, want := f.Region(first.Bounds), svgfx.XYWH(0, 0, 40, 40); got != want {
		t.Errorf("Region = %+v, want %+v", got, want)
	}
	ds, ok := f.Primitives()[0].(*filter.DropShadow)
	if !ok {
		t.Fatalf("primitive is %T, want *filter.DropShadow", f.Primitives()[0])
	}
	if ds.Dx != 3 || ds.Dy != 2 || ds.Opacity != 0.5 {
		t.Errorf("drop shadow = dx %v dy %v opacity %v, want 3 2 0.5", ds.Dx, ds.Dy, ds.Opacity)
	}
	if diff := cmp.Diff([]float64{1.5}, ds.StdDeviation); diff != "" {
		t.Errorf("stdDeviation mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"bad toml", "[canvas\nwidth = 1"},
		{"no size", "[canvas]\nwidth = 0\nheight = 10"},
		{"bad background", "[canvas]\nwidth = 1\nheight = 1\nbackground = \"#zz\""},
		{"unknown filter", "[canvas]\nwidth = 1\nheight = 1\n[[element]]\nfilter = \"nope\""},
		{"bad element type", "[canvas]\nwidth = 1\nheight = 1\n[[element]]\ntype = \"circle\""},
		{"image without href", "[canvas]\nwidth = 1\nheight = 1\n[[element]]\ntype = \"image\""},
		{"bad transform", "[canvas]\nwidth = 1\nheight = 1\ntransform = [1, 2]"},
		{"bad clip", "[canvas]\nwidth = 1\nheight = 1\n[[element]]\nclip = [1]"},
		{"bad units", "[canvas]\nwidth = 1\nheight = 1\n[filter.f]\nfilterUnits = \"px\""},
		{"primitive without type", "[canvas]\nwidth = 1\nheight = 1\n[[filter.f.primitive]]\ndx = 1"},
		{"bad blend mode", "[canvas]\nwidth = 1\nheight = 1\n[[filter.f.primitive]]\ntype = \"feBlend\"\nmode = \"sideways\""},
		{"bad length", "[canvas]\nwidth = 1\nheight = 1\n[filter.f]\nx = \"ten\""},
		{"bad number list", "[canvas]\nwidth = 1\nheight = 1\n[[filter.f.primitive]]\ntype = \"feGaussianBlur\"\nstdDeviation = \"1 x\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.toml), ""); err == nil {
				t.Error("Decode succeeded, want error")
			}
		})
	}
}

func TestDecodePrimitives(t *testing.T) {
	const doc = `
[canvas]
width = 8
height = 8

[[filter.f.primitive]]
type = "gaussianBlur"
stdDeviation = [1, 2]
edgeMode = "wrap"
result = "blurred"

[[filter.f.primitive]]
type = "feColorMatrix"
kind = "saturate"
values = 0.25
color-interpolation-filters = "sRGB"

[[filter.f.primitive]]
type = "feComponentTransfer"
funcR = { type = "table", tableValues = "1 0" }
funcA = { type = "linear", slope = 0.5 }

[[filter.f.primitive]]
type = "feComposite"
operator = "arithmetic"
in = "SourceGraphic"
in2 = "blurred"
k2 = 1
k3 = 1

[[filter.f.primitive]]
type = "feTurbulence"
kind = "fractalNoise"
baseFrequency = 0.05
numOctaves = 3
seed = 7
stitchTiles = "stitch"
width = "50%"

[[filter.f.primitive]]
type = "feMerge"
inputs = ["blurred", "SourceGraphic"]

[[filter.f.primitive]]
type = "feSpecularLighting"
`
	s, err := Decode([]byte(doc), "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	prims := s.Filters["f"].Primitives()
	if len(prims) != 7 {
		t.Fatalf("got %d primitives, want 7", len(prims))
	}

	blur := prims[0].(*filter.GaussianBlur)
	if diff := cmp.Diff([]float64{1, 2}, blur.StdDeviation); diff != "" {
		t.Errorf("stdDeviation mismatch (-want +got):\n%s", diff)
	}
	if blur.EdgeMode != filter.EdgeWrap || blur.Result != filter.NamedKey("blurred") {
		t.Errorf("blur = %+v", blur)
	}

	cm := prims[1].(*filter.ColorMatrix)
	if cm.Type != filter.Saturate || cm.ColorInterpolation != filter.SRGB {
		t.Errorf("color matrix = %+v", cm)
	}

	ct := prims[2].(*filter.ComponentTransfer)
	if diff := cmp.Diff([]float64{1, 0}, ct.R.TableValues); diff != "" {
		t.Errorf("funcR mismatch (-want +got):\n%s", diff)
	}
	if ct.A.Type != filter.TransferLinear || ct.A.Slope != 0.5 || ct.G.Type != filter.TransferIdentity {
		t.Errorf("transfer funcs = %+v", ct)
	}

	comp := prims[3].(*filter.Composite)
	if comp.In != filter.SourceGraphic || comp.In2 != filter.NamedKey("blurred") || comp.K2 != 1 {
		t.Errorf("composite = %+v", comp)
	}

	turb := prims[4].(*filter.Turbulence)
	if turb.Type != filter.FractalNoise || turb.NumOctaves != 3 || !turb.StitchTiles || turb.Seed != 7 {
		t.Errorf("turbulence = %+v", turb)
	}
	if !turb.Width.IsSet() || !turb.Width.Percent || turb.Width.Value != 50 {
		t.Errorf("turbulence width = %+v, want 50%%", turb.Width)
	}

	merge := prims[5].(*filter.Merge)
	if diff := cmp.Diff([]filter.Key{filter.NamedKey("blurred"), filter.SourceGraphic}, merge.Inputs,
		cmp.Comparer(func(a, b filter.Key) bool { return a == b })); diff != "" {
		t.Errorf("merge inputs mismatch (-want +got):\n%s", diff)
	}

	if p, ok := prims[6].(*filter.Passthrough); !ok || p.Tag() != "feSpecularLighting" {
		t.Errorf("unsupported primitive = %#v, want passthrough", prims[6])
	}
}

func TestLoadImageElement(t *testing.T) {
	dir := t.TempDir()
	img := svgfx.NewPixmap(4, 2)
	img.Fill(svgfx.Green)
	var buf bytes.Buffer
	if err := img.Encode(&buf, svgfx.FormatPNG); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tile.png"), buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	const doc = `
[canvas]
width = 16
height = 16

[[element]]
type = "image"
href = "tile.png"
x = 2
y = 3
`
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	el := s.Elements[0]
	if el.Kind != KindImage || el.Bounds != svgfx.XYWH(2, 3, 4, 2) {
		t.Errorf("image element = %+v, want bounds from image size", el)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want ErrNotExist", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    svgfx.RGBA
		wantErr bool
	}{
		{"#fff", svgfx.White, false},
		{"000000", svgfx.Black, false},
		{"Red", svgfx.Red, false},
		{"none", svgfx.Transparent, false},
		{"#12", svgfx.Black, true},
		{"chartreuse-ish", svgfx.Black, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseColor(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestCanonicalType(t *testing.T) {
	for _, in := range []string{"feGaussianBlur", "FEGAUSSIANBLUR", "gaussianblur", " GaussianBlur "} {
		if got := canonicalType(in); got != "gaussianblur" {
			t.Errorf("canonicalType(%q) = %q", in, got)
		}
	}
}

func TestPrimitiveTypes(t *testing.T) {
	types := PrimitiveTypes()
	if len(types) != len(builders) {
		t.Fatalf("PrimitiveTypes has %d entries, builders has %d", len(types), len(builders))
	}
	for _, name := range types {
		if _, ok := builders[canonicalType(name)]; !ok {
			t.Errorf("%s has no builder", name)
		}
	}
	for _, name := range PassthroughTypes() {
		if _, ok := builders[canonicalType(name)]; ok {
			t.Errorf("%s is both supported and passthrough", name)
		}
	}
}

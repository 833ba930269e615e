package filter

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/svgfx"
)

func TestOperatorNoops(t *testing.T) {
	// copies marks operators that produce a new buffer with the input's
	// pixels instead of passing the channel through.
	tests := []struct {
		name   string
		p      Primitive
		copies bool
	}{
		{"offset zero", NewOffset(0, 0), false},
		{"blur zero", NewGaussianBlur(0), false},
		{"blur empty", NewGaussianBlur(), false},
		{"blur negative", NewGaussianBlur(-1, 4), false},
		{"matrix empty", NewColorMatrix(MatrixValues), false},
		{"matrix identity", NewColorMatrix(MatrixValues, identityMatrix[:]...), false},
		{"saturate one", NewColorMatrix(Saturate, 1), false},
		{"hue rotate zero", NewColorMatrix(HueRotate), false},
		{"transfer identity", &ComponentTransfer{}, false},
		{"transfer default linear", &ComponentTransfer{R: NewTransferFunc(TransferLinear)}, false},
		{"displacement zero scale", NewDisplacementMap(0, Key{}, SourceAlpha), false},
		{"merge without inputs", NewMerge(), false},
		{"passthrough", NewPassthrough("feSpecularLighting"), false},
		{"merge single input", NewMerge(SourceGraphic), true},
		{"composite over transparent", NewComposite(CompositeOver, SourceGraphic, NamedKey("clear")), true},
		{"blend normal over transparent", NewBlend(BlendNormal, SourceGraphic, NamedKey("clear")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := solid(8, 8, svgfx.RGBA2(0.2, 0.4, 0.6, 0.8))
			ctx := newApplyContext(testInfo(8, 8, LinearRGB), src)
			ctx.results.Put(NamedKey("clear"), PixmapChannel(svgfx.NewPixmap(8, 8)))
			if err := tt.p.Apply(ctx); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			got := lastResult(t, ctx)
			if tt.copies {
				if diff := cmp.Diff(src.Data(), got.Data()); diff != "" {
					t.Errorf("pixels changed (-want +got):\n%s", diff)
				}
				return
			}
			if got != src {
				t.Error("no-op did not pass the input channel through")
			}
		})
	}
}

func TestLastResultChaining(t *testing.T) {
	ctx := newApplyContext(testInfo(8, 8, SRGB), svgfx.NewPixmap(8, 8))
	flood := NewFlood(svgfx.Blue, 1)
	offset := NewOffset(4, 0)

	for _, p := range []Primitive{flood, offset} {
		if err := p.Apply(ctx); err != nil {
			t.Fatalf("%s: %v", p.Tag(), err)
		}
	}
	got := lastResult(t, ctx)
	if c := got.RGBAAt(2, 2); c.A != 0 {
		t.Errorf("pixel shifted out = %v, want transparent", c)
	}
	if c := got.RGBAAt(6, 2); c != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("pixel shifted in = %v, want blue", c)
	}
}

func TestAttrsReturnsEmbeddedBase(t *testing.T) {
	prims := []Primitive{
		NewOffset(1, 1), NewGaussianBlur(1), NewFlood(svgfx.Red, 1), NewColorMatrix(Saturate, 0),
		&ComponentTransfer{}, NewBlend(BlendMultiply, SourceGraphic, SourceAlpha),
		NewComposite(CompositeOver, SourceGraphic, SourceAlpha), NewMerge(), NewDropShadow(),
		NewDisplacementMap(1, SourceGraphic, SourceAlpha), &Turbulence{}, NewPassthrough("feTile"),
	}
	for _, p := range prims {
		b := p.Attrs()
		b.Result = NamedKey("out")
		if got := p.Attrs().Result; got != NamedKey("out") {
			t.Errorf("%s: Attrs().Result = %v after write, want out", p.Tag(), got)
		}
	}
}

func TestDropShadowFailureKeepsLastResult(t *testing.T) {
	p := NewDropShadow()
	missing := NewOffset(1, 1)
	missing.In = NamedKey("missing")
	p.chain = append(p.Primitives()[:2:2], missing)

	ctx := newApplyContext(testInfo(8, 8, SRGB), solid(8, 8, svgfx.Red))
	prev := solid(8, 8, svgfx.Blue)
	ctx.results.Put(NamedKey("prev"), PixmapChannel(prev))
	if err := p.Apply(ctx); err == nil {
		t.Fatal("Apply with a broken chain succeeded")
	}
	if got := lastResult(t, ctx); got != prev {
		t.Error("failed drop shadow replaced LastResult")
	}

	lctx := newLayoutContext(testInfo(8, 8, SRGB), svgfx.XYWH(0, 0, 4, 4))
	before, _ := lctx.Bounds(LastResult)
	if err := p.Layout(lctx); err == nil {
		t.Fatal("Layout with a broken chain succeeded")
	}
	if after, _ := lctx.Bounds(LastResult); after != before {
		t.Errorf("failed drop shadow layout changed LastResult to %+v", after)
	}
}

func TestMissingChannel(t *testing.T) {
	for _, key := range []Key{NamedKey("missing"), BackgroundImage, FillPaint} {
		p := NewOffset(1, 1)
		p.In = key
		ctx := newApplyContext(testInfo(4, 4, SRGB), svgfx.NewPixmap(4, 4))
		if err := p.Apply(ctx); err == nil {
			t.Errorf("Apply with in=%v succeeded", key)
		}
	}
}

func TestFloodSubregion(t *testing.T) {
	p := NewFlood(svgfx.Red, 2)
	p.X, p.Y = Number(2), Number(2)
	p.Width, p.Height = Number(4), Number(4)

	ctx := newApplyContext(testInfo(8, 8, LinearRGB), svgfx.NewPixmap(8, 8))
	if err := p.Apply(ctx); err != nil {
		t.Fatal(err)
	}
	got := lastResult(t, ctx)
	if c := got.RGBAAt(3, 3); c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside = %v, want opaque red (opacity clamped)", c)
	}
	if c := got.RGBAAt(1, 1); c.A != 0 {
		t.Errorf("outside = %v, want transparent", c)
	}
}

func TestSaturateZeroIsGrey(t *testing.T) {
	for _, ci := range []ColorInterpolation{SRGB, LinearRGB} {
		t.Run(ci.String(), func(t *testing.T) {
			src := svgfx.NewPixmap(3, 1)
			src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
			src.SetRGBA(1, 0, color.RGBA{G: 200, B: 40, A: 255})
			src.SetRGBA(2, 0, color.RGBA{R: 50, G: 50, A: 128})
			ctx := newApplyContext(testInfo(3, 1, ci), src)
			if err := NewColorMatrix(Saturate, 0).Apply(ctx); err != nil {
				t.Fatal(err)
			}
			got := lastResult(t, ctx)
			for x := 0; x < 3; x++ {
				c := got.RGBAAt(x, 0)
				if c.R != c.G || c.G != c.B {
					t.Errorf("pixel %d = %v, want grey", x, c)
				}
				if c.A != src.RGBAAt(x, 0).A {
					t.Errorf("pixel %d alpha changed to %d", x, c.A)
				}
			}
		})
	}
}

func TestLuminanceToAlpha(t *testing.T) {
	ctx := newApplyContext(testInfo(1, 1, SRGB), solid(1, 1, svgfx.White))
	if err := NewColorMatrix(LuminanceToAlpha).Apply(ctx); err != nil {
		t.Fatal(err)
	}
	c := lastResult(t, ctx).RGBAAt(0, 0)
	if c.R != 0 || c.G != 0 || c.B != 0 || c.A < 254 {
		t.Errorf("luminanceToAlpha(white) = %v, want black at full alpha", c)
	}
}

func TestColorMatrixValidate(t *testing.T) {
	if err := NewColorMatrix(MatrixValues, 1, 2, 3).Validate(); err == nil {
		t.Error("Validate accepted a 3-value matrix")
	}
	if err := NewColorMatrix(MatrixValues, identityMatrix[:]...).Validate(); err != nil {
		t.Errorf("Validate(identity) = %v", err)
	}
}

func TestTransferFuncLookup(t *testing.T) {
	tests := []struct {
		name string
		f    TransferFunc
		in   []int
		want []uint8
	}{
		{"table invert", TransferFunc{Type: TransferTable, TableValues: []float64{1, 0}}, []int{0, 255, 51}, []uint8{255, 0, 204}},
		{"discrete", TransferFunc{Type: TransferDiscrete, TableValues: []float64{0, 1}}, []int{0, 127, 128, 255}, []uint8{0, 0, 255, 255}},
		{"linear", TransferFunc{Type: TransferLinear, Slope: 0.5, Intercept: 0.25}, []int{0, 255}, []uint8{64, 191}},
		{"gamma", TransferFunc{Type: TransferGamma, Amplitude: 1, Exponent: 2}, []int{0, 255}, []uint8{0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lut := tt.f.lookup()
			if lut == nil {
				t.Fatal("lookup returned identity")
			}
			for i, j := range tt.in {
				if lut[j] != tt.want[i] {
					t.Errorf("lut[%d] = %d, want %d", j, lut[j], tt.want[i])
				}
			}
		})
	}
	if NewTransferFunc(TransferGamma).lookup() != nil {
		t.Error("default gamma should be identity")
	}
}

func TestComponentTransferApply(t *testing.T) {
	ct := &ComponentTransfer{
		R: TransferFunc{Type: TransferTable, TableValues: []float64{1, 0}},
		A: TransferFunc{Type: TransferTable, TableValues: []float64{1, 1}},
	}
	ctx := newApplyContext(testInfo(2, 1, SRGB), svgfx.NewPixmap(2, 1))
	if err := ct.Apply(ctx); err != nil {
		t.Fatal(err)
	}
	// Transparent black becomes opaque red.
	if c := lastResult(t, ctx).RGBAAt(1, 0); c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("result = %v, want opaque red", c)
	}

	lctx := newLayoutContext(testInfo(2, 1, SRGB), svgfx.XYWH(0, 0, 1, 1))
	if err := ct.Layout(lctx); err != nil {
		t.Fatal(err)
	}
	if lb, _ := lctx.Bounds(LastResult); !lb.Flags.WholeRegion {
		t.Error("component transfer layout did not set WholeRegion")
	}
}

func TestBlendNormalOpaque(t *testing.T) {
	ctx := newApplyContext(testInfo(2, 2, LinearRGB), solid(2, 2, svgfx.Green))
	ctx.results.Put(NamedKey("backdrop"), PixmapChannel(solid(2, 2, svgfx.Red)))
	if err := NewBlend(BlendNormal, SourceGraphic, NamedKey("backdrop")).Apply(ctx); err != nil {
		t.Fatal(err)
	}
	if c := lastResult(t, ctx).RGBAAt(0, 0); c != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("normal blend = %v, want source", c)
	}
}

func TestLinearRGBIdentities(t *testing.T) {
	// Mid-range channels whose linear values fall between 8-bit steps.
	fg := color.RGBA{R: 10, G: 40, B: 200, A: 255}
	grey := solid(4, 4, svgfx.RGB(0.5, 0.5, 0.5))
	white := solid(4, 4, svgfx.White)
	ramp := TransferFunc{Type: TransferTable, TableValues: []float64{0, 1}}

	tests := []struct {
		name     string
		p        Primitive
		backdrop *svgfx.Pixmap
	}{
		{"composite over opaque", NewComposite(CompositeOver, SourceGraphic, NamedKey("backdrop")), grey},
		{"composite in opaque", NewComposite(CompositeIn, SourceGraphic, NamedKey("backdrop")), grey},
		{"merge single input", NewMerge(SourceGraphic), grey},
		{"merge over backdrop", NewMerge(NamedKey("backdrop"), SourceGraphic), grey},
		{"blend normal", NewBlend(BlendNormal, SourceGraphic, NamedKey("backdrop")), grey},
		{"blend multiply over white", NewBlend(BlendMultiply, SourceGraphic, NamedKey("backdrop")), white},
		{"blend darken over white", NewBlend(BlendDarken, SourceGraphic, NamedKey("backdrop")), white},
		{"transfer identity table", &ComponentTransfer{R: ramp, G: ramp, B: ramp}, grey},
		{"blur uniform", &GaussianBlur{StdDeviation: []float64{2}, EdgeMode: EdgeDuplicate}, grey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := svgfx.NewPixmap(4, 4)
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					src.SetRGBA(x, y, fg)
				}
			}
			ctx := newApplyContext(testInfo(4, 4, LinearRGB), src)
			ctx.results.Put(NamedKey("backdrop"), PixmapChannel(tt.backdrop))
			if err := tt.p.Apply(ctx); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if c := lastResult(t, ctx).RGBAAt(1, 2); c != fg {
				t.Errorf("pixel = %v, want %v", c, fg)
			}
		})
	}
}

func TestBlendMultiplyWhiteBackdrop(t *testing.T) {
	src := solid(1, 1, svgfx.RGBA2(0.2, 0.5, 0.8, 1))
	ctx := newApplyContext(testInfo(1, 1, SRGB), src)
	ctx.results.Put(NamedKey("white"), PixmapChannel(solid(1, 1, svgfx.White)))
	if err := NewBlend(BlendMultiply, SourceGraphic, NamedKey("white")).Apply(ctx); err != nil {
		t.Fatal(err)
	}
	if c := lastResult(t, ctx).RGBAAt(0, 0); !near(c, src.RGBAAt(0, 0), 1) {
		t.Errorf("multiply on white = %v, want %v", c, src.RGBAAt(0, 0))
	}
}

func TestCompositeOperators(t *testing.T) {
	half := svgfx.NewPixmap(2, 1)
	half.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	tests := []struct {
		op    *Composite
		want0 color.RGBA
		want1 color.RGBA
	}{
		{op: NewComposite(CompositeIn, SourceGraphic, NamedKey("d")), want0: color.RGBA{B: 255, A: 255}},
		{op: NewComposite(CompositeOut, SourceGraphic, NamedKey("d")), want1: color.RGBA{B: 255, A: 255}},
		{op: NewComposite(CompositeOver, SourceGraphic, NamedKey("d")), want0: color.RGBA{B: 255, A: 255}, want1: color.RGBA{B: 255, A: 255}},
		{op: &Composite{Operator: CompositeArithmetic, K3: 1, In2: NamedKey("d")}, want0: color.RGBA{R: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.op.Operator.String(), func(t *testing.T) {
			ctx := newApplyContext(testInfo(2, 1, SRGB), solid(2, 1, svgfx.Blue))
			ctx.results.Put(NamedKey("d"), PixmapChannel(half))
			if err := tt.op.Apply(ctx); err != nil {
				t.Fatal(err)
			}
			got := lastResult(t, ctx)
			if c := got.RGBAAt(0, 0); c != tt.want0 {
				t.Errorf("pixel 0 = %v, want %v", c, tt.want0)
			}
			if c := got.RGBAAt(1, 0); c != tt.want1 {
				t.Errorf("pixel 1 = %v, want %v", c, tt.want1)
			}
		})
	}
}

func TestMergeOrder(t *testing.T) {
	ctx := newApplyContext(testInfo(2, 2, SRGB), solid(2, 2, svgfx.Red))
	ctx.results.Put(NamedKey("top"), PixmapChannel(solid(2, 2, svgfx.Blue)))
	if err := NewMerge(SourceGraphic, NamedKey("top")).Apply(ctx); err != nil {
		t.Fatal(err)
	}
	if c := lastResult(t, ctx).RGBAAt(1, 1); c != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("merge = %v, want the last input on top", c)
	}
	if err := NewMerge(SourceGraphic, NamedKey("nope")).Apply(ctx); err == nil {
		t.Error("merge with a missing input succeeded")
	}
}

func TestDisplacementMapShifts(t *testing.T) {
	src := svgfx.NewPixmap(16, 1)
	src.SetRGBA(10, 0, color.RGBA{G: 255, A: 255})
	ctx := newApplyContext(testInfo(16, 1, SRGB), src)
	// Alpha 255 displaces x by +scale/2. Green 128 leaves y in place.
	ctx.results.Put(NamedKey("map"), PixmapChannel(solid(16, 1, svgfx.RGB(0, 128.0/255, 0))))

	d := NewDisplacementMap(10, SourceGraphic, NamedKey("map"))
	d.YChannel = ChannelG
	if err := d.Apply(ctx); err != nil {
		t.Fatal(err)
	}
	got := lastResult(t, ctx)
	if c := got.RGBAAt(5, 0); c != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("pixel 5 = %v, want the source pixel 10", c)
	}
	if c := got.RGBAAt(12, 0); c.A != 0 {
		t.Errorf("pixel 12 = %v, want transparent (samples outside)", c)
	}
}

func TestTurbulenceDeterministic(t *testing.T) {
	render := func() *svgfx.Pixmap {
		p := NewTurbulence(FractalNoise, 0.05)
		p.NumOctaves = 3
		p.Seed = 4.6
		ctx := newApplyContext(testInfo(16, 16, LinearRGB), svgfx.NewPixmap(16, 16))
		if err := p.Apply(ctx); err != nil {
			t.Fatal(err)
		}
		return lastResult(t, ctx)
	}
	a, b := render(), render()
	if string(a.Data()) != string(b.Data()) {
		t.Error("turbulence output differs between runs")
	}
	opaque := 0
	for i := 3; i < len(a.Data()); i += 4 {
		if a.Data()[i] > 0 {
			opaque++
		}
	}
	if opaque == 0 {
		t.Error("fractal noise produced no coverage")
	}
}

func TestTurbulenceValidate(t *testing.T) {
	if err := NewTurbulence(TurbulenceNoise, -0.1).Validate(); err == nil {
		t.Error("Validate accepted a negative frequency")
	}
}

func TestGaussianBlurLayoutGrows(t *testing.T) {
	info := testInfo(100, 100, LinearRGB)
	ctx := newLayoutContext(info, svgfx.XYWH(40, 40, 20, 20))
	if err := NewGaussianBlur(3).Layout(ctx); err != nil {
		t.Fatal(err)
	}
	lb, err := ctx.Bounds(LastResult)
	if err != nil {
		t.Fatal(err)
	}
	// sigma 3 gives box size 6, which reaches 3+2+3 pixels.
	if want := svgfx.XYWH(32, 32, 36, 36); lb.Rect != want {
		t.Errorf("blur layout = %+v, want %+v", lb.Rect, want)
	}
}

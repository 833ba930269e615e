package filter

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/svgfx"
)

// Test helpers shared across filter tests.

// testInfo describes an identity-transform paint call over a w x h buffer
// whose filter region, element and clip all equal the buffer.
func testInfo(w, h int, ci ColorInterpolation) *Info {
	r := svgfx.XYWH(0, 0, float64(w), float64(h))
	return &Info{
		Element:            r,
		Region:             r,
		Transform:          svgfx.Identity(),
		Clip:               r,
		Raster:             image.Rect(0, 0, w, h),
		ColorInterpolation: ci,
	}
}

func newApplyContext(info *Info, src *svgfx.Pixmap) *Context {
	ctx := &Context{
		env:     env{info: info, logger: svgfx.Logger()},
		results: NewChannelStorage[*Channel](),
	}
	ch := PixmapChannel(src)
	ctx.results.Put(SourceGraphic, ch)
	ctx.results.PutDerived(SourceAlpha, func() *Channel { return alphaChannel(ch) })
	return ctx
}

func newLayoutContext(info *Info, source svgfx.Rect) *LayoutContext {
	ctx := &LayoutContext{
		env:     env{info: info, logger: svgfx.Logger()},
		results: NewChannelStorage[LayoutBounds](),
	}
	ctx.results.Put(SourceGraphic, NewLayoutBounds(source, svgfx.Insets{}))
	return ctx
}

// solid returns a w x h pixmap filled with c.
func solid(w, h int, c svgfx.RGBA) *svgfx.Pixmap {
	pm := svgfx.NewPixmap(w, h)
	pm.Fill(c)
	return pm
}

// lastResult materializes the LastResult channel.
func lastResult(t *testing.T, ctx *Context) *svgfx.Pixmap {
	t.Helper()
	pm, err := ctx.Pixmap(LastResult)
	if err != nil {
		t.Fatalf("LastResult: %v", err)
	}
	return pm
}

// near reports whether two premultiplied colors differ by at most tol per
// channel.
func near(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		return v <= tol && v >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

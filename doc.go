// Package svgfx renders SVG filter effects in pure Go.
//
// # Overview
//
// svgfx implements the filter-effects stage of an SVG renderer: the
// per-element graph of primitives (blur, color matrix, component transfer,
// blend, composite, displacement, turbulence, flood, offset, merge and the
// drop-shadow shorthand) that runs between rasterizing an element and
// compositing it onto the page.
//
// The root package holds the raster and geometry types shared by the
// pipeline. The graph itself lives in the filter sub-package.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/svgfx"
//	    "github.com/gogpu/svgfx/filter"
//	)
//
//	c := svgfx.NewCanvas(256, 256)
//	f := filter.New([]filter.Primitive{
//	    filter.NewGaussianBlur(4),
//	})
//	square := svgfx.XYWH(64, 64, 128, 128)
//	f.Paint(c, square, func(dc *svgfx.Canvas) {
//	    dc.FillRect(square, svgfx.Red)
//	})
//	_ = c.Pixmap().SavePNG("blurred.png")
//
// # Pixel format
//
// [Pixmap] stores premultiplied 8-bit RGBA in the layout of image.RGBA, so
// buffers interoperate with image/draw and golang.org/x/image/draw without
// copying.
//
// # Logging
//
// svgfx is silent by default. Install a *slog.Logger with [SetLogger] to see
// skipped primitives and invalid filters.
package svgfx

// Package filter implements SVG filter effects as a two-phase graph of
// primitives.
//
// A Filter holds an ordered list of Primitive values. Painting an element
// through a filter runs two passes over that list:
//
//   - Layout predicts the device-space extent every primitive produces, so
//     that the offscreen buffer is large enough for blurs and offsets to pull
//     in content from outside the visible clip.
//   - Apply executes the primitives in order. Each reads named input
//     channels and publishes its output under its result key and LastResult.
//
// A primitive whose input channel does not exist is skipped; the graph
// continues with the previous LastResult.
//
// # Example
//
//	f := filter.New([]filter.Primitive{
//	    filter.NewGaussianBlur(3),
//	    filter.NewOffset(4, 4),
//	})
//	f.Paint(canvas, bbox, func(dc *svgfx.Canvas) {
//	    dc.FillRect(bbox, svgfx.Blue)
//	})
//
// # Color interpolation
//
// Channels are stored as premultiplied sRGB. Primitives that interpolate
// color convert their inputs to the effective color-interpolation-filters
// space, compute there, and convert the result back.
package filter

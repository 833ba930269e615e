// Package scene loads and renders small TOML scenes made of filled
// rectangles and images, each optionally painted through a named filter.
//
// A scene file looks like this:
//
//	[canvas]
//	width = 256
//	height = 256
//	background = "white"
//
//	[[element]]
//	type = "rect"
//	x = 64
//	y = 64
//	width = 128
//	height = 128
//	fill = "#3366ff"
//	filter = "shadow"
//
//	[filter.shadow]
//	x = "-20%"
//	width = "140%"
//
//	[[filter.shadow.primitive]]
//	type = "feDropShadow"
//	dx = 6
//	dy = 6
//	stdDeviation = 4
//	color = "black"
//	opacity = 0.6
//
// Primitive types are matched without regard to case, and the "fe" prefix
// may be omitted. Attributes use their SVG names, except that the type
// attribute of feColorMatrix and feTurbulence is spelled "kind", and the
// transfer functions of feComponentTransfer are inline tables named funcR,
// funcG, funcB and funcA. Lengths accept numbers or strings such as "10%".
// Recognized but unsupported primitives, and unknown types, pass their input
// through.
//
// The canvas and each element may carry transform = [a, b, c, d, e, f],
// mapping (x, y) to (a*x + b*y + c, d*x + e*y + f). An element's
// clip = [x, y, width, height] limits it to a rectangle in its user space.
package scene

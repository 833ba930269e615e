package blend

// BlendFunc combines a source pixel with a destination pixel. All values
// are premultiplied, 0-255.
type BlendFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// Bytes adapts fn to 8-bit premultiplied pixels. Results are rounded and
// color is clamped to alpha.
func Bytes(fn Func) BlendFunc {
	return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
		out := fn(pixel(sr, sg, sb, sa), pixel(dr, dg, db, da))
		a := unit8(out[3])
		return min(unit8(out[0]), a), min(unit8(out[1]), a), min(unit8(out[2]), a), a
	}
}

// GetBlendFunc returns Get(mode) adapted to bytes.
func GetBlendFunc(mode BlendMode) BlendFunc {
	return Bytes(Get(mode))
}

func pixel(r, g, b, a byte) Pixel {
	return Pixel{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// unit8 maps [0, 1] to a byte with rounding, clamping out-of-range input.
func unit8(v float32) byte {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

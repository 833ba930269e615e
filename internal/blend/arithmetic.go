package blend

// Arithmetic returns the feComposite arithmetic operator:
//
//	result = k1*i1*i2 + k2*i1 + k3*i2 + k4
//
// evaluated per channel on premultiplied values, where i1 is the source
// and i2 the destination. Alpha is included. Results are clamped to
// [0, 1] and color is clamped to alpha so the output stays a valid
// premultiplied pixel.
func Arithmetic(k1, k2, k3, k4 float64) Func {
	return func(s, d Pixel) Pixel {
		var out Pixel
		out[3] = arith(k1, k2, k3, k4, s[3], d[3])
		for i := 0; i < 3; i++ {
			out[i] = min(arith(k1, k2, k3, k4, s[i], d[i]), out[3])
		}
		return out
	}
}

func arith(k1, k2, k3, k4 float64, s, d float32) float32 {
	i1, i2 := float64(s), float64(d)
	v := k1*i1*i2 + k2*i1 + k3*i2 + k4
	return float32(max(0, min(1, v)))
}

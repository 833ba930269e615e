package blend

// Non-separable blend modes from W3C Compositing and Blending Level 1,
// section 5.9. They act on the whole RGB triplet of a pixel.

// rgb is an unpremultiplied color with channels in [0, 1].
type rgb [3]float32

// lum is the BT.601 luma 0.3r + 0.59g + 0.11b.
func (c rgb) lum() float32 {
	return 0.30*c[0] + 0.59*c[1] + 0.11*c[2]
}

// sat is max - min.
func (c rgb) sat() float32 {
	lo, _, hi := c.order()
	return c[hi] - c[lo]
}

// order returns the indices of the smallest, middle and largest channels.
func (c rgb) order() (lo, mid, hi int) {
	lo, mid, hi = 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	return lo, mid, hi
}

// clip pulls out-of-gamut channels toward the luma, keeping it fixed.
func (c rgb) clip() rgb {
	l := c.lum()
	lo, _, hi := c.order()
	n, x := c[lo], c[hi]
	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

// withLum shifts c to luma l.
func (c rgb) withLum(l float32) rgb {
	d := l - c.lum()
	for i := range c {
		c[i] += d
	}
	return c.clip()
}

// withSat rescales c to saturation s. A grey color is returned as is.
func (c rgb) withSat(s float32) rgb {
	lo, mid, hi := c.order()
	span := c[hi] - c[lo]
	if span <= 0 {
		return c
	}
	var out rgb
	out[mid] = (c[mid] - c[lo]) * s / span
	out[hi] = s
	return out
}

// hslMode computes B(Cb, Cs) for source s and backdrop d.
type hslMode func(s, d rgb) rgb

func hue(s, d rgb) rgb        { return s.withSat(d.sat()).withLum(d.lum()) }
func saturation(s, d rgb) rgb { return d.withSat(s.sat()).withLum(d.lum()) }
func color(s, d rgb) rgb      { return s.withLum(d.lum()) }
func luminosity(s, d rgb) rgb { return d.withLum(s.lum()) }

// straight unpremultiplies a pixel into an rgb.
func straight(p Pixel) rgb {
	k := 1 / p[3]
	return rgb{min(p[0]*k, 1), min(p[1]*k, 1), min(p[2]*k, 1)}
}

// nonSeparable composites mode(s, d) with the same premultiplied formula
// as separable.
func nonSeparable(mode hslMode) Func {
	return func(s, d Pixel) Pixel {
		as, ab := s[3], d[3]
		if as <= 0 {
			return d
		}
		if ab <= 0 {
			return s
		}
		mixed := mode(straight(s), straight(d))
		var out Pixel
		out[3] = min(as+ab*(1-as), 1)
		for i := 0; i < 3; i++ {
			m := max(0, min(1, mixed[i]))
			out[i] = min(s[i]*(1-ab)+d[i]*(1-as)+as*ab*m, out[3])
		}
		return out
	}
}

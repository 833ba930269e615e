package color

// Plane is a premultiplied RGBA buffer with float32 channels in [0, 1],
// encoded in Space. Filter primitives work on planes so that linearRGB
// intermediates keep more than 8 bits per channel.
type Plane struct {
	Width, Height int
	Pix           []float32
	Space         ColorSpace
}

// Decode converts premultiplied sRGB bytes to a plane in space.
func Decode(pix []uint8, width, height int, space ColorSpace) *Plane {
	p := &Plane{Width: width, Height: height, Pix: make([]float32, len(pix)), Space: space}
	out := p.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		a := pix[i+3]
		if a == 0 {
			continue
		}
		af := float32(a) / 255
		out[i+3] = af
		if space != ColorSpaceLinear {
			out[i] = float32(pix[i]) / 255
			out[i+1] = float32(pix[i+1]) / 255
			out[i+2] = float32(pix[i+2]) / 255
			continue
		}
		for c := 0; c < 3; c++ {
			out[i+c] = sRGBToLinearLUT[unpremul(pix[i+c], a)] * af
		}
	}
	return p
}

// Encode writes p as premultiplied sRGB bytes into dst, which must hold
// len(p.Pix) bytes. Channels are clamped to [0, 1] and color to alpha.
func (p *Plane) Encode(dst []uint8) {
	in := p.Pix
	for i := 0; i+3 < len(in); i += 4 {
		a := unit8(in[i+3])
		dst[i+3] = a
		if a == 0 {
			dst[i], dst[i+1], dst[i+2] = 0, 0, 0
			continue
		}
		if p.Space != ColorSpaceLinear {
			dst[i] = min(unit8(in[i]), a)
			dst[i+1] = min(unit8(in[i+1]), a)
			dst[i+2] = min(unit8(in[i+2]), a)
			continue
		}
		af := in[i+3]
		for c := 0; c < 3; c++ {
			dst[i+c] = premul(LinearToSRGB(in[i+c]/af), a)
		}
	}
}

// Bytes returns p encoded as premultiplied sRGB.
func (p *Plane) Bytes() []uint8 {
	out := make([]uint8, len(p.Pix))
	p.Encode(out)
	return out
}

func unit8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func unpremul(c, a uint8) uint8 {
	if a == 255 {
		return c
	}
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func premul(c, a uint8) uint8 {
	if a == 255 {
		return c
	}
	return uint8((uint32(c)*uint32(a) + 127) / 255)
}

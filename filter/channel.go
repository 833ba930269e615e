package filter

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"sync"

	// Register decoders for encoded channels.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/svgfx"
)

// Channel is a lazily materialized premultiplied RGBA buffer.
//
// The pixmap returned by Pixmap is shared between every reader of the
// channel and must not be modified. Primitives that write pixels work on a
// Clone.
type Channel struct {
	once   sync.Once
	source func() (*svgfx.Pixmap, error)
	pm     *svgfx.Pixmap
	err    error
}

// PixmapChannel wraps an existing buffer.
func PixmapChannel(pm *svgfx.Pixmap) *Channel {
	return &Channel{source: func() (*svgfx.Pixmap, error) { return pm, nil }}
}

// EncodedChannel decodes data on first use. PNG, JPEG, BMP, TIFF and WebP
// are supported.
func EncodedChannel(data []byte) *Channel {
	return &Channel{source: func() (*svgfx.Pixmap, error) {
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("filter: decode channel: %w", err)
		}
		svgfx.Logger().Debug("filter: decoded channel", "format", format, "bounds", img.Bounds())
		return svgfx.FromImage(img), nil
	}}
}

// ProceduralChannel generates a w x h buffer by evaluating fn once per
// pixel. fn returns a premultiplied color.
func ProceduralChannel(w, h int, fn func(x, y int) color.RGBA) *Channel {
	return &Channel{source: func() (*svgfx.Pixmap, error) {
		pm := svgfx.NewPixmap(w, h)
		data := pm.Data()
		i := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := fn(x, y)
				data[i], data[i+1], data[i+2], data[i+3] = c.R, c.G, c.B, c.A
				i += 4
			}
		}
		return pm, nil
	}}
}

// Pixmap materializes the channel. The result is cached.
func (c *Channel) Pixmap() (*svgfx.Pixmap, error) {
	c.once.Do(func() {
		c.pm, c.err = c.source()
		c.source = nil
	})
	return c.pm, c.err
}

// alphaChannel returns a channel with the color of src zeroed.
func alphaChannel(src *Channel) *Channel {
	return &Channel{source: func() (*svgfx.Pixmap, error) {
		pm, err := src.Pixmap()
		if err != nil {
			return nil, err
		}
		out := svgfx.NewPixmap(pm.Width(), pm.Height())
		in, dst := pm.Data(), out.Data()
		for i := 3; i < len(in); i += 4 {
			dst[i] = in[i]
		}
		return out, nil
	}}
}

package svgfx

import (
	"image/color"
	"testing"
)

var opaqueRed = color.RGBA{255, 0, 0, 255}

func TestCanvasFillRect(t *testing.T) {
	tests := []struct {
		name    string
		opts    []CanvasOption
		rect    Rect
		inside  [][2]int
		outside [][2]int
	}{
		{
			name:    "identity",
			rect:    XYWH(2, 2, 3, 3),
			inside:  [][2]int{{2, 2}, {4, 4}},
			outside: [][2]int{{1, 1}, {5, 5}},
		},
		{
			name:    "scaled",
			opts:    []CanvasOption{WithTransform(Scale(2, 2))},
			rect:    XYWH(1, 1, 2, 2),
			inside:  [][2]int{{2, 2}, {5, 5}},
			outside: [][2]int{{1, 1}, {6, 6}},
		},
		{
			name:    "clipped",
			opts:    []CanvasOption{WithClip(XYWH(0, 0, 3, 3))},
			rect:    XYWH(0, 0, 10, 10),
			inside:  [][2]int{{0, 0}, {2, 2}},
			outside: [][2]int{{3, 3}, {9, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 10, tt.opts...)
			c.FillRect(tt.rect, Red)
			pm := c.Pixmap()
			for _, p := range tt.inside {
				if got := pm.RGBAAt(p[0], p[1]); got != opaqueRed {
					t.Errorf("pixel %v = %v, want red", p, got)
				}
			}
			for _, p := range tt.outside {
				if got := pm.RGBAAt(p[0], p[1]); got != (color.RGBA{}) {
					t.Errorf("pixel %v = %v, want transparent", p, got)
				}
			}
		})
	}
}

func TestCanvasFillRectSourceOver(t *testing.T) {
	c := NewCanvas(1, 1)
	c.FillRect(XYWH(0, 0, 1, 1), White)
	c.FillRect(XYWH(0, 0, 1, 1), Red.WithAlpha(0.5))
	if got := c.Pixmap().RGBAAt(0, 0); got != (color.RGBA{255, 127, 127, 255}) {
		t.Errorf("half red over white = %v, want (255,127,127,255)", got)
	}
}

func TestCanvasPushPop(t *testing.T) {
	c := NewCanvas(20, 20)
	c.Push()
	c.Concat(Translate(5, 5))
	c.ClipRect(XYWH(0, 0, 4, 4))
	if got := c.ClipBounds(); got != XYWH(5, 5, 4, 4) {
		t.Errorf("ClipBounds = %+v, want (5,5,4,4)", got)
	}
	c.Pop()
	if !c.Transform().IsIdentity() {
		t.Errorf("Transform after Pop = %+v, want identity", c.Transform())
	}
	if got := c.ClipBounds(); got != XYWH(0, 0, 20, 20) {
		t.Errorf("ClipBounds after Pop = %+v, want full canvas", got)
	}
	// Unbalanced Pop is ignored.
	c.Pop()
}

func TestCanvasDrawPixmap(t *testing.T) {
	src := NewPixmap(2, 2)
	src.Fill(Red)

	c := NewCanvas(10, 10, WithClip(XYWH(0, 0, 10, 9)))
	c.DrawPixmap(src, 8, 8)
	pm := c.Pixmap()
	if got := pm.RGBAAt(9, 8); got != opaqueRed {
		t.Errorf("pixel (9,8) = %v, want red", got)
	}
	if got := pm.RGBAAt(9, 9); got != (color.RGBA{}) {
		t.Errorf("pixel (9,9) outside clip = %v, want transparent", got)
	}
	c.DrawPixmap(nil, 0, 0)
	c.DrawPixmap(src, -5, -5)
}

func TestCanvasDrawImage(t *testing.T) {
	src := NewPixmap(2, 2)
	src.Fill(Blue)

	c := NewCanvas(8, 8, WithTransform(Translate(1, 0)))
	c.DrawImage(src.ToImage(), Pt(2, 3))
	pm := c.Pixmap()
	if got := pm.RGBAAt(3, 3); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel (3,3) = %v, want blue", got)
	}
	if got := pm.RGBAAt(2, 3); got != (color.RGBA{}) {
		t.Errorf("pixel (2,3) = %v, want transparent", got)
	}

	c = NewCanvas(8, 8, WithTransform(Scale(2, 2)))
	c.DrawImage(src.ToImage(), Pt(0, 0))
	if got := c.Pixmap().RGBAAt(1, 1); got.B < 250 || got.A < 250 {
		t.Errorf("scaled pixel (1,1) = %v, want blue", got)
	}
}

func TestWithPixmap(t *testing.T) {
	pm := NewPixmap(3, 3)
	c := NewCanvas(100, 100, WithPixmap(pm))
	c.FillRect(XYWH(0, 0, 1, 1), Red)
	if c.Pixmap() != pm || pm.RGBAAt(0, 0) != opaqueRed {
		t.Error("canvas did not draw into the supplied pixmap")
	}
	if got := c.ClipBounds(); got != XYWH(0, 0, 3, 3) {
		t.Errorf("ClipBounds = %+v, want pixmap bounds", got)
	}
}

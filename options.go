package svgfx

// CanvasOption configures a Canvas during creation.
// Use functional options to customize Canvas behavior.
//
// Example:
//
//	// Identity transform, clip = whole canvas
//	c := svgfx.NewCanvas(800, 600)
//
//	// Scaled drawing clipped to the top-left quadrant
//	c := svgfx.NewCanvas(800, 600,
//	    svgfx.WithTransform(svgfx.Scale(2, 2)),
//	    svgfx.WithClip(svgfx.XYWH(0, 0, 400, 300)))
type CanvasOption func(*canvasOptions)

// canvasOptions holds optional configuration for Canvas creation.
type canvasOptions struct {
	transform Matrix
	clip      *Rect
	pixmap    *Pixmap
}

// defaultCanvasOptions returns the default canvas options.
func defaultCanvasOptions() canvasOptions {
	return canvasOptions{
		transform: Identity(),
	}
}

// WithTransform sets the initial user-to-device transform.
func WithTransform(m Matrix) CanvasOption {
	return func(o *canvasOptions) {
		o.transform = m
	}
}

// WithClip sets the initial clip rectangle in device space.
// The clip is always intersected with the canvas bounds.
func WithClip(r Rect) CanvasOption {
	return func(o *canvasOptions) {
		o.clip = &r
	}
}

// WithPixmap draws into an existing pixmap instead of allocating one.
// The canvas dimensions are taken from the pixmap.
func WithPixmap(pm *Pixmap) CanvasOption {
	return func(o *canvasOptions) {
		o.pixmap = pm
	}
}

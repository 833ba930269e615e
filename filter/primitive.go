package filter

// Primitive is one node of a filter graph.
//
// Implementations are immutable after construction apart from internal
// memoization, so a Filter may be painted from several goroutines.
type Primitive interface {
	// Tag returns the SVG element name, such as "feGaussianBlur".
	Tag() string
	// Attrs returns the shared attributes.
	Attrs() *Base
	// Validate reports configuration errors wrapping
	// ErrInvalidFilterConfiguration.
	Validate() error
	// Layout publishes the predicted bounds of the result.
	Layout(ctx *LayoutContext) error
	// Apply publishes the result channel.
	Apply(ctx *Context) error
}

// Base holds the attributes shared by every primitive. Embedding it
// provides the Attrs method.
type Base struct {
	// X, Y, Width and Height define the primitive subregion. Unset values
	// default to the filter region.
	X, Y, Width, Height Length

	// In is the primary input. The zero Key reads LastResult.
	In Key
	// Result names the output. The zero Key writes only LastResult.
	Result Key

	ColorInterpolation ColorInterpolation
}

// Attrs returns b.
func (b *Base) Attrs() *Base {
	return b
}

func (b *Base) hasSubregion() bool {
	return b.X.IsSet() || b.Y.IsSet() || b.Width.IsSet() || b.Height.IsSet()
}

// passInput publishes the primary input unchanged.
func passInput(ctx *Context, b *Base) error {
	ch, err := ctx.Input(b)
	if err != nil {
		return err
	}
	ctx.Save(b, ch)
	return nil
}

// passInputLayout publishes the layout of the primary input unchanged.
func passInputLayout(ctx *LayoutContext, b *Base) error {
	lb, err := ctx.Input(b)
	if err != nil {
		return err
	}
	ctx.Save(b, lb)
	return nil
}

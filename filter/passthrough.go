package filter

import "sync"

// Passthrough stands in for an unsupported primitive element. It copies
// its input to its result.
type Passthrough struct {
	Base
	// Element is the unsupported element name.
	Element string

	logOnce sync.Once
}

// NewPassthrough returns a stand-in for the element named tag.
func NewPassthrough(tag string) *Passthrough {
	return &Passthrough{Element: tag}
}

// Tag implements Primitive.
func (p *Passthrough) Tag() string { return p.Element }

// Validate implements Primitive.
func (p *Passthrough) Validate() error { return nil }

func (p *Passthrough) note(e *env) {
	p.logOnce.Do(func() {
		e.Logger().Debug("filter: unsupported primitive passes its input through", "tag", p.Element)
	})
}

// Layout implements Primitive.
func (p *Passthrough) Layout(ctx *LayoutContext) error {
	p.note(&ctx.env)
	return passInputLayout(ctx, &p.Base)
}

// Apply implements Primitive.
func (p *Passthrough) Apply(ctx *Context) error {
	return passInput(ctx, &p.Base)
}

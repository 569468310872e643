package view

import "errors"

// ErrNilContext is returned when a view is requested without a host
// context.
var ErrNilContext = errors.New("view: nil context")

// Factory creates views for the host. It keeps no state about the views
// it created; every call yields a new view with its own handle.
type Factory struct {
	opts []Option
}

// NewFactory returns a Factory that applies opts to every view.
func NewFactory(opts ...Option) *Factory {
	return &Factory{opts: opts}
}

// Create builds one view bound to ctx.
func (f *Factory) Create(ctx Context, holder SurfaceHolder) (*View, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return New(ctx, holder, f.opts...), nil
}

// Package template maps each email type to its payload and markup tree.
package template

import (
	"github.com/banglapremium/mailrelay/internal/email/entity"
	"golang.org/x/net/html"
)

// Template pairs a payload type with the function that lays it out.
type Template struct {
	newProps func() any
	build    func(props any) *html.Node
}

func define[P any](build func(p *P) *html.Node) Template {
	return Template{
		newProps: func() any { return new(P) },
		build:    func(props any) *html.Node { return build(props.(*P)) },
	}
}

// NewProps returns a pointer to an empty payload for the template.
func (t Template) NewProps() any {
	return t.newProps()
}

// Build lays out props, which must come from NewProps of the same Template.
func (t Template) Build(props any) *html.Node {
	return t.build(props)
}

// Option configures a Registry.
type Option func(*Registry)

// WithSanitizer filters broadcast markup through fn before it is embedded.
func WithSanitizer(fn func(string) string) Option {
	return func(r *Registry) { r.sanitize = fn }
}

// Registry resolves type tags to templates. It holds no mutable state.
type Registry struct {
	sanitize func(string) string
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns the template for tag, or false when tag is not supported.
func (r *Registry) Lookup(tag entity.TypeTag) (Template, bool) {
	switch tag {
	case entity.TypeWelcome:
		return define(welcome), true
	case entity.TypeLoginNotification:
		return define(loginNotification), true
	case entity.TypePasswordReset:
		return define(passwordReset), true
	case entity.TypeBroadcast:
		return define(r.broadcast), true
	case entity.TypeOrderStatusUpdate:
		return define(orderStatusUpdate), true
	case entity.TypeProductDelivery:
		return define(productDelivery), true
	default:
		return Template{}, false
	}
}

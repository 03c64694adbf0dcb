package fixture

import (
	"reflect"

	"fixture-generator/selector"
	"fixture-generator/settings"
)

// Option configures a single Create call.
type Option func(*request)

type request struct {
	generator *Generator
	settings  settings.Settings
	registry  *selector.Registry
	seed      uint64
}

func newRequest(opts []Option) *request {
	r := &request{
		generator: Default(),
		settings:  settings.Defaults(),
		registry:  selector.NewRegistry(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func WithGenerator(g *Generator) Option {
	return func(r *request) {
		r.generator = g
	}
}

func WithSeed(seed uint64) Option {
	return func(r *request) {
		r.seed = seed
	}
}

// WithSettings replaces the settings of the request.
func WithSettings(s settings.Settings) Option {
	return func(r *request) {
		r.settings = s
	}
}

// Configure adjusts the settings of the request in place.
func Configure(fn func(*settings.Settings)) Option {
	return func(r *request) {
		fn(&r.settings)
	}
}

// WithRegistry declares the overrides of reg. Overrides from later options
// are added to reg.
func WithRegistry(reg *selector.Registry) Option {
	return func(r *request) {
		r.registry = reg
	}
}

func Ignore(sel selector.Selector) Option {
	return func(r *request) {
		r.registry.Ignore(sel)
	}
}

func Nullable(sel selector.Selector) Option {
	return func(r *request) {
		r.registry.Nullable(sel)
	}
}

func Set(sel selector.Selector, value any) Option {
	return func(r *request) {
		r.registry.Set(sel, value)
	}
}

// Supply takes func() T or func(*random.Random) T, optionally returning an error.
func Supply(sel selector.Selector, fn any) Option {
	return func(r *request) {
		r.registry.Supply(sel, fn)
	}
}

// Filter takes func(T) bool, optionally returning an error.
func Filter(sel selector.Selector, fn any) Option {
	return func(r *request) {
		r.registry.Filter(sel, fn)
	}
}

// FilterExpr filters with a CEL expression over the variable "value".
func FilterExpr(sel selector.Selector, expr string) Option {
	return func(r *request) {
		r.registry.FilterExpr(sel, expr)
	}
}

func Subtype(sel selector.Selector, rtype reflect.Type) Option {
	return func(r *request) {
		r.registry.Subtype(sel, rtype)
	}
}

// OnComplete takes func(T), optionally returning an error.
func OnComplete(sel selector.Selector, fn any) Option {
	return func(r *request) {
		r.registry.OnComplete(sel, fn)
	}
}

package selector

import (
	"fmt"
	"reflect"

	"go.uber.org/multierr"

	"fixture-generator/internal/celfilter"
	"fixture-generator/internal/match"
	"fixture-generator/node"
	"fixture-generator/typesig"
)

// Entry is one declared override. Index is the declaration order.
type Entry struct {
	Selector Selector
	Override Override
	Index    int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s -> %s (#%d)", e.Selector, e.Override, e.Index+1)
}

// Registry collects overrides in declaration order. Declaration errors are
// collected and reported by Err and Validate.
type Registry struct {
	entries []Entry
	err     error
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) add(sel Selector, o Override) *Registry {
	r.entries = append(r.entries, Entry{Selector: sel, Override: o, Index: len(r.entries)})
	return r
}

func (r *Registry) fail(sel Selector, err error) *Registry {
	r.err = multierr.Append(r.err, &SelectorError{Selector: sel.String(), Reason: err.Error()})
	return r
}

// Ignore leaves matched nodes unset, their children are never visited.
func (r *Registry) Ignore(sel Selector) *Registry {
	return r.add(sel, Override{Action: ActionIgnore, Description: "ignore"})
}

// Nullable allows matched nodes to be nil.
func (r *Registry) Nullable(sel Selector) *Registry {
	return r.add(sel, Override{Action: ActionNullable, Description: "nullable"})
}

// Set fixes the value of matched nodes.
func (r *Registry) Set(sel Selector, value any) *Registry {
	return r.add(sel, setOverride(value))
}

// Supply generates values of matched nodes with fn, one call per value.
func (r *Registry) Supply(sel Selector, fn any) *Registry {
	o, err := supplyOverride(fn)
	if err != nil {
		return r.fail(sel, err)
	}

	return r.add(sel, o)
}

// Filter retries generation of matched nodes until fn accepts the value.
func (r *Registry) Filter(sel Selector, fn any) *Registry {
	o, err := filterOverride(fn)
	if err != nil {
		return r.fail(sel, err)
	}

	return r.add(sel, o)
}

// FilterExpr is Filter with a CEL expression over the variable "value".
func (r *Registry) FilterExpr(sel Selector, expr string) *Registry {
	f, err := celfilter.Compile(expr)
	if err != nil {
		return r.fail(sel, err)
	}

	return r.add(sel, Override{
		Action:      ActionFilter,
		Predicate:   f.Accept,
		Description: fmt.Sprintf("filter(%q)", expr),
	})
}

// Subtype generates matched nodes as rtype, which must be assignable to the declared type.
func (r *Registry) Subtype(sel Selector, rtype reflect.Type) *Registry {
	if rtype == nil {
		return r.fail(sel, errNilSubtype)
	}

	return r.add(sel, Override{Action: ActionSubtype, Subtype: rtype, Description: "subtype(" + rtype.String() + ")"})
}

// SubtypeSignature is Subtype for declared shapes.
func (r *Registry) SubtypeSignature(sel Selector, sig typesig.Signature) *Registry {
	if sig.IsZero() {
		return r.fail(sel, errNilSubtype)
	}

	return r.add(sel, Override{Action: ActionSubtype, SubtypeSig: &sig, Description: "subtype(" + sig.String() + ")"})
}

// OnComplete calls fn with the final value of every matched node.
func (r *Registry) OnComplete(sel Selector, fn any) *Registry {
	o, err := callbackOverride(fn)
	if err != nil {
		return r.fail(sel, err)
	}

	return r.add(sel, o)
}

// Entries returns the declared overrides in declaration order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Err returns the errors collected while declaring overrides.
func (r *Registry) Err() error {
	return r.err
}

// Validate checks declarations against the universe: member names must exist
// on their declaring type and fixed values must fit the selected member.
func (r *Registry) Validate(u *typesig.Universe) error {
	err := r.err

	for _, e := range r.entries {
		for _, sel := range e.Selector.alternatives() {
			err = multierr.Append(err, validateSelector(u, sel, e.Override))
			for _, scope := range sel.scopes {
				err = multierr.Append(err, validateSelector(u, scope.target, Override{}))
			}
		}
	}

	return err
}

func validateSelector(u *typesig.Universe, sel Selector, o Override) error {
	if sel.shape != "" {
		if _, ok := u.Shape(sel.shape); !ok {
			return &SelectorError{Selector: sel.String(), Reason: "unknown shape " + sel.shape}
		}
	}

	var declaring typesig.Signature
	switch {
	case sel.member == "":
		return nil
	case sel.declaringType != nil:
		declaring = u.SignatureOf(sel.declaringType)
	case sel.declaring != "":
		shape, ok := u.Shape(sel.declaring)
		if !ok {
			return &SelectorError{Selector: sel.String(), Reason: "unknown shape " + sel.declaring}
		}

		declaring = typesig.Signature{Base: shape.Name}
		for range shape.Params {
			declaring.Args = append(declaring.Args, typesig.Any)
		}
	default:
		return nil
	}

	d, err := u.Describe(declaring)
	if err != nil {
		return &SelectorError{Selector: sel.String(), Reason: err.Error()}
	}

	m, ok := d.Member(sel.member)
	if !ok {
		return &SelectorError{
			Selector:    sel.String(),
			Reason:      fmt.Sprintf("%s has no member %q", node.Short(declaring), sel.member),
			Suggestions: match.Suggest(sel.member, d.MemberNames(), 3),
		}
	}

	if o.Action == ActionSet && sel.declaringType != nil {
		if _, ok := Adapt(o.Value, m.Type); !ok {
			return &SelectorError{
				Selector: sel.String(),
				Reason:   fmt.Sprintf("value of type %s cannot be assigned to %s", typeOf(o.Value), m.Type),
			}
		}
	}

	return nil
}

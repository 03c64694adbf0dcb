package selector

import (
	"errors"
	"fmt"
	"reflect"

	"fixture-generator/random"
	"fixture-generator/typesig"
)

var (
	ErrNotAFunction     = errors.New("override function is not a function")
	ErrBadSupplier      = errors.New("supplier must be func() T, func(*random.Random) T, optionally returning (T, error)")
	ErrBadPredicate     = errors.New("filter must be func(T) bool or func(T) (bool, error)")
	ErrBadCallback      = errors.New("callback must be func(T) or func(T) error")
	errorType           = reflect.TypeFor[error]()
	randomType          = reflect.TypeFor[*random.Random]()
	boolType            = reflect.TypeFor[bool]()
	errNilSubtype       = errors.New("subtype must not be nil")
	errVariadicOverride = errors.New("override functions must not be variadic")
)

// Supplier makes a value for a node.
type Supplier func(rnd *random.Random) (reflect.Value, error)

// Predicate accepts or rejects a candidate value.
type Predicate func(v reflect.Value) (bool, error)

// Callback observes the final value of a node.
type Callback func(v reflect.Value) error

// Override is what a selector does to the nodes it matches.
type Override struct {
	Action ActionEnum
	// Value is the fixed value of ActionSet. It is invalid for a nil value.
	Value      reflect.Value
	Supplier   Supplier
	Predicate  Predicate
	Subtype    reflect.Type
	SubtypeSig *typesig.Signature
	Callback   Callback
	// Accepts is the value type provided or consumed by the override, nil for any.
	Accepts     reflect.Type
	Description string
}

func (o Override) String() string {
	if o.Description != "" {
		return o.Description
	}

	return o.Action.String()
}

func setOverride(value any) Override {
	v := reflect.ValueOf(value)

	o := Override{Action: ActionSet, Value: v, Description: fmt.Sprintf("set(%v)", value)}
	if v.IsValid() {
		o.Accepts = v.Type()
	}

	return o
}

func supplyOverride(fn any) (Override, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return Override{}, ErrNotAFunction
	}

	ft := fv.Type()
	if ft.IsVariadic() {
		return Override{}, errVariadicOverride
	}

	withRandom := ft.NumIn() == 1 && ft.In(0) == randomType
	if ft.NumIn() > 1 || ft.NumIn() == 1 && !withRandom {
		return Override{}, ErrBadSupplier
	}

	withErr := ft.NumOut() == 2 && ft.Out(1) == errorType
	if ft.NumOut() == 0 || ft.NumOut() > 2 || ft.NumOut() == 2 && !withErr || ft.Out(0) == errorType {
		return Override{}, ErrBadSupplier
	}

	supplier := func(rnd *random.Random) (reflect.Value, error) {
		var in []reflect.Value
		if withRandom {
			in = []reflect.Value{reflect.ValueOf(rnd)}
		}

		out := fv.Call(in)
		if withErr && !out[1].IsNil() {
			return reflect.Value{}, out[1].Interface().(error)
		}

		return out[0], nil
	}

	return Override{
		Action:      ActionSupply,
		Supplier:    supplier,
		Accepts:     ft.Out(0),
		Description: "supply(" + ft.String() + ")",
	}, nil
}

func filterOverride(fn any) (Override, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return Override{}, ErrNotAFunction
	}

	ft := fv.Type()
	if ft.IsVariadic() {
		return Override{}, errVariadicOverride
	}

	withErr := ft.NumOut() == 2 && ft.Out(1) == errorType
	if ft.NumIn() != 1 || ft.NumOut() == 0 || ft.NumOut() > 2 || ft.Out(0) != boolType || ft.NumOut() == 2 && !withErr {
		return Override{}, ErrBadPredicate
	}

	want := ft.In(0)
	predicate := func(v reflect.Value) (bool, error) {
		arg, ok := Adapt(v, want)
		if !ok {
			return false, fmt.Errorf("filter expects %s, got %s", want, typeOf(v))
		}

		out := fv.Call([]reflect.Value{arg})
		if withErr && !out[1].IsNil() {
			return false, out[1].Interface().(error)
		}

		return out[0].Bool(), nil
	}

	return Override{
		Action:      ActionFilter,
		Predicate:   predicate,
		Accepts:     want,
		Description: "filter(" + ft.String() + ")",
	}, nil
}

func callbackOverride(fn any) (Override, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return Override{}, ErrNotAFunction
	}

	ft := fv.Type()
	if ft.IsVariadic() {
		return Override{}, errVariadicOverride
	}

	withErr := ft.NumOut() == 1 && ft.Out(0) == errorType
	if ft.NumIn() != 1 || ft.NumOut() > 1 || ft.NumOut() == 1 && !withErr {
		return Override{}, ErrBadCallback
	}

	want := ft.In(0)
	callback := func(v reflect.Value) error {
		arg, ok := Adapt(v, want)
		if !ok {
			return fmt.Errorf("callback expects %s, got %s", want, typeOf(v))
		}

		out := fv.Call([]reflect.Value{arg})
		if withErr && !out[0].IsNil() {
			return out[0].Interface().(error)
		}

		return nil
	}

	return Override{
		Action:      ActionOnComplete,
		Callback:    callback,
		Accepts:     want,
		Description: "onComplete(" + ft.String() + ")",
	}, nil
}

// Adapt makes v usable where want is expected. Pointers and interfaces are
// dereferenced, values are wrapped into pointers, values of the same kind
// are converted so that Set("PAID") fills a named string type, and numbers
// are converted between kinds when no precision is lost.
func Adapt(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		switch want.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(want), true
		}

		return reflect.Value{}, false
	}

	if v.Type().AssignableTo(want) {
		return v, true
	}

	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && !v.IsNil() {
		if out, ok := Adapt(v.Elem(), want); ok {
			return out, true
		}
	}

	if want.Kind() == reflect.Pointer {
		if elem, ok := Adapt(v, want.Elem()); ok {
			p := reflect.New(want.Elem())
			p.Elem().Set(elem)

			return p, true
		}
	}

	if v.Kind() == want.Kind() && v.Kind() != reflect.Pointer && v.Type().ConvertibleTo(want) {
		return v.Convert(want), true
	}

	if isNumber(v.Kind()) && isNumber(want.Kind()) {
		return convertNumber(v, want)
	}

	return reflect.Value{}, false
}

func isNumber(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
}

func convertNumber(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if v.CanInt() && v.Int() < 0 && reflect.Zero(want).CanUint() {
		return reflect.Value{}, false
	}

	out := v.Convert(want)
	if out.CanInt() && out.Int() < 0 && v.CanUint() {
		return reflect.Value{}, false
	}

	if !out.Convert(v.Type()).Equal(v) {
		return reflect.Value{}, false
	}

	return out, true
}

func typeOf(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}

	return v.Type().String()
}

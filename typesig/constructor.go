package typesig

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"fixture-generator/utils"
)

var (
	ErrIsNotAConstructor         = errors.New("provided function is not a recognizable constructor")
	ErrConstructorIsNotAFunction = errors.New("provided constructor is not a function")
	ErrDoublePointer             = errors.New("constructor function does not support double pointers")
)

// Constructor describes a Go function that builds values of Product.
type Constructor struct {
	Fn           reflect.Value
	Product      reflect.Type
	Params       []reflect.Type
	PackageAlias string
	Name         string
	Pointer      bool
	HasErr       bool
}

// ParseConstructor inspects the provided function and returns a Constructor
// if it is a valid constructor function.
//
// Supports interfaces:
//   - func(args...) T
//   - func(args...) *T
//   - func(args...) (T, error)
//   - func(args...) (*T, error)
func ParseConstructor(fn any) (Constructor, error) {
	if fn == nil {
		return Constructor{}, ErrConstructorIsNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Constructor{}, ErrConstructorIsNotAFunction
	}

	if fnType.IsVariadic() || fnType.NumOut() == 0 || fnType.NumOut() > 2 {
		return Constructor{}, ErrIsNotAConstructor
	}

	product := fnType.Out(0)
	pointer := false
	if product.Kind() == reflect.Pointer {
		if product.Elem().Kind() == reflect.Pointer {
			return Constructor{}, ErrDoublePointer
		}

		product = product.Elem()
		pointer = true
	}

	if isError(product) {
		return Constructor{}, ErrIsNotAConstructor
	}

	ctor := Constructor{
		Fn:      fnVal,
		Product: product,
		Pointer: pointer,
	}

	if fnType.NumOut() == 2 {
		if !isError(fnType.Out(1)) {
			return Constructor{}, ErrIsNotAConstructor
		}

		ctor.HasErr = true
	}

	for i := range fnType.NumIn() {
		ctor.Params = append(ctor.Params, fnType.In(i))
	}

	if fnPC := runtime.FuncForPC(fnVal.Pointer()); fnPC != nil {
		_, last := path.Split(fnPC.Name())
		ctor.PackageAlias, ctor.Name = utils.Unpack2(strings.SplitN(last, ".", 2))
	}

	return ctor, nil
}

// Arity returns the number of parameters.
func (c Constructor) Arity() int {
	return len(c.Params)
}

// ZeroArgs returns the lowest-cost argument list: the zero value of every parameter.
func (c Constructor) ZeroArgs() []reflect.Value {
	args := make([]reflect.Value, len(c.Params))
	for i, p := range c.Params {
		args[i] = reflect.Zero(p)
	}

	return args
}

// Call invokes the constructor and returns an addressable value of Product.
// Panics raised by the constructor are reported as errors.
func (c Constructor) Call(args []reflect.Value) (out reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("constructor %s panicked: %v", c, r)
		}
	}()

	results := c.Fn.Call(args)
	if c.HasErr && !results[1].IsNil() {
		return reflect.Value{}, fmt.Errorf("constructor %s: %w", c, results[1].Interface().(error))
	}

	v := results[0]
	if c.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("constructor %s returned nil", c)
		}

		return v.Elem(), nil
	}

	ptr := reflect.New(c.Product)
	ptr.Elem().Set(v)

	return ptr.Elem(), nil
}

func (c Constructor) String() string {
	if c.Name == "" {
		return c.Fn.Type().String()
	}

	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}

package typesig

import (
	"reflect"
	"strconv"
	"strings"
)

type ctorEnum int

const (
	ctorNone ctorEnum = iota
	ctorSlice
	ctorMap
	ctorArray
	ctorPointer
)

// Expr is a type expression used by shape slots and supertypes.
// It is one of: a type parameter, a Go type, a shape application
// or a builtin constructor over other expressions.
type Expr struct {
	param  string
	goType reflect.Type
	shape  string
	ctor   ctorEnum
	length int
	args   []Expr
}

// Param references a type parameter of the enclosing shape.
func Param(name string) Expr {
	return Expr{param: name}
}

// Go wraps a concrete Go type.
func Go(t reflect.Type) Expr {
	return Expr{goType: t}
}

// TypeFor wraps the concrete Go type T.
func TypeFor[T any]() Expr {
	return Go(reflect.TypeFor[T]())
}

// Apply instantiates a registered shape with the given arguments.
func Apply(shape string, args ...Expr) Expr {
	return Expr{shape: shape, args: args}
}

func SliceOf(elem Expr) Expr {
	return Expr{ctor: ctorSlice, args: []Expr{elem}}
}

func MapOf(key, elem Expr) Expr {
	return Expr{ctor: ctorMap, args: []Expr{key, elem}}
}

func ArrayOf(length int, elem Expr) Expr {
	return Expr{ctor: ctorArray, length: length, args: []Expr{elem}}
}

func PointerTo(elem Expr) Expr {
	return Expr{ctor: ctorPointer, args: []Expr{elem}}
}

// IsParam reports whether the expression is a bare type parameter.
func (e Expr) IsParam() bool {
	return e.param != ""
}

// ShapeName returns the applied shape name, or an empty string.
func (e Expr) ShapeName() string {
	return e.shape
}

func (e Expr) String() string {
	switch {
	case e.param != "":
		return e.param
	case e.goType != nil:
		return e.goType.String()
	}

	switch e.ctor {
	case ctorSlice:
		return "[]" + e.args[0].String()
	case ctorPointer:
		return "*" + e.args[0].String()
	case ctorArray:
		return "[" + strconv.Itoa(e.length) + "]" + e.args[0].String()
	case ctorMap:
		return "map[" + e.args[0].String() + "]" + e.args[1].String()
	}

	if len(e.args) == 0 {
		return e.shape
	}

	parts := make([]string, 0, len(e.args))
	for _, arg := range e.args {
		parts = append(parts, arg.String())
	}

	return e.shape + "[" + strings.Join(parts, ",") + "]"
}

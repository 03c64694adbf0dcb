package typesig

import (
	"reflect"
	"strings"
)

// Request is the input of resolution: either a Go type,
// or a shape name with concrete argument requests.
type Request struct {
	Type  reflect.Type
	Shape string
	Args  []Request
}

// RequestFor requests the Go type T.
func RequestFor[T any]() Request {
	return Request{Type: reflect.TypeFor[T]()}
}

// RequestOf requests the Go type t.
func RequestOf(t reflect.Type) Request {
	return Request{Type: t}
}

// ShapeRequest requests the named shape bound to the given arguments.
func ShapeRequest(name string, args ...Request) Request {
	return Request{Shape: name, Args: args}
}

func (r Request) String() string {
	var head string
	switch {
	case r.Type != nil:
		head = r.Type.String()
	case r.Shape != "":
		head = r.Shape
	default:
		head = "<empty>"
	}

	if len(r.Args) == 0 {
		return head
	}

	parts := make([]string, 0, len(r.Args))
	for _, arg := range r.Args {
		parts = append(parts, arg.String())
	}

	return head + "[" + strings.Join(parts, ",") + "]"
}

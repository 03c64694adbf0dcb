package typesig

import "fmt"

// UnresolvedTypeError is returned when a type request or expression cannot be
// turned into a signature: an unknown shape, a generic arity mismatch,
// or an unsupported Go type.
type UnresolvedTypeError struct {
	Type   string
	Reason string
	Want   int
	Got    int
}

func (e *UnresolvedTypeError) Error() string {
	if e.Want != e.Got {
		return fmt.Sprintf("unresolved type %s: %s (want %d type arguments, got %d)", e.Type, e.Reason, e.Want, e.Got)
	}

	return fmt.Sprintf("unresolved type %s: %s", e.Type, e.Reason)
}

func arityError(typ string, want, got int) *UnresolvedTypeError {
	return &UnresolvedTypeError{Type: typ, Reason: "type argument count mismatch", Want: want, Got: got}
}

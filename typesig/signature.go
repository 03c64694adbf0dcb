package typesig

import (
	"strconv"
	"strings"
)

// Builtin constructor bases.
const (
	BaseSlice   = "[]"
	BaseMap     = "map"
	BasePointer = "*"
	BaseAny     = "any"
)

// Signature is the canonical, fully resolved form of a type.
// Two signatures are equal if their bases and all arguments are equal.
type Signature struct {
	Base string
	Args []Signature
}

// Any is the unconstrained signature every unresolved type parameter falls back to.
var Any = Signature{Base: BaseAny}

// ArrayBase returns the base of a fixed-length array signature.
func ArrayBase(length int) string {
	return "[" + strconv.Itoa(length) + "]"
}

func SliceSig(elem Signature) Signature {
	return Signature{Base: BaseSlice, Args: []Signature{elem}}
}

func MapSig(key, elem Signature) Signature {
	return Signature{Base: BaseMap, Args: []Signature{key, elem}}
}

func ArraySig(length int, elem Signature) Signature {
	return Signature{Base: ArrayBase(length), Args: []Signature{elem}}
}

func PointerSig(elem Signature) Signature {
	return Signature{Base: BasePointer, Args: []Signature{elem}}
}

func (s Signature) IsZero() bool {
	return s.Base == ""
}

func (s Signature) Equal(other Signature) bool {
	if s.Base != other.Base || len(s.Args) != len(other.Args) {
		return false
	}

	for i := range s.Args {
		if !s.Args[i].Equal(other.Args[i]) {
			return false
		}
	}

	return true
}

func (s Signature) IsPointer() bool {
	return s.Base == BasePointer && len(s.Args) == 1
}

// ArrayLen returns the length of an array signature and false for any other base.
func (s Signature) ArrayLen() (int, bool) {
	if len(s.Base) < 3 || s.Base[0] != '[' || s.Base[len(s.Base)-1] != ']' {
		return 0, false
	}

	n, err := strconv.Atoi(s.Base[1 : len(s.Base)-1])
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

// Deref strips pointer constructors and returns the pointee with the pointer depth.
func (s Signature) Deref() (Signature, int) {
	depth := 0
	for s.IsPointer() {
		s = s.Args[0]
		depth++
	}

	return s, depth
}

// String renders signatures the way Go spells the corresponding types,
// with shape arguments in brackets.
func (s Signature) String() string {
	var sb strings.Builder
	s.write(&sb)

	return sb.String()
}

func (s Signature) write(sb *strings.Builder) {
	switch {
	case (s.Base == BaseSlice || s.Base == BasePointer) && len(s.Args) == 1:
		sb.WriteString(s.Base)
		s.Args[0].write(sb)
		return
	case s.Base == BaseMap && len(s.Args) == 2:
		sb.WriteString("map[")
		s.Args[0].write(sb)
		sb.WriteString("]")
		s.Args[1].write(sb)
		return
	}

	if _, ok := s.ArrayLen(); ok && len(s.Args) == 1 {
		sb.WriteString(s.Base)
		s.Args[0].write(sb)
		return
	}

	sb.WriteString(s.Base)
	if len(s.Args) == 0 {
		return
	}

	sb.WriteString("[")
	for i, arg := range s.Args {
		if i > 0 {
			sb.WriteString(",")
		}
		arg.write(sb)
	}
	sb.WriteString("]")
}

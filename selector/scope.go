package selector

import "strconv"

// Scope constrains a selector to nodes that have a matching node on their
// ancestry path, the node itself included.
type Scope struct {
	target Selector
	depth  *int
}

// ScopeType is a scope over nodes of type T.
func ScopeType[T any]() Scope {
	return Type[T]().ToScope()
}

// ScopeField is a scope over the member name of T.
func ScopeField[T any](name string) Scope {
	return Field[T](name).ToScope()
}

// ScopeMember is a scope over every member with the given name.
func ScopeMember(name string) Scope {
	return Member(name).ToScope()
}

// AtDepth limits the scope to ancestors at depth or deeper.
func (s Scope) AtDepth(depth int) Scope {
	s.depth = &depth
	return s
}

func (s Scope) String() string {
	str := s.target.String()
	if s.depth != nil {
		str += "@" + strconv.Itoa(*s.depth)
	}

	return "scope(" + str + ")"
}

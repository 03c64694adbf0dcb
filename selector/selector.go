// Package selector matches overrides against graph nodes.
//
// A Selector is a predicate over a node: its type, its member name (optionally
// qualified by the declaring type), the ancestry scopes it must lie within and
// its depth. Overrides are attached to selectors through a Registry; a Matcher
// resolves the overrides that apply to a node and tracks which selectors were
// used during a traversal.
package selector

import (
	"fmt"
	"reflect"
	"strings"

	"fixture-generator/node"
	"fixture-generator/typesig"
)

// Selector is immutable; every method returns a modified copy.
type Selector struct {
	root bool

	goType    reflect.Type
	signature *typesig.Signature
	shape     string

	member        string
	declaringType reflect.Type
	declaring     string

	role  *node.RoleEnum
	depth *int

	scopes []Scope

	predicate   func(node.Target) bool
	description string

	group []Selector
}

// Root selects the root node only.
func Root() Selector {
	return Selector{root: true}
}

// Type selects nodes of type T. Pointers to T are matched too.
func Type[T any]() Selector {
	return TypeOf(reflect.TypeFor[T]())
}

// TypeOf selects nodes of the given Go type. Pointers to it are matched too.
func TypeOf(rtype reflect.Type) Selector {
	for rtype.Kind() == reflect.Pointer && rtype.Name() == "" {
		rtype = rtype.Elem()
	}

	return Selector{goType: rtype}
}

// Signature selects nodes with exactly the given signature.
func Signature(sig typesig.Signature) Selector {
	sig, _ = sig.Deref()
	return Selector{signature: &sig}
}

// Shape selects every instantiation of a declared shape.
func Shape(name string) Selector {
	return Selector{shape: name}
}

// Field selects the member name declared by T.
func Field[T any](name string) Selector {
	rtype := reflect.TypeFor[T]()
	for rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}

	return Selector{member: name, declaringType: rtype}
}

// ShapeField selects the member name declared by a shape.
func ShapeField(shape, name string) Selector {
	return Selector{member: name, declaring: shape}
}

// Member selects every member with the given name, whatever declares it.
func Member(name string) Selector {
	return Selector{member: name}
}

// Elements selects the elements of slices, arrays and the values of maps.
func Elements() Selector {
	role := node.RoleElement
	return Selector{role: &role}
}

// Keys selects the keys of maps.
func Keys() Selector {
	role := node.RoleKey
	return Selector{role: &role}
}

// Match selects nodes accepted by fn. Predicate selectors have the lowest
// specificity of all selectors.
func Match(description string, fn func(node.Target) bool) Selector {
	return Selector{predicate: fn, description: description}
}

// Group matches when any of its selectors matches. Groups cannot be nested.
func Group(selectors ...Selector) Selector {
	flat := make([]Selector, 0, len(selectors))
	for _, s := range selectors {
		if len(s.group) > 0 {
			flat = append(flat, s.group...)
			continue
		}
		flat = append(flat, s)
	}

	return Selector{group: flat}
}

// Within narrows the selector to nodes that lie within the scopes, outermost first.
func (s Selector) Within(scopes ...Scope) Selector {
	if len(s.group) > 0 {
		out := s
		out.group = make([]Selector, len(s.group))
		for i, member := range s.group {
			out.group[i] = member.Within(scopes...)
		}
		return out
	}

	s.scopes = append(append([]Scope(nil), s.scopes...), scopes...)
	return s
}

// AtDepth narrows the selector to nodes at exactly depth.
func (s Selector) AtDepth(depth int) Selector {
	if len(s.group) > 0 {
		out := s
		out.group = make([]Selector, len(s.group))
		for i, member := range s.group {
			out.group[i] = member.AtDepth(depth)
		}
		return out
	}

	s.depth = &depth
	return s
}

// ToScope turns the selector into a scope.
func (s Selector) ToScope() Scope {
	s.scopes, s.depth = nil, nil
	return Scope{target: s}
}

// IsRoot reports whether the selector is the root selector.
func (s Selector) IsRoot() bool {
	return s.root
}

// IsPredicate reports whether the selector is a predicate selector.
func (s Selector) IsPredicate() bool {
	return s.predicate != nil
}

// IsGroup reports whether the selector is a group.
func (s Selector) IsGroup() bool {
	return len(s.group) > 0
}

// MemberName returns the selected member name, if any.
func (s Selector) MemberName() string {
	return s.member
}

func (s Selector) String() string {
	var sb strings.Builder
	s.write(&sb)

	return sb.String()
}

func (s Selector) write(sb *strings.Builder) {
	switch {
	case len(s.group) > 0:
		sb.WriteString("group(")
		for i, member := range s.group {
			if i > 0 {
				sb.WriteString(", ")
			}
			member.write(sb)
		}
		sb.WriteString(")")
		return
	case s.root:
		sb.WriteString("root()")
	case s.predicate != nil:
		fmt.Fprintf(sb, "match(%q)", s.description)
	default:
		s.writeTarget(sb)
	}

	if s.depth != nil {
		fmt.Fprintf(sb, ".atDepth(%d)", *s.depth)
	}

	if len(s.scopes) > 0 {
		sb.WriteString(".within(")
		for i, scope := range s.scopes {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(scope.String())
		}
		sb.WriteString(")")
	}
}

func (s Selector) writeTarget(sb *strings.Builder) {
	var parts []string

	switch {
	case s.goType != nil:
		parts = append(parts, "type("+s.goType.String()+")")
	case s.signature != nil:
		parts = append(parts, "type("+node.Short(*s.signature)+")")
	case s.shape != "":
		parts = append(parts, "shape("+s.shape+")")
	}

	switch {
	case s.member != "" && s.declaringType != nil:
		parts = append(parts, "field("+s.declaringType.String()+"."+s.member+")")
	case s.member != "" && s.declaring != "":
		parts = append(parts, "field("+s.declaring+"."+s.member+")")
	case s.member != "":
		parts = append(parts, "member("+s.member+")")
	}

	if s.role != nil {
		switch *s.role {
		case node.RoleKey:
			parts = append(parts, "keys()")
		default:
			parts = append(parts, "elements()")
		}
	}

	if len(parts) == 0 {
		parts = append(parts, "all()")
	}

	sb.WriteString(strings.Join(parts, "."))
}

func (s Selector) alternatives() []Selector {
	if len(s.group) > 0 {
		return s.group
	}

	return []Selector{s}
}

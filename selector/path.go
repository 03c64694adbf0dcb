package selector

import (
	"errors"
	"fmt"
	"strings"

	"fixture-generator/node"
)

// PathSegment is one step of a path below the root.
type PathSegment struct {
	// Name is the member name, empty for container children.
	Name string
	Role node.RoleEnum
}

func (s PathSegment) String() string {
	if s.Role == node.RoleMember {
		return s.Name
	}

	return s.Role.Segment()
}

// ParsePath parses a path relative to the root into segments.
// Supports: "Field", "Nested.Field", "Items[]", "Items[].SKU", "Tags[key]",
// "Matrix[][]" and "[].Name" for container roots.
func ParsePath(path string) ([]PathSegment, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	var segments []PathSegment

	for i, part := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(part, "[")
		if rest != "" || strings.HasSuffix(part, "[") {
			rest = "[" + rest
		}

		switch {
		case name == "" && (i > 0 || rest == ""):
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		case name != "" && !isValidIdent(name):
			return nil, fmt.Errorf("invalid path %q: invalid identifier %q", path, name)
		case name != "":
			segments = append(segments, PathSegment{Name: name, Role: node.RoleMember})
		}

		for rest != "" {
			switch {
			case strings.HasPrefix(rest, "[]"):
				segments = append(segments, PathSegment{Role: node.RoleElement})
				rest = rest[2:]
			case strings.HasPrefix(rest, "[key]"):
				segments = append(segments, PathSegment{Role: node.RoleKey})
				rest = rest[5:]
			default:
				return nil, fmt.Errorf("invalid path %q: unexpected %q", path, rest)
			}
		}
	}

	return segments, nil
}

// PathSelector parses path and returns a selector matching exactly the node
// at that position, e.g. "Items[].SKU" for Order.Items[].SKU.
func PathSelector(path string) (Selector, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return Selector{}, err
	}

	last := len(segments) - 1
	scopes := make([]Scope, 0, last)

	for i, seg := range segments[:last] {
		scopes = append(scopes, seg.selector().ToScope().AtDepth(i+1))
	}

	return segments[last].selector().AtDepth(last + 1).Within(scopes...), nil
}

func (s PathSegment) selector() Selector {
	switch s.Role {
	case node.RoleMember:
		return Member(s.Name)
	case node.RoleKey:
		return Keys()
	default:
		return Elements()
	}
}

func isValidIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return s != ""
}

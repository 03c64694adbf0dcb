package node

import (
	"reflect"

	"fixture-generator/typesig"
)

// Target is the read-only view of a node that selectors match against.
type Target interface {
	Signature() typesig.Signature
	Type() reflect.Type
	// Member is the member name, or the role segment for container children.
	Member() string
	Role() RoleEnum
	// Declaring is the signature of the structural parent of a member.
	Declaring() typesig.Signature
	Depth() int
	IsRoot() bool
	Parent() (Target, bool)
	Path() string
}

// Ref is a Target backed by a graph node.
type Ref struct {
	g  *Graph
	id ID
}

func (g *Graph) Ref(id ID) Ref {
	return Ref{g: g, id: id}
}

func (r Ref) ID() ID {
	return r.id
}

func (r Ref) Node() *Node {
	return r.g.Node(r.id)
}

func (r Ref) Signature() typesig.Signature {
	return r.Node().Signature
}

func (r Ref) Type() reflect.Type {
	return r.Node().Type
}

func (r Ref) Member() string {
	n := r.Node()
	if n.Role == RoleMember {
		return n.Member
	}

	return n.Role.Segment()
}

func (r Ref) Role() RoleEnum {
	return r.Node().Role
}

func (r Ref) Declaring() typesig.Signature {
	return r.Node().Declaring
}

func (r Ref) Depth() int {
	return r.Node().Depth
}

func (r Ref) IsRoot() bool {
	return r.Node().Parent == NoParent
}

func (r Ref) Parent() (Target, bool) {
	p := r.Node().Parent
	if p == NoParent {
		return nil, false
	}

	return r.g.Ref(p), true
}

func (r Ref) Path() string {
	return r.g.Path(r.id)
}

package node

import (
	"fmt"
	"reflect"

	"fixture-generator/typesig"
)

// LeafFunc reports whether values of rtype are made by a leaf producer.
type LeafFunc func(rtype reflect.Type) bool

// SubtypeFunc returns the signature that replaces the declared one at target.
type SubtypeFunc func(target Target) (typesig.Signature, bool)

// Builder builds graphs. It holds no per-build state and may be shared
// by concurrent requests.
type Builder struct {
	Universe *typesig.Universe
	IsLeaf   LeafFunc
	Subtype  SubtypeFunc
	// Unexported includes unexported struct fields as members.
	Unexported bool
}

type slot struct {
	parent    ID
	role      RoleEnum
	member    string
	index     int
	exported  bool
	declaring typesig.Signature
	declared  typesig.Signature
	slotType  reflect.Type
}

type state struct {
	*Builder
	g *Graph
	// active path of nodes being expanded, used for cycle detection
	path []ID
}

// Build builds the graph rooted at root. Structural and container nodes at
// maxDepth are built without children.
func (b *Builder) Build(root typesig.Signature, maxDepth int) (*Graph, error) {
	if maxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative: %d", maxDepth)
	}

	if b.Universe == nil {
		return nil, fmt.Errorf("builder has no universe")
	}

	s := &state{Builder: b, g: &Graph{maxDepth: maxDepth}}
	if _, err := s.add(slot{parent: NoParent, role: RoleRoot, declared: root, exported: true}); err != nil {
		return nil, err
	}

	return s.g, nil
}

func (s *state) add(sl slot) (ID, error) {
	id := ID(len(s.g.nodes))

	depth := 0
	if sl.parent != NoParent {
		depth = s.g.nodes[sl.parent].Depth + 1
		s.g.nodes[sl.parent].Children = append(s.g.nodes[sl.parent].Children, id)
	}

	slotType := sl.slotType
	if slotType == nil {
		var err error
		if slotType, err = s.Universe.GoType(sl.declared); err != nil {
			return id, err
		}
	}

	declaredBase, _ := sl.declared.Deref()
	s.g.nodes = append(s.g.nodes, Node{
		ID:          id,
		Signature:   declaredBase,
		Declared:    sl.declared,
		SlotType:    slotType,
		Type:        slotType,
		Member:      sl.member,
		Role:        sl.role,
		MemberIndex: sl.index,
		Exported:    sl.exported,
		Declaring:   sl.declaring,
		Parent:      sl.parent,
		Depth:       depth,
	})

	effective, rtype := sl.declared, slotType
	subtyped := false

	if s.Subtype != nil {
		if sub, ok := s.Subtype(s.g.Ref(id)); ok && !sub.Equal(sl.declared) {
			if !s.Universe.Assignable(sub, sl.declared) {
				return id, &typesig.UnresolvedTypeError{
					Type:   sub.String(),
					Reason: fmt.Sprintf("subtype is not assignable to %s at %s", sl.declared, s.g.Path(id)),
				}
			}

			var err error
			if rtype, err = s.Universe.GoType(sub); err != nil {
				return id, err
			}

			effective, subtyped = sub, true
		}
	}

	sig, pointers := effective.Deref()

	desc, err := s.Universe.Describe(sig)
	if err != nil {
		return id, err
	}

	kind := desc.Kind
	if s.IsLeaf != nil && s.IsLeaf(desc.Type) {
		kind = typesig.KindLeaf
	}

	n := &s.g.nodes[id]
	n.Signature, n.Pointers, n.Subtyped = sig, pointers, subtyped
	n.Type, n.Base, n.Descriptor, n.Kind = rtype, desc.Type, desc, kind

	if kind == typesig.KindLeaf {
		return id, nil
	}

	if n.Depth >= s.g.maxDepth {
		n.Termination = TerminationMaxDepthExceeded
		return id, nil
	}

	if s.onActivePath(n) {
		n.Termination = TerminationCycleDetected
		return id, nil
	}

	s.path = append(s.path, id)
	defer func() { s.path = s.path[:len(s.path)-1] }()

	return id, s.dispatch(id)
}

// onActivePath reports whether an ancestor being expanded occupies the same
// position: the same member of the same declaring type with the same signature.
func (s *state) onActivePath(n *Node) bool {
	for _, p := range s.path {
		a := &s.g.nodes[p]
		if a.Role == n.Role && a.Member == n.Member &&
			a.Signature.Equal(n.Signature) && a.Declaring.Equal(n.Declaring) {
			return true
		}
	}

	return false
}

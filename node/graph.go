// Package node builds the per-request tree of structural positions reachable
// from a root type signature.
package node

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"fixture-generator/typesig"
)

// ID addresses a node inside its graph arena.
type ID int

// NoParent is the parent of the root node.
const NoParent ID = -1

// Node is one structural position. Nodes are owned by their Graph and
// never shared across requests.
type Node struct {
	ID   ID
	Kind typesig.KindEnum
	// Signature is the dereferenced, possibly subtyped signature of the node.
	Signature typesig.Signature
	// Declared is the signature of the slot as written, pointers included.
	Declared typesig.Signature
	// SlotType is the Go type of the slot the value is assigned to.
	SlotType reflect.Type
	// Type is the realized Go type, pointers included.
	Type reflect.Type
	// Base is Type without pointers, the type producers and constructors make.
	Base     reflect.Type
	Pointers int
	Member   string
	Role     RoleEnum
	// MemberIndex is the position of the member in the declaring descriptor.
	MemberIndex int
	Exported    bool
	Declaring   typesig.Signature
	Parent      ID
	Depth       int
	Children    []ID

	Termination TerminationEnum
	Subtyped    bool
	Descriptor  *typesig.Descriptor
}

// IsTerminated reports whether the node was cut by cycle or depth detection.
func (n *Node) IsTerminated() bool {
	return n.Termination != TerminationNone
}

// Graph is an arena of nodes. The root has ID 0.
type Graph struct {
	nodes    []Node
	maxDepth int
}

func (g *Graph) Root() *Node {
	return &g.nodes[0]
}

func (g *Graph) Node(id ID) *Node {
	return &g.nodes[id]
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// MaxDepth is the depth limit the graph was built with.
func (g *Graph) MaxDepth() int {
	return g.maxDepth
}

// Walk visits nodes depth-first in declaration order. Returning false
// from visit skips the children of that node.
func (g *Graph) Walk(visit func(n *Node) bool) {
	var walk func(id ID)
	walk = func(id ID) {
		n := &g.nodes[id]
		if !visit(n) {
			return
		}

		for _, child := range n.Children {
			walk(child)
		}
	}

	if len(g.nodes) > 0 {
		walk(0)
	}
}

// Ancestors returns the ancestors of id, nearest first.
func (g *Graph) Ancestors(id ID) []ID {
	var out []ID
	for p := g.nodes[id].Parent; p != NoParent; p = g.nodes[p].Parent {
		out = append(out, p)
	}

	return out
}

// Path renders the position of id, e.g. "Order.Items[].SKU".
func (g *Graph) Path(id ID) string {
	var segments []string
	for cur := id; cur != NoParent; cur = g.nodes[cur].Parent {
		n := &g.nodes[cur]

		switch n.Role {
		case RoleRoot:
			segments = append(segments, ShortName(n.Signature))
		case RoleMember:
			segments = append(segments, "."+n.Member)
		default:
			segments = append(segments, n.Role.Segment())
		}
	}

	var sb strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		sb.WriteString(segments[i])
	}

	return sb.String()
}

// Dump writes one line per node, indented by depth.
func (g *Graph) Dump(w io.Writer) error {
	var err error

	g.Walk(func(n *Node) bool {
		if err != nil {
			return false
		}

		label := n.Member
		if n.Role == RoleRoot {
			label = ShortName(n.Signature)
		} else if n.Role != RoleMember {
			label = n.Role.Segment()
		}

		line := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", n.Depth), label, Short(n.Declared), n.Kind)
		if n.Subtyped {
			line += " as " + Short(n.Signature)
		}
		if n.IsTerminated() {
			line += " (" + n.Termination.String() + ")"
		}

		_, err = fmt.Fprintln(w, line)

		return true
	})

	return err
}

type dumpEntry struct {
	Path        string
	Kind        string
	Signature   string
	Type        string
	Pointers    int
	Depth       int
	Termination string
}

// DumpDetailed writes a go-spew dump of every node.
func (g *Graph) DumpDetailed(w io.Writer) {
	entries := make([]dumpEntry, 0, len(g.nodes))
	g.Walk(func(n *Node) bool {
		entries = append(entries, dumpEntry{
			Path:        g.Path(n.ID),
			Kind:        n.Kind.String(),
			Signature:   n.Signature.String(),
			Type:        fmt.Sprint(n.Type),
			Pointers:    n.Pointers,
			Depth:       n.Depth,
			Termination: n.Termination.String(),
		})
		return true
	})

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	cfg.Fdump(w, entries)
}

// ShortName strips package paths and type arguments from a named signature,
// "example.com/store.Order" becomes "Order". Builtin signatures render as Go spells them.
func ShortName(sig typesig.Signature) string {
	if isBuiltin(sig.Base) {
		return Short(sig)
	}

	name, _, _ := strings.Cut(sig.Base, "[")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return name
}

// Short renders sig with every named base shortened by ShortName.
func Short(sig typesig.Signature) string {
	return shorten(sig).String()
}

func shorten(sig typesig.Signature) typesig.Signature {
	out := typesig.Signature{Base: sig.Base}
	if !isBuiltin(sig.Base) {
		out.Base = ShortName(typesig.Signature{Base: sig.Base})
	}

	for _, arg := range sig.Args {
		out.Args = append(out.Args, shorten(arg))
	}

	return out
}

func isBuiltin(base string) bool {
	switch base {
	case typesig.BaseSlice, typesig.BaseMap, typesig.BasePointer, typesig.BaseAny:
		return true
	}

	return strings.HasPrefix(base, "[")
}

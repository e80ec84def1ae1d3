package scene

import (
	"fmt"
	"strings"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/geometry"
)

// Handle identifies a node in a Graph. Handles stay valid for the life of
// the graph.
type Handle int

// Nil represents an invalid Handle. As a parent it means "no parent".
const Nil Handle = 0

// Node is a scene graph node. Name need not be unique.
type Node struct {
	Name      string
	Mesh      *geometry.MeshBuffer
	Transform Transform

	parent      Handle
	children    []Handle
	track       *Track
	scaleTarget Handle
}

// Parent returns the parent handle, or Nil for a root.
func (n *Node) Parent() Handle { return n.parent }

// Children returns a copy of the child handles in insertion order.
func (n *Node) Children() []Handle {
	return append([]Handle(nil), n.children...)
}

// Track returns the node's keyframe track, or nil if nothing was recorded.
func (n *Node) Track() *Track { return n.track }

// ScaleTarget returns the geometry node that receives this node's scale
// after IsolateScale, or Nil.
func (n *Node) ScaleTarget() Handle { return n.scaleTarget }

// Graph owns an arena of nodes forming a forest.
type Graph struct {
	// nodes[0] is unused so that Nil never names a node.
	nodes []*Node
	roots []Handle
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make([]*Node, 1, 32)}
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) - 1 }

// Valid reports whether h names a node of g.
func (g *Graph) Valid(h Handle) bool {
	return h > Nil && int(h) < len(g.nodes)
}

// Node returns the node for h, or nil if h is invalid.
func (g *Graph) Node(h Handle) *Node {
	if !g.Valid(h) {
		return nil
	}
	return g.nodes[h]
}

// Roots returns the handles of parentless nodes.
func (g *Graph) Roots() []Handle {
	return append([]Handle(nil), g.roots...)
}

// Add creates a node with an identity transform under parent.
// Pass Nil to create a root.
func (g *Graph) Add(parent Handle, name string) (Handle, error) {
	if parent != Nil && !g.Valid(parent) {
		return Nil, fmt.Errorf("%w: parent %d", ErrInvalidHandle, parent)
	}
	h := Handle(len(g.nodes))
	g.nodes = append(g.nodes, &Node{Name: name, Transform: Identity(), parent: parent})
	if parent == Nil {
		g.roots = append(g.roots, h)
	} else {
		p := g.nodes[parent]
		p.children = append(p.children, h)
	}
	return h, nil
}

// Attach moves child, with its subtree, under parent.
// Pass Nil to make child a root.
func (g *Graph) Attach(child, parent Handle) error {
	if !g.Valid(child) {
		return fmt.Errorf("%w: child %d", ErrInvalidHandle, child)
	}
	if parent != Nil && !g.Valid(parent) {
		return fmt.Errorf("%w: parent %d", ErrInvalidHandle, parent)
	}
	for p := parent; p != Nil; p = g.nodes[p].parent {
		if p == child {
			return fmt.Errorf("%w: %q under %q", ErrCycle, g.nodes[child].Name, g.nodes[parent].Name)
		}
	}

	n := g.nodes[child]
	if n.parent == Nil {
		g.roots = remove(g.roots, child)
	} else {
		old := g.nodes[n.parent]
		old.children = remove(old.children, child)
	}

	n.parent = parent
	if parent == Nil {
		g.roots = append(g.roots, child)
	} else {
		p := g.nodes[parent]
		p.children = append(p.children, child)
	}
	return nil
}

// Traverse calls visit once for every node in the subtree rooted at h,
// parents before children. Passing Nil visits every tree of the graph.
func (g *Graph) Traverse(h Handle, visit func(Handle, *Node)) {
	if h == Nil {
		for _, r := range g.roots {
			g.walk(r, visit)
		}
		return
	}
	if g.Valid(h) {
		g.walk(h, visit)
	}
}

func (g *Graph) walk(h Handle, visit func(Handle, *Node)) {
	n := g.nodes[h]
	visit(h, n)
	for _, c := range n.children {
		g.walk(c, visit)
	}
}

// FindByName returns every node of the subtree rooted at h whose name
// contains sub, in traversal order. The match is case-sensitive.
// No match yields an empty slice.
func (g *Graph) FindByName(h Handle, sub string) []Handle {
	matches := []Handle{}
	g.Traverse(h, func(h Handle, n *Node) {
		if strings.Contains(n.Name, sub) {
			matches = append(matches, h)
		}
	})
	return matches
}

// Path returns the slash-separated names from the root down to h.
func (g *Graph) Path(h Handle) string {
	if !g.Valid(h) {
		return ""
	}
	var parts []string
	for p := h; p != Nil; p = g.nodes[p].parent {
		parts = append(parts, g.nodes[p].Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Depth returns the number of ancestors of h.
func (g *Graph) Depth(h Handle) int {
	d := -1
	for p := h; g.Valid(p); p = g.nodes[p].parent {
		d++
	}
	return d
}

func remove(hs []Handle, h Handle) []Handle {
	for i, x := range hs {
		if x == h {
			return append(hs[:i], hs[i+1:]...)
		}
	}
	return hs
}

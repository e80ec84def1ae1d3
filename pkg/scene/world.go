package scene

import "github.com/KreesDaShrimp/Figure8-sub001/pkg/math"

// LocalMatrix returns the matrix of h's own transform.
func (g *Graph) LocalMatrix(h Handle) math.Mat4 {
	if !g.Valid(h) {
		return math.Identity()
	}
	g.settle(h)
	return g.nodes[h].Transform.Matrix()
}

// WorldMatrix returns WorldMatrix(parent) * LocalMatrix(h).
// An invalid handle yields the identity.
func (g *Graph) WorldMatrix(h Handle) math.Mat4 {
	if !g.Valid(h) {
		return math.Identity()
	}
	var chain []Handle
	for p := h; p != Nil; p = g.nodes[p].parent {
		chain = append(chain, p)
	}
	m := math.Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		g.settle(chain[i])
		m = m.Mul(g.nodes[chain[i]].Transform.Matrix())
	}
	return m
}

// WorldPosition returns where h's local origin lands in world space.
func (g *Graph) WorldPosition(h Handle) math.Vec3 {
	return g.WorldMatrix(h).Translation()
}

// WorldMatrices computes the world matrix of every node in the subtree
// rooted at h (or the whole graph for Nil) in one pass.
func (g *Graph) WorldMatrices(h Handle) map[Handle]math.Mat4 {
	out := make(map[Handle]math.Mat4, g.Len())
	g.Traverse(h, func(h Handle, n *Node) {
		parent := math.Identity()
		if pm, ok := out[n.parent]; ok {
			parent = pm
		} else if n.parent != Nil {
			parent = g.WorldMatrix(n.parent)
		}
		g.settle(h)
		out[h] = parent.Mul(n.Transform.Matrix())
	})
	return out
}

package scene

import (
	"fmt"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
)

// GeometrySuffix is appended to a node's name to name its isolated
// geometry child.
const GeometrySuffix = ".geom"

// IsolateScale moves h's mesh and scale onto a new child node so that h's
// other children inherit only its rotation and translation.
//
// The child keeps h's pivot, so h * child reproduces the original matrix of
// h. From then on h has identity scale; SetScale, RecordPose and ApplyPose
// route scale through the child. A scale written straight to h's Transform
// afterwards is moved to the child before the graph next reads h. Calling
// IsolateScale again returns the same child.
func (g *Graph) IsolateScale(h Handle) (Handle, error) {
	if !g.Valid(h) {
		return Nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	n := g.nodes[h]
	if n.scaleTarget != Nil {
		g.settle(h)
		return n.scaleTarget, nil
	}

	geom, err := g.Add(h, n.Name+GeometrySuffix)
	if err != nil {
		return Nil, err
	}
	// Keep the geometry first among the children.
	copy(n.children[1:], n.children[:len(n.children)-1])
	n.children[0] = geom

	gn := g.nodes[geom]
	gn.Mesh = n.Mesh
	gn.Transform = Transform{Scale: n.Transform.Scale, Pivot: n.Transform.Pivot}

	n.Mesh = nil
	n.Transform.Scale = math.One
	n.scaleTarget = geom
	return geom, nil
}

// SetScale sets the effective scale of h, writing it to the isolated
// geometry child when there is one.
func (g *Graph) SetScale(h Handle, x, y, z float32) error {
	if !g.Valid(h) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	n := g.nodes[h]
	if n.scaleTarget != Nil {
		n.Transform.Scale = math.One
		g.nodes[n.scaleTarget].Transform.SetScale(x, y, z)
		return nil
	}
	n.Transform.SetScale(x, y, z)
	return nil
}

// EffectiveScale returns the scale h applies to its geometry.
func (g *Graph) EffectiveScale(h Handle) math.Vec3 {
	if !g.Valid(h) {
		return math.One
	}
	g.settle(h)
	n := g.nodes[h]
	if n.scaleTarget != Nil {
		return g.nodes[n.scaleTarget].Transform.Scale
	}
	return n.Transform.Scale
}

// settle restores the isolation invariant for h, or for h's parent when h
// is that parent's geometry child: any scale set on the isolated node moves
// to the geometry, and the geometry follows the node's pivot.
func (g *Graph) settle(h Handle) {
	n := g.nodes[h]
	if n.scaleTarget == Nil {
		if p := n.parent; p != Nil && g.nodes[p].scaleTarget == h {
			g.settle(p)
		}
		return
	}
	target := &g.nodes[n.scaleTarget].Transform
	if n.Transform.Scale != math.One {
		target.Scale = n.Transform.Scale
		n.Transform.Scale = math.One
	}
	target.Pivot = n.Transform.Pivot
}

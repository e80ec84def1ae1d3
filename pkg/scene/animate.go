package scene

import (
	"errors"
	"fmt"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
)

// RecordPose snapshots h's current transform into its track at frame,
// replacing any pose already recorded there.
func (g *Graph) RecordPose(h Handle, frame int) error {
	if !g.Valid(h) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	n := g.nodes[h]
	t := n.Transform
	t.Scale = g.EffectiveScale(h)
	if n.track == nil {
		n.track = &Track{}
	}
	n.track.Record(frame, Snapshot(t))
	return nil
}

// Evaluate samples h's track at frame.
func (g *Graph) Evaluate(h Handle, frame float32) (KeyframeTransform, error) {
	if !g.Valid(h) {
		return KeyframeTransform{}, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	n := g.nodes[h]
	if n.track == nil {
		return KeyframeTransform{}, &AnimationError{Node: n.Name, Err: ErrNoKeyframes}
	}
	pose, err := n.track.Evaluate(frame)
	if err != nil {
		var aerr *AnimationError
		if errors.As(err, &aerr) {
			aerr.Node = n.Name
		}
		return KeyframeTransform{}, err
	}
	return pose, nil
}

// ApplyPose makes pose h's live transform. Scale and pivot are forwarded to
// the isolated geometry child when there is one.
func (g *Graph) ApplyPose(h Handle, pose KeyframeTransform) error {
	if !g.Valid(h) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	n := g.nodes[h]
	n.Transform = pose.Transform()
	if n.scaleTarget != Nil {
		target := &g.nodes[n.scaleTarget].Transform
		target.Scale = pose.Scale()
		target.Pivot = pose.Pivot()
		n.Transform.Scale = math.One
	}
	return nil
}

// Seek applies the pose at frame to every node with a non-empty track in
// the subtree rooted at h (the whole graph for Nil) and returns how many
// nodes were posed.
func (g *Graph) Seek(h Handle, frame float32) int {
	posed := 0
	g.Traverse(h, func(h Handle, n *Node) {
		if n.track == nil || n.track.Len() == 0 {
			return
		}
		pose, err := n.track.Evaluate(frame)
		if err != nil {
			return
		}
		_ = g.ApplyPose(h, pose)
		posed++
	})
	return posed
}

// AnimationRange returns the smallest and largest recorded frames across
// the subtree rooted at h. ok is false when nothing is recorded.
func (g *Graph) AnimationRange(h Handle) (first, last int, ok bool) {
	g.Traverse(h, func(_ Handle, n *Node) {
		if n.track == nil {
			return
		}
		f, l, has := n.track.Range()
		if !has {
			return
		}
		if !ok || f < first {
			first = f
		}
		if !ok || l > last {
			last = l
		}
		ok = true
	})
	return first, last, ok
}

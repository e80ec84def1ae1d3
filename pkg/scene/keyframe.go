package scene

import "github.com/KreesDaShrimp/Figure8-sub001/pkg/math"

// KeyframeTransform is an immutable snapshot of a Transform.
type KeyframeTransform struct {
	position math.Vec3
	rotation math.Vec3
	scale    math.Vec3
	pivot    math.Vec3
}

// Snapshot copies the four vector fields of t.
func Snapshot(t Transform) KeyframeTransform {
	return KeyframeTransform{
		position: t.Position,
		rotation: t.Rotation,
		scale:    t.Scale,
		pivot:    t.Pivot,
	}
}

// Position returns the recorded translation.
func (k KeyframeTransform) Position() math.Vec3 { return k.position }

// Rotation returns the recorded Euler angles.
func (k KeyframeTransform) Rotation() math.Vec3 { return k.rotation }

// Scale returns the recorded scale.
func (k KeyframeTransform) Scale() math.Vec3 { return k.scale }

// Pivot returns the recorded pivot.
func (k KeyframeTransform) Pivot() math.Vec3 { return k.pivot }

// Transform returns a live Transform holding the snapshot values.
func (k KeyframeTransform) Transform() Transform {
	return Transform{
		Position: k.position,
		Rotation: k.rotation,
		Scale:    k.scale,
		Pivot:    k.pivot,
	}
}

// ApproxEqual reports whether every component of k and other differs by at
// most eps.
func (k KeyframeTransform) ApproxEqual(other KeyframeTransform, eps float32) bool {
	return k.position.ApproxEqual(other.position, eps) &&
		k.rotation.ApproxEqual(other.rotation, eps) &&
		k.scale.ApproxEqual(other.scale, eps) &&
		k.pivot.ApproxEqual(other.pivot, eps)
}

// Lerp interpolates every field of a and b as a·(1-alpha) + b·alpha.
//
// Rotation is interpolated as raw Euler components, so a large angular
// delta between two keys turns the long way around.
func Lerp(a, b KeyframeTransform, alpha float32) KeyframeTransform {
	return KeyframeTransform{
		position: a.position.Lerp(b.position, alpha),
		rotation: a.rotation.Lerp(b.rotation, alpha),
		scale:    a.scale.Lerp(b.scale, alpha),
		pivot:    a.pivot.Lerp(b.pivot, alpha),
	}
}

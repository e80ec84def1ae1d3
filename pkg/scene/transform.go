// Package scene implements node transforms, keyframe tracks and the scene
// graph that composes them into world matrices.
package scene

import "github.com/KreesDaShrimp/Figure8-sub001/pkg/math"

// Transform is the local placement of a node.
//
// Rotation holds Euler angles in radians. Rotation and scale happen about
// Pivot; translation by Position is absolute.
type Transform struct {
	Position math.Vec3 `yaml:"position"`
	Rotation math.Vec3 `yaml:"rotation"`
	Scale    math.Vec3 `yaml:"scale"`
	Pivot    math.Vec3 `yaml:"pivot"`
}

// Identity returns a transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Scale: math.One}
}

// SetPosition sets the translation.
func (t *Transform) SetPosition(x, y, z float32) {
	t.Position = math.Vec3{X: x, Y: y, Z: z}
}

// SetRotation sets the Euler angles in radians.
func (t *Transform) SetRotation(x, y, z float32) {
	t.Rotation = math.Vec3{X: x, Y: y, Z: z}
}

// SetScale sets the scale factors.
func (t *Transform) SetScale(x, y, z float32) {
	t.Scale = math.Vec3{X: x, Y: y, Z: z}
}

// SetPivot sets the point rotation and scale happen about.
func (t *Transform) SetPivot(x, y, z float32) {
	t.Pivot = math.Vec3{X: x, Y: y, Z: z}
}

// Matrix returns T(Position) * T(Pivot) * R(Rotation) * S(Scale) * T(-Pivot).
func (t Transform) Matrix() math.Mat4 {
	m := math.TranslateVec(t.Position.Add(t.Pivot))
	m = m.Mul(math.RotateEuler(t.Rotation))
	m = m.Mul(math.ScaleVec(t.Scale))
	if t.Pivot != (math.Vec3{}) {
		m = m.Mul(math.TranslateVec(t.Pivot.Neg()))
	}
	return m
}

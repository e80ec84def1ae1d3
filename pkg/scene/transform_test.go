package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
)

func TestIdentityMatrix(t *testing.T) {
	if Identity().Matrix() != math.Identity() {
		t.Error("identity transform should produce the identity matrix")
	}
}

func TestSetters(t *testing.T) {
	tr := Identity()
	tr.SetPosition(1, 2, 3)
	tr.SetRotation(0.1, 0.2, 0.3)
	tr.SetScale(4, 5, 6)
	tr.SetPivot(7, 8, 9)

	want := Transform{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Rotation: math.Vec3{X: 0.1, Y: 0.2, Z: 0.3},
		Scale:    math.Vec3{X: 4, Y: 5, Z: 6},
		Pivot:    math.Vec3{X: 7, Y: 8, Z: 9},
	}
	if tr != want {
		t.Errorf("got %+v, want %+v", tr, want)
	}
}

func TestMatrixMatchesMathGL(t *testing.T) {
	tr := Transform{
		Position: math.Vec3{X: 1, Y: -2, Z: 0.5},
		Rotation: math.Vec3{X: 0.3, Y: -0.8, Z: 1.4},
		Scale:    math.Vec3{X: 0.1, Y: 0.5, Z: 2},
		Pivot:    math.Vec3{X: 0, Y: 1, Z: -0.25},
	}

	want := mgl32.Translate3D(1, -2, 0.5).
		Mul4(mgl32.Translate3D(0, 1, -0.25)).
		Mul4(mgl32.HomogRotate3DX(0.3)).
		Mul4(mgl32.HomogRotate3DY(-0.8)).
		Mul4(mgl32.HomogRotate3DZ(1.4)).
		Mul4(mgl32.Scale3D(0.1, 0.5, 2)).
		Mul4(mgl32.Translate3D(0, -1, 0.25))

	if got := tr.Matrix(); !got.ApproxEqual(math.Mat4(want), 1e-5) {
		t.Errorf("Matrix() = %v, want %v", got, want)
	}
}

func TestPivotIsFixedPoint(t *testing.T) {
	tr := Identity()
	tr.SetPivot(0, 1, 0)
	tr.SetRotation(1.2, 0, 0.4)
	tr.SetScale(3, 0.2, 3)

	// Rotation and scale happen about the pivot, so it does not move.
	got := tr.Matrix().TransformPoint(math.Vec3{X: 0, Y: 1, Z: 0})
	if !got.ApproxEqual(math.Vec3{X: 0, Y: 1, Z: 0}, 1e-5) {
		t.Errorf("pivot moved to %v", got)
	}

	// Translation stays absolute.
	tr.SetPosition(5, 0, 0)
	got = tr.Matrix().TransformPoint(math.Vec3{X: 0, Y: 1, Z: 0})
	if !got.ApproxEqual(math.Vec3{X: 5, Y: 1, Z: 0}, 1e-5) {
		t.Errorf("translated pivot at %v, want (5, 1, 0)", got)
	}
}

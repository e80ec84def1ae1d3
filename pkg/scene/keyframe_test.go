package scene

import (
	"testing"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
)

func pose(px, rx, sx, vx float32) KeyframeTransform {
	return Snapshot(Transform{
		Position: math.Vec3{X: px, Y: px * 2, Z: -px},
		Rotation: math.Vec3{X: rx, Y: -rx, Z: rx / 3},
		Scale:    math.Vec3{X: sx, Y: sx + 1, Z: sx * 0.5},
		Pivot:    math.Vec3{X: vx, Y: 0, Z: vx},
	})
}

func TestLerpEndpoints(t *testing.T) {
	tests := []struct {
		name string
		a, b KeyframeTransform
	}{
		{"small", pose(0.1, 0.2, 1, 0), pose(0.9, -0.4, 2, 0.5)},
		{"large", pose(-1234.5, 6.28, 0.001, 88), pose(987.25, -3.14, 40, -17)},
		{"zero", KeyframeTransform{}, pose(1, 1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(tt.a, tt.b, 0); !got.ApproxEqual(tt.a, 1e-6) {
				t.Errorf("Lerp(a, b, 0) = %+v, want %+v", got, tt.a)
			}
			if got := Lerp(tt.a, tt.b, 1); !got.ApproxEqual(tt.b, 1e-6) {
				t.Errorf("Lerp(a, b, 1) = %+v, want %+v", got, tt.b)
			}
		})
	}
}

func TestLerpSelf(t *testing.T) {
	a := pose(3.7, -2.2, 0.4, 1.1)
	for _, alpha := range []float32{0, 0.25, 0.5, 0.75, 1} {
		if got := Lerp(a, a, alpha); got != a {
			t.Errorf("Lerp(a, a, %v) = %+v, want %+v", alpha, got, a)
		}
	}
}

func TestLerpEulerLongWay(t *testing.T) {
	a := Snapshot(Transform{Rotation: math.Vec3{Y: 3}})
	b := Snapshot(Transform{Rotation: math.Vec3{Y: -3}})

	// Raw components interpolate through zero rather than across ±π.
	mid := Lerp(a, b, 0.5)
	if !mid.Rotation().ApproxEqual(math.Vec3{}, 1e-6) {
		t.Errorf("midpoint rotation = %v, want (0, 0, 0)", mid.Rotation())
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := Identity()
	tr.SetPosition(1, 2, 3)
	k := Snapshot(tr)

	tr.SetPosition(9, 9, 9)
	if k.Position() != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("snapshot changed with live transform: %v", k.Position())
	}

	live := k.Transform()
	live.SetScale(5, 5, 5)
	if k.Scale() != math.One {
		t.Errorf("snapshot changed through Transform(): %v", k.Scale())
	}
}

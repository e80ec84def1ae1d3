package scene

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
)

func at(x float32) KeyframeTransform {
	return Snapshot(Transform{Position: math.Vec3{X: x}, Scale: math.One})
}

func TestTrackEmpty(t *testing.T) {
	var tr Track
	_, err := tr.Evaluate(0)
	if !errors.Is(err, ErrNoKeyframes) {
		t.Fatalf("expected ErrNoKeyframes, got %v", err)
	}
	var aerr *AnimationError
	if !errors.As(err, &aerr) {
		t.Errorf("expected *AnimationError, got %T", err)
	}
}

func TestTrackRecordKeepsOrder(t *testing.T) {
	var tr Track
	for _, f := range []int{20, 0, 10, 30, 5} {
		tr.Record(f, at(float32(f)))
	}
	tr.Record(10, at(100))

	frames := tr.Frames()
	want := []int{0, 5, 10, 20, 30}
	if len(frames) != len(want) {
		t.Fatalf("frames = %v, want %v", frames, want)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Fatalf("frames = %v, want %v", frames, want)
		}
	}
	if got := tr.At(2).Pose.Position().X; got != 100 {
		t.Errorf("replaced pose at frame 10 has x = %v, want 100", got)
	}
	if first, last, ok := tr.Range(); !ok || first != 0 || last != 30 {
		t.Errorf("Range() = %d, %d, %v", first, last, ok)
	}
}

func TestTrackEvaluate(t *testing.T) {
	var tr Track
	tr.Record(0, at(0))
	tr.Record(10, at(10))
	tr.Record(14, at(2))

	tests := []struct {
		name  string
		frame float32
		want  float32
	}{
		{"midpoint", 5, 5},
		{"quarter", 2.5, 2.5},
		{"exact first", 0, 0},
		{"exact middle", 10, 10},
		{"exact last", 14, 2},
		{"second span", 12, 6},
		{"before first", -3, 0},
		{"after last", 99, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Evaluate(tt.frame)
			if err != nil {
				t.Fatalf("Evaluate(%v) error: %v", tt.frame, err)
			}
			if x := got.Position().X; x < tt.want-1e-5 || x > tt.want+1e-5 {
				t.Errorf("Evaluate(%v).Position().X = %v, want %v", tt.frame, x, tt.want)
			}
		})
	}
}

func TestTrackEvaluateExactIsRecordedPose(t *testing.T) {
	var tr Track
	recorded := Snapshot(Transform{
		Position: math.Vec3{X: 0.1, Y: 0.2, Z: 0.3},
		Rotation: math.Vec3{X: 1.0 / 3.0, Y: 2.0 / 7.0, Z: -0.7},
		Scale:    math.Vec3{X: 0.3, Y: 0.6, Z: 0.9},
		Pivot:    math.Vec3{X: 0.01},
	})
	tr.Record(0, at(0))
	tr.Record(7, recorded)
	tr.Record(13, at(4))

	got, err := tr.Evaluate(7)
	if err != nil {
		t.Fatal(err)
	}
	if got != recorded {
		t.Errorf("Evaluate(7) = %+v, want exactly %+v", got, recorded)
	}
}

func TestTrackClampsBoundaries(t *testing.T) {
	var tr Track
	first := pose(1, 2, 3, 4)
	last := pose(-1, -2, -3, -4)
	tr.Record(3, first)
	tr.Record(9, last)

	if got, _ := tr.Evaluate(-100); got != first {
		t.Errorf("before first = %+v, want %+v", got, first)
	}
	if got, _ := tr.Evaluate(1e6); got != last {
		t.Errorf("after last = %+v, want %+v", got, last)
	}
}

func TestTrackRejectsNaN(t *testing.T) {
	var tr Track
	tr.Record(0, at(0))
	tr.Record(10, at(10))

	_, err := tr.Evaluate(math32.NaN())
	if !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("Evaluate(NaN) error = %v, want ErrInvalidFrame", err)
	}
	var aerr *AnimationError
	if !errors.As(err, &aerr) {
		t.Errorf("expected *AnimationError, got %T", err)
	}
}

func TestTrackInfinityClamps(t *testing.T) {
	var tr Track
	tr.Record(0, at(0))
	tr.Record(10, at(10))

	if got, err := tr.Evaluate(math32.Inf(-1)); err != nil || got.Position().X != 0 {
		t.Errorf("Evaluate(-Inf) = %v, %v; want x = 0", got.Position(), err)
	}
	if got, err := tr.Evaluate(math32.Inf(1)); err != nil || got.Position().X != 10 {
		t.Errorf("Evaluate(+Inf) = %v, %v; want x = 10", got.Position(), err)
	}
}

func TestTrackLargeFrames(t *testing.T) {
	// 16777217 has no float32 form; as a key it must still sort after 2^24.
	var tr Track
	tr.Record(0, at(0))
	tr.Record(1<<24+1, at(1))
	tr.Record(1<<24+2, at(2))

	got, err := tr.Evaluate(1 << 24)
	if err != nil {
		t.Fatal(err)
	}
	if x := got.Position().X; x >= 1 || x < 0.99 {
		t.Errorf("Evaluate(2^24).Position().X = %v, want just below 1", x)
	}
	if got, _ := tr.Evaluate(1<<24 + 2); got.Position().X != 2 {
		t.Errorf("Evaluate(2^24+2).Position().X = %v, want 2", got.Position().X)
	}
}

func TestTrackSingleKey(t *testing.T) {
	var tr Track
	tr.Record(4, at(7))
	for _, f := range []float32{0, 4, 9} {
		got, err := tr.Evaluate(f)
		if err != nil || got.Position().X != 7 {
			t.Errorf("Evaluate(%v) = %v, %v; want x = 7", f, got.Position(), err)
		}
	}
}

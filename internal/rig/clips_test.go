package rig

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
	"github.com/KreesDaShrimp/Figure8-sub001/pkg/scene"
)

func TestClipFrame(t *testing.T) {
	clip := Clip{Name: "walk", Start: 100, End: 140}

	tests := []struct {
		t    float32
		loop bool
		want float32
	}{
		{0, false, 100},
		{15, false, 115},
		{40, false, 140},
		{55, false, 140},
		{-5, false, 100},
		{0, true, 100},
		{15.5, true, 115.5},
		{40, true, 100},
		{55, true, 115},
		{-10, true, 130},
	}
	for _, tt := range tests {
		if got := clip.Frame(tt.t, tt.loop); got != tt.want {
			t.Errorf("Frame(%v, %v) = %v, want %v", tt.t, tt.loop, got, tt.want)
		}
	}

	empty := Clip{Start: 7, End: 7}
	if got := empty.Frame(3, true); got != 7 {
		t.Errorf("empty clip Frame = %v, want 7", got)
	}
}

func rotation(t *testing.T, r *Rig, name string) math.Vec3 {
	t.Helper()
	h, ok := r.Joint(name)
	if !ok {
		t.Fatalf("missing joint %s", name)
	}
	return r.Graph.Node(h).Transform.Rotation
}

func TestAuthorWalk(t *testing.T) {
	r := build(t)
	cfg := DefaultConfig()

	clip, err := r.AuthorWalk(0)
	if err != nil {
		t.Fatalf("AuthorWalk() error: %v", err)
	}
	if clip.Name != "walk" || clip.Start != 0 || clip.End != 4*cfg.StepFrames {
		t.Errorf("clip = %+v", clip)
	}

	h, _ := r.Joint("l.leg.upper")
	frames := r.Graph.Node(h).Track().Frames()
	want := []int{0, 10, 20, 30, 40}
	if len(frames) != len(want) {
		t.Fatalf("frames = %v, want %v", frames, want)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frames = %v, want %v", frames, want)
			break
		}
	}

	// Authoring leaves the live rig at rest.
	if rot := rotation(t, r, "l.leg.upper"); rot != (math.Vec3{}) {
		t.Errorf("live rotation after authoring = %v, want zero", rot)
	}

	tests := []struct {
		frame float32
		want  float32
	}{
		{0, -cfg.LegSwing},
		{5, -cfg.LegSwing / 2},
		{10, 0},
		{20, cfg.LegSwing},
		{40, -cfg.LegSwing},
	}
	for _, tt := range tests {
		r.Graph.Seek(r.Root, tt.frame)
		if got := rotation(t, r, "l.leg.upper").X; math32Abs(got-tt.want) > 1e-6 {
			t.Errorf("frame %v: left hip = %f, want %f", tt.frame, got, tt.want)
		}
		if got := rotation(t, r, "r.leg.upper").X; math32Abs(got+tt.want) > 1e-6 {
			t.Errorf("frame %v: right hip = %f, want %f", tt.frame, got, -tt.want)
		}
	}
}

func math32Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestWalkLoops(t *testing.T) {
	r := build(t)
	clip, err := r.AuthorWalk(0)
	if err != nil {
		t.Fatal(err)
	}

	r.Graph.Traverse(r.Root, func(h scene.Handle, n *scene.Node) {
		if n.Track() == nil {
			return
		}
		first, err := r.Graph.Evaluate(h, float32(clip.Start))
		if err != nil {
			t.Fatalf("%s: %v", n.Name, err)
		}
		last, err := r.Graph.Evaluate(h, float32(clip.End))
		if err != nil {
			t.Fatalf("%s: %v", n.Name, err)
		}
		if !first.ApproxEqual(last, 1e-6) {
			t.Errorf("%s: first and last walk keys differ", n.Name)
		}
	})
}

func TestWalkSwingsFeet(t *testing.T) {
	r := build(t)
	if _, err := r.AuthorWalk(0); err != nil {
		t.Fatal(err)
	}

	r.Graph.Seek(r.Root, 0)
	l, _ := r.JointPosition("l.foot")
	rr, _ := r.JointPosition("r.foot")
	if l.Z <= rr.Z {
		t.Errorf("frame 0: left foot z = %f, right foot z = %f; want left forward", l.Z, rr.Z)
	}

	r.Graph.Seek(r.Root, 20)
	l, _ = r.JointPosition("l.foot")
	rr, _ = r.JointPosition("r.foot")
	if l.Z >= rr.Z {
		t.Errorf("frame 20: left foot z = %f, right foot z = %f; want right forward", l.Z, rr.Z)
	}
}

func TestAuthorWave(t *testing.T) {
	r := build(t)
	if _, err := r.AuthorWalk(0); err != nil {
		t.Fatal(err)
	}
	clip, err := r.AuthorWave(100)
	if err != nil {
		t.Fatalf("AuthorWave() error: %v", err)
	}
	if clip.Start != 100 || clip.End <= clip.Start+2*DefaultConfig().StepFrames {
		t.Errorf("clip = %+v", clip)
	}

	r.Graph.Seek(r.Root, float32(clip.Start))
	hand, _ := r.JointPosition("r.hand")
	shoulder, _ := r.JointPosition("r.arm.upper")
	if hand.Y >= shoulder.Y {
		t.Errorf("wave start: hand y = %f above shoulder y = %f", hand.Y, shoulder.Y)
	}
	// Walk keys do not bleed into the wave.
	if rot := rotation(t, r, "l.leg.upper"); rot != (math.Vec3{}) {
		t.Errorf("wave start: left hip = %v, want rest", rot)
	}

	r.Graph.Seek(r.Root, float32(clip.Start+DefaultConfig().StepFrames))
	hand, _ = r.JointPosition("r.hand")
	shoulder, _ = r.JointPosition("r.arm.upper")
	if hand.Y <= shoulder.Y {
		t.Errorf("arm raised: hand y = %f below shoulder y = %f", hand.Y, shoulder.Y)
	}
	if hand.X >= shoulder.X {
		t.Errorf("arm raised: hand x = %f, want outside shoulder x = %f", hand.X, shoulder.X)
	}

	r.Graph.Seek(r.Root, float32(clip.End))
	if rot := rotation(t, r, "r.arm.upper"); rot != (math.Vec3{}) {
		t.Errorf("wave end: right shoulder = %v, want rest", rot)
	}

	if got := r.Clips(); len(got) != 2 || got[0].Name != "walk" || got[1].Name != "wave" {
		t.Errorf("clips = %+v", got)
	}
}

func TestAuthorReplacesClip(t *testing.T) {
	r := build(t)
	if _, err := r.AuthorWalk(0); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AuthorWalk(200); err != nil {
		t.Fatal(err)
	}

	clips := r.Clips()
	if len(clips) != 1 {
		t.Fatalf("clips = %+v, want one walk", clips)
	}
	if c, ok := r.Clip("walk"); !ok || c.Start != 200 {
		t.Errorf("walk clip = %+v, %v", c, ok)
	}
}

func TestAuthorLogs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := DefaultConfig()
	cfg.Logger = zap.New(core)

	r, err := Build(scene.NewGraph(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.AuthorWave(0); err != nil {
		t.Fatal(err)
	}

	entries := logs.FilterMessage("clip authored").All()
	if len(entries) != 1 {
		t.Fatalf("expected one clip log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["clip"] != "wave" {
		t.Errorf("clip field = %v, want wave", fields["clip"])
	}
	if entries[0].LoggerName != "rig" {
		t.Errorf("logger name = %q, want rig", entries[0].LoggerName)
	}
}

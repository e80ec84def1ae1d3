package rig

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/KreesDaShrimp/Figure8-sub001/pkg/math"
)

// Clip names a frame range of the rig's tracks.
type Clip struct {
	Name  string `yaml:"name"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// Length returns the number of frames between the first and last key.
func (c Clip) Length() int { return c.End - c.Start }

// Frame maps a playback counter t, counted from the start of the clip, to
// a frame of the clip. With loop the counter wraps; otherwise it holds at
// the last frame.
func (c Clip) Frame(t float32, loop bool) float32 {
	length := float32(c.Length())
	if length <= 0 {
		return float32(c.Start)
	}
	if loop {
		t = math32.Mod(t, length)
		if t < 0 {
			t += length
		}
	} else if t < 0 {
		t = 0
	} else if t > length {
		t = length
	}
	return float32(c.Start) + t
}

// walkKey is one pose of the walk cycle, written for the left side.
// Positive hip swings the left leg forward.
type walkKey struct {
	hip   float32 // fraction of LegSwing
	lKnee float32 // radians
	rKnee float32
	bob   float32 // pelvis height change, fraction of Height
}

// Contact, passing, contact, passing. The cycle closes on its first key.
var walkCycle = []walkKey{
	{hip: 1, lKnee: 0.05, rKnee: 0.3, bob: -0.01},
	{hip: 0, lKnee: 0.05, rKnee: 0.6, bob: 0.005},
	{hip: -1, lKnee: 0.3, rKnee: 0.05, bob: -0.01},
	{hip: 0, lKnee: 0.6, rKnee: 0.05, bob: 0.005},
}

// AuthorWalk records a looping walk cycle starting at frame start, one key
// every StepFrames. The last key repeats the first.
func (r *Rig) AuthorWalk(start int) (Clip, error) {
	step := r.cfg.StepFrames
	frame := start
	for i := 0; i <= len(walkCycle); i++ {
		k := walkCycle[i%len(walkCycle)]
		r.walkPose(k)
		if err := r.recordAll(frame); err != nil {
			return Clip{}, err
		}
		frame += step
	}
	r.Reset()

	clip := Clip{Name: "walk", Start: start, End: start + step*len(walkCycle)}
	r.addClip(clip, len(walkCycle)+1)
	return clip, nil
}

func (r *Rig) walkPose(k walkKey) {
	r.Reset()
	// Negative X rotation swings a hanging segment toward +Z.
	leg := -k.hip * r.cfg.LegSwing
	arm := k.hip * r.cfg.ArmSwing

	r.rotate("l.leg.upper", leg, 0, 0)
	r.rotate("r.leg.upper", -leg, 0, 0)
	r.rotate("l.leg.lower", k.lKnee, 0, 0)
	r.rotate("r.leg.lower", k.rKnee, 0, 0)
	r.rotate("l.arm.upper", arm, 0, 0)
	r.rotate("r.arm.upper", -arm, 0, 0)
	r.rotate("l.arm.lower", -0.2, 0, 0)
	r.rotate("r.arm.lower", -0.2, 0, 0)
	r.rotate("torso", 0, 0.1*k.hip, 0)
	r.offset("pelvis", math.Vec3{Y: k.bob * r.cfg.Height})
}

// Wave poses: raised right arm, forearm swing, head tilt.
const (
	waveRaise    = -2.4 // about Z; negative lifts the right arm outward
	waveSwing    = 0.5
	waveHeadTilt = 0.1
	waveCount    = 3
)

// AuthorWave records a right-hand wave starting at frame start: raise the
// arm, swing the forearm waveCount times, lower the arm.
func (r *Rig) AuthorWave(start int) (Clip, error) {
	step := r.cfg.StepFrames
	half := step / 2
	if half < 1 {
		half = 1
	}

	keys := 0
	record := func(frame int, pose func()) error {
		r.Reset()
		pose()
		keys++
		return r.recordAll(frame)
	}
	raised := func(forearm float32) func() {
		return func() {
			r.rotate("r.arm.upper", 0, 0, waveRaise)
			r.rotate("r.arm.lower", 0, 0, forearm)
			r.rotate("head", 0, 0, waveHeadTilt)
		}
	}

	frame := start
	if err := record(frame, func() {}); err != nil {
		return Clip{}, err
	}
	frame += step
	if err := record(frame, raised(0)); err != nil {
		return Clip{}, err
	}
	for i := 0; i < 2*waveCount; i++ {
		swing := float32(waveSwing)
		if i%2 == 0 {
			swing = -swing
		}
		frame += half
		if err := record(frame, raised(swing)); err != nil {
			return Clip{}, err
		}
	}
	frame += half
	if err := record(frame, raised(0)); err != nil {
		return Clip{}, err
	}
	frame += step
	if err := record(frame, func() {}); err != nil {
		return Clip{}, err
	}
	r.Reset()

	clip := Clip{Name: "wave", Start: start, End: frame}
	r.addClip(clip, keys)
	return clip, nil
}

func (r *Rig) addClip(c Clip, keys int) {
	replaced := false
	for i := range r.clips {
		if r.clips[i].Name == c.Name {
			r.clips[i] = c
			replaced = true
		}
	}
	if !replaced {
		r.clips = append(r.clips, c)
	}
	r.log.Info("clip authored",
		zap.String("clip", c.Name),
		zap.Int("start", c.Start),
		zap.Int("end", c.End),
		zap.Int("keys", keys))
}

package scene

import (
	"sort"

	"github.com/chewxy/math32"
)

// Keyframe pairs a frame index with a recorded pose.
type Keyframe struct {
	Frame int
	Pose  KeyframeTransform
}

// Track is a list of keyframes sorted by frame with unique frame indices.
// The zero value is an empty track.
type Track struct {
	keys []Keyframe
}

// Len returns the number of keyframes.
func (tr *Track) Len() int { return len(tr.keys) }

// At returns the i-th keyframe in frame order.
func (tr *Track) At(i int) Keyframe { return tr.keys[i] }

// Frames returns the recorded frame indices in ascending order.
func (tr *Track) Frames() []int {
	frames := make([]int, len(tr.keys))
	for i, k := range tr.keys {
		frames[i] = k.Frame
	}
	return frames
}

// Range returns the first and last recorded frames.
// ok is false for an empty track.
func (tr *Track) Range() (first, last int, ok bool) {
	if len(tr.keys) == 0 {
		return 0, 0, false
	}
	return tr.keys[0].Frame, tr.keys[len(tr.keys)-1].Frame, true
}

// Record stores pose at frame, replacing any pose already recorded there.
func (tr *Track) Record(frame int, pose KeyframeTransform) {
	i := sort.Search(len(tr.keys), func(i int) bool { return tr.keys[i].Frame >= frame })
	if i < len(tr.keys) && tr.keys[i].Frame == frame {
		tr.keys[i].Pose = pose
		return
	}
	tr.keys = append(tr.keys, Keyframe{})
	copy(tr.keys[i+1:], tr.keys[i:])
	tr.keys[i] = Keyframe{Frame: frame, Pose: pose}
}

// Evaluate returns the pose at frame.
//
// A frame that matches a key returns that key's pose unchanged. Frames
// outside the recorded range clamp to the nearest boundary key, so the
// infinities return the first or last pose. Anything else interpolates
// linearly between the two surrounding keys. A NaN frame fails with
// ErrInvalidFrame.
//
// Key frames are compared in float64, where every int32 frame is exact.
// The query itself is a float32 and only names every integer up to 2^24.
func (tr *Track) Evaluate(frame float32) (KeyframeTransform, error) {
	if len(tr.keys) == 0 {
		return KeyframeTransform{}, &AnimationError{Err: ErrNoKeyframes}
	}
	if math32.IsNaN(frame) {
		return KeyframeTransform{}, &AnimationError{Err: ErrInvalidFrame}
	}

	f := float64(frame)
	first, last := tr.keys[0], tr.keys[len(tr.keys)-1]
	if f <= float64(first.Frame) {
		return first.Pose, nil
	}
	if f >= float64(last.Frame) {
		return last.Pose, nil
	}

	i := sort.Search(len(tr.keys), func(i int) bool { return float64(tr.keys[i].Frame) >= f })
	if i == len(tr.keys) {
		return last.Pose, nil
	}
	next := tr.keys[i]
	if float64(next.Frame) == f {
		return next.Pose, nil
	}
	prev := tr.keys[i-1]
	alpha := (f - float64(prev.Frame)) / float64(next.Frame-prev.Frame)
	return Lerp(prev.Pose, next.Pose, float32(alpha)), nil
}

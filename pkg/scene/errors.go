package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrNoKeyframes is returned when sampling a track with no entries.
	ErrNoKeyframes = errors.New("no keyframes recorded")
	// ErrInvalidHandle is returned for handles that do not name a node.
	ErrInvalidHandle = errors.New("invalid node handle")
	// ErrInvalidFrame is returned when sampling at a NaN frame.
	ErrInvalidFrame = errors.New("invalid frame")
	// ErrCycle is returned when attaching a node below itself.
	ErrCycle = errors.New("attach would create a cycle")
)

// AnimationError reports a failure to sample a node's animation.
type AnimationError struct {
	Node string
	Err  error
}

func (e *AnimationError) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("animation: %v", e.Err)
	}
	return fmt.Sprintf("animation: node %q: %v", e.Node, e.Err)
}

func (e *AnimationError) Unwrap() error { return e.Err }

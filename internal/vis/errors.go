package vis

import (
	"errors"
	"fmt"
)

// Validation errors, raised before any sampler call is issued.
var (
	ErrNoPrompts        = errors.New("vis: prompt sequence is empty")
	ErrNoFrames         = errors.New("vis: first prompt frame has no positive conditioning")
	ErrBounceNeedsLimit = errors.New("vis: bounce mode requires a positive mod limit")
	ErrModifiersShort   = errors.New("vis: modifier sequence shorter than desired frame count")
	ErrBadStartLatent   = errors.New("vis: starting latent is empty or invalid")
)

// FrameError wraps a sampler failure with the frame it happened on.
// The run aborts; no partial results are returned.
type FrameError struct {
	Frame int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("vis: frame %d: %v", e.Frame, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

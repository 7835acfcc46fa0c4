package latent

import "errors"

var (
	// ErrEmptyStack is returned when stacking zero tensors.
	ErrEmptyStack = errors.New("latent: no tensors to stack")

	// ErrShapeMismatch is returned when tensors disagree on shape.
	ErrShapeMismatch = errors.New("latent: tensor shape mismatch")
)

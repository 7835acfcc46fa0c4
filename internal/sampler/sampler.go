// Package sampler abstracts the image-diffusion backend that turns one
// latent into one image tensor per frame.
//
// Two backends ship by default: an offline deterministic stand-in for
// server-less runs, and a remote HTTP client speaking a small JSON
// protocol. Backends are picked by name through [Registry].
package sampler

import (
	"context"

	"github.com/san-kum/latentwalk/internal/latent"
	"github.com/san-kum/latentwalk/internal/prompt"
)

// Settings carries the sampling knobs shared by every frame of a run.
type Settings struct {
	Model       string
	Steps       int
	CFG         float64
	SamplerName string
	Scheduler   string
	Denoise     float64
}

// Request is a single frame's sampling call.
type Request struct {
	Settings
	Seed     uint64
	Positive prompt.Conditioning
	Negative prompt.Conditioning
	Latent   latent.Tensor
}

// Sampler produces an image tensor from a latent. Implementations must
// leave the request latent untouched and must return identical output
// for identical requests.
type Sampler interface {
	Name() string
	Available(ctx context.Context) bool
	Sample(ctx context.Context, req Request) (latent.Tensor, error)
}

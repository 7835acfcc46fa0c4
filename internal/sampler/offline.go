package sampler

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/latentwalk/internal/latent"
	"github.com/san-kum/latentwalk/internal/prompt"
)

// Offline is a self-contained backend for runs without a diffusion
// server. It blends the input latent with noise drawn from the request
// seed, nudged by the conditioning, so trajectories stay reproducible
// and prompt changes remain visible in the output. It performs no
// inference.
type Offline struct{}

func NewOffline() *Offline {
	return &Offline{}
}

func (o *Offline) Name() string {
	return "offline"
}

func (o *Offline) Available(ctx context.Context) bool {
	return true
}

func (o *Offline) Sample(ctx context.Context, req Request) (latent.Tensor, error) {
	if err := ctx.Err(); err != nil {
		return latent.Tensor{}, err
	}
	if !req.Latent.IsValid() {
		return latent.Tensor{}, fmt.Errorf("sampler: invalid input latent %v", req.Latent.Shape)
	}

	rng := rand.New(rand.NewSource(int64(req.Seed)))
	bias := conditioningBias(req.Positive) - conditioningBias(req.Negative)
	d := req.Denoise

	out := req.Latent.Clone()
	for i := range out.Data {
		noise := rng.NormFloat64() + bias
		out.Data[i] = (1-d)*out.Data[i] + d*noise
	}
	return out, nil
}

// conditioningBias reduces a conditioning payload to a single scalar so
// the stand-in output tracks prompt changes. The pooled vector wins
// when present.
func conditioningBias(c prompt.Conditioning) float64 {
	vec := c.Pooled
	if len(vec) == 0 {
		if len(c.Tokens) == 0 {
			return 0
		}
		vec = c.Tokens[0]
	}
	if len(vec) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vec {
		sum += v
	}
	return sum / float64(len(vec))
}

package vis

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/latentwalk/internal/latent"
	"github.com/san-kum/latentwalk/internal/prompt"
	"github.com/san-kum/latentwalk/internal/sampler"
)

// Renderer draws labeled float series into an image tensor. The run
// uses it once, at the end, with the "Latent Means" series.
type Renderer interface {
	Render(series map[string][]float64) (latent.Tensor, error)
}

// Observer receives one callback per completed frame.
type Observer interface {
	OnFrame(frame int, modifier, mean float64, seed uint64)
}

// Config is one run's worth of inputs.
type Config struct {
	Prompts   prompt.Sequence
	Modifiers []float64
	Start     latent.Tensor

	Seed       uint64
	SeedMode   latent.SeedMode
	LatentMode latent.Mode
	ImageLimit int     // > 0 caps produced frames
	ModLimit   float64 // <= 0 disables latent bounds

	Sampler sampler.Settings
}

// DesiredFrames returns the frame count baseline before the image
// limit is applied.
func (c Config) DesiredFrames() int {
	return c.Prompts.DesiredFrames()
}

// Validate checks the preconditions. It never touches the sampler.
func (c Config) Validate() error {
	if len(c.Prompts) == 0 {
		return ErrNoPrompts
	}
	if c.DesiredFrames() == 0 {
		return ErrNoFrames
	}
	if c.LatentMode == latent.Bounce && c.ModLimit <= 0 {
		return ErrBounceNeedsLimit
	}
	if want := c.DesiredFrames(); len(c.Modifiers) < want {
		return fmt.Errorf("%w: have %d, need %d", ErrModifiersShort, len(c.Modifiers), want)
	}
	if c.Start.Len() == 0 || !c.Start.IsValid() {
		return ErrBadStartLatent
	}
	return nil
}

// Result is everything a run produces.
type Result struct {
	// Latents stacks the per-frame sampler outputs along the first
	// dimension, in frame order.
	Latents latent.Tensor
	// Chart is the rendered latent-mean trajectory image.
	Chart latent.Tensor

	Trajectory []float64 // latent mean per produced frame
	Modifiers  []float64 // modifier applied per produced frame
	Seeds      []uint64  // sampler seed per produced frame

	Frames  int // frames produced
	Clamped int // frames where a bound froze the latent
	Flips   int // bounce direction reversals
}

// Visualizer runs frame loops against an injected sampler and chart
// renderer. Not safe for concurrent runs of the same instance only
// because observers are shared; distinct instances are independent.
type Visualizer struct {
	sampler   sampler.Sampler
	renderer  Renderer
	observers []Observer
}

func New(s sampler.Sampler, r Renderer) *Visualizer {
	return &Visualizer{sampler: s, renderer: r}
}

// AddObserver registers a per-frame callback.
func (v *Visualizer) AddObserver(o Observer) {
	v.observers = append(v.observers, o)
}

// Run executes one visualization run. Validation failures surface
// before the first sampler call; a sampler failure aborts the run with
// the failing frame index attached.
func (v *Visualizer) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(int64(cfg.Seed)))
	rec := latent.NewRecurrence(cfg.LatentMode, cfg.ModLimit, rng)

	frames := cfg.DesiredFrames()
	cur := cfg.Start.Clone()
	seed := cfg.Seed
	frame := cfg.Prompts.At(0)

	res := &Result{
		Trajectory: make([]float64, 0, frames),
		Modifiers:  make([]float64, 0, frames),
		Seeds:      make([]uint64, 0, frames),
	}
	outputs := make([]latent.Tensor, 0, frames)

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("vis: run cancelled at frame %d: %w", i, ctx.Err())
		default:
		}

		prevDir := rec.Direction
		stepped := rec.Step(cur, cfg.Modifiers[i])
		if rec.Direction != prevDir {
			res.Flips++
		}
		if cfg.LatentMode != latent.Static && sharesData(stepped, cur) {
			res.Clamped++
		}
		cur = stepped

		mean := cur.Mean()
		res.Trajectory = append(res.Trajectory, mean)
		res.Modifiers = append(res.Modifiers, cfg.Modifiers[i])
		res.Seeds = append(res.Seeds, seed)

		out, err := v.sampler.Sample(ctx, sampler.Request{
			Settings: cfg.Sampler,
			Seed:     seed,
			Positive: frame.BuildPositive(),
			Negative: frame.BuildNegative(),
			Latent:   cur,
		})
		if err != nil {
			return nil, &FrameError{Frame: i, Err: err}
		}
		outputs = append(outputs, out)
		res.Frames++

		for _, o := range v.observers {
			o.OnFrame(i, cfg.Modifiers[i], mean, seed)
		}

		// The image limit ends the run on the last retained frame;
		// seed and prompt never advance past it.
		if cfg.ImageLimit > 0 && i >= cfg.ImageLimit-1 {
			break
		}

		seed = latent.NextSeed(seed, cfg.SeedMode, rng)
		if len(cfg.Prompts) > 1 && i+1 < frames {
			frame = cfg.Prompts.At(i + 1)
		}
	}

	stacked, err := latent.Stack(outputs)
	if err != nil {
		return nil, fmt.Errorf("vis: failed to stack outputs: %w", err)
	}
	res.Latents = stacked

	chart, err := v.renderer.Render(map[string][]float64{"Latent Means": res.Trajectory})
	if err != nil {
		return nil, fmt.Errorf("vis: failed to render trajectory chart: %w", err)
	}
	res.Chart = chart

	return res, nil
}

// sharesData reports whether both tensors are backed by the same
// slice. A bound no-op returns its input as-is, so this identifies
// frozen frames without tolerance games.
func sharesData(a, b latent.Tensor) bool {
	return len(a.Data) > 0 && len(b.Data) > 0 && &a.Data[0] == &b.Data[0]
}

package latent

import "math/rand"

// Gauss mode resamples every element from this distribution.
const (
	gaussMean   = 3.0
	gaussStdDev = 2.5
)

// Direction is the current travel direction of a bounce walk.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Recurrence advances a latent tensor frame by frame according to a
// Mode. It owns the bounce direction state; all randomness comes from
// the rng handed to NewRecurrence.
type Recurrence struct {
	Mode     Mode
	ModLimit float64 // <= 0 disables the bound checks

	// Direction is the bounce travel direction. It starts Up and is
	// only mutated by bounce reversals.
	Direction Direction

	rng *rand.Rand
}

// NewRecurrence builds a recurrence starting in the upward direction.
func NewRecurrence(mode Mode, modLimit float64, rng *rand.Rand) *Recurrence {
	return &Recurrence{
		Mode:      mode,
		ModLimit:  modLimit,
		Direction: Up,
		rng:       rng,
	}
}

// Step produces the next latent from cur and the frame's modifier. The
// input tensor is never modified; when a bound check rejects the move
// the input is returned as-is.
func (r *Recurrence) Step(cur Tensor, modifier float64) Tensor {
	mode := r.Mode
	if mode == Flow {
		if r.rng.Float64() < 0.5 {
			mode = Increase
		} else {
			mode = Decrease
		}
	}
	if mode == Bounce {
		mode = r.resolveBounce(cur, modifier)
	}

	switch mode {
	case Increase:
		return r.add(cur, modifier)
	case Decrease:
		return r.subtract(cur, modifier)
	case Gauss:
		return Normal(r.rng, gaussMean, gaussStdDev, cur.Shape...)
	default:
		return cur
	}
}

// resolveBounce picks the concrete step mode for a bounce frame. A move
// that would land the mean outside [-ModLimit, ModLimit] reverses the
// walk; landing exactly on a bound does not. Without a positive
// ModLimit there is nothing to bounce off, so the walk degenerates to a
// plain increase.
func (r *Recurrence) resolveBounce(cur Tensor, modifier float64) Mode {
	if r.ModLimit <= 0 {
		return Increase
	}
	mean := cur.Mean()
	next := mean + modifier
	if r.Direction == Down {
		next = mean - modifier
	}
	if next < -r.ModLimit || next > r.ModLimit {
		if r.Direction == Up {
			r.Direction = Down
		} else {
			r.Direction = Up
		}
	}
	if r.Direction == Up {
		return Increase
	}
	return Decrease
}

// add shifts every element up by modifier unless the resulting mean
// would exceed ModLimit, in which case the tensor is left unchanged.
func (r *Recurrence) add(cur Tensor, modifier float64) Tensor {
	if r.ModLimit > 0 && cur.Mean()+modifier > r.ModLimit {
		return cur
	}
	return cur.AddScalar(modifier)
}

// subtract shifts every element down by modifier unless the resulting
// mean would fall below -ModLimit, in which case the tensor is left
// unchanged.
func (r *Recurrence) subtract(cur Tensor, modifier float64) Tensor {
	if r.ModLimit > 0 && cur.Mean()-modifier < -r.ModLimit {
		return cur
	}
	return cur.AddScalar(-modifier)
}

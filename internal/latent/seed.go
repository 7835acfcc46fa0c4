package latent

import "math/rand"

// NextSeed returns the sampler seed for the following frame. Increase
// and decrease wrap at the uint64 boundary; random draws the full
// 64-bit range from rng.
func NextSeed(seed uint64, mode SeedMode, rng *rand.Rand) uint64 {
	switch mode {
	case SeedRandom:
		return rng.Uint64()
	case SeedIncrease:
		return seed + 1
	case SeedDecrease:
		return seed - 1
	default:
		return seed
	}
}

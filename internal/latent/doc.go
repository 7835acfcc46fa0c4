// Package latent provides the core primitives for walking a diffusion
// latent across frames.
//
// The package defines the fundamental types for the per-frame latent
// recurrence:
//
//   - [Tensor]: shaped float64 tensor representing a latent
//   - [Mode]: the six latent iteration behaviors
//   - [Recurrence]: the stateful per-frame latent step, including the
//     bounce direction machine
//   - [SeedMode] and [NextSeed]: per-frame seed advancement
//
// # Determinism
//
// Every randomized behavior (flow coin flips, gauss resampling, random
// seed advancement) draws from a *rand.Rand supplied by the caller, so a
// run seeded once replays exactly:
//
//	rng := rand.New(rand.NewSource(42))
//	rec := latent.NewRecurrence(latent.Bounce, 3.0, rng)
//	next := rec.Step(cur, 0.5)
//
// # Thread Safety
//
// Recurrence instances are NOT thread-safe; each belongs to a single
// sequential run. Tensors are treated as immutable values — every
// mutating operation returns a fresh tensor.
package latent

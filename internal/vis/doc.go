// Package vis drives the frame loop: advance the latent, sample an
// image, advance seed and prompt, and keep the trajectory in sync,
// frame by frame.
//
// The loop is strictly sequential. Each frame's latent, bounce
// direction, seed and prompt pointer depend on the previous frame's
// outcome, and the run's random source is order-sensitive, so frames
// are never issued concurrently. Cancellation is honored between
// frames via the run context.
//
// A [Visualizer] owns nothing global: the sampler and the chart
// renderer are injected, and every run gets its own random source
// derived from the run seed, so repeated or interleaved runs in one
// process cannot interfere.
package vis

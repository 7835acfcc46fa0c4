package prompt

import "math/rand"

// Random builds a single-frame sequence with frames positive embeddings
// of the given width, suitable for offline runs where no encoded prompts
// exist yet. The negative payload is a single zero embedding.
func Random(rng *rand.Rand, frames, dim int) Sequence {
	f := Frame{
		Positive:     make([]Embedding, frames),
		Negative:     []Embedding{make(Embedding, dim)},
		PositivePool: randomEmbedding(rng, dim),
		NegativePool: make(Embedding, dim),
	}
	for i := range f.Positive {
		f.Positive[i] = randomEmbedding(rng, dim)
	}
	return Sequence{f}
}

func randomEmbedding(rng *rand.Rand, dim int) Embedding {
	e := make(Embedding, dim)
	for i := range e {
		e[i] = rng.NormFloat64()
	}
	return e
}

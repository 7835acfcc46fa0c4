// Package prompt carries conditioning sequences between the loaders and
// the sampler. Payloads are opaque to the iteration core; nothing here
// inspects embedding values.
package prompt

// Embedding is a single conditioning vector.
type Embedding []float64

// Frame is one element of a prompt sequence: the positive and negative
// conditioning payloads for the frames it covers, with optional pooled
// vectors.
type Frame struct {
	Positive     []Embedding `yaml:"positive" json:"positive"`
	Negative     []Embedding `yaml:"negative" json:"negative"`
	PositivePool Embedding   `yaml:"positive_pool,omitempty" json:"positive_pool,omitempty"`
	NegativePool Embedding   `yaml:"negative_pool,omitempty" json:"negative_pool,omitempty"`
}

// Sequence is an ordered run of prompt frames.
type Sequence []Frame

// DesiredFrames returns the authoritative frame count baseline: the
// length of the first frame's positive conditioning. Modifier counts
// and sequence length never override it.
func (s Sequence) DesiredFrames() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0].Positive)
}

// At returns the frame at index i, holding the last frame once the
// sequence runs out.
func (s Sequence) At(i int) Frame {
	if i >= len(s) {
		return s[len(s)-1]
	}
	return s[i]
}

// Conditioning is the shape the sampler expects: the token embeddings
// plus an optional pooled vector.
type Conditioning struct {
	Tokens []Embedding
	Pooled Embedding
}

// BuildPositive assembles the frame's positive conditioning.
func (f Frame) BuildPositive() Conditioning {
	return Conditioning{Tokens: f.Positive, Pooled: f.PositivePool}
}

// BuildNegative assembles the frame's negative conditioning.
func (f Frame) BuildNegative() Conditioning {
	return Conditioning{Tokens: f.Negative, Pooled: f.NegativePool}
}

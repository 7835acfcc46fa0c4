package latent

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Tensor is a dense float64 tensor in row-major order. The element
// values are opaque to the iteration machinery; only whole-tensor
// statistics and scalar shifts are ever taken.
type Tensor struct {
	Shape []int
	Data  []float64
}

// New creates a zero-filled tensor with the given shape.
func New(shape ...int) Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return Tensor{
		Shape: append([]int(nil), shape...),
		Data:  make([]float64, n),
	}
}

// Normal creates a tensor with every element drawn independently from
// N(mean, stddev) using the supplied source.
func Normal(rng *rand.Rand, mean, stddev float64, shape ...int) Tensor {
	t := New(shape...)
	for i := range t.Data {
		t.Data[i] = mean + stddev*rng.NormFloat64()
	}
	return t
}

// Len returns the number of elements.
func (t Tensor) Len() int {
	return len(t.Data)
}

// Clone returns a deep copy of the tensor.
func (t Tensor) Clone() Tensor {
	return Tensor{
		Shape: append([]int(nil), t.Shape...),
		Data:  append([]float64(nil), t.Data...),
	}
}

// Mean returns the arithmetic mean over all elements. An empty tensor
// has mean 0.
func (t Tensor) Mean() float64 {
	if len(t.Data) == 0 {
		return 0
	}
	return stat.Mean(t.Data, nil)
}

// StdDev returns the sample standard deviation over all elements.
func (t Tensor) StdDev() float64 {
	if len(t.Data) < 2 {
		return 0
	}
	return stat.StdDev(t.Data, nil)
}

// AddScalar returns a new tensor with v added to every element. The
// receiver is left untouched.
func (t Tensor) AddScalar(v float64) Tensor {
	out := t.Clone()
	floats.AddConst(v, out.Data)
	return out
}

// SameShape reports whether both tensors have identical shapes.
func (t Tensor) SameShape(other Tensor) bool {
	if len(t.Shape) != len(other.Shape) {
		return false
	}
	for i, d := range t.Shape {
		if d != other.Shape[i] {
			return false
		}
	}
	return true
}

// IsValid reports whether the tensor contains no NaN or Inf values and
// its shape matches the data length.
func (t Tensor) IsValid() bool {
	n := 1
	for _, d := range t.Shape {
		if d < 0 {
			return false
		}
		n *= d
	}
	if n != len(t.Data) {
		return false
	}
	for _, v := range t.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Stack concatenates tensors along the first dimension, in order. All
// inputs must share the same trailing shape; one-dimensional inputs are
// treated as rows. The result owns its data.
func Stack(ts []Tensor) (Tensor, error) {
	if len(ts) == 0 {
		return Tensor{}, ErrEmptyStack
	}
	first := ts[0]
	if len(first.Shape) == 0 {
		return Tensor{}, fmt.Errorf("%w: scalar tensor", ErrShapeMismatch)
	}
	rowShape := first.Shape
	if len(rowShape) == 1 {
		rowShape = []int{1, first.Shape[0]}
	}
	total := 0
	for i, t := range ts {
		cur := t.Shape
		if len(cur) == 1 {
			cur = []int{1, t.Shape[0]}
		}
		if len(cur) != len(rowShape) {
			return Tensor{}, fmt.Errorf("%w: tensor %d has rank %d, want %d", ErrShapeMismatch, i, len(cur), len(rowShape))
		}
		for d := 1; d < len(cur); d++ {
			if cur[d] != rowShape[d] {
				return Tensor{}, fmt.Errorf("%w: tensor %d dimension %d is %d, want %d", ErrShapeMismatch, i, d, cur[d], rowShape[d])
			}
		}
		total += cur[0]
	}
	shape := append([]int(nil), rowShape...)
	shape[0] = total
	out := Tensor{Shape: shape, Data: make([]float64, 0, total*rowSize(rowShape))}
	for _, t := range ts {
		out.Data = append(out.Data, t.Data...)
	}
	return out, nil
}

func rowSize(shape []int) int {
	n := 1
	for _, d := range shape[1:] {
		n *= d
	}
	return n
}

func (t Tensor) String() string {
	return fmt.Sprintf("Tensor(shape=%v, mean=%.4f)", t.Shape, t.Mean())
}

package latent

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestNewZeroFilled(t *testing.T) {
	tensor := New(1, 4, 8, 8)

	if got := tensor.Len(); got != 256 {
		t.Errorf("Len() = %d, want 256", got)
	}
	for i, v := range tensor.Data {
		if v != 0 {
			t.Fatalf("Data[%d] = %f, want 0", i, v)
		}
	}
	if got := tensor.Mean(); got != 0 {
		t.Errorf("Mean() = %f, want 0", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := New(2, 3)
	for i := range orig.Data {
		orig.Data[i] = float64(i)
	}

	clone := orig.Clone()
	clone.Data[0] = 99
	clone.Shape[0] = 7

	if orig.Data[0] != 0 {
		t.Errorf("original data mutated through clone: got %f", orig.Data[0])
	}
	if orig.Shape[0] != 2 {
		t.Errorf("original shape mutated through clone: got %d", orig.Shape[0])
	}
}

func TestAddScalarLeavesReceiver(t *testing.T) {
	orig := New(2, 2)
	shifted := orig.AddScalar(1.5)

	for i, v := range shifted.Data {
		if v != 1.5 {
			t.Fatalf("shifted.Data[%d] = %f, want 1.5", i, v)
		}
	}
	for i, v := range orig.Data {
		if v != 0 {
			t.Fatalf("receiver mutated: Data[%d] = %f", i, v)
		}
	}
}

func TestMean(t *testing.T) {
	tensor := Tensor{Shape: []int{4}, Data: []float64{1, 2, 3, 4}}
	if got := tensor.Mean(); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("Mean() = %f, want 2.5", got)
	}

	empty := Tensor{}
	if got := empty.Mean(); got != 0 {
		t.Errorf("empty Mean() = %f, want 0", got)
	}
}

func TestNormalStatistics(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tensor := Normal(rng, 3.0, 2.5, 100, 100)

	mean := tensor.Mean()
	if math.Abs(mean-3.0) > 0.1 {
		t.Errorf("sample mean = %f, want ~3.0", mean)
	}
	sd := tensor.StdDev()
	if math.Abs(sd-2.5) > 0.1 {
		t.Errorf("sample stddev = %f, want ~2.5", sd)
	}
}

func TestNormalDeterministic(t *testing.T) {
	a := Normal(rand.New(rand.NewSource(11)), 3.0, 2.5, 16)
	b := Normal(rand.New(rand.NewSource(11)), 3.0, 2.5, 16)

	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("Data[%d] differs across identically seeded draws: %f vs %f", i, a.Data[i], b.Data[i])
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name   string
		tensor Tensor
		want   bool
	}{
		{"zeros", New(2, 2), true},
		{"empty", Tensor{}, true},
		{"nan", Tensor{Shape: []int{2}, Data: []float64{1, math.NaN()}}, false},
		{"inf", Tensor{Shape: []int{2}, Data: []float64{math.Inf(1), 0}}, false},
		{"shape too large", Tensor{Shape: []int{3}, Data: []float64{1, 2}}, false},
		{"negative dim", Tensor{Shape: []int{-1}, Data: nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tensor.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStack(t *testing.T) {
	a := Tensor{Shape: []int{1, 2, 2}, Data: []float64{1, 2, 3, 4}}
	b := Tensor{Shape: []int{1, 2, 2}, Data: []float64{5, 6, 7, 8}}
	c := Tensor{Shape: []int{1, 2, 2}, Data: []float64{9, 10, 11, 12}}

	out, err := Stack([]Tensor{a, b, c})
	if err != nil {
		t.Fatalf("Stack() error: %v", err)
	}
	wantShape := []int{3, 2, 2}
	if !out.SameShape(Tensor{Shape: wantShape}) {
		t.Fatalf("Stack() shape = %v, want %v", out.Shape, wantShape)
	}
	for i := 0; i < 12; i++ {
		if out.Data[i] != float64(i+1) {
			t.Fatalf("Data[%d] = %f, want %d", i, out.Data[i], i+1)
		}
	}
}

func TestStackPromotesVectors(t *testing.T) {
	a := Tensor{Shape: []int{3}, Data: []float64{1, 2, 3}}
	b := Tensor{Shape: []int{3}, Data: []float64{4, 5, 6}}

	out, err := Stack([]Tensor{a, b})
	if err != nil {
		t.Fatalf("Stack() error: %v", err)
	}
	if out.Shape[0] != 2 || out.Shape[1] != 3 {
		t.Errorf("Stack() shape = %v, want [2 3]", out.Shape)
	}
}

func TestStackErrors(t *testing.T) {
	if _, err := Stack(nil); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("Stack(nil) error = %v, want ErrEmptyStack", err)
	}

	a := Tensor{Shape: []int{1, 2}, Data: []float64{1, 2}}
	b := Tensor{Shape: []int{1, 3}, Data: []float64{1, 2, 3}}
	if _, err := Stack([]Tensor{a, b}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Stack() error = %v, want ErrShapeMismatch", err)
	}
}

func TestStackCopiesData(t *testing.T) {
	a := Tensor{Shape: []int{1, 2}, Data: []float64{1, 2}}
	out, err := Stack([]Tensor{a})
	if err != nil {
		t.Fatalf("Stack() error: %v", err)
	}
	out.Data[0] = 42
	if a.Data[0] != 1 {
		t.Errorf("input mutated through stacked result: got %f", a.Data[0])
	}
}

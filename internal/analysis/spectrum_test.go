package analysis

import (
	"math"
	"testing"
)

func sine(frames int, period float64) []float64 {
	data := make([]float64, frames)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}
	return data
}

func TestPowerSpectrumLength(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		want   int
	}{
		{"power of two", 64, 32},
		{"padded up", 60, 32},
		{"tiny", 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := PowerSpectrum(sine(tt.frames, 8))
			if len(ps) != tt.want {
				t.Errorf("len(PowerSpectrum) = %d, want %d", len(ps), tt.want)
			}
		})
	}
}

func TestPowerSpectrumDegenerate(t *testing.T) {
	if ps := PowerSpectrum(nil); ps != nil {
		t.Errorf("PowerSpectrum(nil) = %v, want nil", ps)
	}
	if ps := PowerSpectrum([]float64{1.0}); ps != nil {
		t.Errorf("PowerSpectrum(single) = %v, want nil", ps)
	}
}

func TestDominantPeriodSine(t *testing.T) {
	period, share := DominantPeriod(sine(64, 8))
	if math.Abs(period-8) > 1 {
		t.Errorf("dominant period = %.2f, want ~8", period)
	}
	if share < 0.3 {
		t.Errorf("peak share = %.3f, want a clear peak", share)
	}
}

func TestDominantPeriodTriangle(t *testing.T) {
	// The shape a bounce walk traces: up 6 frames, down 6 frames.
	data := make([]float64, 60)
	for i := range data {
		phase := i % 12
		if phase < 6 {
			data[i] = float64(phase)
		} else {
			data[i] = float64(12 - phase)
		}
	}

	period, _ := DominantPeriod(data)
	if math.Abs(period-12) > 2.5 {
		t.Errorf("dominant period = %.2f, want ~12", period)
	}
}

func TestDominantPeriodFlat(t *testing.T) {
	period, share := DominantPeriod(make([]float64, 32))
	if period != 0 || share != 0 {
		t.Errorf("flat series gave period=%.2f share=%.3f, want zeros", period, share)
	}
}

func TestPaddedLength(t *testing.T) {
	if got := PaddedLength(60); got != 64 {
		t.Errorf("PaddedLength(60) = %d, want 64", got)
	}
	if got := PaddedLength(1); got != 0 {
		t.Errorf("PaddedLength(1) = %d, want 0", got)
	}
}

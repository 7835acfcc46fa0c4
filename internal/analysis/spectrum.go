// Package analysis computes frequency diagnostics over recorded latent
// trajectories, chiefly the power spectrum of the mean series. A
// bounce walk shows up as a single dominant peak at its triangle-wave
// frequency; flow and gauss runs spread power across the band.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude spectrum of the series, one bin
// per frequency up to Nyquist. The input is Hann-windowed and
// zero-padded to the next power of two; bin k corresponds to a period
// of n/k frames where n is the padded length.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	n := nextPow2(len(data))
	padded := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(len(data)-1)))
		padded[i] = v * w
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// PaddedLength returns the FFT length PowerSpectrum uses for a series
// of the given length, for converting bins back to frame periods.
func PaddedLength(n int) int {
	if n < 2 {
		return 0
	}
	return nextPow2(n)
}

// DominantPeriod finds the strongest non-DC bin and returns its period
// in frames, with the bin's relative share of total non-DC power.
// It returns period 0 when the spectrum is empty or flat.
func DominantPeriod(data []float64) (period float64, share float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, 0
	}

	total := 0.0
	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		total += ps[i]
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxPower == 0 || total == 0 {
		return 0, 0
	}

	n := float64(PaddedLength(len(data)))
	return n / float64(maxIdx), maxPower / total
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first n/2 frequency bins of
// the series with its mean removed, so bin 0 is always near zero.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantPeriod returns the period, in samples, of the strongest
// non-constant component. A flat or too short series yields 0.
func DominantPeriod(data []float64) float64 {
	ps := PowerSpectrum(data)
	best, idx := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, idx = ps[k], k
		}
	}
	if idx == 0 || best < 1e-9 {
		return 0
	}
	return float64(len(data)) / float64(idx)
}

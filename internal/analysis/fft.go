package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of each frequency bin below Nyquist.
// The mean is removed first so bin 0 carries no weight.
func PowerSpectrum(series []int) []float64 {
	if len(series) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += float64(v)
	}
	mean /= float64(len(series))

	data := make([]float64, len(series))
	for i, v := range series {
		data[i] = float64(v) - mean
	}

	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period in steps of the strongest frequency in
// series, or 0 for a constant series.
func DominantPeriod(series []int) int {
	ps := PowerSpectrum(series)
	if len(ps) < 2 {
		return 0
	}
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] < 1e-9 {
		return 0
	}
	return int(math.Round(float64(len(series)) / float64(best)))
}

package signal

import "math"

const (
	hrfPeak  = 6
	hrfUnder = 16
	hrfRatio = 0.166
)

var (
	peakFactorial  = factorial(hrfPeak)
	underFactorial = factorial(hrfUnder)
)

// HRF aproxima la respuesta hemodinámica canónica (doble gamma).
func HRF(t float64) float64 {
	e := math.Exp(-t)
	return math.Pow(t, hrfPeak)*e/peakFactorial -
		hrfRatio*math.Pow(t, hrfUnder)*e/underFactorial
}

// HRFSeries evalúa HRF en cada punto de ts.
func HRFSeries(ts []float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = HRF(t)
	}
	return out
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

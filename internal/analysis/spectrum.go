package analysis

import "math"

// Correlation devuelve el coeficiente de Pearson; 0 si alguna serie es constante.
func Correlation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	ma, mb := Mean(a[:n]), Mean(b[:n])
	var cov, va, vb float64
	for i := 0; i < n; i++ {
		da, db := a[i]-ma, b[i]-mb
		cov += da * db
		va += da * da
		vb += db * db
	}
	if va == 0 || vb == 0 {
		return 0
	}
	return cov / math.Sqrt(va*vb)
}

// DominantFrequency devuelve la frecuencia (Hz) del bin DFT más fuerte, sin contar DC.
func DominantFrequency(xs []float64, fs float64) float64 {
	n := len(xs)
	if n < 2 || fs <= 0 {
		return 0
	}
	m := Mean(xs)
	best, bestK := -1.0, 0
	// DFT directa: n <= 600 muestras
	for k := 1; k <= n/2; k++ {
		var re, im float64
		for i, x := range xs {
			ang := 2 * math.Pi * float64(k) * float64(i) / float64(n)
			re += (x - m) * math.Cos(ang)
			im -= (x - m) * math.Sin(ang)
		}
		if mag := re*re + im*im; mag > best {
			best, bestK = mag, k
		}
	}
	return float64(bestK) * fs / float64(n)
}

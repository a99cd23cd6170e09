package signal

// Linspace devuelve n puntos equiespaciados en [start, stop]; el último es exactamente stop.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// MovingAverage convoluciona x con un kernel uniforme de longitud width.
// La salida tiene la misma longitud que x, centrada; fuera de rango cuenta como cero.
func MovingAverage(x []float64, width int) []float64 {
	out := make([]float64, len(x))
	if width <= 0 {
		return out
	}
	w := 1.0 / float64(width)
	// mismo desplazamiento que numpy "same" con kernel impar/par
	offset := (width - 1) / 2
	for i := range x {
		var acc float64
		for k := 0; k < width; k++ {
			j := i - offset + k
			if j < 0 || j >= len(x) {
				continue
			}
			acc += x[j]
		}
		out[i] = acc * w
	}
	return out
}

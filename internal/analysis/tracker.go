package analysis

// IndexTracker acumula muestras oxy/deoxy de un stream y reporta el
// índice acumulado cada window muestras.
type IndexTracker struct {
	window   int
	count    int
	sumOxy   float64
	sumDeoxy float64
	pending  int
}

// window < 1 equivale a 1
func NewIndexTracker(window int) *IndexTracker {
	if window < 1 {
		window = 1
	}
	return &IndexTracker{window: window}
}

// Process devuelve el índice si se completó una ventana
func (t *IndexTracker) Process(oxy, deoxy float64) (float64, Level, bool) {
	t.count++
	t.sumOxy += oxy
	t.sumDeoxy += deoxy
	t.pending++

	if t.pending < t.window {
		return 0, LowOxygenation, false
	}
	t.pending = 0
	coi := t.Index()
	return coi, Classify(coi), true
}

// Index es el índice acumulado sobre todas las muestras vistas.
func (t *IndexTracker) Index() float64 {
	if t.count == 0 {
		return indexFromMeans(0, 0)
	}
	n := float64(t.count)
	return indexFromMeans(t.sumOxy/n, t.sumDeoxy/n)
}

func (t *IndexTracker) Count() int { return t.count }

func (t *IndexTracker) Reset() {
	t.count, t.pending = 0, 0
	t.sumOxy, t.sumDeoxy = 0, 0
}

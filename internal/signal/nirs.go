package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/analysis"
)

const (
	// SampleRate es la frecuencia de muestreo fija en Hz.
	SampleRate = 20

	// HRFWindow: eje fijo (s) de la HRF, independiente de la duración pedida.
	HRFWindow = 30.0

	SmoothingWidth = 5

	MinDuration = 5
	MaxDuration = 30
	MinNoise    = 0.0
	MaxNoise    = 0.5
)

var (
	ErrInvalidDuration = errors.New("signal: duration out of range")
	ErrInvalidNoise    = errors.New("signal: noise level out of range")
)

// Request describe una corrida; no se retiene tras Run.
type Request struct {
	Task     string  `json:"task"`
	Duration int     `json:"duration"`
	Noise    float64 `json:"noise"`
}

func (r Request) Validate() error {
	if _, err := Lookup(r.Task); err != nil {
		return err
	}
	if r.Duration < MinDuration || r.Duration > MaxDuration {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidDuration, r.Duration, MinDuration, MaxDuration)
	}
	if math.IsNaN(r.Noise) || r.Noise < MinNoise || r.Noise > MaxNoise {
		return fmt.Errorf("%w: %g not in [%g,%g]", ErrInvalidNoise, r.Noise, MinNoise, MaxNoise)
	}
	return nil
}

// Result es una corrida simulada. Signal es la señal compuesta antes de derivar oxy/deoxy.
type Result struct {
	Task   string    `json:"task"`
	Time   []float64 `json:"time"`
	Signal []float64 `json:"-"`
	Oxy    []float64 `json:"oxy"`
	Deoxy  []float64 `json:"deoxy"`
	Index  float64   `json:"index"`
}

// Len es la cantidad de muestras.
func (r *Result) Len() int { return len(r.Time) }

func (r *Result) Level() analysis.Level { return analysis.Classify(r.Index) }

// NIRSSim genera señales tipo NIRS (no clínicas).
// Cada simulador tiene su propia fuente aleatoria; no compartir entre goroutines.
type NIRSSim struct {
	rand *rand.Rand
}

func NewNIRSSim(seed int64) *NIRSSim {
	return &NIRSSim{rand: rand.New(rand.NewSource(seed))}
}

// Run genera la corrida completa o falla antes de producir salida.
func (s *NIRSSim) Run(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, _ := Lookup(req.Task)
	return s.generate(req.Task, p, req.Duration, req.Noise), nil
}

func (s *NIRSSim) generate(task string, p TaskProfile, duration int, noise float64) *Result {
	n := duration * SampleRate
	t := Linspace(0, float64(duration), n)

	// HRF sobre una ventana fija de 30 s, re-muestreada a n puntos
	smoothed := MovingAverage(HRFSeries(Linspace(0, HRFWindow, n)), SmoothingWidth)

	sig := make([]float64, n)
	oxy := make([]float64, n)
	deoxy := make([]float64, n)
	for i, ti := range t {
		v := p.Amplitude*math.Sin(2*math.Pi*p.Frequency*ti) + smoothed[i]
		v += noise * s.rand.NormFloat64()
		sig[i] = v

		drift := math.Sin(0.1 * math.Pi * ti)
		oxy[i] = v + 0.5*drift
		deoxy[i] = -0.6*v + 0.2*drift
	}

	return &Result{
		Task:   task,
		Time:   t,
		Signal: sig,
		Oxy:    oxy,
		Deoxy:  deoxy,
		Index:  analysis.OxygenationIndex(oxy, deoxy),
	}
}

var seedSeq int64

// NewSeed devuelve una semilla distinta en cada llamada, aunque dos caigan en el mismo nanosegundo.
func NewSeed() int64 {
	return time.Now().UnixNano() + atomic.AddInt64(&seedSeq, 1)
}

// Generate usa un simulador nuevo por llamada: no hay estado aleatorio compartido.
func Generate(task string, duration int, noise float64) (*Result, error) {
	return NewNIRSSim(NewSeed()).Run(Request{Task: task, Duration: duration, Noise: noise})
}
